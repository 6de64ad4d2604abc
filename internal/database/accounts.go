package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor (12 is a good balance of security and performance)
const bcryptCost = 12

// ErrAccountNotFound is returned when an account lookup fails.
var ErrAccountNotFound = errors.New("account not found")

// ErrAccountExists is returned when trying to create a duplicate account.
var ErrAccountExists = errors.New("account already exists")

// ErrInvalidCredentials is returned when login credentials are incorrect.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Account represents a player account.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CurrentRoom  string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// CreateAccount creates a new account placed at the starting room. The
// password is hashed with bcrypt before storage.
func (d *Database) CreateAccount(username, password string) (*Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = d.exec(
		"INSERT INTO accounts (username, password_hash, current_room) VALUES (?, ?, ?)",
		username, string(hash), d.startingRoom,
	)
	if err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return d.GetAccount(username)
}

// Authenticate checks the username and password. Returns the account if
// valid, or ErrInvalidCredentials if not.
func (d *Database) Authenticate(username, password string) (*Account, error) {
	account, err := d.GetAccount(username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if _, err := d.exec(
		"UPDATE accounts SET last_login = CURRENT_TIMESTAMP WHERE id = ?",
		account.ID,
	); err != nil {
		// A stale last_login is not worth failing the login over.
		return account, nil
	}

	return account, nil
}

// GetAccount retrieves an account by username (case-insensitive).
func (d *Database) GetAccount(username string) (*Account, error) {
	var account Account
	var lastLogin sql.NullTime

	err := d.queryRow(
		"SELECT id, username, password_hash, current_room, created_at, last_login FROM accounts WHERE username = ?",
		username,
	).Scan(&account.ID, &account.Username, &account.PasswordHash, &account.CurrentRoom, &account.CreatedAt, &lastLogin)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if lastLogin.Valid {
		account.LastLogin = &lastLogin.Time
	}

	return &account, nil
}

// SetAccountRoom updates the room an account is stored in.
func (d *Database) SetAccountRoom(username, roomID string) error {
	result, err := d.exec(
		"UPDATE accounts SET current_room = ? WHERE username = ?",
		roomID, username,
	)
	if err != nil {
		return fmt.Errorf("failed to update account room: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// AccountsInRoom returns the usernames of accounts stored in a room.
func (d *Database) AccountsInRoom(roomID string) ([]string, error) {
	rows, err := d.query(
		"SELECT username FROM accounts WHERE current_room = ? ORDER BY username",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts in room: %w", err)
	}
	defer rows.Close()

	var usernames []string
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, fmt.Errorf("failed to scan username: %w", err)
		}
		usernames = append(usernames, username)
	}
	return usernames, rows.Err()
}

// AccountExists checks if an account with the given username exists.
func (d *Database) AccountExists(username string) (bool, error) {
	var count int
	err := d.queryRow(
		"SELECT COUNT(*) FROM accounts WHERE username = ?",
		username,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return count > 0, nil
}

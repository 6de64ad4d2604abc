package database

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(DefaultConfig(path))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAccount(t *testing.T) {
	db := setupTestDB(t)

	account, err := db.CreateAccount("alice", "password123")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if account.Username != "alice" {
		t.Errorf("Username = %q, want %q", account.Username, "alice")
	}
	if account.CurrentRoom != "alamo_plaza" {
		t.Errorf("CurrentRoom = %q, want %q", account.CurrentRoom, "alamo_plaza")
	}
	if account.PasswordHash == "password123" {
		t.Error("password stored in plaintext")
	}
}

func TestCreateAccountDuplicate(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateAccount("alice", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	_, err := db.CreateAccount("alice", "different")
	if !errors.Is(err, ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got %v", err)
	}
}

func TestCreateAccountDuplicateCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateAccount("alice", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	_, err := db.CreateAccount("ALICE", "different")
	if !errors.Is(err, ErrAccountExists) {
		t.Errorf("expected ErrAccountExists for different case, got %v", err)
	}
}

func TestCreateAccountEmptyUsername(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateAccount("   ", "password123"); err == nil {
		t.Error("expected error for blank username")
	}
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateAccount("alice", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	account, err := db.Authenticate("alice", "password123")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if account.Username != "alice" {
		t.Errorf("Username = %q, want %q", account.Username, "alice")
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateAccount("alice", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	_, err := db.Authenticate("alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	// Unknown users produce the same error as bad passwords.
	_, err := db.Authenticate("nobody", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetAccount("ghost")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestSetAccountRoom(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CreateAccount("alice", "password123"); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if err := db.SetAccountRoom("alice", "riverwalk_north"); err != nil {
		t.Fatalf("SetAccountRoom failed: %v", err)
	}

	account, err := db.GetAccount("alice")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if account.CurrentRoom != "riverwalk_north" {
		t.Errorf("CurrentRoom = %q, want %q", account.CurrentRoom, "riverwalk_north")
	}
}

func TestSetAccountRoomUnknownAccount(t *testing.T) {
	db := setupTestDB(t)

	err := db.SetAccountRoom("ghost", "riverwalk_north")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountsInRoom(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"alice", "bob", "carol"} {
		if _, err := db.CreateAccount(name, "password123"); err != nil {
			t.Fatalf("CreateAccount(%s) failed: %v", name, err)
		}
	}
	if err := db.SetAccountRoom("carol", "riverwalk_north"); err != nil {
		t.Fatalf("SetAccountRoom failed: %v", err)
	}

	names, err := db.AccountsInRoom("alamo_plaza")
	if err != nil {
		t.Fatalf("AccountsInRoom failed: %v", err)
	}
	if len(names) != 2 || names[0] != "alice" || names[1] != "bob" {
		t.Errorf("AccountsInRoom = %v, want [alice bob]", names)
	}
}

func TestConcurrentAccountCreation(t *testing.T) {
	db := setupTestDB(t)

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = db.CreateAccount("racer", "password123")
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else if !errors.Is(err, ErrAccountExists) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Errorf("expected exactly one successful creation, got %d", created)
	}
}

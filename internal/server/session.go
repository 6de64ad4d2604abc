package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/riverwalkmud/samud/internal/antispam"
	"github.com/riverwalkmud/samud/internal/command"
	"github.com/riverwalkmud/samud/internal/database"
	"github.com/riverwalkmud/samud/internal/logger"
)

const welcomeGuide = `=== WELCOME GUIDE ===
You're now in The Alamo Plaza. Here are some basic commands to get started:

🔍 Exploring:
  'look' - See your surroundings, exits, people, and items
  'n/s/e/w' - Move north/south/east/west
  'where' - Check your current location

💬 Communication:
  'say <message>' - Talk to people in the same room
  'shout <message>' - Send message to everyone in the world
  'who' - See who's online

🎒 Items:
  'get <item>' - Pick up items you find
  'drop <item>' - Drop items from your inventory
  'inventory' (or 'inv') - See what you're carrying

🗣️ NPCs:
  'talk <npc>' - Chat with characters (try keywords!)

❓ Need help? Type 'help' anytime!
==================`

// Session is one connected player. The reader goroutine owns the lifecycle;
// other goroutines only touch it through Send.
type Session struct {
	server *Server
	client Client
	spam   *antispam.Tracker

	writeMu sync.Mutex

	mu       sync.RWMutex
	username string
	roomID   string
}

func newSession(s *Server, client Client) *Session {
	return &Session{
		server: s,
		client: client,
		spam:   antispam.NewTracker(s.antispamConfig),
	}
}

// Name returns the username as captured at signup.
func (sess *Session) Name() string {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.username
}

// RoomID returns the session's current room.
func (sess *Session) RoomID() string {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.roomID
}

// SetRoomID persists the account's room and then updates the session.
func (sess *Session) SetRoomID(roomID string) error {
	if err := sess.server.store.SetAccountRoom(sess.Name(), roomID); err != nil {
		return err
	}
	sess.mu.Lock()
	sess.roomID = roomID
	sess.mu.Unlock()
	return nil
}

// Send delivers a broadcast line to this session followed by a fresh
// prompt. Write failures are dropped; the reader goroutine notices the dead
// connection and tears the session down.
func (sess *Session) Send(message string) {
	sess.write(message + "\n" + sess.server.prompt())
}

// write sends raw text to the client, serializing concurrent writers.
func (sess *Session) write(text string) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.client.Write([]byte(text)); err != nil {
		logger.Debug("Dropped write to dead client", "remote_addr", sess.client.RemoteAddr())
	}
}

func (sess *Session) bind(account *database.Account) {
	sess.mu.Lock()
	sess.username = account.Username
	sess.roomID = account.CurrentRoom
	sess.mu.Unlock()
}

// runAuth walks the welcome/login/signup state machine until the session is
// bound to an account or the client leaves.
func (sess *Session) runAuth() error {
	s := sess.server
	ip := extractIP(sess.client.RemoteAddr())

	sess.write("Welcome to the San Antonio MUD\nType 'login' to sign in or 'signup' to create a new account\n" + s.prompt())

	for {
		line, err := sess.client.ReadLine()
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "login":
			sess.write("Username: ")
			username, err := sess.client.ReadLine()
			if err != nil {
				return err
			}
			sess.write("Password: ")
			password, err := sess.client.ReadLine()
			if err != nil {
				return err
			}

			if locked, remaining := s.loginRateLimiter.IsLocked(ip); locked {
				sess.write(fmt.Sprintf("Too many failed login attempts. Please wait %d seconds.\n%s",
					int(remaining.Seconds())+1, s.prompt()))
				continue
			}

			account, err := s.store.Authenticate(strings.TrimSpace(username), password)
			if err != nil {
				s.loginRateLimiter.RecordFailure(ip)
				logger.Info("Login failed", "remote_addr", sess.client.RemoteAddr())
				sess.write("Login failed: Invalid username or password\nType 'login' to try again or 'signup' to create account\n" + s.prompt())
				continue
			}

			s.loginRateLimiter.RecordSuccess(ip)
			sess.bind(account)
			logger.Info("Player logged in", "player", account.Username)

			roomName := "an unknown location"
			if room, err := s.store.GetRoom(account.CurrentRoom); err == nil {
				roomName = room.Name
			}
			sess.write(fmt.Sprintf("Welcome back, %s!\nYou are at %s\nType 'help' to see available commands\n%s",
				account.Username, roomName, s.prompt()))
			return nil

		case "signup":
			sess.write("Choose a username: ")
			username, err := sess.client.ReadLine()
			if err != nil {
				return err
			}
			username = strings.TrimSpace(username)

			if s.nameFilter != nil {
				if result := s.nameFilter.Check(username); !result.Allowed {
					sess.write(fmt.Sprintf("Signup failed: %s\nType 'signup' to try again or 'login' to sign in\n%s",
						result.Reason, s.prompt()))
					continue
				}
			}

			sess.write("Choose a password: ")
			password, err := sess.client.ReadLine()
			if err != nil {
				return err
			}

			account, err := s.store.CreateAccount(username, password)
			if err != nil {
				reason := "Could not create account"
				if errors.Is(err, database.ErrAccountExists) {
					reason = "Username already exists"
				}
				sess.write(fmt.Sprintf("Signup failed: %s\nType 'signup' to try again or 'login' to sign in\n%s",
					reason, s.prompt()))
				continue
			}

			sess.bind(account)
			logger.Info("Account created", "player", account.Username)

			sess.write(fmt.Sprintf("Account created! Welcome to the San Antonio MUD, %s!\n\n%s\n\nYou appear at The Alamo Plaza\n%s",
				account.Username, welcomeGuide, s.prompt()))
			return nil

		case "quit":
			sess.write("Goodbye!\n")
			sess.client.Close()
			return errors.New("quit before authenticating")

		default:
			sess.write("Please type 'login', 'signup', or 'quit'\n" + s.prompt())
		}
	}
}

// runGame reads command lines until the client quits or disconnects.
func (sess *Session) runGame() {
	s := sess.server

	for {
		line, err := sess.client.ReadLine()
		if err != nil {
			return
		}

		cmd := command.ParseCommand(line)
		if cmd == nil {
			sess.write(s.prompt())
			continue
		}

		if cmd.Name == "quit" {
			sess.write("Goodbye! Your progress has been saved.\n")
			sess.client.Close()
			return
		}

		out := cmd.Execute(sess, s)
		if out == "" {
			sess.write(s.prompt())
		} else {
			sess.write(out + "\n" + s.prompt())
		}
	}
}

var _ command.Session = (*Session)(nil)

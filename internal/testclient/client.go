package testclient

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// TestClient is a scripted telnet connection to a running server, used by
// integration tests and manual smoke checks.
type TestClient struct {
	Name     string
	conn     net.Conn
	reader   *bufio.Reader
	writer   *bufio.Writer
	messages []string
	mu       sync.Mutex
	done     chan struct{}
}

// Credentials holds login information for an existing account.
type Credentials struct {
	Username string
	Password string
}

func newClientConnection(address string) (*TestClient, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	client := &TestClient{
		conn:     conn,
		reader:   bufio.NewReader(conn),
		writer:   bufio.NewWriter(conn),
		messages: make([]string, 0),
		done:     make(chan struct{}),
	}

	go client.readMessages()

	return client, nil
}

// NewTestClient connects and signs up a fresh account named after the
// client. Each test client gets its own account.
func NewTestClient(name string, address string) (*TestClient, error) {
	client, err := newClientConnection(address)
	if err != nil {
		return nil, err
	}
	client.Name = name

	// Wait for the welcome banner
	time.Sleep(200 * time.Millisecond)

	if err := client.SendCommand("signup"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start signup: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := client.SendCommand(name); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to send username: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := client.SendCommand(name + "pass123"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to send password: %w", err)
	}

	if !client.WaitForMessage("Account created!", 2*time.Second) {
		messages := client.GetMessages()
		client.Close()
		return nil, fmt.Errorf("failed to enter game, messages: %v", messages)
	}

	return client, nil
}

// NewTestClientWithLogin connects and logs into an existing account.
func NewTestClientWithLogin(creds Credentials, address string) (*TestClient, error) {
	client, err := newClientConnection(address)
	if err != nil {
		return nil, err
	}
	client.Name = creds.Username

	time.Sleep(200 * time.Millisecond)

	if err := client.SendCommand("login"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start login: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := client.SendCommand(creds.Username); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to send username: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := client.SendCommand(creds.Password); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to send password: %w", err)
	}

	if !client.WaitForMessage("Welcome back", 2*time.Second) {
		messages := client.GetMessages()
		client.Close()
		return nil, fmt.Errorf("login did not complete, messages: %v", messages)
	}

	return client, nil
}

// NewTestClientRaw connects without authenticating, for testing the auth
// flow itself.
func NewTestClientRaw(address string) (*TestClient, error) {
	client, err := newClientConnection(address)
	if err != nil {
		return nil, err
	}
	client.Name = "RawClient"

	time.Sleep(200 * time.Millisecond)

	return client, nil
}

func (c *TestClient) readMessages() {
	for {
		select {
		case <-c.done:
			return
		default:
			line, err := c.reader.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimRight(line, "\r\n")
			if line != "" {
				c.mu.Lock()
				c.messages = append(c.messages, line)
				c.mu.Unlock()
			}
		}
	}
}

// SendCommand sends one input line to the server.
func (c *TestClient) SendCommand(cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.writer.WriteString(cmd + "\n")
	if err != nil {
		return err
	}
	return c.writer.Flush()
}

// GetMessages returns a copy of all messages received so far.
func (c *TestClient) GetMessages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]string, len(c.messages))
	copy(result, c.messages)
	return result
}

// GetLastMessages returns the last n messages.
func (c *TestClient) GetLastMessages(n int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n > len(c.messages) {
		n = len(c.messages)
	}

	start := len(c.messages) - n
	result := make([]string, n)
	copy(result, c.messages[start:])
	return result
}

// ClearMessages clears the message buffer.
func (c *TestClient) ClearMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = make([]string, 0)
}

// WaitForMessage polls until a message containing text arrives or the
// timeout expires.
func (c *TestClient) WaitForMessage(text string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		for _, msg := range c.GetMessages() {
			if strings.Contains(msg, text) {
				return true
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	return false
}

// HasMessage reports whether any received message contains text.
func (c *TestClient) HasMessage(text string) bool {
	for _, msg := range c.GetMessages() {
		if strings.Contains(msg, text) {
			return true
		}
	}
	return false
}

// Close closes the client connection.
func (c *TestClient) Close() error {
	close(c.done)
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

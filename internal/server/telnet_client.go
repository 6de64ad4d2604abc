package server

import (
	"bufio"
	"net"
)

// TelnetClient wraps a raw TCP connection for line-oriented telnet-style
// communication.
type TelnetClient struct {
	conn    net.Conn
	scanner *bufio.Scanner
	writer  *bufio.Writer
}

func NewTelnetClient(conn net.Conn) *TelnetClient {
	return &TelnetClient{
		conn:    conn,
		scanner: bufio.NewScanner(conn),
		writer:  bufio.NewWriter(conn),
	}
}

// ReadLine blocks until a full line arrives and returns it without the
// trailing newline.
func (c *TelnetClient) ReadLine() (string, error) {
	if c.scanner.Scan() {
		return c.scanner.Text(), nil
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	// Scanner finished without error means EOF
	return "", net.ErrClosed
}

// WriteLine writes a message followed by a newline.
func (c *TelnetClient) WriteLine(message string) error {
	if _, err := c.writer.WriteString(message + "\n"); err != nil {
		return err
	}
	return c.writer.Flush()
}

// Write writes raw bytes, used for prompts that must not end in a newline.
func (c *TelnetClient) Write(data []byte) error {
	if _, err := c.writer.Write(data); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *TelnetClient) Close() error {
	return c.conn.Close()
}

func (c *TelnetClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

package server

import (
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// WebSocketClient wraps a WebSocket connection for browser-based play. Each
// inbound message may carry several lines, which are buffered and handed
// out one at a time.
type WebSocketClient struct {
	conn    *websocket.Conn
	readBuf []string
	mu      sync.Mutex // protects readBuf
}

func NewWebSocketClient(conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		conn:    conn,
		readBuf: make([]string, 0),
	}
}

// ReadLine returns the next input line, reading a new message from the
// socket when the buffer is empty. Blank messages are skipped.
func (c *WebSocketClient) ReadLine() (string, error) {
	for {
		c.mu.Lock()
		if len(c.readBuf) > 0 {
			line := c.readBuf[0]
			c.readBuf = c.readBuf[1:]
			c.mu.Unlock()
			return line, nil
		}
		c.mu.Unlock()

		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}

		lines := strings.Split(string(message), "\n")
		filtered := make([]string, 0, len(lines))
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" {
				filtered = append(filtered, trimmed)
			}
		}
		if len(filtered) == 0 {
			continue
		}

		c.mu.Lock()
		c.readBuf = append(c.readBuf, filtered...)
		c.mu.Unlock()
	}
}

// WriteLine sends a message as a single WebSocket text frame.
func (c *WebSocketClient) WriteLine(message string) error {
	return c.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// Write sends raw bytes as a text frame.
func (c *WebSocketClient) Write(data []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *WebSocketClient) Close() error {
	return c.conn.Close()
}

func (c *WebSocketClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

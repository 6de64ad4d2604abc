package server

// Client is one player connection, regardless of transport. Sessions speak
// only through this interface so telnet and WebSocket players share the
// same game loop.
type Client interface {
	// ReadLine blocks until a full line arrives, returned without its
	// line ending.
	ReadLine() (string, error)

	// WriteLine sends message followed by a newline.
	WriteLine(message string) error

	// Write sends data exactly as given. Used for prompts, which must not
	// end in a newline.
	Write(data []byte) error

	// Close tears down the connection. Safe to call more than once.
	Close() error

	// RemoteAddr reports the peer address for logging and rate limiting.
	RemoteAddr() string
}

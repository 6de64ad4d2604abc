package server

import (
	"net"
	"sync"

	"github.com/riverwalkmud/samud/internal/config"
)

// ConnLimiter caps concurrent connections, both per source IP and overall.
// A limit of zero means unlimited.
type ConnLimiter struct {
	mu       sync.Mutex
	perIP    map[string]int
	total    int
	maxPerIP int
	maxTotal int
}

// NewConnLimiter builds a limiter from the connections section of the
// server config.
func NewConnLimiter(cfg config.ConnectionsConfig) *ConnLimiter {
	return &ConnLimiter{
		perIP:    make(map[string]int),
		maxPerIP: cfg.MaxPerIP,
		maxTotal: cfg.MaxTotal,
	}
}

// TryAcquire claims a slot for ip. It returns false without side effects
// when either limit would be exceeded; a true return must be paired with a
// Release for the same IP.
func (c *ConnLimiter) TryAcquire(ip string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxTotal > 0 && c.total >= c.maxTotal {
		return false
	}
	if c.maxPerIP > 0 && c.perIP[ip] >= c.maxPerIP {
		return false
	}

	c.perIP[ip]++
	c.total++
	return true
}

// Release returns the slot claimed by TryAcquire. Extra releases for an
// unknown IP are ignored rather than driving counts negative.
func (c *ConnLimiter) Release(ip string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.perIP[ip] > 0 {
		c.perIP[ip]--
		if c.perIP[ip] == 0 {
			delete(c.perIP, ip)
		}
	}
	if c.total > 0 {
		c.total--
	}
}

// GetStats reports the total connection count and the number of distinct IPs.
func (c *ConnLimiter) GetStats() (totalCount int, ipCount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total, len(c.perIP)
}

// GetIPCount reports the connection count for one IP.
func (c *ConnLimiter) GetIPCount(ip string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.perIP[ip]
}

// extractIP pulls the host out of an ip:port remote address. Addresses that
// do not split cleanly are used whole.
func extractIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// Package referral rewrites outbound catalog URLs to carry the platform's
// referral code for hosts that have one.
package referral

import (
	"net/url"
	"sync"
)

// defaultParam is the query parameter the code is attached under.
const defaultParam = "ref"

// Store maps hostnames to referral codes.
type Store struct {
	mu    sync.RWMutex
	param string
	codes map[string]string
}

// NewStore creates a referral store with the given host-to-code mapping.
func NewStore(codes map[string]string) *Store {
	s := &Store{
		param: defaultParam,
		codes: make(map[string]string, len(codes)),
	}
	for host, code := range codes {
		s.codes[host] = code
	}
	return s
}

// Set adds or replaces the code for a host.
func (s *Store) Set(host, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[host] = code
}

// Apply returns rawURL with the host's referral code attached as a query
// parameter. The URL is returned unchanged when the host has no code, when
// it already carries the parameter, or when it does not parse.
func (s *Store) Apply(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}

	s.mu.RLock()
	code, ok := s.codes[u.Hostname()]
	s.mu.RUnlock()
	if !ok || code == "" {
		return rawURL
	}

	q := u.Query()
	if q.Has(s.param) {
		return rawURL
	}
	q.Set(s.param, code)
	u.RawQuery = q.Encode()
	return u.String()
}

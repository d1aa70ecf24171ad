package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// StartJanitor launches a background sweep that evicts expired entries so a
// long-running process does not accumulate dead sessions between reads.
// Reads already treat expired entries as absent; the janitor only reclaims
// their memory. It stops when ctx is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	if s.ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.sweep(); n > 0 {
					log.Debug().Int("evicted", n).Msg("session janitor sweep")
				}
			}
		}
	}()
}

// sweep removes every expired entry and reports how many it evicted.
func (s *MemoryStore) sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for sid, e := range s.m {
		if !e.expireAt.IsZero() && now.After(e.expireAt) {
			delete(s.m, sid)
			n++
		}
	}
	return n
}

package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type download struct {
	filename  string
	data      []byte
	expiresAt time.Time
}

// downloadStore keeps rendered workbooks in memory until fetched or expired.
type downloadStore struct {
	mu    sync.Mutex
	items map[string]download
	now   func() time.Time
}

func newDownloadStore() *downloadStore {
	return &downloadStore{
		items: make(map[string]download),
		now:   time.Now,
	}
}

func (s *downloadStore) put(filename string, data []byte, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	token = uuid.NewString()
	s.items[token] = download{
		filename:  filename,
		data:      data,
		expiresAt: now.Add(ttl),
	}
	return token
}

// take returns the download and forgets it; tokens are single use.
func (s *downloadStore) take(token string) (download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(s.now())

	v, ok := s.items[token]
	if !ok {
		return download{}, false
	}
	delete(s.items, token)
	return v, true
}

func (s *downloadStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *downloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

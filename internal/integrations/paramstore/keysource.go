package paramstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

const DefaultKeyTTL = 5 * time.Minute

// tokenPayload is the JSON shape accepted for a stored API key. Plain string
// values are accepted as well.
type tokenPayload struct {
	Token string `json:"token"`
}

// KeySource resolves the upstream API key from a single parameter and keeps it
// for ttl, so a rotated key is picked up without a cold start.
type KeySource struct {
	getter Getter
	name   string
	ttl    time.Duration
	cache  *ristretto.Cache[string, string]
}

func NewKeySource(getter Getter, name string, ttl time.Duration) (*KeySource, error) {
	if getter == nil {
		return nil, errors.New("paramstore: getter must not be nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("paramstore: key parameter name must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultKeyTTL
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters:        100,
		MaxCost:            1 << 10,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("paramstore: create key cache: %w", err)
	}
	return &KeySource{getter: getter, name: name, ttl: ttl, cache: cache}, nil
}

// APIKey returns the cached key or fetches it. Fetch failures are not cached.
func (s *KeySource) APIKey(ctx context.Context) (string, error) {
	if key, ok := s.cache.Get(s.name); ok {
		return key, nil
	}

	raw, err := s.getter.GetParameter(ctx, s.name)
	if err != nil {
		return "", fmt.Errorf("paramstore: fetch api key: %w", err)
	}
	key, err := parseKey(raw)
	if err != nil {
		return "", err
	}

	s.cache.SetWithTTL(s.name, key, 1, s.ttl)
	s.cache.Wait()
	return key, nil
}

func (s *KeySource) Close() {
	s.cache.Close()
}

func parseKey(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var tp tokenPayload
		if err := json.Unmarshal([]byte(raw), &tp); err != nil {
			return "", fmt.Errorf("paramstore: unmarshal api key value as JSON: %w", err)
		}
		raw = strings.TrimSpace(tp.Token)
	}
	if raw == "" {
		return "", errors.New("paramstore: api key is empty")
	}
	return raw, nil
}

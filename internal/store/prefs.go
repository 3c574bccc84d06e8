// Package store holds the process-wide preference-backed state: the upstream
// credential, its verification state, and the temperature unit preference.
package store

import (
	"sync"

	"github.com/halcyonos/weather-provider/internal/weather"
)

// PrefsStore is a concurrency-safe in-memory implementation of
// weather.Settings. It is the single writer/reader serialization point for
// the credential and verification state shared between query tasks and the
// settings surface.
type PrefsStore struct {
	mu           sync.RWMutex
	apiKey       string
	verification weather.VerificationState
	metric       bool
}

// NewPrefsStore creates a store with the given seed values. A non-empty seed
// key starts in the pending-verification state, mirroring a freshly entered
// credential; an empty one starts unverified.
func NewPrefsStore(apiKey string, metric bool) *PrefsStore {
	state := weather.VerificationUnverified
	if apiKey != "" {
		state = weather.VerificationPending
	}
	return &PrefsStore{
		apiKey:       apiKey,
		verification: state,
		metric:       metric,
	}
}

// APIKey returns the configured credential, empty when none is set.
func (s *PrefsStore) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

// SetAPIKey replaces the credential and resets verification to pending.
func (s *PrefsStore) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKey = key
	s.verification = weather.VerificationPending
}

// VerificationState returns the current credential verification state.
func (s *PrefsStore) VerificationState() weather.VerificationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verification
}

// SetVerificationState records the outcome of the latest fetch attempt.
func (s *PrefsStore) SetVerificationState(state weather.VerificationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verification = state
}

// Metric reports whether temperatures are requested in metric units.
func (s *PrefsStore) Metric() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metric
}

// SetMetric updates the unit preference.
func (s *PrefsStore) SetMetric(metric bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metric = metric
}

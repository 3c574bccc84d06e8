package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halcyonos/weather-provider/internal/weather"
)

func TestNewPrefsStoreSeeding(t *testing.T) {
	empty := NewPrefsStore("", true)
	assert.Equal(t, "", empty.APIKey())
	assert.Equal(t, weather.VerificationUnverified, empty.VerificationState())
	assert.True(t, empty.Metric())

	seeded := NewPrefsStore("k", false)
	assert.Equal(t, "k", seeded.APIKey())
	assert.Equal(t, weather.VerificationPending, seeded.VerificationState())
	assert.False(t, seeded.Metric())
}

func TestSetAPIKeyResetsVerification(t *testing.T) {
	s := NewPrefsStore("k", true)
	s.SetVerificationState(weather.VerificationVerified)

	s.SetAPIKey("new-key")
	assert.Equal(t, "new-key", s.APIKey())
	assert.Equal(t, weather.VerificationPending, s.VerificationState())
}

func TestPrefsStoreConcurrentAccess(t *testing.T) {
	s := NewPrefsStore("k", true)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetVerificationState(weather.VerificationVerified)
			_ = s.VerificationState()
			_ = s.APIKey()
			s.SetMetric(false)
			_ = s.Metric()
		}()
	}
	wg.Wait()

	assert.Equal(t, weather.VerificationVerified, s.VerificationState())
	assert.False(t, s.Metric())
}

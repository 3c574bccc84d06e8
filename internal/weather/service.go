package weather

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrSubmittedTooSoon is the admission-gate rejection. It is a distinct
	// terminal outcome, not an upstream failure.
	ErrSubmittedTooSoon = errors.New("query submitted too soon")

	// ErrMissingAPIKey is returned when no credential is configured. The
	// upstream service is never contacted in that case.
	ErrMissingAPIKey = errors.New("no api key configured")

	// ErrUpstreamUnavailable covers transport errors, non-success statuses
	// and malformed bodies on the required current-weather call. The caller
	// gets no richer cause than this; details go to the log.
	ErrUpstreamUnavailable = errors.New("weather provider unavailable")
)

const (
	metricUnits   = "metric"
	imperialUnits = "imperial"
)

// Service is the top-level query engine. It consults the admission gate,
// fetches raw payloads from the provider, normalizes them, and maintains the
// credential-verification and dedupe state.
//
// Gate state and verification state are only mutated after a query fully
// succeeds; a cancelled query is treated as if it never ran.
type Service struct {
	provider Provider
	settings Settings
	gate     *RequestGate
	lang     string
	tz       *time.Location
	now      func() time.Time
	log      *zap.SugaredLogger

	// onUpdate, when set, observes every snapshot produced by the service,
	// including periodic refreshes.
	onUpdate func(*WeatherSnapshot)
}

// ServiceOption configures optional Service behavior.
type ServiceOption func(*Service)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithTimeZone overrides the zone used for forecast day bucketing.
func WithTimeZone(tz *time.Location) ServiceOption {
	return func(s *Service) { s.tz = tz }
}

// WithUpdateHook registers an observer for produced snapshots.
func WithUpdateHook(fn func(*WeatherSnapshot)) ServiceOption {
	return func(s *Service) { s.onUpdate = fn }
}

// NewService creates the query engine.
func NewService(provider Provider, settings Settings, gate *RequestGate, lang string, log *zap.SugaredLogger, opts ...ServiceOption) *Service {
	if gate == nil {
		gate = NewRequestGate(DefaultRequestThreshold)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Service{
		provider: provider,
		settings: settings,
		gate:     gate,
		lang:     lang,
		tz:       time.Local,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryByCoords answers a geo-location query.
func (s *Service) QueryByCoords(ctx context.Context, q GeoQuery) (*WeatherSnapshot, error) {
	return s.query(ctx, q,
		func(ctx context.Context, opts QueryOptions) (*CurrentConditions, error) {
			return s.provider.CurrentByCoords(ctx, q.Latitude, q.Longitude, opts)
		},
		func(ctx context.Context, opts QueryOptions) (*ForecastResponse, error) {
			return s.provider.ForecastByCoords(ctx, q.Latitude, q.Longitude, opts)
		},
	)
}

// QueryByLocation answers a named-weather-location query.
func (s *Service) QueryByLocation(ctx context.Context, q LocationQuery) (*WeatherSnapshot, error) {
	return s.query(ctx, q,
		func(ctx context.Context, opts QueryOptions) (*CurrentConditions, error) {
			return s.provider.CurrentByCity(ctx, q.CityID, opts)
		},
		func(ctx context.Context, opts QueryOptions) (*ForecastResponse, error) {
			return s.provider.ForecastByCity(ctx, q.CityID, opts)
		},
	)
}

func (s *Service) query(
	ctx context.Context,
	q Query,
	fetchCurrent func(context.Context, QueryOptions) (*CurrentConditions, error),
	fetchForecast func(context.Context, QueryOptions) (*ForecastResponse, error),
) (*WeatherSnapshot, error) {
	now := s.now()
	if !s.gate.Admit(q, now) {
		s.log.Debugw("query rejected by admission gate", "query", q)
		return nil, ErrSubmittedTooSoon
	}

	opts, err := s.queryOptions()
	if err != nil {
		return nil, err
	}
	metric := opts.Units == metricUnits

	current, err := fetchCurrent(ctx, opts)
	if err != nil {
		return nil, s.fetchFailure(ctx, err, "current weather fetch failed")
	}

	// Best-effort: a missing forecast degrades to a current-only snapshot.
	forecast, err := fetchForecast(ctx, opts)
	if err != nil {
		s.log.Warnw("forecast fetch failed, continuing without forecast", "error", err)
		forecast = nil
	}

	snapshot := Normalize(current, forecast, metric, now, s.tz)
	if snapshot == nil {
		if current != nil {
			s.log.Warnw("current weather payload unusable", "cod", int(current.Cod), "message", current.Message)
		}
		return nil, ErrUpstreamUnavailable
	}

	// A cancelled query must not advance gate or verification state.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s.settings.SetVerificationState(VerificationVerified)
	s.gate.Record(q, now)
	if s.onUpdate != nil {
		s.onUpdate(snapshot)
	}
	return snapshot, nil
}

// LookupCity answers a city-name search. The admission gate does not apply.
// A transport failure or an empty match list yields an empty slice, not an
// error; a missing or rejected credential fails like any other query.
func (s *Service) LookupCity(ctx context.Context, q NameQuery) ([]LocationQuery, error) {
	opts, err := s.queryOptions()
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.FindCity(ctx, q.Name, opts)
	if err != nil {
		if errors.Is(err, ErrInvalidAPIKey) {
			s.settings.SetVerificationState(VerificationInvalid)
			return nil, ErrInvalidAPIKey
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warnw("city lookup failed", "name", q.Name, "error", err)
		return []LocationQuery{}, nil
	}

	locations := make([]LocationQuery, 0, len(resp.List))
	for _, match := range resp.List {
		loc := LocationQuery{
			CityID: strconv.FormatInt(match.ID, 10),
			City:   match.Name,
		}
		if match.Sys.Country != nil {
			loc.Country = *match.Sys.Country
		}
		locations = append(locations, loc)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	s.settings.SetVerificationState(VerificationVerified)
	return locations, nil
}

// RefreshLastKnown re-runs the most recently admitted query, if any. It goes
// through the normal admission path, so a refresh scheduled inside the
// rejection window is simply skipped.
func (s *Service) RefreshLastKnown(ctx context.Context) error {
	q, ok := s.gate.LastAdmitted()
	if !ok {
		return nil
	}

	var err error
	switch query := q.(type) {
	case GeoQuery:
		_, err = s.QueryByCoords(ctx, query)
	case LocationQuery:
		_, err = s.QueryByLocation(ctx, query)
	}
	if errors.Is(err, ErrSubmittedTooSoon) {
		return nil
	}
	return err
}

func (s *Service) queryOptions() (QueryOptions, error) {
	key := s.settings.APIKey()
	if key == "" {
		s.settings.SetVerificationState(VerificationInvalid)
		return QueryOptions{}, ErrMissingAPIKey
	}

	units := imperialUnits
	if s.settings.Metric() {
		units = metricUnits
	}
	return QueryOptions{APIKey: key, Units: units, Lang: s.lang}, nil
}

// fetchFailure maps a failed required fetch onto the outward error set. Only
// a credential rejection flips the verification state; cancellations and
// other upstream failures leave it untouched.
func (s *Service) fetchFailure(ctx context.Context, err error, msg string) error {
	if errors.Is(err, ErrInvalidAPIKey) {
		s.settings.SetVerificationState(VerificationInvalid)
		return ErrInvalidAPIKey
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.log.Warnw(msg, "error", err)
	return ErrUpstreamUnavailable
}

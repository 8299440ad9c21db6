package scheduler

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/giygas/eu-vat-rates/data"
	"github.com/giygas/eu-vat-rates/health"
	"github.com/giygas/eu-vat-rates/interfaces"
	"github.com/giygas/eu-vat-rates/metrics"
	"github.com/giygas/eu-vat-rates/ratesparser/entities"
	"github.com/giygas/eu-vat-rates/validation"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// mockHealthChecker returns a fixed snapshot age
type mockHealthChecker struct {
	age   time.Duration
	err   error
	calls int
}

func (m *mockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return "healthy", map[string]any{}, 200
}

func (m *mockHealthChecker) DataAge() (time.Duration, error) {
	m.calls++
	return m.age, m.err
}

// rejectingValidator fails every integrity check
type rejectingValidator struct {
	*validation.DataValidatorImpl
}

func (rejectingValidator) ValidateDataIntegrity(*entities.Dataset) error {
	return errors.New("rejected")
}

var _ interfaces.DataValidator = rejectingValidator{}

func newStore(content string) *data.DataContainer {
	fsys := fstest.MapFS{"rates.json": &fstest.MapFile{Data: []byte(content)}}
	return data.NewDataContainerFromFS(fsys, "rates.json")
}

const snapshot = `{"version":"2026-02-25","rates":{
	"FI":{"country":"Finland","currency":"EUR","standard":25.5,"reduced":[14,10],"super_reduced":null,"parking":null}}}`

func TestStartLoadsSnapshot(t *testing.T) {
	store := newStore(snapshot)
	checker := &mockHealthChecker{age: 3 * 24 * time.Hour}

	s := NewScheduler(store, validation.NewDataValidator(), checker, 45*24*time.Hour)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer s.Stop()

	if !store.IsLoaded() {
		t.Error("Expected snapshot to be loaded after Start()")
	}
	if checker.calls != 1 {
		t.Errorf("Expected one freshness check at startup, got %d", checker.calls)
	}
	if got := testutil.ToFloat64(metrics.DatasetAgeDays); got != 3 {
		t.Errorf("Expected dataset age gauge 3, got %v", got)
	}
	if jobs := len(s.scheduler.Jobs()); jobs != 1 {
		t.Errorf("Expected 1 scheduled job, got %d", jobs)
	}
}

func TestStartFailsOnMissingSnapshot(t *testing.T) {
	store := data.NewDataContainerFromFS(fstest.MapFS{}, "missing.json")
	s := NewScheduler(store, validation.NewDataValidator(), &mockHealthChecker{}, 0)

	if err := s.Start(); err == nil {
		t.Fatal("Expected Start() to fail when the snapshot is missing")
	}
}

func TestStartFailsOnInvalidSnapshot(t *testing.T) {
	s := NewScheduler(newStore(snapshot), rejectingValidator{validation.NewDataValidator()}, &mockHealthChecker{}, 0)

	if err := s.Start(); err == nil {
		t.Fatal("Expected Start() to fail when validation rejects the snapshot")
	}
}

func TestCheckFreshness(t *testing.T) {
	tests := []struct {
		name    string
		checker *mockHealthChecker
		want    float64
	}{
		{"fresh", &mockHealthChecker{age: 24 * time.Hour}, 1},
		{"stale", &mockHealthChecker{age: 60 * 24 * time.Hour}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(newStore(snapshot), validation.NewDataValidator(), tt.checker, 45*24*time.Hour)
			s.checkFreshness()

			if got := testutil.ToFloat64(metrics.DatasetAgeDays); got != tt.want {
				t.Errorf("Expected dataset age gauge %v, got %v", tt.want, got)
			}
		})
	}

	// An error leaves the gauge untouched
	metrics.DatasetAgeDays.Set(7)
	s := NewScheduler(newStore(snapshot), validation.NewDataValidator(), &mockHealthChecker{err: errors.New("boom")}, 0)
	s.checkFreshness()
	if got := testutil.ToFloat64(metrics.DatasetAgeDays); got != 7 {
		t.Errorf("Expected gauge to stay at 7, got %v", got)
	}
}

func TestSchedulerWithRealHealthChecker(t *testing.T) {
	store := newStore(snapshot)
	s := NewScheduler(store, validation.NewDataValidator(), health.NewHealthChecker(store, 0), 0)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	s.Stop()

	if got := testutil.ToFloat64(metrics.DatasetAgeDays); got <= 0 {
		t.Errorf("Expected positive dataset age, got %v", got)
	}
}

func TestLogQualityReport(t *testing.T) {
	clean := &interfaces.DataQualityReport{CountryCount: 28, NonEuroCurrencyCountries: []string{"DK"}}
	if logQualityReport(clean) {
		t.Error("Expected no warning for a report without issues")
	}

	dirty := &interfaces.DataQualityReport{CountryCount: 1, UnsortedReduced: []string{"AA"}}
	if !logQualityReport(dirty) {
		t.Error("Expected a warning for unsorted reduced rates")
	}

	if logQualityReport(nil) {
		t.Error("Expected no warning for a nil report")
	}
}

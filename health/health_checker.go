// Package health provides health checking functionality for the EU VAT rates service.
package health

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/giygas/eu-vat-rates/interfaces"
	"github.com/giygas/eu-vat-rates/ratesparser/entities"
)

// DefaultStaleAfter is how old the snapshot may get before health degrades
const DefaultStaleAfter = 45 * 24 * time.Hour

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	rateStore  interfaces.RateStore
	staleAfter time.Duration
	now        func() time.Time
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(rateStore interfaces.RateStore, staleAfter time.Duration) *HealthCheckerImpl {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &HealthCheckerImpl{
		rateStore:  rateStore,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// DataAge returns the time elapsed since the snapshot's version date
func (h *HealthCheckerImpl) DataAge() (time.Duration, error) {
	version, err := h.rateStore.DataVersion()
	if err != nil {
		return 0, err
	}

	versionDate, err := time.Parse(entities.VersionLayout, version)
	if err != nil {
		return 0, fmt.Errorf("invalid snapshot version %q: %w", version, err)
	}

	return h.now().Sub(versionDate), nil
}

// HealthCheck returns HTTP-specific health data
// Used by /health HTTP endpoint
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	startTime := h.rateStore.GetServerStartTime()
	data = map[string]any{}
	if !startTime.IsZero() {
		data["uptime_seconds"] = math.Round(h.now().Sub(startTime).Seconds())
	}

	codes, err := h.rateStore.GetCountryCodes()
	if err != nil {
		data["error"] = err.Error()
		return "unhealthy", data, http.StatusServiceUnavailable
	}

	dataAge, err := h.DataAge()
	if err != nil {
		data["error"] = err.Error()
		return "unhealthy", data, http.StatusServiceUnavailable
	}

	// DataVersion cannot fail once GetCountryCodes succeeded
	version, _ := h.rateStore.DataVersion()

	data["version"] = version
	data["countries"] = len(codes)
	data["data_age_days"] = int(dataAge.Hours() / 24)
	data["loaded_at"] = h.rateStore.GetLoadedAt().Format(time.RFC3339)

	switch {
	case len(codes) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > h.staleAfter:
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	return status, data, httpStatus
}

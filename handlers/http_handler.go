// Package handlers provides HTTP request handlers for the EU VAT rates API endpoints.
// This file implements the HTTPHandler interface with dependency injection.
package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/giygas/eu-vat-rates/interfaces"
	"github.com/giygas/eu-vat-rates/logging"
	"github.com/giygas/eu-vat-rates/ratesparser"
	"github.com/giygas/eu-vat-rates/ratesparser/entities"
	"github.com/go-chi/chi/v5"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	rateStore     interfaces.RateStore
	validator     interfaces.DataValidator
	healthChecker interfaces.HealthChecker
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(rateStore interfaces.RateStore, validator interfaces.DataValidator, healthChecker interfaces.HealthChecker) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		rateStore:     rateStore,
		validator:     validator,
		healthChecker: healthChecker,
	}
}

// AllRatesResponse is the body of GET /v1/rates
type AllRatesResponse struct {
	Version string                         `json:"version"`
	Count   int                            `json:"count"`
	Rates   map[string]entities.RateRecord `json:"rates"`
}

// RateResponse is a single record tagged with its code
type RateResponse struct {
	CountryCode string `json:"country_code"`
	entities.RateRecord
}

// StandardRateResponse is the body of GET /v1/rates/{code}/standard
type StandardRateResponse struct {
	CountryCode string  `json:"country_code"`
	Standard    float64 `json:"standard"`
}

// MembershipResponse is the body of GET /v1/members/{code}
type MembershipResponse struct {
	CountryCode string `json:"country_code"`
	Member      bool   `json:"member"`
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime,omitempty"`
	Data   map[string]any `json:"data"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// GenerateETag returns a quoted strong ETag built from the first 8 bytes of a SHA-256 of data
func GenerateETag(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

// CheckETag reports whether the request's If-None-Match equals etag
func CheckETag(r *http.Request, etag string) bool {
	ifNoneMatch := r.Header.Get("If-None-Match")
	return ifNoneMatch != "" && ifNoneMatch == etag
}

// respondCached writes payload with an ETag derived from the snapshot version and the path.
// The snapshot never changes within a process, so a matching If-None-Match returns 304.
func (h *HTTPHandlerImpl) respondCached(w http.ResponseWriter, r *http.Request, payload any) {
	version, err := h.rateStore.DataVersion()
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	etag := GenerateETag([]byte(version + " " + r.URL.Path))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if CheckETag(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.RespondWithJSON(w, http.StatusOK, payload)
}

// respondStoreError logs a snapshot load failure and answers 500
func (h *HTTPHandlerImpl) respondStoreError(w http.ResponseWriter, err error) {
	logging.Error("Rates snapshot unavailable", "error", err)
	h.RespondWithError(w, http.StatusInternalServerError, "Rates data unavailable")
}

// countryCode extracts and validates the {code} URL parameter.
// On failure a 400 has already been written.
func (h *HTTPHandlerImpl) countryCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	code := chi.URLParam(r, "code")
	if err := h.validator.ValidateCountryCode(code); err != nil {
		logging.Warn("Unusual user input", "code", code)
		h.RespondWithError(w, http.StatusBadRequest, "Country code must be two letters")
		return "", false
	}
	return ratesparser.NormalizeCountryCode(code), true
}

// ServeAllRates returns every record in the snapshot
func (h *HTTPHandlerImpl) ServeAllRates(w http.ResponseWriter, r *http.Request) {
	version, err := h.rateStore.DataVersion()
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	rates, err := h.rateStore.GetAllRates()
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondCached(w, r, AllRatesResponse{
		Version: version,
		Count:   len(rates),
		Rates:   rates,
	})
}

// FindRate returns the record for one country
func (h *HTTPHandlerImpl) FindRate(w http.ResponseWriter, r *http.Request) {
	code, ok := h.countryCode(w, r)
	if !ok {
		return
	}

	record, found, err := h.rateStore.GetRate(code)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if !found {
		h.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("No VAT rates for %s", code))
		return
	}

	h.respondCached(w, r, RateResponse{CountryCode: code, RateRecord: record})
}

// FindStandardRate returns the standard rate for one country
func (h *HTTPHandlerImpl) FindStandardRate(w http.ResponseWriter, r *http.Request) {
	code, ok := h.countryCode(w, r)
	if !ok {
		return
	}

	standard, found, err := h.rateStore.GetStandardRate(code)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if !found {
		h.RespondWithError(w, http.StatusNotFound, fmt.Sprintf("No VAT rates for %s", code))
		return
	}

	h.respondCached(w, r, StandardRateResponse{CountryCode: code, Standard: standard})
}

// CheckMembership reports whether a country is covered by the snapshot.
// An unknown code is a valid answer, so this never returns 404.
func (h *HTTPHandlerImpl) CheckMembership(w http.ResponseWriter, r *http.Request) {
	code, ok := h.countryCode(w, r)
	if !ok {
		return
	}

	member, err := h.rateStore.IsEuMember(code)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondCached(w, r, MembershipResponse{CountryCode: code, Member: member})
}

// ServeVersion returns the snapshot version
func (h *HTTPHandlerImpl) ServeVersion(w http.ResponseWriter, r *http.Request) {
	version, err := h.rateStore.DataVersion()
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.respondCached(w, r, map[string]string{"version": version})
}

// HealthCheck reports snapshot availability and freshness
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.healthChecker.HealthCheck()

	response := HealthResponse{
		Status: status,
		Data:   details,
	}

	if startTime := h.rateStore.GetServerStartTime(); !startTime.IsZero() {
		response.Uptime = formatUptimeHuman(time.Since(startTime))
	}

	h.RespondWithJSON(w, httpStatus, response)
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}

// Package interfaces defines core abstractions for the EU VAT rates service
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/giygas/eu-vat-rates/ratesparser/entities"
)

// DataQualityReport provides a summary of non-fatal data quality findings
type DataQualityReport struct {
	CountryCount              int
	ReducedNotBelowStandard   []string // Codes with a reduced rate >= standard
	SuperReducedNotLowest     []string // Codes whose super-reduced rate is not below every reduced rate
	ParkingNotBelowStandard   []string // Codes with a parking rate >= standard
	UnsortedReduced           []string // Codes whose reduced rates are not in descending order
	CountriesWithoutReduced   []string
	CountriesWithSuperReduced []string
	CountriesWithParking      []string
	NonEuroCurrencyCountries  []string
	VersionAgeDays            int
}

// RateStore defines the read-only contract over the rates snapshot.
// The first call loads the snapshot; later calls never touch the resource again.
// A code that is not in the snapshot is reported with ok == false, never as an error.
type RateStore interface {
	// Lookup methods
	GetRate(countryCode string) (entities.RateRecord, bool, error)
	GetStandardRate(countryCode string) (float64, bool, error)
	GetAllRates() (map[string]entities.RateRecord, error)
	IsEuMember(countryCode string) (bool, error)
	DataVersion() (string, error)
	GetCountryCodes() ([]string, error)

	// Lifecycle methods
	IsLoaded() bool
	GetLoadedAt() time.Time
	GetServerStartTime() time.Time
}

// Parser defines the contract for reading and decoding the rates resource.
type Parser interface {
	// LoadDataset reads path from fsys and decodes it
	LoadDataset(fsys fs.FS, path string) (*entities.Dataset, error)
}

// Scheduler defines the contract for the warm-up load and freshness monitoring.
type Scheduler interface {
	// Lifecycle management
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	ServeAllRates(w http.ResponseWriter, r *http.Request)
	FindRate(w http.ResponseWriter, r *http.Request)
	FindStandardRate(w http.ResponseWriter, r *http.Request)
	CheckMembership(w http.ResponseWriter, r *http.Request)
	ServeVersion(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns the status, details and HTTP status code
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// DataAge returns how old the loaded snapshot is
	DataAge() (time.Duration, error)
}

// DataValidator defines the contract for data validation operations.
type DataValidator interface {
	// ValidateRecord checks a single country entry
	ValidateRecord(code string, record *entities.RateRecord) error

	// ValidateDataIntegrity performs comprehensive validation of a snapshot
	ValidateDataIntegrity(dataset *entities.Dataset) error

	// ReportDataQuality generates a report with all non-fatal findings
	ReportDataQuality(dataset *entities.Dataset) *DataQualityReport

	// ValidateCountryCode validates a country code supplied by a client
	ValidateCountryCode(input string) error
}

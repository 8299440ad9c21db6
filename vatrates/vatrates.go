package vatrates

import (
	"io/fs"

	"github.com/giygas/eu-vat-rates/data"
	"github.com/giygas/eu-vat-rates/interfaces"
	"github.com/giygas/eu-vat-rates/ratesparser"
	"github.com/giygas/eu-vat-rates/ratesparser/entities"
)

type (
	// RateRecord holds the VAT rates of one country
	RateRecord = entities.RateRecord
	// OptionalRate is a rate that may be absent
	OptionalRate = entities.OptionalRate
	// FileAccessError is returned when the snapshot cannot be read
	FileAccessError = ratesparser.FileAccessError
	// ParseError is returned when the snapshot is malformed
	ParseError = ratesparser.ParseError
	// Store is the lookup contract satisfied by the default store and NewStore
	Store = interfaces.RateStore
)

var defaultStore = data.NewDataContainer()

// Default returns the process-wide store backed by the bundled snapshot
func Default() Store {
	return defaultStore
}

// NewStore returns a store reading path from fsys on first use
func NewStore(fsys fs.FS, path string) Store {
	return data.NewDataContainerFromFS(fsys, path)
}

// GetRate returns the rates for countryCode, or ok == false if it is not in the snapshot
func GetRate(countryCode string) (RateRecord, bool, error) {
	return defaultStore.GetRate(countryCode)
}

// GetStandardRate returns the standard rate for countryCode
func GetStandardRate(countryCode string) (float64, bool, error) {
	return defaultStore.GetStandardRate(countryCode)
}

// GetAllRates returns a copy of every record keyed by uppercase country code
func GetAllRates() (map[string]RateRecord, error) {
	return defaultStore.GetAllRates()
}

// IsEuMember reports whether countryCode is in the snapshot (EU-27 plus GB)
func IsEuMember(countryCode string) (bool, error) {
	return defaultStore.IsEuMember(countryCode)
}

// DataVersion returns the ISO 8601 date of the snapshot
func DataVersion() (string, error) {
	return defaultStore.DataVersion()
}

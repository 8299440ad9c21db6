// Package validation provides data validation functionality for the EU VAT rates service.
package validation

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/giygas/eu-vat-rates/interfaces"
	"github.com/giygas/eu-vat-rates/ratesparser/entities"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Compile-time check to ensure DataValidatorImpl implements DataValidator
var _ interfaces.DataValidator = (*DataValidatorImpl)(nil)

var (
	ErrEmptyDataset        = errors.New("dataset has no rates")
	ErrInvalidCountryCode  = errors.New("invalid country code")
	ErrInvalidCurrency     = errors.New("invalid currency")
	ErrRateOutOfRange      = errors.New("rate out of range")
	ErrInvalidVersion      = errors.New("invalid dataset version")
	ErrInvalidRecordFields = errors.New("invalid record fields")
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidatorImpl {
	return &DataValidatorImpl{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// ValidateCountryCode validates a client-supplied code: exactly two ASCII letters, any case
func (v *DataValidatorImpl) ValidateCountryCode(input string) error {
	if len(input) != 2 {
		return fmt.Errorf("%w: must be 2 letters, got %d characters", ErrInvalidCountryCode, len(input))
	}

	for i := 0; i < len(input); i++ {
		c := input[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return fmt.Errorf("%w: must contain only letters", ErrInvalidCountryCode)
		}
	}

	return nil
}

// ValidateRecord checks a single country entry
func (v *DataValidatorImpl) ValidateRecord(code string, record *entities.RateRecord) error {
	if record == nil {
		return fmt.Errorf("record %s is nil", code)
	}

	// Struct tags: country required, ISO 4217 currency, rates within 0..100
	if err := v.validate.Struct(record); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w for %s: %s", ErrInvalidRecordFields, code, strings.Join(fields, ", "))
		}
		return fmt.Errorf("record %s: %w", code, err)
	}

	// Cross-check the currency against x/text so both tables agree
	if _, err := currency.ParseISO(record.Currency); err != nil {
		return fmt.Errorf("%w for %s: %q", ErrInvalidCurrency, code, record.Currency)
	}

	if value, ok := record.SuperReduced.Get(); ok && (value < 0 || value > 100) {
		return fmt.Errorf("%w for %s: super_reduced = %v", ErrRateOutOfRange, code, value)
	}
	if value, ok := record.Parking.Get(); ok && (value < 0 || value > 100) {
		return fmt.Errorf("%w for %s: parking = %v", ErrRateOutOfRange, code, value)
	}

	return nil
}

// ValidateDataIntegrity performs comprehensive validation of a snapshot
func (v *DataValidatorImpl) ValidateDataIntegrity(dataset *entities.Dataset) error {
	if dataset == nil {
		return fmt.Errorf("dataset is nil")
	}

	if _, err := dataset.VersionDate(); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, dataset.Version)
	}

	if len(dataset.Rates) == 0 {
		return ErrEmptyDataset
	}

	for _, code := range slices.Sorted(maps.Keys(dataset.Rates)) {
		if err := validateRegion(code); err != nil {
			return err
		}

		record := dataset.Rates[code]
		if err := v.ValidateRecord(code, &record); err != nil {
			return fmt.Errorf("invalid record %s: %w", code, err)
		}
	}

	return nil
}

// validateRegion checks that a dataset key is an uppercase ISO 3166-1 country
func validateRegion(code string) error {
	if code != strings.ToUpper(code) {
		return fmt.Errorf("%w: %q is not uppercase", ErrInvalidCountryCode, code)
	}

	region, err := language.ParseRegion(code)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidCountryCode, code, err)
	}

	if !region.IsCountry() || region.String() != code {
		return fmt.Errorf("%w: %q is not an ISO 3166-1 country", ErrInvalidCountryCode, code)
	}

	return nil
}

// descending orders rates highest first, the order used by the snapshot
func descending(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// ReportDataQuality generates a report with all non-fatal findings.
// Code lists are sorted.
func (v *DataValidatorImpl) ReportDataQuality(dataset *entities.Dataset) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		ReducedNotBelowStandard:   []string{},
		SuperReducedNotLowest:     []string{},
		ParkingNotBelowStandard:   []string{},
		UnsortedReduced:           []string{},
		CountriesWithoutReduced:   []string{},
		CountriesWithSuperReduced: []string{},
		CountriesWithParking:      []string{},
		NonEuroCurrencyCountries:  []string{},
	}

	if dataset == nil {
		return report
	}

	report.CountryCount = len(dataset.Rates)

	if versionDate, err := dataset.VersionDate(); err == nil {
		report.VersionAgeDays = int(v.now().Sub(versionDate).Hours() / 24)
	}

	for _, code := range slices.Sorted(maps.Keys(dataset.Rates)) {
		record := dataset.Rates[code]

		if record.Currency != "EUR" {
			report.NonEuroCurrencyCountries = append(report.NonEuroCurrencyCountries, code)
		}

		if len(record.Reduced) == 0 {
			report.CountriesWithoutReduced = append(report.CountriesWithoutReduced, code)
		}

		for _, rate := range record.Reduced {
			if rate >= record.Standard {
				report.ReducedNotBelowStandard = append(report.ReducedNotBelowStandard, code)
				break
			}
		}

		if !slices.IsSortedFunc(record.Reduced, descending) {
			report.UnsortedReduced = append(report.UnsortedReduced, code)
		}

		if superReduced, ok := record.SuperReduced.Get(); ok {
			report.CountriesWithSuperReduced = append(report.CountriesWithSuperReduced, code)
			if len(record.Reduced) > 0 && superReduced >= slices.Min(record.Reduced) {
				report.SuperReducedNotLowest = append(report.SuperReducedNotLowest, code)
			}
		}

		if parking, ok := record.Parking.Get(); ok {
			report.CountriesWithParking = append(report.CountriesWithParking, code)
			if parking >= record.Standard {
				report.ParkingNotBelowStandard = append(report.ParkingNotBelowStandard, code)
			}
		}
	}

	return report
}

// HasIssues reports whether a quality report contains any finding worth a warning
func HasIssues(report *interfaces.DataQualityReport) bool {
	if report == nil {
		return false
	}
	return len(report.ReducedNotBelowStandard) > 0 ||
		len(report.SuperReducedNotLowest) > 0 ||
		len(report.ParkingNotBelowStandard) > 0 ||
		len(report.UnsortedReduced) > 0
}

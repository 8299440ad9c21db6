// Package scheduler provides the warm-up load and freshness monitoring for the
// EU VAT rates service. The snapshot is immutable, so the scheduled job only
// reports on its age and never reloads it.
package scheduler

import (
	"fmt"
	"time"

	"github.com/giygas/eu-vat-rates/interfaces"
	"github.com/giygas/eu-vat-rates/logging"
	"github.com/giygas/eu-vat-rates/metrics"
	"github.com/giygas/eu-vat-rates/ratesparser/entities"
	"github.com/giygas/eu-vat-rates/validation"
	"github.com/go-co-op/gocron"
)

// FreshnessCheckTime is the local time of the daily freshness check
const FreshnessCheckTime = "06:00"

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler loads the snapshot at startup and monitors its age using dependency injection
type Scheduler struct {
	rateStore     interfaces.RateStore
	validator     interfaces.DataValidator
	healthChecker interfaces.HealthChecker
	staleAfter    time.Duration
	scheduler     *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(rateStore interfaces.RateStore, validator interfaces.DataValidator, healthChecker interfaces.HealthChecker, staleAfter time.Duration) *Scheduler {
	return &Scheduler{
		rateStore:     rateStore,
		validator:     validator,
		healthChecker: healthChecker,
		staleAfter:    staleAfter,
		scheduler:     gocron.NewScheduler(time.Local),
	}
}

// Start loads and validates the snapshot, then schedules the daily freshness check
func (s *Scheduler) Start() error {
	if err := s.warmUp(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		return fmt.Errorf("initial data load failed: %w", err)
	}

	s.checkFreshness()

	_, err := s.scheduler.Every(1).Day().At(FreshnessCheckTime).Do(s.checkFreshness)
	if err != nil {
		logging.Error("Failed to schedule freshness check", "error", err)
		return fmt.Errorf("failed to schedule freshness check: %w", err)
	}

	s.scheduler.StartAsync()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// warmUp forces the lazy load and logs the data quality report
func (s *Scheduler) warmUp() error {
	start := time.Now()

	version, err := s.rateStore.DataVersion()
	if err != nil {
		return err
	}

	rates, err := s.rateStore.GetAllRates()
	if err != nil {
		return err
	}

	dataset := &entities.Dataset{Version: version, Rates: rates}
	if err := s.validator.ValidateDataIntegrity(dataset); err != nil {
		return fmt.Errorf("rates snapshot failed validation: %w", err)
	}

	report := s.validator.ReportDataQuality(dataset)
	logQualityReport(report)

	logging.Info("Rates snapshot ready",
		"version", version,
		"countries", report.CountryCount,
		"non_euro", report.NonEuroCurrencyCountries,
		"with_parking", len(report.CountriesWithParking),
		"with_super_reduced", len(report.CountriesWithSuperReduced),
		"duration", time.Since(start).String(),
	)

	return nil
}

// logQualityReport warns about non-fatal findings and reports whether it did
func logQualityReport(report *interfaces.DataQualityReport) bool {
	if !validation.HasIssues(report) {
		return false
	}

	logging.Warn("Rates snapshot has data quality issues",
		"reduced_not_below_standard", report.ReducedNotBelowStandard,
		"super_reduced_not_lowest", report.SuperReducedNotLowest,
		"parking_not_below_standard", report.ParkingNotBelowStandard,
		"unsorted_reduced", report.UnsortedReduced,
	)
	return true
}

// checkFreshness publishes the snapshot age and warns once it is stale
func (s *Scheduler) checkFreshness() {
	age, err := s.healthChecker.DataAge()
	if err != nil {
		logging.Error("Failed to compute snapshot age", "error", err)
		return
	}

	days := age.Hours() / 24
	metrics.DatasetAgeDays.Set(days)

	if s.staleAfter > 0 && age > s.staleAfter {
		logging.Warn("Rates snapshot is stale, ship a newer data file",
			"age_days", int(days),
			"stale_after_days", int(s.staleAfter.Hours()/24),
		)
	}
}

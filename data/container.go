// Package data provides the process-wide store of EU VAT rates.
// The snapshot is loaded on first use and then served from memory; readers
// after the load take no lock.
package data

import (
	"io/fs"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/giygas/eu-vat-rates/interfaces"
	"github.com/giygas/eu-vat-rates/logging"
	"github.com/giygas/eu-vat-rates/metrics"
	"github.com/giygas/eu-vat-rates/ratesparser"
	"github.com/giygas/eu-vat-rates/ratesparser/entities"
)

// Compile-time check to ensure DataContainer implements RateStore
var _ interfaces.RateStore = (*DataContainer)(nil)

// DataContainer holds the rates snapshot behind an atomic pointer.
// The pointer moves from nil to a fully built dataset exactly once.
type DataContainer struct {
	dataset         atomic.Pointer[entities.Dataset]
	loadMu          sync.Mutex
	source          fs.FS
	path            string
	parser          interfaces.Parser
	loadedAt        atomic.Value // time.Time
	loadAttempts    atomic.Int64
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a container over the bundled snapshot
func NewDataContainer() *DataContainer {
	return NewDataContainerFromFS(BundleFS(), BundlePath)
}

// NewDataContainerFromFS creates a container reading path from source on first use
func NewDataContainerFromFS(source fs.FS, path string) *DataContainer {
	return NewDataContainerWithParser(source, path, ratesparser.NewRatesParser())
}

// NewDataContainerWithParser creates a container with an injected parser
func NewDataContainerWithParser(source fs.FS, path string, parser interfaces.Parser) *DataContainer {
	dc := &DataContainer{
		source: source,
		path:   path,
		parser: parser,
	}
	dc.loadedAt.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// ensureLoaded returns the snapshot, loading it on the first call.
// Concurrent first callers block on loadMu and share the single result.
// A failed load leaves the container empty and the error goes to the caller.
func (dc *DataContainer) ensureLoaded() (*entities.Dataset, error) {
	if ds := dc.dataset.Load(); ds != nil {
		return ds, nil
	}

	dc.loadMu.Lock()
	defer dc.loadMu.Unlock()

	// Another caller may have finished the load while we waited
	if ds := dc.dataset.Load(); ds != nil {
		return ds, nil
	}

	dc.loadAttempts.Add(1)
	start := time.Now()

	ds, err := dc.parser.LoadDataset(dc.source, dc.path)
	if err != nil {
		metrics.DatasetLoadsTotal.WithLabelValues("error").Inc()
		logging.Debug("Rates snapshot load failed", "path", dc.path, "error", err)
		return nil, err
	}

	dc.dataset.Store(ds)
	dc.loadedAt.Store(time.Now())
	metrics.DatasetLoadsTotal.WithLabelValues("success").Inc()
	metrics.DatasetCountries.Set(float64(len(ds.Rates)))

	// Debug: library callers have no logger configured and the service logs readiness itself
	logging.Debug("Rates snapshot loaded",
		"path", dc.path,
		"version", ds.Version,
		"countries", len(ds.Rates),
		"duration", time.Since(start).String(),
	)

	return ds, nil
}

// GetRate returns the record for countryCode, matched case-insensitively.
// ok is false when the code is not in the snapshot.
func (dc *DataContainer) GetRate(countryCode string) (entities.RateRecord, bool, error) {
	ds, err := dc.ensureLoaded()
	if err != nil {
		return entities.RateRecord{}, false, err
	}

	record, ok := ds.Rates[ratesparser.NormalizeCountryCode(countryCode)]
	metrics.ObserveLookup("get_rate", ok)
	if !ok {
		return entities.RateRecord{}, false, nil
	}

	return record.Clone(), true, nil
}

// GetStandardRate returns the standard rate for countryCode
func (dc *DataContainer) GetStandardRate(countryCode string) (float64, bool, error) {
	record, ok, err := dc.GetRate(countryCode)
	if err != nil || !ok {
		return 0, false, err
	}
	return record.Standard, true, nil
}

// GetAllRates returns every record keyed by uppercase code.
// The map and its records are copies; changing them does not affect the container.
func (dc *DataContainer) GetAllRates() (map[string]entities.RateRecord, error) {
	ds, err := dc.ensureLoaded()
	if err != nil {
		return nil, err
	}

	all := make(map[string]entities.RateRecord, len(ds.Rates))
	for code, record := range ds.Rates {
		all[code] = record.Clone()
	}
	return all, nil
}

// IsEuMember reports whether countryCode is in the snapshot.
// The snapshot covers EU-27 plus GB, so GB is a member here.
func (dc *DataContainer) IsEuMember(countryCode string) (bool, error) {
	ds, err := dc.ensureLoaded()
	if err != nil {
		return false, err
	}

	_, ok := ds.Rates[ratesparser.NormalizeCountryCode(countryCode)]
	metrics.ObserveLookup("is_eu_member", ok)
	return ok, nil
}

// DataVersion returns the snapshot version (ISO 8601 date)
func (dc *DataContainer) DataVersion() (string, error) {
	ds, err := dc.ensureLoaded()
	if err != nil {
		return "", err
	}
	return ds.Version, nil
}

// GetCountryCodes returns the codes in the snapshot, sorted
func (dc *DataContainer) GetCountryCodes() ([]string, error) {
	ds, err := dc.ensureLoaded()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(ds.Rates)), nil
}

// IsLoaded reports whether the snapshot has been loaded
func (dc *DataContainer) IsLoaded() bool {
	return dc.dataset.Load() != nil
}

// LoadAttempts returns how many times the resource has been read
func (dc *DataContainer) LoadAttempts() int64 {
	return dc.loadAttempts.Load()
}

// GetLoadedAt returns when the snapshot was loaded, zero if not loaded
func (dc *DataContainer) GetLoadedAt() time.Time {
	if v := dc.loadedAt.Load(); v != nil {
		if loadedAt, ok := v.(time.Time); ok {
			return loadedAt
		}
	}

	logging.Warn("Could not get the loaded at value")
	return time.Time{}
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

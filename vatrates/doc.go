// Package vatrates looks up EU VAT rates from a snapshot bundled with the
// module. It covers the 27 EU member states plus the United Kingdom, keyed
// by ISO 3166-1 alpha-2 code. Data comes from the European Commission TEDB
// (Taxes in Europe Database).
//
// The snapshot is read on the first call and kept for the life of the
// process. Lookups are case-insensitive and safe for concurrent use.
//
//	rate, ok, err := vatrates.GetRate("FI")
//	// rate.Country == "Finland", rate.Standard == 25.5
//
//	std, _, _ := vatrates.GetStandardRate("DE") // 19
//	member, _ := vatrates.IsEuMember("FR")      // true
//	version, _ := vatrates.DataVersion()        // "2026-02-25"
//
// IsEuMember reports presence in the snapshot, so it returns true for GB
// even though the United Kingdom is no longer an EU member state.
//
// A code that is not in the snapshot is not an error: ok is false. Errors
// are returned only when the snapshot cannot be read (*FileAccessError) or
// decoded (*ParseError).
//
// Importing this package registers the service's collectors
// (vat_rate_lookups_total, vat_dataset_loads_total and the HTTP series) on
// the Prometheus default registry. Load outcomes are logged at debug level
// through log/slog, so nothing is printed unless the caller enables debug
// logging.
package vatrates

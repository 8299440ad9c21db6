package entities

import "time"

// VersionLayout is the date format of Dataset.Version
const VersionLayout = "2006-01-02"

// Dataset is one immutable snapshot of the rates, keyed by uppercase
// ISO 3166-1 alpha-2 code.
type Dataset struct {
	Version string                `json:"version"`
	Rates   map[string]RateRecord `json:"rates"`
}

// VersionDate parses Version as a calendar date in UTC
func (d *Dataset) VersionDate() (time.Time, error) {
	return time.Parse(VersionLayout, d.Version)
}

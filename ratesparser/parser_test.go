package ratesparser

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestParseDataset(t *testing.T) {
	content := []byte(`{
	  "version": "2026-02-25",
	  "rates": {
	    "IE": { "country": "Ireland", "currency": "EUR", "standard": 23, "reduced": [13.5, 9], "super_reduced": 4.8, "parking": 13.5 },
	    "dk": { "country": "Denmark", "currency": "DKK", "standard": 25, "reduced": [], "super_reduced": null, "parking": null }
	  }
	}`)

	ds, err := ParseDataset("rates.json", content)
	if err != nil {
		t.Fatalf("ParseDataset failed: %v", err)
	}

	if ds.Version != "2026-02-25" {
		t.Errorf("Expected version 2026-02-25, got %s", ds.Version)
	}
	if len(ds.Rates) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(ds.Rates))
	}

	ie := ds.Rates["IE"]
	if v, ok := ie.SuperReduced.Get(); !ok || v != 4.8 {
		t.Errorf("Expected IE super-reduced 4.8, got %v (set=%v)", v, ok)
	}
	if v, ok := ie.Parking.Get(); !ok || v != 13.5 {
		t.Errorf("Expected IE parking 13.5, got %v (set=%v)", v, ok)
	}

	dk, ok := ds.Rates["DK"]
	if !ok {
		t.Fatal("Expected lowercase key dk to be normalized to DK")
	}
	if dk.Reduced == nil || len(dk.Reduced) != 0 {
		t.Errorf("Expected empty, non-nil reduced list for DK, got %#v", dk.Reduced)
	}
	if dk.SuperReduced.IsSet() || dk.Parking.IsSet() {
		t.Error("Expected DK optional rates to be absent")
	}
}

func TestParseDatasetOptionalFieldsMayBeOmitted(t *testing.T) {
	content := []byte(`{"version": "2026-02-25", "rates": {"DE": {"country": "Germany", "currency": "EUR", "standard": 19, "reduced": [7]}}}`)

	ds, err := ParseDataset("rates.json", content)
	if err != nil {
		t.Fatalf("ParseDataset failed: %v", err)
	}
	if ds.Rates["DE"].SuperReduced.IsSet() || ds.Rates["DE"].Parking.IsSet() {
		t.Error("Omitted optional rates should be absent")
	}
}

func TestParseDatasetErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
		target  error
	}{
		{"not json", `not json`, "", nil},
		{"empty", ``, "", nil},
		{"rates not an object", `{"version": "2026-02-25", "rates": []}`, "", nil},
		{"missing version", `{"rates": {}}`, "version", ErrMissingField},
		{"bad version", `{"version": "25/02/2026", "rates": {}}`, "version", ErrInvalidVersion},
		{"missing rates", `{"version": "2026-02-25"}`, "rates", ErrMissingField},
		{"null rates", `{"version": "2026-02-25", "rates": null}`, "rates", ErrMissingField},
		{"bad key", `{"version": "2026-02-25", "rates": {"FIN": {"country": "Finland", "currency": "EUR", "standard": 25.5, "reduced": []}}}`, "rates.FIN", ErrInvalidCountryCode},
		{"numeric key", `{"version": "2026-02-25", "rates": {"12": {"country": "X", "currency": "EUR", "standard": 1, "reduced": []}}}`, "rates.12", ErrInvalidCountryCode},
		{"missing country", `{"version": "2026-02-25", "rates": {"FI": {"currency": "EUR", "standard": 25.5, "reduced": []}}}`, "rates.FI.country", ErrMissingField},
		{"missing currency", `{"version": "2026-02-25", "rates": {"FI": {"country": "Finland", "standard": 25.5, "reduced": []}}}`, "rates.FI.currency", ErrMissingField},
		{"missing standard", `{"version": "2026-02-25", "rates": {"FI": {"country": "Finland", "currency": "EUR", "reduced": []}}}`, "rates.FI.standard", ErrMissingField},
		{"null standard", `{"version": "2026-02-25", "rates": {"FI": {"country": "Finland", "currency": "EUR", "standard": null, "reduced": []}}}`, "rates.FI.standard", ErrMissingField},
		{"missing reduced", `{"version": "2026-02-25", "rates": {"FI": {"country": "Finland", "currency": "EUR", "standard": 25.5}}}`, "rates.FI.reduced", ErrMissingField},
		{"string standard", `{"version": "2026-02-25", "rates": {"FI": {"country": "Finland", "currency": "EUR", "standard": "25.5", "reduced": []}}}`, "rates.FI", nil},
		{"string parking", `{"version": "2026-02-25", "rates": {"FI": {"country": "Finland", "currency": "EUR", "standard": 25.5, "reduced": [], "parking": "13"}}}`, "rates.FI", nil},
		{"negative standard", `{"version": "2026-02-25", "rates": {"FI": {"country": "Finland", "currency": "EUR", "standard": -1, "reduced": []}}}`, "rates.FI.standard", ErrNegativeRate},
		{"null reduced entry", `{"version": "2026-02-25", "rates": {"FI": {"country": "Finland", "currency": "EUR", "standard": 25.5, "reduced": [14, null]}}}`, "rates.FI.reduced[1]", ErrMissingField},
		{"negative reduced entry", `{"version": "2026-02-25", "rates": {"FI": {"country": "Finland", "currency": "EUR", "standard": 25.5, "reduced": [-14]}}}`, "rates.FI.reduced[0]", ErrNegativeRate},
		{"negative super reduced", `{"version": "2026-02-25", "rates": {"FR": {"country": "France", "currency": "EUR", "standard": 20, "reduced": [10], "super_reduced": -2.1}}}`, "rates.FR.super_reduced", ErrNegativeRate},
		{"negative parking", `{"version": "2026-02-25", "rates": {"LU": {"country": "Luxembourg", "currency": "EUR", "standard": 17, "reduced": [8], "parking": -14}}}`, "rates.LU.parking", ErrNegativeRate},
		{"trailing data", `{"version": "2026-02-25", "rates": {}} {}`, "", ErrTrailingData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDataset("rates.json", []byte(tt.content))

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected *ParseError, got %T: %v", err, err)
			}
			if pe.Path != "rates.json" {
				t.Errorf("Expected path rates.json, got %q", pe.Path)
			}
			if pe.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, pe.Field)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Expected error to wrap %v, got %v", tt.target, err)
			}
		})
	}
}

func TestParseDatasetDuplicateAfterNormalization(t *testing.T) {
	content := []byte(`{"version": "2026-02-25", "rates": {
	  "FI": {"country": "Finland", "currency": "EUR", "standard": 25.5, "reduced": []},
	  "fi": {"country": "Finland", "currency": "EUR", "standard": 24, "reduced": []}
	}}`)

	_, err := ParseDataset("rates.json", content)
	if !errors.Is(err, ErrDuplicateCountryCode) {
		t.Fatalf("Expected ErrDuplicateCountryCode, got %v", err)
	}
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(fstest.MapFS{}, "eu-vat-rates-data.json")

	var fae *FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("Expected *FileAccessError, got %T: %v", err, err)
	}
	if fae.Path != "eu-vat-rates-data.json" {
		t.Errorf("Expected path in error, got %q", fae.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist to be wrapped, got %v", err)
	}
}

func TestLoadDatasetNilFS(t *testing.T) {
	_, err := ReadDataFile(nil, "x.json")

	var fae *FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("Expected *FileAccessError, got %T: %v", err, err)
	}
}

func TestRatesParserImplementsParser(t *testing.T) {
	fsys := fstest.MapFS{"r.json": {Data: []byte(`{"version": "2026-02-25", "rates": {}}`)}}

	ds, err := NewRatesParser().LoadDataset(fsys, "r.json")
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if len(ds.Rates) != 0 {
		t.Errorf("Expected no records, got %d", len(ds.Rates))
	}
}

func TestNormalizeCountryCode(t *testing.T) {
	tests := map[string]string{"fi": "FI", "Fi": "FI", "FI": "FI", "": "", "gb": "GB"}
	for in, want := range tests {
		if got := NormalizeCountryCode(in); got != want {
			t.Errorf("NormalizeCountryCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	fae := &FileAccessError{Path: "a.json", Err: fs.ErrPermission}
	if fae.Error() != "eu-vat-rates: cannot read data file a.json: permission denied" {
		t.Errorf("Unexpected FileAccessError message: %s", fae.Error())
	}

	pe := &ParseError{Path: "a.json", Field: "rates.FI.standard", Err: ErrMissingField}
	if pe.Error() != "eu-vat-rates: cannot parse data file a.json: rates.FI.standard: missing required field" {
		t.Errorf("Unexpected ParseError message: %s", pe.Error())
	}
}

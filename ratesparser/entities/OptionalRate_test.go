package entities

import (
	"encoding/json"
	"testing"
)

func TestOptionalRateJSON(t *testing.T) {
	var rec RateRecord
	input := `{"country":"France","currency":"EUR","standard":20,"reduced":[10,5.5],"super_reduced":2.1,"parking":null}`
	if err := json.Unmarshal([]byte(input), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if v, ok := rec.SuperReduced.Get(); !ok || v != 2.1 {
		t.Errorf("Expected super-reduced 2.1, got %v (set=%v)", v, ok)
	}
	if rec.Parking.IsSet() {
		t.Error("Expected parking to be absent")
	}

	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != input {
		t.Errorf("Round trip mismatch:\n got %s\nwant %s", out, input)
	}
}

func TestOptionalRateHelpers(t *testing.T) {
	if NoRate().IsSet() {
		t.Error("NoRate should be absent")
	}
	if (OptionalRate{}) != NoRate() {
		t.Error("Zero value should equal NoRate")
	}
	if v, ok := SomeRate(0).Get(); !ok || v != 0 {
		t.Errorf("Get on a present zero rate = %v, %v, want 0, true", v, ok)
	}
	if NoRate().String() != "none" || SomeRate(5.5).String() != "5.5" {
		t.Errorf("Unexpected String output: %s, %s", NoRate(), SomeRate(5.5))
	}
}

func TestRateRecordHelpers(t *testing.T) {
	rec := RateRecord{Standard: 23, Reduced: []float64{13.5, 9}, SuperReduced: SomeRate(4.8)}

	clone := rec.Clone()
	clone.Reduced[0] = 1
	if rec.Reduced[0] != 13.5 {
		t.Error("Clone shares the reduced slice with the original")
	}

	empty := RateRecord{Standard: 25, Reduced: []float64{}}
	if c := empty.Clone(); c.Reduced == nil {
		t.Error("Clone turned an empty reduced list into nil")
	}
}

func TestDatasetVersionDate(t *testing.T) {
	ds := &Dataset{Version: "2026-02-25"}
	d, err := ds.VersionDate()
	if err != nil {
		t.Fatalf("VersionDate failed: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 2 || d.Day() != 25 {
		t.Errorf("Unexpected date %v", d)
	}

	if _, err := (&Dataset{Version: "yesterday"}).VersionDate(); err == nil {
		t.Error("Expected error for a non-date version")
	}
}

package entities

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// OptionalRate is a VAT percentage that a jurisdiction may or may not define.
// The zero value is an absent rate and encodes to JSON null.
type OptionalRate struct {
	value float64
	set   bool
}

// SomeRate returns a present rate
func SomeRate(v float64) OptionalRate {
	return OptionalRate{value: v, set: true}
}

// NoRate returns an absent rate
func NoRate() OptionalRate {
	return OptionalRate{}
}

// Get returns the rate and whether it is present
func (o OptionalRate) Get() (float64, bool) {
	return o.value, o.set
}

// IsSet reports whether the rate is present
func (o OptionalRate) IsSet() bool {
	return o.set
}

func (o OptionalRate) String() string {
	if !o.set {
		return "none"
	}
	return strconv.FormatFloat(o.value, 'f', -1, 64)
}

// MarshalJSON encodes an absent rate as null
func (o OptionalRate) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON accepts a number or null
func (o *OptionalRate) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = OptionalRate{}
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = SomeRate(v)
	return nil
}

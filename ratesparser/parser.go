package ratesparser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/giygas/eu-vat-rates/interfaces"
	"github.com/giygas/eu-vat-rates/ratesparser/entities"
)

// Compile-time check to ensure RatesParser implements Parser interface
var _ interfaces.Parser = (*RatesParser)(nil)

// RatesParser implements the Parser interface
type RatesParser struct{}

// NewRatesParser creates a new RatesParser instance
func NewRatesParser() *RatesParser {
	return &RatesParser{}
}

// LoadDataset implements the Parser interface
func (p *RatesParser) LoadDataset(fsys fs.FS, path string) (*entities.Dataset, error) {
	return LoadDataset(fsys, path)
}

// rawDataset mirrors the document with pointers so missing fields can be told apart from zero values
type rawDataset struct {
	Version *string                    `json:"version"`
	Rates   map[string]json.RawMessage `json:"rates"`
}

type rawRecord struct {
	Country      *string               `json:"country"`
	Currency     *string               `json:"currency"`
	Standard     *float64              `json:"standard"`
	Reduced      *[]*float64           `json:"reduced"`
	SuperReduced entities.OptionalRate `json:"super_reduced"`
	Parking      entities.OptionalRate `json:"parking"`
}

// NormalizeCountryCode returns the lookup key for a caller-supplied code
func NormalizeCountryCode(code string) string {
	return strings.ToUpper(code)
}

// LoadDataset reads and parses the resource at path
func LoadDataset(fsys fs.FS, path string) (*entities.Dataset, error) {
	content, err := ReadDataFile(fsys, path)
	if err != nil {
		return nil, err
	}
	return ParseDataset(path, content)
}

// ParseDataset decodes a rates document. Keys are normalized to uppercase.
// Every failure is reported as a *ParseError carrying path.
func ParseDataset(path string, content []byte) (*entities.Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(content))

	var raw rawDataset
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: path, Err: ErrTrailingData}
	}

	if raw.Version == nil {
		return nil, &ParseError{Path: path, Field: "version", Err: ErrMissingField}
	}
	if _, err := time.Parse(entities.VersionLayout, *raw.Version); err != nil {
		return nil, &ParseError{Path: path, Field: "version", Err: fmt.Errorf("%w: %q", ErrInvalidVersion, *raw.Version)}
	}

	if raw.Rates == nil {
		return nil, &ParseError{Path: path, Field: "rates", Err: ErrMissingField}
	}

	rates := make(map[string]entities.RateRecord, len(raw.Rates))
	for key, body := range raw.Rates {
		code := NormalizeCountryCode(key)
		if !isAlpha2(code) {
			return nil, &ParseError{Path: path, Field: "rates." + key, Err: ErrInvalidCountryCode}
		}
		if _, exists := rates[code]; exists {
			return nil, &ParseError{Path: path, Field: "rates." + key, Err: ErrDuplicateCountryCode}
		}

		record, err := parseRecord(body)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Path = path
				pe.Field = "rates." + key + pe.Field
				return nil, pe
			}
			return nil, &ParseError{Path: path, Field: "rates." + key, Err: err}
		}

		rates[code] = record
	}

	return &entities.Dataset{
		Version: *raw.Version,
		Rates:   rates,
	}, nil
}

// parseRecord decodes one country entry; Field on a returned *ParseError is relative (".standard")
func parseRecord(body json.RawMessage) (entities.RateRecord, error) {
	var raw rawRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		return entities.RateRecord{}, err
	}

	switch {
	case raw.Country == nil:
		return entities.RateRecord{}, &ParseError{Field: ".country", Err: ErrMissingField}
	case raw.Currency == nil:
		return entities.RateRecord{}, &ParseError{Field: ".currency", Err: ErrMissingField}
	case raw.Standard == nil:
		return entities.RateRecord{}, &ParseError{Field: ".standard", Err: ErrMissingField}
	case raw.Reduced == nil:
		return entities.RateRecord{}, &ParseError{Field: ".reduced", Err: ErrMissingField}
	}

	if *raw.Standard < 0 {
		return entities.RateRecord{}, &ParseError{Field: ".standard", Err: fmt.Errorf("%w: %v", ErrNegativeRate, *raw.Standard)}
	}

	reduced := make([]float64, 0, len(*raw.Reduced))
	for i, rate := range *raw.Reduced {
		field := fmt.Sprintf(".reduced[%d]", i)
		if rate == nil {
			return entities.RateRecord{}, &ParseError{Field: field, Err: ErrMissingField}
		}
		if *rate < 0 {
			return entities.RateRecord{}, &ParseError{Field: field, Err: fmt.Errorf("%w: %v", ErrNegativeRate, *rate)}
		}
		reduced = append(reduced, *rate)
	}

	if v, ok := raw.SuperReduced.Get(); ok && v < 0 {
		return entities.RateRecord{}, &ParseError{Field: ".super_reduced", Err: fmt.Errorf("%w: %v", ErrNegativeRate, v)}
	}
	if v, ok := raw.Parking.Get(); ok && v < 0 {
		return entities.RateRecord{}, &ParseError{Field: ".parking", Err: fmt.Errorf("%w: %v", ErrNegativeRate, v)}
	}

	return entities.RateRecord{
		Country:      *raw.Country,
		Currency:     *raw.Currency,
		Standard:     *raw.Standard,
		Reduced:      reduced,
		SuperReduced: raw.SuperReduced,
		Parking:      raw.Parking,
	}, nil
}

func isAlpha2(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

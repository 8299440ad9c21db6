package entities

// RateRecord holds the VAT rates of one country.
// Reduced rates keep the order of the snapshot (highest first in the bundled data).
type RateRecord struct {
	Country      string       `json:"country" validate:"required"`
	Currency     string       `json:"currency" validate:"required,len=3,iso4217"`
	Standard     float64      `json:"standard" validate:"gte=0,lte=100"`
	Reduced      []float64    `json:"reduced" validate:"dive,gte=0,lte=100"`
	SuperReduced OptionalRate `json:"super_reduced"`
	Parking      OptionalRate `json:"parking"`
}

// Clone returns a copy that shares no memory with r
func (r RateRecord) Clone() RateRecord {
	c := r
	if r.Reduced != nil {
		c.Reduced = make([]float64, len(r.Reduced))
		copy(c.Reduced, r.Reduced)
	}
	return c
}

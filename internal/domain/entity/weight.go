package entity

// WeightEntry is one body-weight measurement per calendar date.
// Entries are never merged across dates.
type WeightEntry struct {
	ID       uint
	Date     string // yyyy-mm-dd, unique.
	WeightKg float64
	Note     string
}

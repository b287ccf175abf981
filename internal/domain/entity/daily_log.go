package entity

// DailyLog aggregates one calendar date. The date string (yyyy-mm-dd) is
// the natural unique key. Created lazily on the first entry or water
// addition for a date; never explicitly deleted.
//
// TotalPointsUsed is a derived cache: it must always equal the sum of
// points of all MealEntries referencing this log and is recomputed on
// every entry mutation.
type DailyLog struct {
	ID               uint
	Date             string
	TotalPointsUsed  float64
	WeeklyPointsUsed float64
	WaterMl          int
}

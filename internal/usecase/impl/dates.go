package impl

import (
	"time"

	"github.com/pkg/errors"
)

// Calendar dates are plain yyyy-mm-dd strings throughout; days have no
// timezone of their own.
const dateLayout = "2006-01-02"

func parseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid date %q", date)
	}

	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7

	return t.AddDate(0, 0, -offset)
}

package expense

import "time"

const DayLayout = "2006-01-02"

// Day is a calendar day in YYYY-MM-DD form. Days order lexically.
type Day string

func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

func (d Day) Time() (time.Time, error) {
	return time.Parse(DayLayout, string(d))
}

func (d Day) AddDays(n int) Day {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return DayOf(t.AddDate(0, 0, n))
}

// Within reports whether d lies in [from, to].
func (d Day) Within(from, to Day) bool {
	return d >= from && d <= to
}

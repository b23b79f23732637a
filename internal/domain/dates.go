package domain

import "time"

// RecordDateLayout is the storage format for record dates, e.g. "07.Aug.2025".
const RecordDateLayout = "02.Jan.2006"

// Record dates are interpreted in the mosque's local timezone.
var recordLocation = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		return time.UTC
	}
	return loc
}()

// RecordLocation returns the timezone record dates are interpreted in.
func RecordLocation() *time.Location {
	return recordLocation
}

// ParseRecordDate strictly parses a stored record date string.
func ParseRecordDate(s string) (time.Time, error) {
	return time.ParseInLocation(RecordDateLayout, s, recordLocation)
}

// RecordDateParts formats t as a record date and derives the month name and
// year from the same instant, so the three stored fields cannot drift apart.
func RecordDateParts(t time.Time) (date, month, year string) {
	t = t.In(recordLocation)
	return t.Format(RecordDateLayout), t.Format("January"), t.Format("2006")
}

// RecordDateOrEpoch parses a stored record date, falling back to the Unix
// epoch when the string does not match the layout. The boolean reports
// whether the string parsed; callers treat false as a data anomaly.
func RecordDateOrEpoch(s string) (time.Time, bool) {
	t, err := ParseRecordDate(s)
	if err != nil {
		return time.Unix(0, 0), false
	}
	return t, true
}

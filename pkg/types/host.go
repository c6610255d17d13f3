package types

import "time"

// Go host types for kinds that share a wire representation with another kind.
// Each kind accepts exactly one Go type, so a bare value always infers a single kind.

// YSON is YSON in a textual or binary representation.
type YSON []byte

// JSONText is a JSON document carried as text.
type JSONText string

// JSONDocumentText is JSON stored in the indexed binary representation.
type JSONDocumentText string

// DatetimeValue is an instant with second precision.
type DatetimeValue time.Time

// TzDateValue is a date carrying a time zone label.
type TzDateValue time.Time

// TzDatetimeValue is a date/time carrying a time zone label, second precision.
type TzDatetimeValue time.Time

// TzTimestampValue is a date/time carrying a time zone label, microsecond precision.
type TzTimestampValue time.Time

// DateValue is a calendar date without a time zone.
type DateValue struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) DateValue {
	y, m, d := t.Date()
	return DateValue{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the date.
func (d DateValue) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d DateValue) String() string {
	return d.Time().Format("2006-01-02")
}

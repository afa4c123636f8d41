package format

import (
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// layouts used in exported documents
	DateTimeLayout   = "02/01/2006 15:04"
	DateLayout       = "02/01/2006"
	FileDateLayout   = "02-01-2006"
	ExportedAtLayout = "02/01/2006 at 15:04"

	// layouts used in on-screen lists
	ListDateTimeLayout = "02 January at 15:04"
	LongDateLayout     = "02 January 2006"
)

func DateTime(ts time.Time) string {
	return ts.Format(DateTimeLayout)
}

func Date(ts time.Time) string {
	return ts.Format(DateLayout)
}

// FileDate is the date stamp embedded in exported file names.
func FileDate(ts time.Time) string {
	return ts.Format(FileDateLayout)
}

func ExportedAt(ts time.Time) string {
	return "Exported on " + ts.Format(ExportedAtLayout)
}

func ListDateTime(ts time.Time) string {
	return ts.Format(ListDateTimeLayout)
}

func LongDate(ts time.Time) string {
	return ts.Format(LongDateLayout)
}

// Capitalize upper-cases the first letter of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

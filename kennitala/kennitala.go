// Package kennitala validates, parses, formats, and generates Icelandic
// national identification numbers (kennitala).
//
// A kennitala is 10 digits, displayed as DDMMYY-NNNX:
//   - digits 1-2: day of birth (individuals) or day+40 (companies and
//     other legal entities, giving 41-71)
//   - digits 3-4: month
//   - digits 5-6: two-digit year
//   - digits 7-8: sequence digits, nominally 20-99; the official synthetic
//     dataset marks its records with 14 or 15 here
//   - digit 9: Modulus 11 check digit; from 18 Feb 2026 newly issued IDs
//     are no longer required to satisfy the formula
//   - digit 10: century indicator (8=1800s, 9=1900s, 0=2000s)
//
// Kerfiskennitala (system IDs for non-residents) carry no structure this
// package knows about and are treated as opaque strings by callers.
//
// All functions are pure and safe for concurrent use.
package kennitala

import (
	"fmt"
	"strings"
	"time"
)

// Kennitala is a normalized kennitala: exactly 10 decimal digits, no
// separator. Obtain one via Normalize.
type Kennitala string

// EntityType classifies who a kennitala was issued to, derived from the
// day field alone.
type EntityType int

const (
	// Individual covers day values 01-31.
	Individual EntityType = iota
	// Company covers day values 41-71 (day + 40 encoding), issued to
	// companies and other legal entities.
	Company
)

// String returns "individual" or "company".
func (e EntityType) String() string {
	if e == Company {
		return "company"
	}
	return "individual"
}

// Parsed is the structured form of a valid kennitala. It is constructed
// by Parse and never mutated.
type Parsed struct {
	Digits           Kennitala
	Formatted        string
	BirthDate        time.Time
	EntityType       EntityType
	CenturyIndicator int
}

// Normalize strips display formatting from value and returns the 10-digit
// form. A single hyphen separator and surrounding whitespace are permitted;
// any other character, or a digit count other than 10, reports ErrFormat.
func Normalize(value string) (Kennitala, error) {
	s := strings.TrimSpace(value)
	var b [10]byte
	n := 0
	hyphens := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			if n == len(b) {
				return "", fmt.Errorf("%w: more than 10 digits", ErrFormat)
			}
			b[n] = c
			n++
		case c == '-':
			hyphens++
			if hyphens > 1 {
				return "", fmt.Errorf("%w: multiple separators", ErrFormat)
			}
		default:
			return "", fmt.Errorf("%w: unexpected character %q", ErrFormat, c)
		}
	}
	if n != len(b) {
		return "", fmt.Errorf("%w: expected 10 digits, got %d", ErrFormat, n)
	}
	return Kennitala(b[:]), nil
}

// Format returns value as DDMMYY-NNNX. It is a formatter, not a validator:
// any input that normalizes to 10 digits is accepted regardless of
// structural validity.
func Format(value string) (string, error) {
	digits, err := Normalize(value)
	if err != nil {
		return "", err
	}
	return digits.Formatted(), nil
}

// String returns the digits-only form.
func (k Kennitala) String() string { return string(k) }

// Formatted returns the DDMMYY-NNNX display form. The receiver must be a
// normalized 10-digit value.
func (k Kennitala) Formatted() string {
	return string(k[:6]) + "-" + string(k[6:])
}

// fields holds the decoded numeric fields of a normalized kennitala.
type fields struct {
	day     int // raw day digits, company offset not yet removed
	month   int
	year2   int
	seq     int
	check   int
	century int
}

// splitFields slices a normalized 10-digit string into its fields. It
// performs no range checking.
func splitFields(k Kennitala) fields {
	d := func(i int) int { return int(k[i] - '0') }
	return fields{
		day:     d(0)*10 + d(1),
		month:   d(2)*10 + d(3),
		year2:   d(4)*10 + d(5),
		seq:     d(6)*10 + d(7),
		check:   d(8),
		century: d(9),
	}
}

// checkStructure enforces the field ranges that hold for every kennitala
// regardless of checksum policy: day in [1,31] or [41,71], month in
// [1,12], century indicator in {8,9,0}.
func (f fields) checkStructure() error {
	dayOK := (f.day >= 1 && f.day <= 31) || (f.day >= 41 && f.day <= 71)
	if !dayOK {
		return fmt.Errorf("%w: day %02d", ErrStructure, f.day)
	}
	if f.month < 1 || f.month > 12 {
		return fmt.Errorf("%w: month %02d", ErrStructure, f.month)
	}
	if centuryBase(f.century) == 0 {
		return fmt.Errorf("%w: century indicator %d", ErrStructure, f.century)
	}
	return nil
}

// entityType derives the entity class from the raw day field. Only
// meaningful after checkStructure has passed.
func (f fields) entityType() EntityType {
	if f.day >= 41 {
		return Company
	}
	return Individual
}

// centuryBase maps the century indicator to its base year, or 0 for an
// invalid indicator.
func centuryBase(indicator int) int {
	switch indicator {
	case 8:
		return 1800
	case 9:
		return 1900
	case 0:
		return 2000
	}
	return 0
}

// centuryIndicator is the inverse of centuryBase for years 1800-2099.
func centuryIndicator(year int) (int, bool) {
	switch {
	case year >= 1800 && year <= 1899:
		return 8, true
	case year >= 1900 && year <= 1999:
		return 9, true
	case year >= 2000 && year <= 2099:
		return 0, true
	}
	return 0, false
}

// birthDate resolves the calendar date encoded in f, removing the company
// day offset. Reports ErrDate when the fields name an impossible Gregorian
// date, e.g. 31 April or 29 Feb in a non-leap year.
func (f fields) birthDate() (time.Time, error) {
	day := f.day
	if day >= 41 {
		day -= 40
	}
	year := centuryBase(f.century) + f.year2
	t := time.Date(year, time.Month(f.month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31 April becomes 1 May), so an exact
	// round-trip is the real-date check.
	if t.Year() != year || t.Month() != time.Month(f.month) || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrDate, year, f.month, day)
	}
	return t, nil
}

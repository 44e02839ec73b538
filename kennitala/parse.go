// Package kennitala parse.go contains the validation and parse API
package kennitala

import (
	"fmt"
	"time"
)

// Parse validates value through the full pipeline (format, structure,
// date, checksum) and returns its structured form. The error identifies
// the failing stage: ErrFormat, ErrStructure, ErrDate, or ErrChecksum.
func Parse(value string) (Parsed, error) {
	return parse(value, true)
}

// ParseRelaxed is Parse without the checksum stage. Structure and date
// checks still apply; this is the mode for IDs issued after the Feb 2026
// policy change.
func ParseRelaxed(value string) (Parsed, error) {
	return parse(value, false)
}

func parse(value string, enforceChecksum bool) (Parsed, error) {
	digits, err := Normalize(value)
	if err != nil {
		return Parsed{}, err
	}
	f := splitFields(digits)
	if err := f.checkStructure(); err != nil {
		return Parsed{}, err
	}
	birth, err := f.birthDate()
	if err != nil {
		return Parsed{}, err
	}
	if enforceChecksum && !verifyCheckDigit(digits) {
		return Parsed{}, fmt.Errorf("%w: %s", ErrChecksum, digits.Formatted())
	}
	return Parsed{
		Digits:           digits,
		Formatted:        digits.Formatted(),
		BirthDate:        birth,
		EntityType:       f.entityType(),
		CenturyIndicator: f.century,
	}, nil
}

// IsValid reports whether value is a valid kennitala under strict
// (checksum-enforced) policy. It never panics or errors; any defect
// collapses to false.
func IsValid(value string) bool {
	_, err := parse(value, true)
	return err == nil
}

// IsValidRelaxed reports whether value is structurally valid with a real
// calendar date, ignoring the check digit.
func IsValidRelaxed(value string) bool {
	_, err := parse(value, false)
	return err == nil
}

// BirthDate returns the birth (or company registration) date encoded in
// value, under strict checksum policy.
func BirthDate(value string) (time.Time, error) {
	p, err := parse(value, true)
	if err != nil {
		return time.Time{}, err
	}
	return p.BirthDate, nil
}

// BirthDateRelaxed is BirthDate without checksum enforcement.
func BirthDateRelaxed(value string) (time.Time, error) {
	p, err := parse(value, false)
	if err != nil {
		return time.Time{}, err
	}
	return p.BirthDate, nil
}

// IsCompany reports whether value carries the company day encoding
// (41-71). The check is structural only: entity class stays derivable
// from checksum-noncompliant IDs, so no checksum or date validation is
// involved and malformed input reports false rather than an error.
func IsCompany(value string) bool {
	digits, err := Normalize(value)
	if err != nil {
		return false
	}
	return digits.Company()
}

// IsPersonal reports whether value is well-formed and not
// company-encoded.
func IsPersonal(value string) bool {
	digits, err := Normalize(value)
	if err != nil {
		return false
	}
	return digits.Personal()
}

// Company reports whether the day field uses the +40 company encoding.
func (k Kennitala) Company() bool {
	day := int(k[0]-'0')*10 + int(k[1]-'0')
	return day >= 41 && day <= 71
}

// Personal is the complement of Company.
func (k Kennitala) Personal() bool { return !k.Company() }

// IsDatasetID reports whether value carries the official synthetic-data
// marker: sequence digits (positions 7-8) equal to 14 or 15, the
// convention of the Þjóðskrá gervigögn dataset. Purely structural; it
// flags known test data and must not feed trust decisions.
func IsDatasetID(value string) bool {
	digits, err := Normalize(value)
	if err != nil {
		return false
	}
	return digits.DatasetID()
}

// DatasetID reports whether the sequence digits are the synthetic-data
// marker 14 or 15.
func (k Kennitala) DatasetID() bool {
	seq := string(k[6:8])
	return seq == "14" || seq == "15"
}

// Valid reports whether k passes strict validation.
func (k Kennitala) Valid() bool { return IsValid(string(k)) }

// ValidRelaxed reports whether k passes relaxed validation.
func (k Kennitala) ValidRelaxed() bool { return IsValidRelaxed(string(k)) }

// maskRune replaces hidden digits in masked output.
const maskRune = '*'

// Mask returns value with all but the last four digits replaced by '*',
// keeping the hyphen in its display position: "******-3389". Masking is
// for redaction, not validation, so any 10-digit input is accepted.
func Mask(value string) (string, error) {
	return MaskTail(value, 4)
}

// MaskTail is Mask with an explicit number of trailing digits left
// visible. visibleTail is clamped to [0,10].
func MaskTail(value string, visibleTail int) (string, error) {
	digits, err := Normalize(value)
	if err != nil {
		return "", err
	}
	if visibleTail < 0 {
		visibleTail = 0
	}
	if visibleTail > len(digits) {
		visibleTail = len(digits)
	}
	b := []byte(digits)
	for i := 0; i < len(b)-visibleTail; i++ {
		b[i] = maskRune
	}
	return string(b[:6]) + "-" + string(b[6:]), nil
}

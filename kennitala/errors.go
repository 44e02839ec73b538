// Package kennitala errors.go contains sentinel errors for the validation pipeline
package kennitala

import "errors"

// Sentinel errors, one per pipeline stage. Parse wraps these with detail;
// callers match with errors.Is.
var (
	// ErrFormat means the input did not normalize to exactly 10 digits.
	ErrFormat = errors.New("invalid kennitala format")
	// ErrStructure means a decoded field is outside its valid range
	// (day, month, or century indicator).
	ErrStructure = errors.New("invalid kennitala structure")
	// ErrDate means the decoded fields do not form a real calendar date.
	ErrDate = errors.New("invalid kennitala date")
	// ErrChecksum means digit 9 fails Modulus 11 recomputation. Only
	// reported by strict validation; IDs issued after the Feb 2026 policy
	// change may carry a check digit that does not satisfy the formula.
	ErrChecksum = errors.New("invalid kennitala checksum")
	// ErrGenerationExhausted means no sequence in [20,99] yields a valid
	// check digit for the requested date. Practically unreachable.
	ErrGenerationExhausted = errors.New("kennitala generation exhausted sequence range")
)

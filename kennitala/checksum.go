// Package kennitala checksum.go contains the Modulus 11 check digit engine
package kennitala

// checksumWeights applies positionally to digits 1-8.
var checksumWeights = [8]int{3, 2, 7, 6, 5, 4, 3, 2}

// computeCheckDigit returns the Modulus 11 check digit for the first eight
// digits of k. ok is false for the degenerate case: when the intermediate
// result is 10, no digit satisfies the formula and the combination cannot
// carry a conforming checksum.
func computeCheckDigit(k Kennitala) (digit int, ok bool) {
	sum := 0
	for i, w := range checksumWeights {
		sum += int(k[i]-'0') * w
	}
	check := 11 - sum%11
	switch check {
	case 11:
		return 0, true
	case 10:
		return 0, false
	}
	return check, true
}

// verifyCheckDigit reports whether digit 9 of k matches the Modulus 11
// recomputation. The degenerate case fails unconditionally.
func verifyCheckDigit(k Kennitala) bool {
	want, ok := computeCheckDigit(k)
	if !ok {
		return false
	}
	return int(k[8]-'0') == want
}

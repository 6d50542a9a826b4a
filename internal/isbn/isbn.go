// Package isbn validates ISBN-10 and ISBN-13 identifiers.
package isbn

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed indicates the candidate is not shaped like an ISBN at all:
// after stripping separators it is neither 10 characters (last may be X)
// nor 13 digits.
var ErrMalformed = errors.New("improperly formatted ISBN")

// ChecksumError indicates a well-shaped ISBN whose final check digit does
// not match the payload, i.e. a likely transcription error.
type ChecksumError struct {
	Candidate string // The stripped candidate
	Want      byte   // Check digit implied by the payload
	Got       byte   // Check digit actually present
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("ISBN checksum mismatch for %q: payload implies %c, got %c",
		e.Candidate, e.Want, e.Got)
}

// Validate checks raw against the ISBN-10/13 format and checksum rules.
// On success it returns raw unchanged, preserving the caller's hyphenation.
// Failures are ErrMalformed or a *ChecksumError.
func Validate(raw string) (string, error) {
	stripped := strip(raw)
	switch len(stripped) {
	case 13:
		if strings.ContainsRune(stripped, 'X') {
			return "", ErrMalformed
		}
		if err := check13(stripped); err != nil {
			return "", err
		}
	case 10:
		// X is only legal as the final check character.
		if strings.ContainsRune(stripped[:9], 'X') {
			return "", ErrMalformed
		}
		if err := check10(stripped); err != nil {
			return "", err
		}
	default:
		return "", ErrMalformed
	}
	return raw, nil
}

// strip removes everything except digits and X, uppercasing as it goes.
func strip(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= '0' && r <= '9') || r == 'X' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// check13 verifies the ISBN-13 checksum: weights alternate 1,3 over the
// first 12 digits and the check digit is (10 - sum mod 10) mod 10.
func check13(isbn string) error {
	sum := 0
	for i := 0; i < 12; i++ {
		weight := 1
		if i%2 == 1 {
			weight = 3
		}
		sum += int(isbn[i]-'0') * weight
	}
	want := byte('0' + (10-sum%10)%10)
	if want != isbn[12] {
		return &ChecksumError{Candidate: isbn, Want: want, Got: isbn[12]}
	}
	return nil
}

// check10 verifies the ISBN-10 checksum: weights 10..2 over the first 9
// digits, check digit 11 - sum mod 11 with 10 written as X.
func check10(isbn string) error {
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(isbn[i]-'0') * (10 - i)
	}
	var want byte
	switch rem := (11 - sum%11) % 11; rem {
	case 10:
		want = 'X'
	default:
		want = byte('0' + rem)
	}
	if want != isbn[9] {
		return &ChecksumError{Candidate: isbn, Want: want, Got: isbn[9]}
	}
	return nil
}

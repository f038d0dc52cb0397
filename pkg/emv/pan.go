package emv

import (
	"fmt"
	"strings"

	"github.com/tapscan/emv-pan/pkg/bits"
	"github.com/tapscan/emv-pan/pkg/tlv"
)

// Digits is a decoded primary account number, one element per digit with
// values 0 through 9.
type Digits []byte

// String renders the digits as a plain decimal string.
func (d Digits) String() string {
	buf := make([]byte, len(d))
	for i, digit := range d {
		buf[i] = '0' + digit
	}
	return string(buf)
}

// Masked renders the digits with the middle hidden, keeping the issuer
// prefix and the last four digits. Sequences too short to split that way
// are masked entirely.
func (d Digits) Masked() string {
	if len(d) < 13 {
		return strings.Repeat("*", len(d))
	}
	var sb strings.Builder
	for i, digit := range d {
		if i < 6 || i >= len(d)-4 {
			sb.WriteByte('0' + digit)
		} else {
			sb.WriteByte('*')
		}
	}
	return sb.String()
}

// parseNibbles collects 4-bit digits from data, high nibble first, until it
// meets the terminator nibble. The byte holding the terminator does not
// count as consumed. Fewer than 3 or more than 10 consumed bytes rejects
// the whole sequence.
func parseNibbles(data []byte, terminator byte) Digits {
	var result Digits
	pos := 0
	for pos < len(data) {
		hi := bits.GetRange(data[pos], 8, 5)
		if hi == terminator {
			break
		}
		result = append(result, hi)

		lo := bits.GetRange(data[pos], 4, 1)
		if lo == terminator {
			break
		}
		result = append(result, lo)
		pos++
	}
	if pos > 10 || pos < 3 {
		return nil
	}
	return result
}

// ParseTrack2 decodes the PAN from track 2 equivalent data (tag 57), BCD
// digits ended by the 0xD field separator.
func ParseTrack2(data []byte) (Digits, error) {
	digits := parseNibbles(data, 0x0D)
	if digits == nil {
		return nil, fmt.Errorf("%w: track 2 %s", ErrDecodeRejected, tlv.Pretty(data))
	}
	return digits, nil
}

// ParsePAN decodes a plain application PAN (tag 5A), BCD digits padded
// with 0xF nibbles.
func ParsePAN(data []byte) (Digits, error) {
	digits := parseNibbles(data, 0x0F)
	if digits == nil {
		return nil, fmt.Errorf("%w: pan %s", ErrDecodeRejected, tlv.Pretty(data))
	}
	return digits, nil
}

// ParseTrack1 decodes the PAN from track 1 data (tag 56): the ASCII format
// code 'B', then decimal digits up to the '^' field separator. A separator
// right after the format code yields an empty result.
func ParseTrack1(data []byte) (Digits, error) {
	pos := 0
	if len(data) == 0 || data[pos] != 'B' {
		return nil, fmt.Errorf("%w: track 1 format %s", ErrDecodeRejected, tlv.Pretty(data))
	}
	pos++

	var result Digits
	for pos < len(data) {
		c := data[pos]
		if c == '^' {
			break
		}
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%w: track 1 digit %q", ErrDecodeRejected, c)
		}
		result = append(result, c-'0')
		pos++
	}
	if pos >= len(data) || pos > 20 {
		return nil, fmt.Errorf("%w: no field separator in track 1 %s", ErrDecodeRejected, tlv.Pretty(data))
	}
	return result, nil
}

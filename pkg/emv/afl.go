package emv

import (
	"fmt"

	"github.com/tapscan/emv-pan/pkg/bits"
)

// AFL is the application file locator returned by GET PROCESSING OPTIONS,
// a sequence of 4-byte entries naming which records to read.
type AFL []byte

// Group is one AFL entry: a run of records within a single file.
type Group struct {
	SFI       byte
	Start     byte
	End       byte
	AuthCount byte
}

// Validate rejects locators that are empty or not a whole number of
// entries.
func (a AFL) Validate() error {
	if len(a) < 4 || len(a)%4 != 0 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidAFL, len(a))
	}
	return nil
}

// Groups decodes the 4-byte entries. The scan stops one whole entry short
// of the end of the locator, so the final entry is never decoded.
func (a AFL) Groups() []Group {
	var groups []Group
	for pos := 0; pos < len(a)-4; pos += 4 {
		groups = append(groups, Group{
			SFI:       bits.GetRange(a[pos], 8, 4),
			Start:     a[pos+1],
			End:       a[pos+2],
			AuthCount: a[pos+3],
		})
	}
	return groups
}

package emv

import "errors"

var (
	// ErrNoApplication means the PPSE answered but advertised no ADF entry.
	ErrNoApplication = errors.New("emv: no application in PPSE response")

	// ErrEarlyTrack2 means the card delivered track 2 data inside the GET
	// PROCESSING OPTIONS response instead of an AFL. The read stops there.
	ErrEarlyTrack2 = errors.New("emv: track 2 data arrived with processing options")

	// ErrInvalidAFL means the application file locator is absent or not a
	// positive multiple of four bytes.
	ErrInvalidAFL = errors.New("emv: invalid application file locator")

	// ErrDecodeRejected means a track or PAN value was present in a record
	// but did not decode to an acceptable digit sequence.
	ErrDecodeRejected = errors.New("emv: digit decode rejected")

	// ErrNoPAN means every AFL record was read without finding a track or
	// PAN tag.
	ErrNoPAN = errors.New("emv: no PAN in card records")
)

package iso7816

import "fmt"

// StatusWord represents the two-byte status response (SW1-SW2) returned by the smart card.
type StatusWord uint16

// NewStatusWord creates a StatusWord instance from two separate bytes.
func NewStatusWord(sw1, sw2 byte) StatusWord {
	return StatusWord(uint16(sw1)<<8 | uint16(sw2))
}

// SW1 returns the first byte (high byte) of the status word.
func (sw StatusWord) SW1() byte {
	return byte(sw >> 8)
}

// SW2 returns the second byte (low byte) of the status word.
func (sw StatusWord) SW2() byte {
	return byte(sw)
}

// IsSuccess returns true only for SW 9000. Continuation statuses such as
// 61XX (response bytes available) or 6CXX (wrong Le) count as failures:
// contactless cards deliver their full response in one exchange, so anything
// other than a plain OK ends the read.
func (sw StatusWord) IsSuccess() bool {
	return sw == SW_NO_ERROR
}

// String returns a human-readable description of the status word. Dynamic
// ISO ranges (61XX, 6CXX) are decoded with their embedded byte counts; known
// static codes get their standard description; anything else falls back to a
// category keyed on SW1.
func (sw StatusWord) String() string {
	sw1 := sw.SW1()
	sw2 := sw.SW2()

	if sw1 == 0x61 {
		return fmt.Sprintf("[%04X] Process completed, %d bytes available", uint16(sw), sw2)
	}
	if sw1 == 0x6C {
		return fmt.Sprintf("[%04X] Wrong length, correct Le is %d", uint16(sw), sw2)
	}

	if desc, ok := swDescriptions[sw]; ok {
		return fmt.Sprintf("[%04X] %s", uint16(sw), desc)
	}
	return fmt.Sprintf("[%04X] %s", uint16(sw), sw.genericCategoryDescription())
}

// genericCategoryDescription provides a fallback description based on SW1.
func (sw StatusWord) genericCategoryDescription() string {
	switch sw.SW1() {
	case 0x62:
		return "Warning: NV memory unchanged"
	case 0x63:
		return "Warning: NV memory changed"
	case 0x64:
		return "Execution Error: NV memory unchanged"
	case 0x65:
		return "Execution Error: NV memory changed"
	case 0x66:
		return "Execution Error: Security issue"
	case 0x68:
		return "Checking Error: Function not supported"
	case 0x69:
		return "Checking Error: Command not allowed"
	case 0x6A:
		return "Checking Error: Wrong parameters"
	default:
		return "Unknown Status"
	}
}

// Status Word codes a contactless EMV session actually meets, defined in
// ISO/IEC 7816-4.
const (
	SW_NO_ERROR StatusWord = 0x9000

	SW_ERR_WRONG_LENGTH        StatusWord = 0x6700
	SW_ERR_COND_OF_USE_NOT_SAT StatusWord = 0x6985
	SW_ERR_FUNC_NOT_SUPPORTED  StatusWord = 0x6A81
	SW_ERR_FILE_NOT_FOUND      StatusWord = 0x6A82
	SW_ERR_RECORD_NOT_FOUND    StatusWord = 0x6A83
	SW_ERR_INS_INVALID         StatusWord = 0x6D00
	SW_ERR_CLA_NOT_SUPPORTED   StatusWord = 0x6E00
)

var swDescriptions = map[StatusWord]string{
	SW_NO_ERROR:                "OK",
	SW_ERR_WRONG_LENGTH:        "Wrong length",
	SW_ERR_COND_OF_USE_NOT_SAT: "Conditions of use not satisfied",
	SW_ERR_FUNC_NOT_SUPPORTED:  "Function not supported",
	SW_ERR_FILE_NOT_FOUND:      "File or application not found",
	SW_ERR_RECORD_NOT_FOUND:    "Record not found",
	SW_ERR_INS_INVALID:         "Instruction not supported",
	SW_ERR_CLA_NOT_SUPPORTED:   "Class not supported",
}

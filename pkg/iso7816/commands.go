package iso7816

import "fmt"

// InsCode is a typed representation of the instruction byte.
type InsCode byte

// Instruction (INS) codes used by the contactless read flow, as defined in
// ISO/IEC 7816-4.
const (
	INS_SELECT      InsCode = 0xA4
	INS_READ_RECORD InsCode = 0xB2
	INS_GET_DATA    InsCode = 0xCA
)

func (i InsCode) String() string {
	switch i {
	case INS_SELECT:
		return "SELECT"
	case INS_READ_RECORD:
		return "READ RECORD"
	case INS_GET_DATA:
		return "GET DATA"
	}
	return fmt.Sprintf("INS %02X", byte(i))
}

// Class bytes used by the contactless read flow. SELECT and READ RECORD use
// the interindustry class; PC/SC readers reserve 0xFF for pseudo-APDUs
// addressed to the reader itself rather than the card.
const (
	CLA_INTERINDUSTRY byte = 0x00
	CLA_PROPRIETARY   byte = 0x80
	CLA_PSEUDO        byte = 0xFF
)

// SelectByName builds a SELECT by DF name (P1 0x04) returning the FCI. The
// expected length is always present: contactless cards want the full case 4
// short encoding with a trailing Le byte.
func SelectByName(name []byte) *CommandAPDU {
	return NewCommandAPDU(CLA_INTERINDUSTRY, INS_SELECT, 0x04, 0x00, name, MaxShortLe)
}

// ReadRecord builds a READ RECORD for a single record number. P2 carries the
// SFI in its high five bits with mode bits 0b100 (reference by record number
// from P1).
func ReadRecord(sfi, record byte) *CommandAPDU {
	return NewCommandAPDU(CLA_INTERINDUSTRY, INS_READ_RECORD, record, sfi<<3|0b100, nil, MaxShortLe)
}

// GetUID builds the PC/SC pseudo-APDU asking a contactless reader for the
// UID of the card in its field.
func GetUID() *CommandAPDU {
	return NewCommandAPDU(CLA_PSEUDO, INS_GET_DATA, 0x00, 0x00, nil, MaxShortLe)
}

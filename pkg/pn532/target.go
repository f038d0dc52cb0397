package pn532

import (
	"fmt"

	"github.com/tapscan/emv-pan/pkg/bits"
)

// DetectTarget polls for a single passive ISO 14443 Type A target and
// returns its UID. Payment cards must support ISO-DEP (ISO 14443-4, SEL_RES
// bit 6); a target without it is reported with ErrNotISODEP, its UID still
// filled in so the caller can identify what was presented.
func DetectTarget(t Transceiver) (UID, error) {
	if err := t.WriteCommand([]byte{cmdInListPassiveTarget, targetNumber, baudTypeA}); err != nil {
		return UID{}, fmt.Errorf("pn532: list targets: %w", err)
	}

	resp, err := t.ReadResponse(cmdInListPassiveTarget)
	if err != nil {
		return UID{}, fmt.Errorf("pn532: list targets: %w", err)
	}

	// NbTg, Tg, SENS_RES (2 bytes), SEL_RES, NFCID length, NFCID
	if len(resp) == 0 || resp[0] == 0x00 {
		return UID{}, ErrNoTarget
	}
	if len(resp) < 6 {
		return UID{}, ErrShortResponse
	}

	sak := resp[4]
	uidLen := int(resp[5])
	if len(resp) < 6+uidLen {
		return UID{}, ErrShortResponse
	}
	uid := NewUID(resp[6 : 6+uidLen])

	if !bits.IsSet(sak, 6) {
		return uid, fmt.Errorf("%w: SEL_RES %02X", ErrNotISODEP, sak)
	}

	return uid, nil
}

package pn532

import (
	"fmt"
	"log/slog"

	"github.com/tapscan/emv-pan/pkg/iso7816"
	"github.com/tapscan/emv-pan/pkg/tlv"
)

// Channel tunnels APDUs to the card currently in the PN532's field using
// the InDataExchange command.
type Channel struct {
	t   Transceiver
	log *slog.Logger
}

// NewChannel wraps a Transceiver for APDU exchange.
func NewChannel(t Transceiver) *Channel {
	return &Channel{
		t:   t,
		log: slog.Default().With("component", "pn532"),
	}
}

// Exchange sends one command APDU to the card and returns the application
// payload of its response. The InDataExchange status byte must be zero and
// the response must end in SW 9000; the returned payload has both stripped.
func (c *Channel) Exchange(apdu []byte) ([]byte, error) {
	cmd := make([]byte, 0, len(apdu)+2)
	cmd = append(cmd, cmdInDataExchange, targetNumber)
	cmd = append(cmd, apdu...)

	if err := c.t.WriteCommand(cmd); err != nil {
		return nil, fmt.Errorf("pn532: write command: %w", err)
	}

	resp, err := c.t.ReadResponse(cmdInDataExchange)
	if err != nil {
		return nil, fmt.Errorf("pn532: read response: %w", err)
	}
	if len(resp) == 0 {
		return nil, ErrShortResponse
	}
	if resp[0] != 0x00 {
		return nil, fmt.Errorf("%w: status %02X", ErrExchangeFailed, resp[0])
	}
	if len(resp) < 3 {
		return nil, ErrShortResponse
	}

	c.log.Debug("data read", "resp", tlv.Pretty(resp))

	sw := iso7816.NewStatusWord(resp[len(resp)-2], resp[len(resp)-1])
	if !sw.IsSuccess() {
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, sw)
	}

	// Strip the exchange status byte and the trailing status word.
	return resp[1 : len(resp)-2], nil
}

// Package pn532 speaks the command set of the NXP PN532 NFC controller over
// a pluggable byte transport. It covers the two commands a contactless
// payment read needs: listing a passive ISO 14443 Type A target and tunnelling
// APDUs to it through InDataExchange.
package pn532

// Frame identifier (TFI) bytes marking command direction (§6.2.1.1).
const (
	TFIHostToDevice byte = 0xD4
	TFIDeviceToHost byte = 0xD5
)

// commands (§7).
const (
	cmdInListPassiveTarget byte = 0x4A
	cmdInDataExchange      byte = 0x40
)

// InListPassiveTarget baud rate selector for ISO 14443 Type A at 106 kbps.
const baudTypeA byte = 0x00

// The framework addresses a single card in the field at a time.
const targetNumber byte = 0x01

// Transceiver is the byte-level link to a PN532. WriteCommand sends one
// command body (TFI and outer framing are the implementation's concern);
// ReadResponse waits for the matching response frame and returns its body
// after the direction byte and the response code for expect have been
// verified and stripped.
type Transceiver interface {
	WriteCommand(cmd []byte) error
	ReadResponse(expect byte) ([]byte, error)
}

/*
Package iso7816 implements the APDU layer used to talk to contactless smart
cards according to the ISO/IEC 7816 standard.

This package provides the building blocks for APDU (Application Protocol
Data Unit) communication: Command and Response structures, Status Word (SW)
analysis, and builders for the handful of commands a contactless payment
read needs (SELECT by name, READ RECORD, and the PC/SC GET UID pseudo-APDU).

# Fundamentals

The communication with a smart card is strictly synchronous:
 1. The Host sends a Command APDU (Header + Optional Body).
 2. The Card processes it and returns a Response APDU (Optional Body + Trailer SW1/SW2).

# Status Words

Every response ends with a 2-byte Status Word (SW). Here only 0x9000 counts
as success; continuation codes like 0x61XX are treated as failures because a
contactless card returns its whole response in a single exchange.

# Usage Example

	cmd := iso7816.SelectByName([]byte("2PAY.SYS.DDF01"))
	raw, err := cmd.Bytes()
	if err != nil {
	    log.Fatal(err)
	}

	// transmit raw, then:
	resp, err := iso7816.ParseResponseAPDU(received)
	if err != nil {
	    log.Fatal(err)
	}
	if resp.Status.IsSuccess() {
	    fmt.Printf("FCI: %X\n", resp.Data)
	}
*/
package iso7816

package emv

import (
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"

	"github.com/tapscan/emv-pan/pkg/bits"
	"github.com/tapscan/emv-pan/pkg/tlv"
)

// CardRecord represents the content of a payment application record read
// through the AFL. It is usually wrapped in a Record Template (Tag '70').
type CardRecord struct {
	Track2         []byte  `tlv:"57"`
	Track1         []byte  `tlv:"56" fmt:"ascii"`
	PAN            []byte  `tlv:"5A"`
	CardholderName []byte  `tlv:"5F20" fmt:"ascii"`
	Expiry         ExpDate `tlv:"5F24"`

	Unknown []bertlv.TLV `tlv:",unknown"`
}

// ExpDate is the application expiration date (Tag '5F24'), BCD encoded as
// YYMMDD.
type ExpDate struct {
	Year  int
	Month int
	Day   int
}

// UnmarshalTLV decodes the BCD date. Values that are not valid BCD leave
// the date zeroed rather than failing the whole record.
func (e *ExpDate) UnmarshalTLV(data []byte) error {
	if len(data) < 2 {
		return nil
	}

	for _, b := range data[:2] {
		if bits.GetRange(b, 8, 5) > 9 || bits.GetRange(b, 4, 1) > 9 {
			return nil
		}
	}

	e.Year = bcd(data[0])
	e.Month = bcd(data[1])
	if len(data) > 2 && bits.GetRange(data[2], 8, 5) <= 9 && bits.GetRange(data[2], 4, 1) <= 9 {
		e.Day = bcd(data[2])
	}
	return nil
}

// String renders the date the way cards emboss it, or nothing when unset.
func (e ExpDate) String() string {
	if e.Year == 0 && e.Month == 0 {
		return ""
	}
	return fmt.Sprintf("%02d/%02d", e.Month, e.Year)
}

func bcd(b byte) int {
	return int(bits.GetRange(b, 8, 5))*10 + int(bits.GetRange(b, 4, 1))
}

// ParseCardRecord interprets raw bytes from a READ RECORD command as a
// payment application record.
func ParseCardRecord(data []byte) (*CardRecord, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty record data")
	}

	packets, err := bertlv.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("BER-TLV decode failed: %w", err)
	}

	var processingPackets []bertlv.TLV

	if len(packets) > 0 && strings.EqualFold(packets[0].Tag, "70") {
		processingPackets = packets[0].TLVs
	} else {
		processingPackets = packets
	}

	record := &CardRecord{}
	if err := tlv.UnmarshalFromPackets(processingPackets, record); err != nil {
		return nil, fmt.Errorf("failed to map card record: %w", err)
	}

	return record, nil
}

// Describe generates a report of the record content.
func (r *CardRecord) Describe() string {
	var sb strings.Builder
	sb.WriteString("=== EMV CARD RECORD ===")

	tlv.WriteStructFields(&sb, "Record", r)

	return strings.TrimRight(sb.String(), "\n")
}

package emv

import (
	"github.com/tapscan/emv-pan/pkg/iso7816"
	"github.com/tapscan/emv-pan/pkg/tlv"
)

// insGetProcessingOptions starts the transaction within a selected
// application (EMV Book 3, 6.5.8).
const insGetProcessingOptions iso7816.InsCode = 0xA8

// SynthesizePDOL walks a processing options data object list, a stream of
// tag and length pairs with no values, and produces the concatenated
// values of a fixed terminal profile. Recognized tags get canned answers,
// everything else is zero filled to the requested length. Anything shorter
// than a one byte tag plus length is ignored.
func SynthesizePDOL(list []byte) []byte {
	if len(list) < 2 {
		return nil
	}

	var result []byte
	for len(list) > 1 {
		hdr := 1
		tag := tlv.Tag(list[0])
		if list[0]&0x1F == 0x1F {
			if hdr >= len(list) {
				break
			}
			tag = tag<<8 | tlv.Tag(list[hdr])
			hdr++
		}
		if hdr >= len(list) {
			break
		}
		length := int(list[hdr])
		hdr++

		switch tag {
		case TagTTQ:
			result = append(result, 0xF0, 0x20, 0x40, 0x00)
		case TagAmountAuthorised, TagAmountOther:
			result = append(result, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00)
		case TagTerminalCountryCode:
			result = append(result, 0x02, 0x76)
		case TagTransactionCurrency:
			result = append(result, 0x09, 0x78)
		case TagTransactionDate: // YYMMDD
			result = append(result, 0x23, 0x11, 0x25)
		case TagUnpredictableNumber:
			result = append(result, 0xB5, 0x43, 0xFF, 0x89)
		default:
			result = append(result, make([]byte, length)...)
		}

		list = list[hdr:]
	}
	return result
}

// GetProcessingOptions builds the GPO command, the synthesized data object
// list values wrapped in a command template (tag 83).
func GetProcessingOptions(pdolData []byte) *iso7816.CommandAPDU {
	data := make([]byte, 0, len(pdolData)+2)
	data = append(data, byte(TagCommandTemplate), byte(len(pdolData)))
	data = append(data, pdolData...)

	return iso7816.NewCommandAPDU(iso7816.CLA_PROPRIETARY, insGetProcessingOptions, 0x00, 0x00, data, iso7816.MaxShortLe)
}

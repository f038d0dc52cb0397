package emv

import "github.com/tapscan/emv-pan/pkg/tlv"

// PPSE is the proximity payment system environment, the directory every
// contactless session selects first.
const PPSE = "2PAY.SYS.DDF01"

// Tags probed directly by the read flow.
const (
	// TagAID names an application inside the PPSE directory (ADF name).
	TagAID tlv.Tag = 0x4F

	// TagTrack1 carries track 1 data.
	TagTrack1 tlv.Tag = 0x56

	// TagTrack2 carries track 2 equivalent data.
	TagTrack2 tlv.Tag = 0x57

	// TagPAN carries the plain application PAN.
	TagPAN tlv.Tag = 0x5A

	// TagCommandTemplate wraps the GET PROCESSING OPTIONS data field. The
	// selection response is probed for the same tag to learn which data
	// objects the card wants in it.
	TagCommandTemplate tlv.Tag = 0x83

	// TagAFL locates the records to read after GET PROCESSING OPTIONS.
	TagAFL tlv.Tag = 0x94
)

// Template and data object tags met in responses and diagnostics.
const (
	TagFCITemplate         tlv.Tag = 0x6F
	TagRecordTemplate      tlv.Tag = 0x70
	TagResponseFormat2     tlv.Tag = 0x77
	TagDFName              tlv.Tag = 0x84
	TagFCIProprietary      tlv.Tag = 0xA5
	TagFCIIssuerData       tlv.Tag = 0xBF0C
	TagApplicationTemplate tlv.Tag = 0x61
	TagApplicationLabel    tlv.Tag = 0x50
	TagApplicationPriority tlv.Tag = 0x87
	TagCardholderName      tlv.Tag = 0x5F20
	TagExpirationDate      tlv.Tag = 0x5F24
	TagPDOL                tlv.Tag = 0x9F38
)

// Data objects a PDOL may ask the terminal for.
const (
	TagTTQ                 tlv.Tag = 0x9F66
	TagAmountAuthorised    tlv.Tag = 0x9F02
	TagAmountOther         tlv.Tag = 0x9F03
	TagTerminalCountryCode tlv.Tag = 0x9F1A
	TagTransactionCurrency tlv.Tag = 0x5F2A
	TagTransactionDate     tlv.Tag = 0x9A
	TagUnpredictableNumber tlv.Tag = 0x9F37
)

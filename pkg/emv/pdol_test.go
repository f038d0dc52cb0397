package emv

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tapscan/emv-pan/pkg/iso7816"
	"github.com/tapscan/emv-pan/pkg/tlv"
)

func commandHex(t *testing.T, cmd *iso7816.CommandAPDU) string {
	t.Helper()
	raw, err := cmd.Bytes()
	if err != nil {
		t.Fatalf("Bytes() failed: %v", err)
	}
	return fmt.Sprintf("%X", raw)
}

func TestSynthesizePDOL(t *testing.T) {
	tests := []struct {
		name string
		list []byte
		want []byte
	}{
		{
			name: "Visa style qualifier request",
			list: tlv.Hex("9F66 04"),
			want: tlv.Hex("F0 20 40 00"),
		},
		{
			name: "Typical Visa PDOL",
			list: tlv.Hex("9F66 04 9F02 06 9F03 06 9F1A 02 95 05 5F2A 02 9A 03 9C 01 9F37 04"),
			want: tlv.Hex(
				"F0 20 40 00",       // qualifiers
				"00 00 00 00 10 00", // amount authorised
				"00 00 00 00 10 00", // amount other
				"02 76",             // country
				"00 00 00 00 00",    // TVR zero filled
				"09 78",             // currency
				"23 11 25",          // date
				"00",                // transaction type zero filled
				"B5 43 FF 89",       // unpredictable number
			),
		},
		{
			name: "Unknown tags zero filled to length",
			list: tlv.Hex("DF01 03 81 02"),
			want: tlv.Hex("00 00 00 00 00"),
		},
		{
			name: "Empty list",
			list: nil,
			want: nil,
		},
		{
			name: "Single byte is too short",
			list: tlv.Hex("9A"),
			want: nil,
		},
		{
			name: "Trailing tag byte without length is dropped",
			list: tlv.Hex("9F1A 02 9A"),
			want: tlv.Hex("02 76"),
		},
		{
			name: "Dangling tag byte ends the walk",
			list: tlv.Hex("9A 03 9F"),
			want: tlv.Hex("23 11 25"),
		},
		{
			name: "Two byte tag without length ends the walk",
			list: tlv.Hex("9A 03 9F 66"),
			want: tlv.Hex("23 11 25"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SynthesizePDOL(tt.list)); diff != "" {
				t.Errorf("SynthesizePDOL() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The synthesized data must be exactly as long as the sum of the requested
// lengths, whatever mix of known and unknown tags the card asks for.
func TestSynthesizePDOLLength(t *testing.T) {
	list := tlv.Hex("9F66 04 9F02 06 9F03 06 9F1A 02 95 05 5F2A 02 9A 03 9C 01 9F37 04")

	want := 4 + 6 + 6 + 2 + 5 + 2 + 3 + 1 + 4
	if got := len(SynthesizePDOL(list)); got != want {
		t.Errorf("Synthesized length = %d, want %d", got, want)
	}
}

func TestGetProcessingOptions(t *testing.T) {
	tests := []struct {
		name     string
		pdolData []byte
		want     string
	}{
		{
			name:     "Empty template",
			pdolData: nil,
			want:     "80A8000002830000",
		},
		{
			name:     "Wrapped values",
			pdolData: tlv.Hex("F0 20 40 00"),
			want:     "80A80000068304F020400000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commandHex(t, GetProcessingOptions(tt.pdolData))
			if got != tt.want {
				t.Errorf("GetProcessingOptions() = %s, want %s", got, tt.want)
			}
		})
	}
}

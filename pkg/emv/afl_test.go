package emv

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tapscan/emv-pan/pkg/tlv"
)

func TestAFLValidate(t *testing.T) {
	tests := []struct {
		name    string
		afl     AFL
		wantErr bool
	}{
		{"Single entry", AFL(tlv.Hex("08 01 02 00")), false},
		{"Two entries", AFL(tlv.Hex("08 01 02 00 10 01 01 00")), false},
		{"Missing", nil, true},
		{"Empty", AFL{}, true},
		{"Truncated entry", AFL(tlv.Hex("08 01 02 00 10")), true},
		{"Too short", AFL(tlv.Hex("08 01 02")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.afl.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidAFL) {
				t.Errorf("Expected ErrInvalidAFL, got %v", err)
			}
		})
	}
}

func TestAFLGroups(t *testing.T) {
	tests := []struct {
		name string
		afl  AFL
		want []Group
	}{
		{
			name: "Single entry stays unread",
			afl:  AFL(tlv.Hex("08 01 02 00")),
			want: nil,
		},
		{
			name: "Two entries decode the first",
			afl:  AFL(tlv.Hex("08 01 02 00 10 01 01 00")),
			want: []Group{
				{SFI: 1, Start: 1, End: 2, AuthCount: 0},
			},
		},
		{
			name: "Three entries decode two",
			afl:  AFL(tlv.Hex("08 01 02 00 10 01 03 01 18 05 05 00")),
			want: []Group{
				{SFI: 1, Start: 1, End: 2, AuthCount: 0},
				{SFI: 2, Start: 1, End: 3, AuthCount: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.afl.Groups()); diff != "" {
				t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The SFI decoded from an AFL entry must rebuild the entry's upper bits
// when folded back into a READ RECORD reference control parameter.
func TestAFLGroupSelector(t *testing.T) {
	for _, entry := range []byte{0x08, 0x10, 0x18, 0xF8} {
		afl := AFL{entry, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}
		groups := afl.Groups()
		if len(groups) != 1 {
			t.Fatalf("entry %02X: expected one group, got %d", entry, len(groups))
		}

		selector := groups[0].SFI<<3 | 0b100
		if want := entry&0xF8 | 0x04; selector != want {
			t.Errorf("entry %02X: selector = %02X, want %02X", entry, selector, want)
		}
	}
}

package pn532

import (
	"bytes"
	"testing"
)

func TestUID(t *testing.T) {
	t.Run("String formatting", func(t *testing.T) {
		uid := NewUID([]byte{0x04, 0xA3, 0x2B, 0x1C})
		if got := uid.String(); got != "04:A3:2B:1C" {
			t.Errorf("String() = %q, want 04:A3:2B:1C", got)
		}
	})

	t.Run("Zero value", func(t *testing.T) {
		var uid UID
		if !uid.IsZero() {
			t.Error("zero UID should report IsZero")
		}
		if uid.String() != "" {
			t.Errorf("String() = %q, want empty", uid.String())
		}
	})

	t.Run("Truncation", func(t *testing.T) {
		long := make([]byte, MaxUIDLen+5)
		uid := NewUID(long)
		if uid.Len() != MaxUIDLen {
			t.Errorf("Len() = %d, want %d", uid.Len(), MaxUIDLen)
		}
	})

	t.Run("Equal", func(t *testing.T) {
		a := NewUID([]byte{0x01, 0x02})
		b := NewUID([]byte{0x01, 0x02})
		c := NewUID([]byte{0x01, 0x02, 0x03})
		d := NewUID([]byte{0x01, 0x03})

		if !a.Equal(b) {
			t.Error("identical UIDs should be Equal")
		}
		if a.Equal(c) {
			t.Error("UIDs of different length should not be Equal")
		}
		if a.Equal(d) {
			t.Error("UIDs with different bytes should not be Equal")
		}
	})

	t.Run("Bytes round trip", func(t *testing.T) {
		raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
		uid := NewUID(raw)
		if !bytes.Equal(uid.Bytes(), raw) {
			t.Errorf("Bytes() = % X, want % X", uid.Bytes(), raw)
		}
	})
}

func TestTag(t *testing.T) {
	uid := NewUID([]byte{0x04, 0xA3})

	t.Run("With payload", func(t *testing.T) {
		tag := NewTag(uid, ForumType2, []byte{4, 4, 0, 0})
		if got := tag.String(); got != "NFC Forum Type 2 04:A3 (4 byte payload)" {
			t.Errorf("String() = %q", got)
		}
	})

	t.Run("Detection only", func(t *testing.T) {
		tag := NewTag(uid, ForumType2, nil)
		if got := tag.String(); got != "NFC Forum Type 2 04:A3 (no payload)" {
			t.Errorf("String() = %q", got)
		}
	})
}

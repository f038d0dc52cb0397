package tlv

// Tag identifies a BER-TLV data object. Two-byte tags such as 0x9F38 or
// 0xBF0C use the full 16 bits, one-byte tags the low 8.
type Tag uint16

// Constructed tags whose values nest further records. Find descends into all
// of them, Flatten only into the file-control and directory templates.
const (
	tagFCITemplate     Tag = 0x6F
	tagFCIProprietary  Tag = 0xA5
	tagFCIIssuerData   Tag = 0xBF0C
	tagAppTemplate     Tag = 0x61
	tagResponseFormat2 Tag = 0x77
	tagRecordTemplate  Tag = 0x70
)

func descendFind(t Tag) bool {
	switch t {
	case tagFCITemplate, tagFCIProprietary, tagFCIIssuerData, tagAppTemplate, tagResponseFormat2, tagRecordTemplate:
		return true
	}
	return false
}

func descendFlatten(t Tag) bool {
	switch t {
	case tagFCITemplate, tagFCIProprietary, tagFCIIssuerData, tagAppTemplate:
		return true
	}
	return false
}

// readTag parses the one- or two-byte tag at the start of buf. All five low
// bits set in the first byte announce a second tag byte.
func readTag(buf []byte) (Tag, int, bool) {
	if len(buf) == 0 {
		return 0, 0, false
	}
	tag := Tag(buf[0])
	n := 1
	if buf[0]&0x1F == 0x1F {
		if len(buf) < 2 {
			return 0, 0, false
		}
		tag = tag<<8 | Tag(buf[1])
		n = 2
	}
	return tag, n, true
}

// Find returns the value of the first record carrying tag, walking buf depth
// first and container first: a match inside a constructed value wins over one
// later in the sibling stream. The returned slice aliases buf. Buffers
// shorter than three bytes, truncated headers and records whose declared
// length overruns the buffer all read as not found (nil). Lengths are a
// single byte, except that a length byte with the high bit set defers to the
// byte after it.
func Find(buf []byte, tag Tag) []byte {
	if len(buf) < 3 {
		return nil
	}

	cur, hdr, ok := readTag(buf)
	if !ok || hdr >= len(buf) {
		return nil
	}
	length := int(buf[hdr])
	hdr++
	if length&0x80 != 0 {
		if hdr >= len(buf) {
			return nil
		}
		length = int(buf[hdr])
		hdr++
	}

	if len(buf) >= hdr+length {
		value := buf[hdr : hdr+length]
		if cur == tag {
			return value
		}
		if descendFind(cur) {
			if v := Find(value, tag); len(v) > 0 {
				return v
			}
		}
	}
	if len(buf) > hdr+length {
		if v := Find(buf[hdr+length:], tag); len(v) > 0 {
			return v
		}
	}
	return nil
}

// Flatten parses buf into a flat tag-to-value map, losing the nesting
// structure. The remainder of the buffer is parsed before the current record
// is stored, so of two records with the same tag the one later in the stream
// wins. Every value is copied out of buf, never aliased. Lengths here are
// always a single byte; truncated records and their level are dropped
// silently.
func Flatten(buf []byte) map[Tag][]byte {
	tags := make(map[Tag][]byte)
	flattenInto(buf, tags)
	return tags
}

func flattenInto(buf []byte, tags map[Tag][]byte) {
	if len(buf) < 2 {
		return
	}
	cur, hdr, ok := readTag(buf)
	if !ok || hdr >= len(buf) {
		return
	}
	length := int(buf[hdr])
	hdr++

	if len(buf) > hdr+length {
		flattenInto(buf[hdr+length:], tags)
	}
	if len(buf) >= hdr+length {
		value := buf[hdr : hdr+length]
		if _, seen := tags[cur]; !seen {
			tags[cur] = append([]byte(nil), value...)
		}
		if descendFlatten(cur) {
			flattenInto(value, tags)
		}
	}
}

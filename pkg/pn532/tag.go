package pn532

import "fmt"

// TagType classifies a detected target by NFC Forum type.
type TagType string

const (
	ForumType2 TagType = "NFC Forum Type 2"
	ForumType4 TagType = "NFC Forum Type 4"
)

// Tag couples a target's UID with whatever payload a higher layer read from
// it. A tag with no payload still identifies the card that was seen.
type Tag struct {
	UID  UID
	Type TagType
	Data []byte
}

// NewTag builds a Tag. A nil data slice means the target was detected but
// nothing could be read from it.
func NewTag(uid UID, typ TagType, data []byte) *Tag {
	return &Tag{
		UID:  uid,
		Type: typ,
		Data: data,
	}
}

func (t *Tag) String() string {
	if len(t.Data) == 0 {
		return fmt.Sprintf("%s %s (no payload)", t.Type, t.UID)
	}
	return fmt.Sprintf("%s %s (%d byte payload)", t.Type, t.UID, len(t.Data))
}

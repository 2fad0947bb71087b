package wire

// Tag bytes. Every encoded value begins with one of these; the format is
// self-describing and identical on both sides of the boundary for a given
// ABI version. Values are never re-numbered, only appended.
const (
	TagNil   byte = 0x00
	TagFalse byte = 0x01
	TagTrue  byte = 0x02

	TagU8  byte = 0x10
	TagS8  byte = 0x11
	TagU16 byte = 0x12
	TagS16 byte = 0x13
	TagU32 byte = 0x14
	TagS32 byte = 0x15
	TagU64 byte = 0x16
	TagS64 byte = 0x17

	TagF32 byte = 0x20
	TagF64 byte = 0x21

	TagStr byte = 0x30
	TagBin byte = 0x31

	TagSeq byte = 0x40
	TagMap byte = 0x41
)

func tagName(tag byte) string {
	switch tag {
	case TagNil:
		return "nil"
	case TagFalse, TagTrue:
		return "bool"
	case TagU8:
		return "u8"
	case TagS8:
		return "s8"
	case TagU16:
		return "u16"
	case TagS16:
		return "s16"
	case TagU32:
		return "u32"
	case TagS32:
		return "s32"
	case TagU64:
		return "u64"
	case TagS64:
		return "s64"
	case TagF32:
		return "f32"
	case TagF64:
		return "f64"
	case TagStr:
		return "string"
	case TagBin:
		return "binary"
	case TagSeq:
		return "sequence"
	case TagMap:
		return "mapping"
	}
	return "invalid"
}

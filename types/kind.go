package types

type Kind uint8

const (
	KindBool Kind = iota
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindF32
	KindF64
	KindString
	KindBytes
	KindUnit
	KindList
	KindMap
	KindOption
	KindResult
	KindStruct
	KindEnum
	KindAlias
	KindGenericParam
	KindMono
	KindIndirect
	KindExternal
)

var kindNames = [...]string{
	KindBool:         "bool",
	KindU8:           "u8",
	KindS8:           "s8",
	KindU16:          "u16",
	KindS16:          "s16",
	KindU32:          "u32",
	KindS32:          "s32",
	KindU64:          "u64",
	KindS64:          "s64",
	KindF32:          "f32",
	KindF64:          "f64",
	KindString:       "string",
	KindBytes:        "bytes",
	KindUnit:         "unit",
	KindList:         "list",
	KindMap:          "map",
	KindOption:       "option",
	KindResult:       "result",
	KindStruct:       "struct",
	KindEnum:         "enum",
	KindAlias:        "alias",
	KindGenericParam: "generic-param",
	KindMono:         "mono",
	KindIndirect:     "indirect",
	KindExternal:     "external",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsPrimitive reports whether the kind is a leaf value kind with no
// type references of its own.
func (k Kind) IsPrimitive() bool {
	return k <= KindUnit
}

// IsScalar reports whether the kind has a fixed-width wire encoding.
func (k Kind) IsScalar() bool {
	return k <= KindF64
}

// IsInteger reports whether the kind is a fixed-width integer.
func (k Kind) IsInteger() bool {
	return k >= KindU8 && k <= KindS64
}

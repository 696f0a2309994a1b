// Package format defines the closed enumerations of the GFF binary format:
// field type tags, localization languages and genders, and the accepted
// file type and version tags.
package format

type (
	// FieldType is the on-disk type tag of a GFF field.
	FieldType uint32

	// Language identifies the player language of a localized substring.
	// The ids match the Aurora engine's talk table languages.
	Language uint32

	// Gender selects the grammatical gender variant of a localized substring.
	Gender uint8
)

// Field type tags as stored in the Field Table.
const (
	TypeByte      FieldType = 0  // TypeByte is an inline uint8 value.
	TypeChar      FieldType = 1  // TypeChar is an inline int8 value.
	TypeWord      FieldType = 2  // TypeWord is an inline uint16 value.
	TypeShort     FieldType = 3  // TypeShort is an inline int16 value.
	TypeDword     FieldType = 4  // TypeDword is an inline uint32 value.
	TypeInt       FieldType = 5  // TypeInt is an inline int32 value.
	TypeDword64   FieldType = 6  // TypeDword64 is an indirect uint64 value.
	TypeInt64     FieldType = 7  // TypeInt64 is an indirect int64 value.
	TypeFloat     FieldType = 8  // TypeFloat is an inline float32 value.
	TypeDouble    FieldType = 9  // TypeDouble is an indirect float64 value.
	TypeExoString FieldType = 10 // TypeExoString is an indirect length-prefixed string.
	TypeResRef    FieldType = 11 // TypeResRef is an indirect resource reference (<=16 bytes).
	TypeLocString FieldType = 12 // TypeLocString is an indirect localized string.
	TypeVoid      FieldType = 13 // TypeVoid is an indirect opaque binary blob.
	TypeStruct    FieldType = 14 // TypeStruct is a nested struct; payload is a struct-table index.
	TypeList      FieldType = 15 // TypeList is a struct list; payload is a list-indices byte offset.
)

// Version is the only GFF version tag this codec supports.
const Version = "V3.2"

// Known file type tags. The tag names the file category (character sheet,
// item blueprint, module info, ...); it does not change the byte layout.
const (
	FileTypeGFF = "GFF "
	FileTypeBIC = "BIC "
	FileTypeUTC = "UTC "
	FileTypeUTI = "UTI "
	FileTypeARE = "ARE "
	FileTypeIFO = "IFO "
	FileTypeDLG = "DLG "
	FileTypeGIT = "GIT "
	FileTypeFAC = "FAC "
	FileTypeJRL = "JRL "
)

// Valid reports whether t is one of the sixteen defined type tags.
func (t FieldType) Valid() bool {
	return t <= TypeList
}

// Indirect reports whether t stores its payload in the Field Data Block,
// referenced by byte offset, rather than inline in the field entry.
//
// This classification is fixed by the format and must be reproduced exactly
// on encode.
func (t FieldType) Indirect() bool {
	switch t {
	case TypeDword64, TypeInt64, TypeDouble, TypeExoString, TypeResRef, TypeLocString, TypeVoid:
		return true
	default:
		return false
	}
}

func (t FieldType) String() string {
	switch t {
	case TypeByte:
		return "Byte"
	case TypeChar:
		return "Char"
	case TypeWord:
		return "Word"
	case TypeShort:
		return "Short"
	case TypeDword:
		return "Dword"
	case TypeInt:
		return "Int"
	case TypeDword64:
		return "Dword64"
	case TypeInt64:
		return "Int64"
	case TypeFloat:
		return "Float"
	case TypeDouble:
		return "Double"
	case TypeExoString:
		return "CExoString"
	case TypeResRef:
		return "ResRef"
	case TypeLocString:
		return "CExoLocString"
	case TypeVoid:
		return "Void"
	case TypeStruct:
		return "Struct"
	case TypeList:
		return "List"
	default:
		return "Unknown"
	}
}

// Localization languages.
const (
	LangEnglish      Language = 0
	LangFrench       Language = 1
	LangGerman       Language = 2
	LangItalian      Language = 3
	LangSpanish      Language = 4
	LangPolish       Language = 5
	LangKorean       Language = 128
	LangChineseTrad  Language = 129
	LangChineseSimpl Language = 130
	LangJapanese     Language = 131
)

// Known reports whether l is one of the defined language ids.
func (l Language) Known() bool {
	switch l {
	case LangEnglish, LangFrench, LangGerman, LangItalian, LangSpanish,
		LangPolish, LangKorean, LangChineseTrad, LangChineseSimpl, LangJapanese:
		return true
	default:
		return false
	}
}

func (l Language) String() string {
	switch l {
	case LangEnglish:
		return "English"
	case LangFrench:
		return "French"
	case LangGerman:
		return "German"
	case LangItalian:
		return "Italian"
	case LangSpanish:
		return "Spanish"
	case LangPolish:
		return "Polish"
	case LangKorean:
		return "Korean"
	case LangChineseTrad:
		return "ChineseTraditional"
	case LangChineseSimpl:
		return "ChineseSimplified"
	case LangJapanese:
		return "Japanese"
	default:
		return "Unknown"
	}
}

// Genders.
const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

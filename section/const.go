package section

// Fixed record sizes of the GFF byte layout.
const (
	HeaderSize      = 56 // 4-byte type tag + 4-byte version tag + 6 (offset, count) u32 pairs
	StructEntrySize = 12 // type id, data-or-offset, field count
	FieldEntrySize  = 12 // type tag, label index, data-or-offset
	LabelSize       = 16 // raw ASCII bytes, null padded

	// TypeTagSize is the length of the file type and version tags.
	TypeTagSize = 4
)

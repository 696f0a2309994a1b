package section

import (
	"bytes"
	"fmt"

	"github.com/nwnkit/gff/endian"
	"github.com/nwnkit/gff/errs"
)

// StructEntry is one fixed-width record of the Struct Table.
type StructEntry struct {
	// Type is the caller-defined 32-bit struct type id; 0xFFFFFFFF marks a
	// struct with no distinguishing type.
	Type uint32
	// DataOrOffset is a field-table index when FieldCount == 1, and a byte
	// offset into the Field Indices Array when FieldCount > 1.
	DataOrOffset uint32
	FieldCount   uint32
}

// FieldEntry is one fixed-width record of the Field Table.
type FieldEntry struct {
	// Type is the raw field type tag.
	Type uint32
	// LabelIndex indexes the Label Table.
	LabelIndex uint32
	// DataOrOffset holds the inline payload for inline types, a byte offset
	// into the Field Data Block for indirect types, a struct-table index for
	// Struct fields, and a List Indices Array byte offset for List fields.
	DataOrOffset uint32
}

// Tables is a read-only typed view over the six sections of a validated GFF
// buffer. It performs no resolution of indirection; every accessor bounds
// checks its index or offset before touching the buffer.
type Tables struct {
	engine       endian.EndianEngine
	structs      []byte
	fields       []byte
	labels       []byte
	fieldData    []byte
	fieldIndices []byte
	listIndices  []byte
	structCount  uint32
	fieldCount   uint32
	labelCount   uint32
}

// NewTables slices the buffer into section views per the header descriptors.
//
// Every descriptor is validated against the buffer length up front; a
// descriptor pointing past the end of the buffer yields errs.ErrTruncatedData.
func NewTables(data []byte, hdr *Header, engine endian.EndianEngine) (*Tables, error) {
	t := &Tables{
		engine:      engine,
		structCount: hdr.Structs.Count,
		fieldCount:  hdr.Fields.Count,
		labelCount:  hdr.Labels.Count,
	}

	var err error
	if t.structs, err = slice(data, hdr.Structs.Offset, uint64(hdr.Structs.Count)*StructEntrySize, "struct table"); err != nil {
		return nil, err
	}
	if t.fields, err = slice(data, hdr.Fields.Offset, uint64(hdr.Fields.Count)*FieldEntrySize, "field table"); err != nil {
		return nil, err
	}
	if t.labels, err = slice(data, hdr.Labels.Offset, uint64(hdr.Labels.Count)*LabelSize, "label table"); err != nil {
		return nil, err
	}
	if t.fieldData, err = slice(data, hdr.FieldData.Offset, uint64(hdr.FieldData.Count), "field data block"); err != nil {
		return nil, err
	}
	if t.fieldIndices, err = slice(data, hdr.FieldIndices.Offset, uint64(hdr.FieldIndices.Count), "field indices array"); err != nil {
		return nil, err
	}
	if t.listIndices, err = slice(data, hdr.ListIndices.Offset, uint64(hdr.ListIndices.Count), "list indices array"); err != nil {
		return nil, err
	}

	return t, nil
}

// StructCount returns the number of Struct Table entries.
func (t *Tables) StructCount() uint32 {
	return t.structCount
}

// StructAt returns the Struct Table entry at index idx.
func (t *Tables) StructAt(idx uint32) (StructEntry, error) {
	if idx >= t.structCount {
		return StructEntry{}, fmt.Errorf("%w: struct index %d of %d", errs.ErrIndexOutOfRange, idx, t.structCount)
	}

	pos := idx * StructEntrySize

	return StructEntry{
		Type:         t.engine.Uint32(t.structs[pos : pos+4]),
		DataOrOffset: t.engine.Uint32(t.structs[pos+4 : pos+8]),
		FieldCount:   t.engine.Uint32(t.structs[pos+8 : pos+12]),
	}, nil
}

// FieldAt returns the Field Table entry at index idx.
func (t *Tables) FieldAt(idx uint32) (FieldEntry, error) {
	if idx >= t.fieldCount {
		return FieldEntry{}, fmt.Errorf("%w: field index %d of %d", errs.ErrIndexOutOfRange, idx, t.fieldCount)
	}

	pos := idx * FieldEntrySize

	return FieldEntry{
		Type:         t.engine.Uint32(t.fields[pos : pos+4]),
		LabelIndex:   t.engine.Uint32(t.fields[pos+4 : pos+8]),
		DataOrOffset: t.engine.Uint32(t.fields[pos+8 : pos+12]),
	}, nil
}

// LabelAt returns the label text at index idx with trailing null padding
// stripped.
func (t *Tables) LabelAt(idx uint32) (string, error) {
	if idx >= t.labelCount {
		return "", fmt.Errorf("%w: label index %d of %d", errs.ErrIndexOutOfRange, idx, t.labelCount)
	}

	pos := idx * LabelSize
	raw := t.labels[pos : pos+LabelSize]
	if i := bytes.IndexByte(raw, 0x00); i >= 0 {
		raw = raw[:i]
	}

	return string(raw), nil
}

// FieldIndices reads count consecutive field-table indices starting at the
// given byte offset into the Field Indices Array.
func (t *Tables) FieldIndices(offset uint32, count uint32) ([]uint32, error) {
	if offset%4 != 0 {
		return nil, fmt.Errorf("%w: misaligned field indices offset %d", errs.ErrIndexOutOfRange, offset)
	}
	end := uint64(offset) + uint64(count)*4
	if end > uint64(len(t.fieldIndices)) {
		return nil, fmt.Errorf("%w: field indices [%d, %d) of %d", errs.ErrTruncatedData, offset, end, len(t.fieldIndices))
	}

	out := make([]uint32, count)
	for i := range out {
		pos := offset + uint32(i)*4
		out[i] = t.engine.Uint32(t.fieldIndices[pos : pos+4])
	}

	return out, nil
}

// ListIndices reads one list group at the given byte offset into the List
// Indices Array: a u32 count followed by that many struct-table indices.
func (t *Tables) ListIndices(offset uint32) ([]uint32, error) {
	if offset%4 != 0 {
		return nil, fmt.Errorf("%w: misaligned list indices offset %d", errs.ErrIndexOutOfRange, offset)
	}
	if uint64(offset)+4 > uint64(len(t.listIndices)) {
		return nil, fmt.Errorf("%w: list group header at %d of %d", errs.ErrTruncatedData, offset, len(t.listIndices))
	}

	count := t.engine.Uint32(t.listIndices[offset : offset+4])
	end := uint64(offset) + 4 + uint64(count)*4
	if end > uint64(len(t.listIndices)) {
		return nil, fmt.Errorf("%w: list group [%d, %d) of %d", errs.ErrTruncatedData, offset, end, len(t.listIndices))
	}

	out := make([]uint32, count)
	for i := range out {
		pos := offset + 4 + uint32(i)*4
		out[i] = t.engine.Uint32(t.listIndices[pos : pos+4])
	}

	return out, nil
}

// FieldData returns the unstructured Field Data Block.
func (t *Tables) FieldData() []byte {
	return t.fieldData
}

func slice(data []byte, offset uint32, size uint64, name string) ([]byte, error) {
	end := uint64(offset) + size
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %s [%d, %d) exceeds buffer length %d", errs.ErrTruncatedData, name, offset, end, len(data))
	}

	return data[offset:end], nil
}

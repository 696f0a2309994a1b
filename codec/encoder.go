package codec

import (
	"fmt"

	"github.com/nwnkit/gff/encoding"
	"github.com/nwnkit/gff/endian"
	"github.com/nwnkit/gff/errs"
	"github.com/nwnkit/gff/format"
	"github.com/nwnkit/gff/internal/options"
	"github.com/nwnkit/gff/internal/pool"
	"github.com/nwnkit/gff/section"
	"github.com/nwnkit/gff/tree"
)

// Encoder flattens a tree.Struct into a GFF byte buffer.
//
// The traversal is a deterministic preorder depth-first walk: struct-table
// indices are assigned in first-visit order with the root at index 0, labels
// are deduplicated to their first-seen label-table index, and indirect
// payloads land in the Field Data Block in traversal order. The section
// descriptors in the header are recomputed from the sections actually
// produced, never taken from the caller.
//
// The Encoder is not reusable and not thread-safe; create one per Encode.
type Encoder struct {
	cfg *EncoderConfig
}

// NewEncoder creates an Encoder.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

// Encode flattens root and returns the assembled buffer.
//
// The tree is read-only to the encoder. A struct reachable twice — whether
// through a genuine cycle or aliased ownership — yields
// errs.ErrCyclicReference, since the format's exclusive-ownership model
// cannot represent either.
func (e *Encoder) Encode(root *tree.Struct) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("encode: nil root struct")
	}

	engine := endian.GetLittleEndianEngine()

	f := &flattener{
		engine:       engine,
		fields:       pool.GetSectionBuffer(),
		labels:       pool.GetSectionBuffer(),
		fieldIndices: pool.GetSectionBuffer(),
		listIndices:  pool.GetSectionBuffer(),
		data:         encoding.NewDataWriter(engine),
		labelIdx:     make(map[string]uint32),
		visited:      make(map[*tree.Struct]struct{}),
	}
	defer f.release()

	if err := f.run(root); err != nil {
		return nil, err
	}

	return f.assemble(e.cfg.fileType), nil
}

// flattener accumulates the six sections during the walk.
type flattener struct {
	engine       endian.EndianEngine
	structs      []section.StructEntry
	fields       *pool.ByteBuffer
	labels       *pool.ByteBuffer
	fieldIndices *pool.ByteBuffer
	listIndices  *pool.ByteBuffer
	data         *encoding.DataWriter
	labelIdx     map[string]uint32
	fieldCount   uint32
	visited      map[*tree.Struct]struct{}
	stack        []encFrame
}

// encFrame is a struct whose table index is assigned but whose fields are
// not yet emitted.
type encFrame struct {
	st  *tree.Struct
	idx uint32
}

func (f *flattener) release() {
	pool.PutSectionBuffer(f.fields)
	pool.PutSectionBuffer(f.labels)
	pool.PutSectionBuffer(f.fieldIndices)
	pool.PutSectionBuffer(f.listIndices)
	f.data.Release()
}

// assign reserves the next struct-table index for st and schedules its
// fields for emission.
func (f *flattener) assign(st *tree.Struct) (uint32, error) {
	if st == nil {
		return 0, fmt.Errorf("encode: nil struct")
	}
	if _, ok := f.visited[st]; ok {
		return 0, fmt.Errorf("%w: struct visited twice", errs.ErrCyclicReference)
	}
	f.visited[st] = struct{}{}

	idx := uint32(len(f.structs))
	f.structs = append(f.structs, section.StructEntry{})
	f.stack = append(f.stack, encFrame{st: st, idx: idx})

	return idx, nil
}

func (f *flattener) run(root *tree.Struct) error {
	if _, err := f.assign(root); err != nil {
		return err
	}

	for len(f.stack) > 0 {
		fr := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]

		if err := f.emitStruct(fr.st, fr.idx); err != nil {
			return err
		}
	}

	return nil
}

func (f *flattener) emitStruct(st *tree.Struct, idx uint32) error {
	fields := st.Fields()
	entry := section.StructEntry{
		Type:       st.TypeID(),
		FieldCount: uint32(len(fields)),
	}

	switch len(fields) {
	case 0:
		// DataOrOffset is unused; leave zero.

	case 1:
		// Single-field shortcut: the field-table index is stored directly.
		fieldIdx, err := f.emitField(fields[0])
		if err != nil {
			return err
		}
		entry.DataOrOffset = fieldIdx

	default:
		indices, cleanup := pool.GetUint32Slice(len(fields))
		defer cleanup()

		for i, fld := range fields {
			fieldIdx, err := f.emitField(fld)
			if err != nil {
				return err
			}
			indices[i] = fieldIdx
		}

		entry.DataOrOffset = uint32(f.fieldIndices.Len())
		f.fieldIndices.Grow(4 * len(indices))
		for _, fieldIdx := range indices {
			f.fieldIndices.B = f.engine.AppendUint32(f.fieldIndices.B, fieldIdx)
		}
	}

	f.structs[idx] = entry

	return nil
}

func (f *flattener) emitField(fld tree.Field) (uint32, error) {
	labelIdx := f.emitLabel(fld.Label)

	var payload uint32
	switch fld.Value.Type() {
	case format.TypeStruct:
		child, _ := fld.Value.Struct()
		childIdx, err := f.assign(child)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", fld.Label, err)
		}
		payload = childIdx

	case format.TypeList:
		children, _ := fld.Value.List()
		offset := uint32(f.listIndices.Len())
		f.listIndices.Grow(4 * (1 + len(children)))
		f.listIndices.B = f.engine.AppendUint32(f.listIndices.B, uint32(len(children)))
		for _, child := range children {
			childIdx, err := f.assign(child)
			if err != nil {
				return 0, fmt.Errorf("field %q: %w", fld.Label, err)
			}
			f.listIndices.B = f.engine.AppendUint32(f.listIndices.B, childIdx)
		}
		payload = offset

	default:
		var err error
		payload, err = encoding.EncodeValue(fld.Value, f.data)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", fld.Label, err)
		}
	}

	fieldIdx := f.fieldCount
	f.fieldCount++

	f.fields.Grow(section.FieldEntrySize)
	f.fields.B = f.engine.AppendUint32(f.fields.B, uint32(fld.Value.Type()))
	f.fields.B = f.engine.AppendUint32(f.fields.B, labelIdx)
	f.fields.B = f.engine.AppendUint32(f.fields.B, payload)

	return fieldIdx, nil
}

// emitLabel returns the label-table index for text, reusing the first-seen
// index for repeated labels anywhere in the tree. Labels longer than 16
// bytes are truncated before deduplication.
func (f *flattener) emitLabel(text string) uint32 {
	if len(text) > section.LabelSize {
		text = text[:section.LabelSize]
	}

	if idx, ok := f.labelIdx[text]; ok {
		return idx
	}

	idx := uint32(len(f.labelIdx))
	f.labelIdx[text] = idx

	var slot [section.LabelSize]byte
	copy(slot[:], text)
	f.labels.MustWrite(slot[:])

	return idx
}

// assemble lays the sections out after the header in canonical order and
// fills in the recomputed descriptors.
func (f *flattener) assemble(fileType string) []byte {
	structBytes := make([]byte, 0, len(f.structs)*section.StructEntrySize)
	for _, entry := range f.structs {
		structBytes = f.engine.AppendUint32(structBytes, entry.Type)
		structBytes = f.engine.AppendUint32(structBytes, entry.DataOrOffset)
		structBytes = f.engine.AppendUint32(structBytes, entry.FieldCount)
	}

	hdr := section.NewHeader(fileType)
	offset := uint32(section.HeaderSize)
	place := func(size int, count uint32) section.SectionInfo {
		info := section.SectionInfo{Offset: offset, Count: count}
		offset += uint32(size)

		return info
	}

	hdr.Structs = place(len(structBytes), uint32(len(f.structs)))
	hdr.Fields = place(f.fields.Len(), f.fieldCount)
	hdr.Labels = place(f.labels.Len(), uint32(len(f.labelIdx)))
	hdr.FieldData = place(f.data.Len(), uint32(f.data.Len()))
	hdr.FieldIndices = place(f.fieldIndices.Len(), uint32(f.fieldIndices.Len()))
	hdr.ListIndices = place(f.listIndices.Len(), uint32(f.listIndices.Len()))

	buf := make([]byte, 0, offset)
	buf = append(buf, hdr.Bytes(f.engine)...)
	buf = append(buf, structBytes...)
	buf = append(buf, f.fields.Bytes()...)
	buf = append(buf, f.labels.Bytes()...)
	buf = append(buf, f.data.Bytes()...)
	buf = append(buf, f.fieldIndices.Bytes()...)
	buf = append(buf, f.listIndices.Bytes()...)

	return buf
}

// Encode flattens root into a GFF buffer.
func Encode(root *tree.Struct, opts ...EncoderOption) ([]byte, error) {
	e, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return e.Encode(root)
}

package codec

import (
	"fmt"

	"github.com/nwnkit/gff/encoding"
	"github.com/nwnkit/gff/endian"
	"github.com/nwnkit/gff/errs"
	"github.com/nwnkit/gff/format"
	"github.com/nwnkit/gff/internal/options"
	"github.com/nwnkit/gff/section"
	"github.com/nwnkit/gff/tree"
)

// Decoder decodes a complete in-memory GFF buffer into a tree.Struct.
//
// The Decoder is not reusable and not thread-safe; create one per buffer.
// It retains no reference into the buffer after Decode returns — all text
// and binary payloads are copied into the tree.
type Decoder struct {
	header section.Header
	tables *section.Tables
	reader *encoding.DataReader
	cfg    *DecoderConfig
}

// NewDecoder validates the header and section descriptors of data and
// prepares for decoding.
//
// Returns errs.ErrInvalidHeaderSize, errs.ErrInvalidMagic,
// errs.ErrUnsupportedVersion or errs.ErrTruncatedData on a malformed
// preamble.
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	cfg := newDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()

	header, err := section.ParseHeader(data, engine)
	if err != nil {
		return nil, err
	}
	if err := header.ValidateFileType(cfg.fileTypes); err != nil {
		return nil, err
	}

	tables, err := section.NewTables(data, &header, engine)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		header: header,
		tables: tables,
		reader: encoding.NewDataReader(tables.FieldData(), engine),
		cfg:    cfg,
	}, nil
}

// Header returns the parsed header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// Decode builds the tree rooted at struct-table index 0.
//
// The traversal is an explicit-stack depth-first walk equivalent to the
// natural recursion: a struct's fields resolve in field order, and nested
// structs and list elements complete before the parent advances. A struct
// index revisited on the current path yields errs.ErrCyclicReference; any
// index past its table's bounds yields errs.ErrIndexOutOfRange.
func (d *Decoder) Decode() (*tree.Struct, error) {
	if d.tables.StructCount() == 0 {
		return nil, fmt.Errorf("%w: empty struct table", errs.ErrIndexOutOfRange)
	}

	b := &builder{
		tables:   d.tables,
		reader:   d.reader,
		maxDepth: d.cfg.maxDepth,
		onPath:   make(map[uint32]struct{}),
	}

	return b.run(0)
}

// listState tracks one List field mid-resolution: the elements decoded so
// far and the struct indices still pending. At most one listState is active
// per frame, which keeps the frame stack congruent with the ancestor path.
type listState struct {
	label string
	idxs  []uint32
	pos   int
	acc   []*tree.Struct
}

// frame is one suspended struct on the traversal stack.
type frame struct {
	idx    uint32
	out    *tree.Struct
	fields []uint32
	pos    int
	list   *listState
	done   func(*tree.Struct) error
}

type builder struct {
	tables   *section.Tables
	reader   *encoding.DataReader
	maxDepth int
	stack    []*frame
	onPath   map[uint32]struct{}
}

func (b *builder) push(idx uint32, done func(*tree.Struct) error) error {
	if _, ok := b.onPath[idx]; ok {
		return fmt.Errorf("%w: struct %d revisited", errs.ErrCyclicReference, idx)
	}
	if len(b.stack) >= b.maxDepth {
		return fmt.Errorf("%w: %d", errs.ErrMaxDepthExceeded, b.maxDepth)
	}

	entry, err := b.tables.StructAt(idx)
	if err != nil {
		return err
	}

	fields, err := b.fieldIndicesFor(entry)
	if err != nil {
		return fmt.Errorf("struct %d: %w", idx, err)
	}

	b.onPath[idx] = struct{}{}
	b.stack = append(b.stack, &frame{
		idx:    idx,
		out:    tree.New(entry.Type),
		fields: fields,
		done:   done,
	})

	return nil
}

// fieldIndicesFor resolves a struct entry to its field-table indices. A
// single-field struct stores the field index directly in data-or-offset;
// multi-field structs store a byte offset into the Field Indices Array.
func (b *builder) fieldIndicesFor(entry section.StructEntry) ([]uint32, error) {
	switch entry.FieldCount {
	case 0:
		return nil, nil
	case 1:
		return []uint32{entry.DataOrOffset}, nil
	default:
		return b.tables.FieldIndices(entry.DataOrOffset, entry.FieldCount)
	}
}

func (b *builder) run(rootIdx uint32) (*tree.Struct, error) {
	var root *tree.Struct
	if err := b.push(rootIdx, func(st *tree.Struct) error {
		root = st
		return nil
	}); err != nil {
		return nil, err
	}

	for len(b.stack) > 0 {
		f := b.stack[len(b.stack)-1]

		if f.list != nil {
			if err := b.stepList(f); err != nil {
				return nil, err
			}

			continue
		}

		if f.pos == len(f.fields) {
			b.stack = b.stack[:len(b.stack)-1]
			delete(b.onPath, f.idx)
			if err := f.done(f.out); err != nil {
				return nil, fmt.Errorf("struct %d: %w", f.idx, err)
			}

			continue
		}

		if err := b.stepField(f); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func (b *builder) stepList(f *frame) error {
	ls := f.list
	if ls.pos < len(ls.idxs) {
		idx := ls.idxs[ls.pos]
		ls.pos++

		return b.push(idx, func(child *tree.Struct) error {
			ls.acc = append(ls.acc, child)
			return nil
		})
	}

	if err := f.out.Add(ls.label, tree.List(ls.acc)); err != nil {
		return fmt.Errorf("struct %d: %w", f.idx, err)
	}
	f.list = nil
	f.pos++

	return nil
}

func (b *builder) stepField(f *frame) error {
	fieldIdx := f.fields[f.pos]

	fe, err := b.tables.FieldAt(fieldIdx)
	if err != nil {
		return fmt.Errorf("struct %d: %w", f.idx, err)
	}

	label, err := b.tables.LabelAt(fe.LabelIndex)
	if err != nil {
		return fmt.Errorf("field %d: %w", fieldIdx, err)
	}

	typ := format.FieldType(fe.Type)
	switch typ {
	case format.TypeStruct:
		f.pos++

		return b.push(fe.DataOrOffset, func(child *tree.Struct) error {
			return f.out.Add(label, tree.StructValue(child))
		})

	case format.TypeList:
		idxs, err := b.tables.ListIndices(fe.DataOrOffset)
		if err != nil {
			return fmt.Errorf("field %q: %w", label, err)
		}
		f.list = &listState{
			label: label,
			idxs:  idxs,
			acc:   make([]*tree.Struct, 0, len(idxs)),
		}

		return nil

	default:
		v, err := encoding.DecodeValue(typ, fe.DataOrOffset, b.reader)
		if err != nil {
			return fmt.Errorf("field %q: %w", label, err)
		}
		if err := f.out.Add(label, v); err != nil {
			return fmt.Errorf("struct %d: %w", f.idx, err)
		}
		f.pos++

		return nil
	}
}

// Decode decodes a complete GFF buffer into its root struct.
func Decode(data []byte, opts ...DecoderOption) (*tree.Struct, error) {
	d, err := NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	return d.Decode()
}

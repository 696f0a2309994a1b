package encoding

import (
	"fmt"
	"math"

	"github.com/nwnkit/gff/endian"
	"github.com/nwnkit/gff/errs"
	"github.com/nwnkit/gff/format"
	"github.com/nwnkit/gff/internal/pool"
	"github.com/nwnkit/gff/tree"
)

// MaxResRefLen is the on-disk limit of a resource reference.
const MaxResRefLen = 16

// DataReader reads indirect payloads out of the Field Data Block. Every read
// is bounds checked against the block length.
type DataReader struct {
	data   []byte
	engine endian.EndianEngine
}

// NewDataReader creates a reader over a Field Data Block.
func NewDataReader(data []byte, engine endian.EndianEngine) *DataReader {
	return &DataReader{data: data, engine: engine}
}

func (r *DataReader) bytesAt(offset uint32, n uint64, what string) ([]byte, error) {
	end := uint64(offset) + n
	if end > uint64(len(r.data)) {
		return nil, fmt.Errorf("%w: %s [%d, %d) of %d byte data block", errs.ErrTruncatedData, what, offset, end, len(r.data))
	}

	return r.data[offset:end], nil
}

// Dword64At reads an 8-byte unsigned integer at the given block offset.
func (r *DataReader) Dword64At(offset uint32) (uint64, error) {
	b, err := r.bytesAt(offset, 8, "dword64")
	if err != nil {
		return 0, err
	}

	return r.engine.Uint64(b), nil
}

// Int64At reads an 8-byte signed integer at the given block offset.
func (r *DataReader) Int64At(offset uint32) (int64, error) {
	v, err := r.Dword64At(offset)
	if err != nil {
		return 0, err
	}

	return int64(v), nil
}

// DoubleAt reads an 8-byte float at the given block offset.
func (r *DataReader) DoubleAt(offset uint32) (float64, error) {
	v, err := r.Dword64At(offset)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

// ExoStringAt reads a u32 length-prefixed string at the given block offset.
func (r *DataReader) ExoStringAt(offset uint32) (string, error) {
	b, err := r.bytesAt(offset, 4, "string length")
	if err != nil {
		return "", err
	}
	length := r.engine.Uint32(b)

	raw, err := r.bytesAt(offset+4, uint64(length), "string data")
	if err != nil {
		return "", err
	}

	return DecodeText(format.LangEnglish, raw)
}

// ResRefAt reads a u8 length-prefixed resource reference at the given block
// offset. A stored length above 16 is a format violation.
func (r *DataReader) ResRefAt(offset uint32) (string, error) {
	b, err := r.bytesAt(offset, 1, "resref length")
	if err != nil {
		return "", err
	}
	length := b[0]
	if length > MaxResRefLen {
		return "", fmt.Errorf("%w: stored length %d", errs.ErrResRefTooLong, length)
	}

	raw, err := r.bytesAt(offset+1, uint64(length), "resref data")
	if err != nil {
		return "", err
	}

	return DecodeText(format.LangEnglish, raw)
}

// VoidAt reads a u32 length-prefixed binary blob at the given block offset.
// The returned slice is an owned copy.
func (r *DataReader) VoidAt(offset uint32) ([]byte, error) {
	b, err := r.bytesAt(offset, 4, "void length")
	if err != nil {
		return nil, err
	}
	length := r.engine.Uint32(b)

	raw, err := r.bytesAt(offset+4, uint64(length), "void data")
	if err != nil {
		return nil, err
	}

	out := make([]byte, length)
	copy(out, raw)

	return out, nil
}

// LocStringAt reads a CExoLocString at the given block offset: a u32 total
// byte size, a u32 string reference, a u32 substring count, then that many
// (u32 language*2+gender, u32 length, bytes) tuples.
//
// Two substrings sharing a (language, gender) pair yield
// errs.ErrDuplicateLocalization.
func (r *DataReader) LocStringAt(offset uint32) (*tree.LocString, error) {
	b, err := r.bytesAt(offset, 4, "locstring size")
	if err != nil {
		return nil, err
	}
	total := r.engine.Uint32(b)

	body, err := r.bytesAt(offset+4, uint64(total), "locstring body")
	if err != nil {
		return nil, err
	}
	if len(body) < 8 {
		return nil, fmt.Errorf("%w: locstring body of %d bytes", errs.ErrTruncatedData, len(body))
	}

	strRef := r.engine.Uint32(body[0:4])
	count := r.engine.Uint32(body[4:8])
	loc := tree.NewLocString(strRef)

	pos := uint64(8)
	for i := uint32(0); i < count; i++ {
		if pos+8 > uint64(len(body)) {
			return nil, fmt.Errorf("%w: locstring substring %d header", errs.ErrTruncatedData, i)
		}
		id := r.engine.Uint32(body[pos : pos+4])
		length := r.engine.Uint32(body[pos+4 : pos+8])
		pos += 8

		if pos+uint64(length) > uint64(len(body)) {
			return nil, fmt.Errorf("%w: locstring substring %d data", errs.ErrTruncatedData, i)
		}
		raw := body[pos : pos+uint64(length)]
		pos += uint64(length)

		lang := format.Language(id / 2)
		gender := format.Gender(id % 2)
		text, err := DecodeText(lang, raw)
		if err != nil {
			return nil, err
		}
		if err := loc.Add(lang, gender, text); err != nil {
			return nil, err
		}
	}

	return loc, nil
}

// DataWriter builds the Field Data Block during encoding. Each Append
// returns the byte offset the payload was placed at, which the flattener
// stores in the field entry.
type DataWriter struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewDataWriter creates a writer backed by a pooled buffer. Call Release
// when the encoded output has been copied out.
func NewDataWriter(engine endian.EndianEngine) *DataWriter {
	return &DataWriter{
		buf:    pool.GetSectionBuffer(),
		engine: engine,
	}
}

// Len returns the number of bytes written so far.
func (w *DataWriter) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated block. The slice is invalidated by Release.
func (w *DataWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// Release returns the underlying buffer to the pool.
func (w *DataWriter) Release() {
	pool.PutSectionBuffer(w.buf)
	w.buf = nil
}

func (w *DataWriter) offset() uint32 {
	return uint32(w.buf.Len())
}

// AppendDword64 appends an 8-byte unsigned integer.
func (w *DataWriter) AppendDword64(v uint64) uint32 {
	off := w.offset()
	w.buf.B = w.engine.AppendUint64(w.buf.B, v)

	return off
}

// AppendInt64 appends an 8-byte signed integer.
func (w *DataWriter) AppendInt64(v int64) uint32 {
	return w.AppendDword64(uint64(v))
}

// AppendDouble appends an 8-byte float.
func (w *DataWriter) AppendDouble(v float64) uint32 {
	return w.AppendDword64(math.Float64bits(v))
}

// AppendExoString appends a u32 length-prefixed string in the English
// charset.
func (w *DataWriter) AppendExoString(text string) (uint32, error) {
	raw, err := EncodeText(format.LangEnglish, text)
	if err != nil {
		return 0, err
	}

	off := w.offset()
	w.buf.Grow(4 + len(raw))
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(len(raw)))
	w.buf.MustWrite(raw)

	return off, nil
}

// AppendResRef appends a u8 length-prefixed resource reference. References
// longer than 16 bytes yield errs.ErrResRefTooLong.
func (w *DataWriter) AppendResRef(text string) (uint32, error) {
	raw, err := EncodeText(format.LangEnglish, text)
	if err != nil {
		return 0, err
	}
	if len(raw) > MaxResRefLen {
		return 0, fmt.Errorf("%w: %q is %d bytes", errs.ErrResRefTooLong, text, len(raw))
	}

	off := w.offset()
	w.buf.Grow(1 + len(raw))
	w.buf.MustWrite([]byte{uint8(len(raw))})
	w.buf.MustWrite(raw)

	return off, nil
}

// AppendVoid appends a u32 length-prefixed binary blob.
func (w *DataWriter) AppendVoid(data []byte) uint32 {
	off := w.offset()
	w.buf.Grow(4 + len(data))
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(len(data)))
	w.buf.MustWrite(data)

	return off
}

// AppendLocString appends a CExoLocString in the layout LocStringAt reads.
func (w *DataWriter) AppendLocString(loc *tree.LocString) (uint32, error) {
	type rawEntry struct {
		id   uint32
		data []byte
	}

	entries := loc.Entries()
	raws := make([]rawEntry, 0, len(entries))
	total := 8 // strref + count
	for _, e := range entries {
		raw, err := EncodeText(e.Lang, e.Text)
		if err != nil {
			return 0, err
		}
		raws = append(raws, rawEntry{id: uint32(e.Lang)*2 + uint32(e.Gender), data: raw})
		total += 8 + len(raw)
	}

	off := w.offset()
	w.buf.Grow(4 + total)
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(total))
	w.buf.B = w.engine.AppendUint32(w.buf.B, loc.StrRef)
	w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(len(raws)))
	for _, re := range raws {
		w.buf.B = w.engine.AppendUint32(w.buf.B, re.id)
		w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(len(re.data)))
		w.buf.MustWrite(re.data)
	}

	return off, nil
}

// DecodeValue resolves a field's 4-byte payload into a tree.Value per the
// storage-class rule of its type tag: inline types take their value from the
// payload itself, indirect types treat it as a Field Data Block offset.
//
// Struct and List tags are rejected here; their payloads are table indices
// that the tree builder resolves with the context of the full section set.
func DecodeValue(typ format.FieldType, payload uint32, r *DataReader) (tree.Value, error) {
	switch typ {
	case format.TypeByte:
		return tree.Byte(uint8(payload)), nil
	case format.TypeChar:
		return tree.Char(int8(uint8(payload))), nil
	case format.TypeWord:
		return tree.Word(uint16(payload)), nil
	case format.TypeShort:
		return tree.Short(int16(uint16(payload))), nil
	case format.TypeDword:
		return tree.Dword(payload), nil
	case format.TypeInt:
		return tree.Int(int32(payload)), nil
	case format.TypeFloat:
		return tree.Float(math.Float32frombits(payload)), nil
	case format.TypeDword64:
		v, err := r.Dword64At(payload)
		if err != nil {
			return tree.Value{}, err
		}

		return tree.Dword64(v), nil
	case format.TypeInt64:
		v, err := r.Int64At(payload)
		if err != nil {
			return tree.Value{}, err
		}

		return tree.Int64(v), nil
	case format.TypeDouble:
		v, err := r.DoubleAt(payload)
		if err != nil {
			return tree.Value{}, err
		}

		return tree.Double(v), nil
	case format.TypeExoString:
		v, err := r.ExoStringAt(payload)
		if err != nil {
			return tree.Value{}, err
		}

		return tree.ExoString(v), nil
	case format.TypeResRef:
		v, err := r.ResRefAt(payload)
		if err != nil {
			return tree.Value{}, err
		}

		return tree.ResRef(v), nil
	case format.TypeLocString:
		loc, err := r.LocStringAt(payload)
		if err != nil {
			return tree.Value{}, err
		}

		return tree.LocStringValue(loc), nil
	case format.TypeVoid:
		v, err := r.VoidAt(payload)
		if err != nil {
			return tree.Value{}, err
		}

		return tree.Void(v), nil
	default:
		return tree.Value{}, fmt.Errorf("%w: tag %d", errs.ErrInvalidFieldType, uint32(typ))
	}
}

// EncodeValue produces a field's 4-byte payload, appending indirect payloads
// to the data writer and returning the resulting block offset. The exact
// inverse of DecodeValue; Struct and List values are the flattener's concern.
func EncodeValue(v tree.Value, w *DataWriter) (uint32, error) {
	switch v.Type() {
	case format.TypeByte:
		val, _ := v.Byte()
		return uint32(val), nil
	case format.TypeChar:
		val, _ := v.Char()
		return uint32(uint8(val)), nil
	case format.TypeWord:
		val, _ := v.Word()
		return uint32(val), nil
	case format.TypeShort:
		val, _ := v.Short()
		return uint32(uint16(val)), nil
	case format.TypeDword:
		val, _ := v.Dword()
		return val, nil
	case format.TypeInt:
		val, _ := v.Int()
		return uint32(val), nil
	case format.TypeFloat:
		val, _ := v.Float()
		return math.Float32bits(val), nil
	case format.TypeDword64:
		val, _ := v.Dword64()
		return w.AppendDword64(val), nil
	case format.TypeInt64:
		val, _ := v.Int64()
		return w.AppendInt64(val), nil
	case format.TypeDouble:
		val, _ := v.Double()
		return w.AppendDouble(val), nil
	case format.TypeExoString:
		val, _ := v.ExoString()
		return w.AppendExoString(val)
	case format.TypeResRef:
		val, _ := v.ResRef()
		return w.AppendResRef(val)
	case format.TypeLocString:
		loc, _ := v.LocString()
		return w.AppendLocString(loc)
	case format.TypeVoid:
		val, _ := v.Void()
		return w.AppendVoid(val), nil
	default:
		return 0, fmt.Errorf("%w: tag %d", errs.ErrInvalidFieldType, uint32(v.Type()))
	}
}

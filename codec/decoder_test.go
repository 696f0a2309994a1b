package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nwnkit/gff/endian"
	"github.com/nwnkit/gff/errs"
	"github.com/nwnkit/gff/format"
	"github.com/nwnkit/gff/section"
)

// rawSections holds hand-built section bytes for crafting test buffers.
type rawSections struct {
	structs   []byte
	fields    []byte
	labels    []byte
	data      []byte
	fieldIdxs []byte
	listIdxs  []byte
}

// craftBuffer assembles a buffer with a consistent header over the given
// sections, laid out in canonical order.
func craftBuffer(t *testing.T, s rawSections) []byte {
	t.Helper()

	engine := endian.GetLittleEndianEngine()
	hdr := section.NewHeader(format.FileTypeGFF)

	offset := uint32(section.HeaderSize)
	place := func(b []byte, count uint32) section.SectionInfo {
		info := section.SectionInfo{Offset: offset, Count: count}
		offset += uint32(len(b))

		return info
	}

	hdr.Structs = place(s.structs, uint32(len(s.structs)/section.StructEntrySize))
	hdr.Fields = place(s.fields, uint32(len(s.fields)/section.FieldEntrySize))
	hdr.Labels = place(s.labels, uint32(len(s.labels)/section.LabelSize))
	hdr.FieldData = place(s.data, uint32(len(s.data)))
	hdr.FieldIndices = place(s.fieldIdxs, uint32(len(s.fieldIdxs)))
	hdr.ListIndices = place(s.listIdxs, uint32(len(s.listIdxs)))

	buf := hdr.Bytes(engine)
	buf = append(buf, s.structs...)
	buf = append(buf, s.fields...)
	buf = append(buf, s.labels...)
	buf = append(buf, s.data...)
	buf = append(buf, s.fieldIdxs...)
	buf = append(buf, s.listIdxs...)

	return buf
}

func u32s(vals ...uint32) []byte {
	engine := endian.GetLittleEndianEngine()
	out := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		out = engine.AppendUint32(out, v)
	}

	return out
}

func label16(text string) []byte {
	var slot [section.LabelSize]byte
	copy(slot[:], text)

	return slot[:]
}

func TestDecode_MinimalEmptyRoot(t *testing.T) {
	buf := craftBuffer(t, rawSections{
		structs: u32s(0xFFFFFFFF, 0, 0),
	})

	got, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFFFFFF), got.TypeID())
	require.Equal(t, 0, got.Len())
}

func TestDecode_SingleFieldShortcut(t *testing.T) {
	// Struct 0 has one field; its entry holds the field index directly and
	// the Field Indices Array stays empty.
	buf := craftBuffer(t, rawSections{
		structs: u32s(0, 0, 1),
		fields:  u32s(uint32(format.TypeInt), 0, 0xFFFFFFC9), // -55
		labels:  label16("HP"),
	})

	got, err := Decode(buf)
	require.NoError(t, err)
	hp, err := got.Int("HP")
	require.NoError(t, err)
	require.Equal(t, int32(-55), hp)
}

func TestDecode_EmptyStructTable(t *testing.T) {
	buf := craftBuffer(t, rawSections{})

	_, err := Decode(buf)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestDecode_MalformedPreamble(t *testing.T) {
	t.Run("Short buffer", func(t *testing.T) {
		_, err := Decode([]byte("GFF V3.2"))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Wrong version", func(t *testing.T) {
		buf := craftBuffer(t, rawSections{structs: u32s(0, 0, 0)})
		copy(buf[4:8], "V3.3")

		_, err := Decode(buf)
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})

	t.Run("Unprintable file type", func(t *testing.T) {
		buf := craftBuffer(t, rawSections{structs: u32s(0, 0, 0)})
		buf[0] = 0x01

		_, err := Decode(buf)
		require.ErrorIs(t, err, errs.ErrInvalidMagic)
	})
}

func TestDecode_SectionBeyondBuffer(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	t.Run("Field table offset past buffer", func(t *testing.T) {
		buf := craftBuffer(t, rawSections{
			structs: u32s(0, 0, 1),
			fields:  u32s(uint32(format.TypeByte), 0, 1),
			labels:  label16("A"),
		})
		copy(buf[16:20], engine.AppendUint32(nil, uint32(len(buf)+100)))

		_, err := Decode(buf)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("Field table count past buffer", func(t *testing.T) {
		buf := craftBuffer(t, rawSections{structs: u32s(0, 0, 0)})
		// Claim eight field entries that the buffer does not contain.
		copy(buf[20:24], engine.AppendUint32(nil, 8))

		_, err := Decode(buf)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})
}

func TestDecode_DanglingIndices(t *testing.T) {
	t.Run("Field index past field table", func(t *testing.T) {
		buf := craftBuffer(t, rawSections{
			structs: u32s(0, 7, 1), // field index 7, table has one entry
			fields:  u32s(uint32(format.TypeByte), 0, 1),
			labels:  label16("A"),
		})

		_, err := Decode(buf)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("Label index past label table", func(t *testing.T) {
		buf := craftBuffer(t, rawSections{
			structs: u32s(0, 0, 1),
			fields:  u32s(uint32(format.TypeByte), 3, 1),
			labels:  label16("A"),
		})

		_, err := Decode(buf)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("List offset past list indices array", func(t *testing.T) {
		buf := craftBuffer(t, rawSections{
			structs: u32s(0, 0, 1),
			fields:  u32s(uint32(format.TypeList), 0, 64),
			labels:  label16("ItemList"),
		})

		_, err := Decode(buf)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("Data offset past data block", func(t *testing.T) {
		buf := craftBuffer(t, rawSections{
			structs: u32s(0, 0, 1),
			fields:  u32s(uint32(format.TypeDword64), 0, 128),
			labels:  label16("PlayTime"),
		})

		_, err := Decode(buf)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})
}

func TestDecode_InvalidFieldType(t *testing.T) {
	buf := craftBuffer(t, rawSections{
		structs: u32s(0, 0, 1),
		fields:  u32s(99, 0, 0),
		labels:  label16("Mystery"),
	})

	_, err := Decode(buf)
	require.ErrorIs(t, err, errs.ErrInvalidFieldType)
}

func TestDecode_CyclicStructField(t *testing.T) {
	// Struct 0's only field is a Struct field pointing back at struct 0.
	buf := craftBuffer(t, rawSections{
		structs: u32s(0, 0, 1),
		fields:  u32s(uint32(format.TypeStruct), 0, 0),
		labels:  label16("Self"),
	})

	_, err := Decode(buf)
	require.ErrorIs(t, err, errs.ErrCyclicReference)
}

func TestDecode_CyclicListField(t *testing.T) {
	// Struct 1 holds a list whose single element is struct 1 again.
	buf := craftBuffer(t, rawSections{
		structs: append(
			u32s(0, 0, 1), // root: Struct field -> struct 1
			u32s(1, 1, 1)..., // struct 1: List field at field 1
		),
		fields: append(
			u32s(uint32(format.TypeStruct), 0, 1),
			u32s(uint32(format.TypeList), 1, 0)...,
		),
		labels:   append(label16("Inner"), label16("Loop")...),
		listIdxs: u32s(1, 1),
	})

	_, err := Decode(buf)
	require.ErrorIs(t, err, errs.ErrCyclicReference)
}

func TestDecode_SharedListElementAcrossSiblings(t *testing.T) {
	// Struct 1 appears in both sibling lists. No ancestor revisits itself, so
	// this is a DAG the decoder accepts, materialized as two separate structs.
	buf := craftBuffer(t, rawSections{
		structs: append(
			u32s(0, 0, 2),
			u32s(7, 0, 0)...,
		),
		fields: append(
			u32s(uint32(format.TypeList), 0, 0),
			u32s(uint32(format.TypeList), 1, 8)...,
		),
		labels:    append(label16("ListA"), label16("ListB")...),
		fieldIdxs: u32s(0, 1),
		listIdxs:  append(u32s(1, 1), u32s(1, 1)...),
	})

	got, err := Decode(buf)
	require.NoError(t, err)

	a, err := got.List("ListA")
	require.NoError(t, err)
	b, err := got.List("ListB")
	require.NoError(t, err)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	require.True(t, a[0].Equal(b[0]))
	require.NotSame(t, a[0], b[0])
}

func TestDecode_DuplicateLocalization(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	body := u32s(0xFFFFFFFF, 2) // strref, count
	for i := 0; i < 2; i++ {
		body = append(body, u32s(0, 2)...) // English male, two bytes
		body = append(body, 'h', 'i')
	}
	block := engine.AppendUint32(nil, uint32(len(body)))
	block = append(block, body...)

	buf := craftBuffer(t, rawSections{
		structs: u32s(0, 0, 1),
		fields:  u32s(uint32(format.TypeLocString), 0, 0),
		labels:  label16("LocalizedName"),
		data:    block,
	})

	_, err := Decode(buf)
	require.ErrorIs(t, err, errs.ErrDuplicateLocalization)
}

func TestDecode_DuplicateLabelInStruct(t *testing.T) {
	buf := craftBuffer(t, rawSections{
		structs: u32s(0, 0, 2),
		fields: append(
			u32s(uint32(format.TypeByte), 0, 1),
			u32s(uint32(format.TypeByte), 0, 2)...,
		),
		labels:    label16("Str"),
		fieldIdxs: u32s(0, 1),
	})

	_, err := Decode(buf)
	require.ErrorIs(t, err, errs.ErrDuplicateLabel)
}

func TestDecode_OwnedCopies(t *testing.T) {
	// Mutating the source buffer after Decode must not reach the tree.
	buf := craftBuffer(t, rawSections{
		structs: u32s(0, 0, 1),
		fields:  u32s(uint32(format.TypeVoid), 0, 0),
		labels:  label16("Payload"),
		data:    append(u32s(4), 1, 2, 3, 4),
	})

	got, err := Decode(buf)
	require.NoError(t, err)

	for i := range buf {
		buf[i] = 0xFF
	}

	blob, err := got.Void("Payload")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, blob)
}

package section

import (
	"fmt"

	"github.com/nwnkit/gff/endian"
	"github.com/nwnkit/gff/errs"
	"github.com/nwnkit/gff/format"
)

// SectionInfo is an (offset, count) descriptor delimiting one packed section
// of the file.
//
// Offset is a byte offset from the start of the buffer. Count is an entry
// count for the Struct, Field and Label tables, and a byte size for the
// Field Data Block, Field Indices Array and List Indices Array.
type SectionInfo struct {
	Offset uint32
	Count  uint32
}

// Header represents the fixed-size header section at the start of a GFF
// buffer.
type Header struct {
	// FileType is the 4-byte ASCII file category tag, e.g. "BIC " or "UTI ".
	FileType string // byte offset 0-3
	// Version is the 4-byte ASCII version tag; only "V3.2" is supported.
	Version string // byte offset 4-7

	Structs      SectionInfo // byte offset 8-15
	Fields       SectionInfo // byte offset 16-23
	Labels       SectionInfo // byte offset 24-31
	FieldData    SectionInfo // byte offset 32-39
	FieldIndices SectionInfo // byte offset 40-47
	ListIndices  SectionInfo // byte offset 48-55
}

// NewHeader creates a new Header for the given file type tag with the
// supported version. The section descriptors are recomputed by the encoder
// when it finishes; they are never taken from caller-supplied values.
func NewHeader(fileType string) *Header {
	return &Header{
		FileType: padTag(fileType),
		Version:  format.Version,
	}
}

// Parse parses the header from a byte slice.
//
// Returns errs.ErrInvalidHeaderSize if data is shorter than HeaderSize, and
// errs.ErrUnsupportedVersion if the version tag is not "V3.2". The file type
// tag is captured as-is; whitelist validation is the decoder's concern since
// the accepted set varies per caller.
func (h *Header) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.FileType = string(data[0:4])
	h.Version = string(data[4:8])

	if h.Version != format.Version {
		return fmt.Errorf("%w: %q", errs.ErrUnsupportedVersion, h.Version)
	}

	sections := []*SectionInfo{
		&h.Structs, &h.Fields, &h.Labels,
		&h.FieldData, &h.FieldIndices, &h.ListIndices,
	}
	pos := 8
	for _, s := range sections {
		s.Offset = engine.Uint32(data[pos : pos+4])
		s.Count = engine.Uint32(data[pos+4 : pos+8])
		pos += 8
	}

	return nil
}

// ValidateFileType checks the file type tag against an accepted whitelist.
// An empty whitelist accepts any tag of printable ASCII.
func (h *Header) ValidateFileType(accepted []string) error {
	if len(accepted) == 0 {
		for i := 0; i < len(h.FileType); i++ {
			c := h.FileType[i]
			if c < 0x20 || c > 0x7E {
				return fmt.Errorf("%w: %q", errs.ErrInvalidMagic, h.FileType)
			}
		}

		return nil
	}

	for _, tag := range accepted {
		if h.FileType == padTag(tag) {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", errs.ErrInvalidMagic, h.FileType)
}

// Bytes serializes the Header into a byte slice of exactly HeaderSize bytes.
func (h *Header) Bytes(engine endian.EndianEngine) []byte {
	b := make([]byte, 0, HeaderSize)

	b = append(b, padTag(h.FileType)...)
	b = append(b, padTag(h.Version)...)

	for _, s := range []SectionInfo{
		h.Structs, h.Fields, h.Labels,
		h.FieldData, h.FieldIndices, h.ListIndices,
	} {
		b = engine.AppendUint32(b, s.Offset)
		b = engine.AppendUint32(b, s.Count)
	}

	return b
}

// ParseHeader parses a Header from a byte slice.
func ParseHeader(data []byte, engine endian.EndianEngine) (Header, error) {
	h := Header{}
	if err := h.Parse(data, engine); err != nil {
		return Header{}, err
	}

	return h, nil
}

// padTag space-pads or truncates a tag to exactly 4 bytes.
func padTag(tag string) string {
	if len(tag) == TypeTagSize {
		return tag
	}
	if len(tag) > TypeTagSize {
		return tag[:TypeTagSize]
	}

	b := make([]byte, TypeTagSize)
	copy(b, tag)
	for i := len(tag); i < TypeTagSize; i++ {
		b[i] = ' '
	}

	return string(b)
}

// Package gff implements the GFF (Generic File Format) binary container
// used by Aurora-engine games to persist structured data: character sheets,
// item blueprints, dialogs and module state.
//
// A GFF buffer is a flat, offset-indexed layout of six sections behind a
// fixed header. This package resolves that layout into an owned tree of
// typed values and flattens such trees back into format-compatible buffers.
//
// # Basic Usage
//
// Decoding a buffer and reading fields:
//
//	import "github.com/nwnkit/gff"
//
//	root, err := gff.Decode(data)
//	if err != nil {
//	    return err
//	}
//	hp, _ := root.Int("HitPoints")
//	name, _ := root.ExoString("FirstName")
//
// Building and encoding a tree:
//
//	root := gff.NewStruct(gff.AnyStructType)
//	_ = root.Add("HP", gff.Int(55))
//	_ = root.Add("PortraitId", gff.Word(12))
//
//	data, err := gff.Encode(root, gff.WithFileType("BIC"))
//
// Round-tripping preserves structure exactly: labels, field order, value
// kinds and nesting.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec and
// tree packages, covering the common cases. For header inspection, decode
// options and fine-grained control, use those packages directly.
package gff

import (
	"github.com/nwnkit/gff/codec"
	"github.com/nwnkit/gff/tree"
)

// Struct is the tree node type, re-exported for convenience.
type Struct = tree.Struct

// Value is a single typed field value, re-exported for convenience.
type Value = tree.Value

// LocString is a localized string payload, re-exported for convenience.
type LocString = tree.LocString

// AnyStructType marks a struct with no distinguishing type id.
const AnyStructType = tree.AnyType

// NewStruct creates an empty struct with the given type id.
func NewStruct(typeID uint32) *Struct {
	return tree.New(typeID)
}

// NewLocString creates an empty localized string with the given talk-table
// reference, or tree.NoStrRef for none.
func NewLocString(strRef uint32) *LocString {
	return tree.NewLocString(strRef)
}

// Value constructors, re-exported from the tree package.
var (
	Byte           = tree.Byte
	Char           = tree.Char
	Word           = tree.Word
	Short          = tree.Short
	Dword          = tree.Dword
	Int            = tree.Int
	Dword64        = tree.Dword64
	Int64          = tree.Int64
	Float          = tree.Float
	Double         = tree.Double
	ExoString      = tree.ExoString
	ResRef         = tree.ResRef
	LocStringValue = tree.LocStringValue
	Void           = tree.Void
	StructValue    = tree.StructValue
	List           = tree.List
)

// WithFileType sets the 4-byte file type tag written by Encode.
func WithFileType(tag string) codec.EncoderOption {
	return codec.WithFileType(tag)
}

// WithFileTypes restricts the file type tags accepted by Decode.
func WithFileTypes(tags ...string) codec.DecoderOption {
	return codec.WithFileTypes(tags...)
}

// Decode decodes a complete in-memory GFF buffer into its root struct.
func Decode(data []byte, opts ...codec.DecoderOption) (*Struct, error) {
	return codec.Decode(data, opts...)
}

// Encode flattens a tree into a GFF buffer.
func Encode(root *Struct, opts ...codec.EncoderOption) ([]byte, error) {
	return codec.Encode(root, opts...)
}

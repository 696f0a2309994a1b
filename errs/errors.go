// Package errs defines the sentinel errors returned by the gff codec.
//
// All errors are classified with errors.Is; decode and encode paths wrap
// these sentinels with positional context via fmt.Errorf("...: %w", ...).
package errs

import "errors"

// Header errors.
var (
	// ErrInvalidHeaderSize is returned when the input buffer is shorter than
	// the fixed GFF header.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagic is returned when the 4-byte file type tag is not in the
	// accepted set.
	ErrInvalidMagic = errors.New("invalid file type tag")

	// ErrUnsupportedVersion is returned when the 4-byte version tag is not the
	// supported "V3.2".
	ErrUnsupportedVersion = errors.New("unsupported version")
)

// Decode errors.
var (
	// ErrTruncatedData is returned when a section descriptor or an indirect
	// payload points past the end of the buffer.
	ErrTruncatedData = errors.New("truncated data")

	// ErrIndexOutOfRange is returned when a struct, field, label or list
	// index exceeds its table's bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrCyclicReference is returned when a struct index is revisited on the
	// current traversal path. The format has no legitimate cycles.
	ErrCyclicReference = errors.New("cyclic struct reference")

	// ErrMaxDepthExceeded is returned when nesting exceeds the decoder's
	// configured depth limit.
	ErrMaxDepthExceeded = errors.New("max nesting depth exceeded")

	// ErrInvalidFieldType is returned when a field entry carries a type tag
	// outside the closed GFF type set.
	ErrInvalidFieldType = errors.New("invalid field type tag")

	// ErrInvalidStringEncoding is returned when text cannot be converted to
	// or from its declared charset.
	ErrInvalidStringEncoding = errors.New("invalid string encoding")

	// ErrUnknownLanguage is returned when a localized substring carries a
	// language id outside the known set.
	ErrUnknownLanguage = errors.New("unknown language id")

	// ErrDuplicateLocalization is returned when a CExoLocString contains two
	// substrings for the same (language, gender) pair.
	ErrDuplicateLocalization = errors.New("duplicate localization entry")

	// ErrDuplicateLabel is returned when one struct contains two fields with
	// the same label.
	ErrDuplicateLabel = errors.New("duplicate field label")
)

// Tree and encode errors.
var (
	// ErrTypeMismatch is returned by typed accessors when the field holds a
	// different value kind than requested.
	ErrTypeMismatch = errors.New("field type mismatch")

	// ErrFieldNotFound is returned by typed accessors when the struct has no
	// field with the requested label.
	ErrFieldNotFound = errors.New("field not found")

	// ErrResRefTooLong is returned when encoding a resource reference longer
	// than 16 bytes.
	ErrResRefTooLong = errors.New("resref exceeds 16 bytes")
)

package tree

import (
	"fmt"

	"github.com/nwnkit/gff/errs"
)

// AnyType is the conventional type id for a struct with no distinguishing
// type.
const AnyType uint32 = 0xFFFFFFFF

// MaxLabelLen is the number of bytes a label occupies on disk. Longer labels
// are truncated when encoded.
const MaxLabelLen = 16

// Field is a labeled value inside a Struct.
type Field struct {
	Label string
	Value Value
}

// Struct is an ordered, labeled collection of fields with a caller-defined
// 32-bit type id. Labels are unique within a struct; insertion order is
// preserved and reproduced by the encoder.
type Struct struct {
	typeID uint32
	fields []Field
	index  map[string]int
}

// New creates an empty struct with the given type id.
func New(typeID uint32) *Struct {
	return &Struct{
		typeID: typeID,
		index:  make(map[string]int),
	}
}

// TypeID returns the struct's 32-bit type id.
func (s *Struct) TypeID() uint32 {
	return s.typeID
}

// SetTypeID changes the struct's type id.
func (s *Struct) SetTypeID(typeID uint32) {
	s.typeID = typeID
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.fields)
}

// Add appends a field. Adding a label that already exists returns
// errs.ErrDuplicateLabel.
func (s *Struct) Add(label string, v Value) error {
	if _, ok := s.index[label]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateLabel, label)
	}

	s.index[label] = len(s.fields)
	s.fields = append(s.fields, Field{Label: label, Value: v})

	return nil
}

// Set stores a field, replacing the value in place if the label already
// exists so field order is unaffected.
func (s *Struct) Set(label string, v Value) {
	if i, ok := s.index[label]; ok {
		s.fields[i].Value = v
		return
	}

	s.index[label] = len(s.fields)
	s.fields = append(s.fields, Field{Label: label, Value: v})
}

// Remove deletes a field by label and reports whether it existed.
func (s *Struct) Remove(label string) bool {
	i, ok := s.index[label]
	if !ok {
		return false
	}

	s.fields = append(s.fields[:i], s.fields[i+1:]...)
	delete(s.index, label)
	for l, j := range s.index {
		if j > i {
			s.index[l] = j - 1
		}
	}

	return true
}

// Has reports whether a field with the given label exists.
func (s *Struct) Has(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Field returns the value for a label.
func (s *Struct) Field(label string) (Value, bool) {
	i, ok := s.index[label]
	if !ok {
		return Value{}, false
	}

	return s.fields[i].Value, true
}

// Fields returns the fields in insertion order. The returned slice must not
// be modified.
func (s *Struct) Fields() []Field {
	return s.fields
}

// Labels returns the field labels in insertion order.
func (s *Struct) Labels() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Label
	}

	return out
}

func (s *Struct) lookup(label string) (Value, error) {
	v, ok := s.Field(label)
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", errs.ErrFieldNotFound, label)
	}

	return v, nil
}

// Typed getters. Each fails with errs.ErrFieldNotFound when the label is
// absent and errs.ErrTypeMismatch when the field holds another kind.

// Byte returns the Byte field with the given label.
func (s *Struct) Byte(label string) (uint8, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Byte()
}

// Char returns the Char field with the given label.
func (s *Struct) Char(label string) (int8, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Char()
}

// Word returns the Word field with the given label.
func (s *Struct) Word(label string) (uint16, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Word()
}

// Short returns the Short field with the given label.
func (s *Struct) Short(label string) (int16, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Short()
}

// Dword returns the Dword field with the given label.
func (s *Struct) Dword(label string) (uint32, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Dword()
}

// Int returns the Int field with the given label.
func (s *Struct) Int(label string) (int32, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Int()
}

// Dword64 returns the Dword64 field with the given label.
func (s *Struct) Dword64(label string) (uint64, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Dword64()
}

// Int64 returns the Int64 field with the given label.
func (s *Struct) Int64(label string) (int64, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Int64()
}

// Float returns the Float field with the given label.
func (s *Struct) Float(label string) (float32, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Float()
}

// Double returns the Double field with the given label.
func (s *Struct) Double(label string) (float64, error) {
	v, err := s.lookup(label)
	if err != nil {
		return 0, err
	}

	return v.Double()
}

// ExoString returns the CExoString field with the given label.
func (s *Struct) ExoString(label string) (string, error) {
	v, err := s.lookup(label)
	if err != nil {
		return "", err
	}

	return v.ExoString()
}

// ResRef returns the ResRef field with the given label.
func (s *Struct) ResRef(label string) (string, error) {
	v, err := s.lookup(label)
	if err != nil {
		return "", err
	}

	return v.ResRef()
}

// LocString returns the CExoLocString field with the given label.
func (s *Struct) LocString(label string) (*LocString, error) {
	v, err := s.lookup(label)
	if err != nil {
		return nil, err
	}

	return v.LocString()
}

// Void returns the Void field with the given label.
func (s *Struct) Void(label string) ([]byte, error) {
	v, err := s.lookup(label)
	if err != nil {
		return nil, err
	}

	return v.Void()
}

// Struct returns the nested struct field with the given label.
func (s *Struct) Struct(label string) (*Struct, error) {
	v, err := s.lookup(label)
	if err != nil {
		return nil, err
	}

	return v.Struct()
}

// List returns the list field with the given label.
func (s *Struct) List(label string) ([]*Struct, error) {
	v, err := s.lookup(label)
	if err != nil {
		return nil, err
	}

	return v.List()
}

// Equal reports structural equality: same type id, same labels in the same
// order, and equal values.
func (s *Struct) Equal(other *Struct) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.typeID != other.typeID || len(s.fields) != len(other.fields) {
		return false
	}
	for i, f := range s.fields {
		o := other.fields[i]
		if f.Label != o.Label || !f.Value.Equal(o.Value) {
			return false
		}
	}

	return true
}

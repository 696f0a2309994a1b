package tree

import (
	"fmt"
	"math"

	"github.com/nwnkit/gff/errs"
	"github.com/nwnkit/gff/format"
)

// Value is a single GFF field value, one of the sixteen closed kinds defined
// by format.FieldType.
//
// Value is a tagged union: one scalar slot holds every numeric kind as a bit
// pattern, and the remaining slots are populated per kind. The zero Value is
// Byte(0).
type Value struct {
	typ  format.FieldType
	num  uint64
	str  string
	data []byte
	st   *Struct
	list []*Struct
	loc  *LocString
}

// Constructors, one per value kind.

// Byte creates a Byte value.
func Byte(v uint8) Value { return Value{typ: format.TypeByte, num: uint64(v)} }

// Char creates a Char value.
func Char(v int8) Value { return Value{typ: format.TypeChar, num: uint64(uint8(v))} }

// Word creates a Word value.
func Word(v uint16) Value { return Value{typ: format.TypeWord, num: uint64(v)} }

// Short creates a Short value.
func Short(v int16) Value { return Value{typ: format.TypeShort, num: uint64(uint16(v))} }

// Dword creates a Dword value.
func Dword(v uint32) Value { return Value{typ: format.TypeDword, num: uint64(v)} }

// Int creates an Int value.
func Int(v int32) Value { return Value{typ: format.TypeInt, num: uint64(uint32(v))} }

// Dword64 creates a Dword64 value.
func Dword64(v uint64) Value { return Value{typ: format.TypeDword64, num: v} }

// Int64 creates an Int64 value.
func Int64(v int64) Value { return Value{typ: format.TypeInt64, num: uint64(v)} }

// Float creates a Float value.
func Float(v float32) Value { return Value{typ: format.TypeFloat, num: uint64(math.Float32bits(v))} }

// Double creates a Double value.
func Double(v float64) Value { return Value{typ: format.TypeDouble, num: math.Float64bits(v)} }

// ExoString creates a CExoString value.
func ExoString(v string) Value { return Value{typ: format.TypeExoString, str: v} }

// ResRef creates a ResRef value. The reference must not exceed 16 bytes when
// encoded; the limit is enforced at encode time.
func ResRef(v string) Value { return Value{typ: format.TypeResRef, str: v} }

// LocStringValue creates a CExoLocString value. A nil loc is treated as an
// empty localization with no string reference.
func LocStringValue(loc *LocString) Value {
	if loc == nil {
		loc = NewLocString(NoStrRef)
	}

	return Value{typ: format.TypeLocString, loc: loc}
}

// Void creates a Void value holding opaque bytes. The value takes ownership
// of the slice.
func Void(data []byte) Value { return Value{typ: format.TypeVoid, data: data} }

// StructValue creates a nested Struct value. The value takes ownership of
// the struct.
func StructValue(st *Struct) Value {
	if st == nil {
		st = New(AnyType)
	}

	return Value{typ: format.TypeStruct, st: st}
}

// List creates a List value holding an ordered sequence of structs. The
// value takes ownership of the slice and its elements.
func List(structs []*Struct) Value {
	return Value{typ: format.TypeList, list: structs}
}

// Type returns the value's kind.
func (v Value) Type() format.FieldType {
	return v.typ
}

func (v Value) mismatch(want format.FieldType) error {
	return fmt.Errorf("%w: have %s, want %s", errs.ErrTypeMismatch, v.typ, want)
}

// Byte returns the Byte payload.
func (v Value) Byte() (uint8, error) {
	if v.typ != format.TypeByte {
		return 0, v.mismatch(format.TypeByte)
	}

	return uint8(v.num), nil
}

// Char returns the Char payload.
func (v Value) Char() (int8, error) {
	if v.typ != format.TypeChar {
		return 0, v.mismatch(format.TypeChar)
	}

	return int8(uint8(v.num)), nil
}

// Word returns the Word payload.
func (v Value) Word() (uint16, error) {
	if v.typ != format.TypeWord {
		return 0, v.mismatch(format.TypeWord)
	}

	return uint16(v.num), nil
}

// Short returns the Short payload.
func (v Value) Short() (int16, error) {
	if v.typ != format.TypeShort {
		return 0, v.mismatch(format.TypeShort)
	}

	return int16(uint16(v.num)), nil
}

// Dword returns the Dword payload.
func (v Value) Dword() (uint32, error) {
	if v.typ != format.TypeDword {
		return 0, v.mismatch(format.TypeDword)
	}

	return uint32(v.num), nil
}

// Int returns the Int payload.
func (v Value) Int() (int32, error) {
	if v.typ != format.TypeInt {
		return 0, v.mismatch(format.TypeInt)
	}

	return int32(uint32(v.num)), nil
}

// Dword64 returns the Dword64 payload.
func (v Value) Dword64() (uint64, error) {
	if v.typ != format.TypeDword64 {
		return 0, v.mismatch(format.TypeDword64)
	}

	return v.num, nil
}

// Int64 returns the Int64 payload.
func (v Value) Int64() (int64, error) {
	if v.typ != format.TypeInt64 {
		return 0, v.mismatch(format.TypeInt64)
	}

	return int64(v.num), nil
}

// Float returns the Float payload.
func (v Value) Float() (float32, error) {
	if v.typ != format.TypeFloat {
		return 0, v.mismatch(format.TypeFloat)
	}

	return math.Float32frombits(uint32(v.num)), nil
}

// Double returns the Double payload.
func (v Value) Double() (float64, error) {
	if v.typ != format.TypeDouble {
		return 0, v.mismatch(format.TypeDouble)
	}

	return math.Float64frombits(v.num), nil
}

// ExoString returns the CExoString payload.
func (v Value) ExoString() (string, error) {
	if v.typ != format.TypeExoString {
		return "", v.mismatch(format.TypeExoString)
	}

	return v.str, nil
}

// ResRef returns the ResRef payload.
func (v Value) ResRef() (string, error) {
	if v.typ != format.TypeResRef {
		return "", v.mismatch(format.TypeResRef)
	}

	return v.str, nil
}

// LocString returns the CExoLocString payload.
func (v Value) LocString() (*LocString, error) {
	if v.typ != format.TypeLocString {
		return nil, v.mismatch(format.TypeLocString)
	}

	return v.loc, nil
}

// Void returns the Void payload.
func (v Value) Void() ([]byte, error) {
	if v.typ != format.TypeVoid {
		return nil, v.mismatch(format.TypeVoid)
	}

	return v.data, nil
}

// Struct returns the nested struct payload.
func (v Value) Struct() (*Struct, error) {
	if v.typ != format.TypeStruct {
		return nil, v.mismatch(format.TypeStruct)
	}

	return v.st, nil
}

// List returns the list payload.
func (v Value) List() ([]*Struct, error) {
	if v.typ != format.TypeList {
		return nil, v.mismatch(format.TypeList)
	}

	return v.list, nil
}

// Equal reports structural equality between two values: same kind and same
// payload, with struct and list payloads compared recursively.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}

	switch v.typ {
	case format.TypeExoString, format.TypeResRef:
		return v.str == other.str
	case format.TypeVoid:
		if len(v.data) != len(other.data) {
			return false
		}
		for i := range v.data {
			if v.data[i] != other.data[i] {
				return false
			}
		}

		return true
	case format.TypeLocString:
		return v.loc.Equal(other.loc)
	case format.TypeStruct:
		return v.st.Equal(other.st)
	case format.TypeList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}

		return true
	default:
		return v.num == other.num
	}
}

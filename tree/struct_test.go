package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nwnkit/gff/errs"
)

func TestStruct_AddAndGet(t *testing.T) {
	st := New(AnyType)
	require.Equal(t, AnyType, st.TypeID())
	require.Equal(t, 0, st.Len())

	require.NoError(t, st.Add("HP", Int(55)))
	require.NoError(t, st.Add("Name", ExoString("Tordek")))
	require.Equal(t, 2, st.Len())

	hp, err := st.Int("HP")
	require.NoError(t, err)
	require.Equal(t, int32(55), hp)

	name, err := st.ExoString("Name")
	require.NoError(t, err)
	require.Equal(t, "Tordek", name)
}

func TestStruct_DuplicateLabel(t *testing.T) {
	st := New(AnyType)
	require.NoError(t, st.Add("HP", Int(55)))

	err := st.Add("HP", Int(60))
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrDuplicateLabel)
	require.Equal(t, 1, st.Len())
}

func TestStruct_Set(t *testing.T) {
	st := New(AnyType)
	require.NoError(t, st.Add("A", Byte(1)))
	require.NoError(t, st.Add("B", Byte(2)))

	// Replacing keeps field order.
	st.Set("A", Byte(9))
	require.Equal(t, []string{"A", "B"}, st.Labels())

	v, err := st.Byte("A")
	require.NoError(t, err)
	require.Equal(t, uint8(9), v)

	// Setting a new label appends.
	st.Set("C", Byte(3))
	require.Equal(t, []string{"A", "B", "C"}, st.Labels())
}

func TestStruct_Remove(t *testing.T) {
	st := New(AnyType)
	require.NoError(t, st.Add("A", Byte(1)))
	require.NoError(t, st.Add("B", Byte(2)))
	require.NoError(t, st.Add("C", Byte(3)))

	require.True(t, st.Remove("B"))
	require.False(t, st.Remove("B"))
	require.Equal(t, []string{"A", "C"}, st.Labels())

	// Index map stays consistent after removal.
	v, err := st.Byte("C")
	require.NoError(t, err)
	require.Equal(t, uint8(3), v)
}

func TestStruct_FieldNotFound(t *testing.T) {
	st := New(AnyType)

	_, err := st.Int("Missing")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrFieldNotFound)
}

func TestStruct_TypeMismatch(t *testing.T) {
	st := New(AnyType)
	require.NoError(t, st.Add("HP", Int(55)))

	_, err := st.ExoString("HP")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	// Probing with the right type still works afterwards.
	hp, err := st.Int("HP")
	require.NoError(t, err)
	require.Equal(t, int32(55), hp)
}

func TestStruct_TypedGetters(t *testing.T) {
	loc := NewLocString(NoStrRef)
	require.NoError(t, loc.Add(0, 0, "Hello"))

	child := New(7)
	require.NoError(t, child.Add("X", Byte(1)))

	st := New(AnyType)
	require.NoError(t, st.Add("b", Byte(200)))
	require.NoError(t, st.Add("c", Char(-5)))
	require.NoError(t, st.Add("w", Word(40000)))
	require.NoError(t, st.Add("s", Short(-300)))
	require.NoError(t, st.Add("dw", Dword(3000000000)))
	require.NoError(t, st.Add("i", Int(-2000000)))
	require.NoError(t, st.Add("dw64", Dword64(1<<60)))
	require.NoError(t, st.Add("i64", Int64(-(1 << 50))))
	require.NoError(t, st.Add("f", Float(3.5)))
	require.NoError(t, st.Add("d", Double(2.25)))
	require.NoError(t, st.Add("str", ExoString("text")))
	require.NoError(t, st.Add("ref", ResRef("portrait.tga")))
	require.NoError(t, st.Add("loc", LocStringValue(loc)))
	require.NoError(t, st.Add("bin", Void([]byte{1, 2, 3})))
	require.NoError(t, st.Add("st", StructValue(child)))
	require.NoError(t, st.Add("lst", List([]*Struct{New(1), New(2)})))

	b, err := st.Byte("b")
	require.NoError(t, err)
	require.Equal(t, uint8(200), b)

	ch, err := st.Char("c")
	require.NoError(t, err)
	require.Equal(t, int8(-5), ch)

	w, err := st.Word("w")
	require.NoError(t, err)
	require.Equal(t, uint16(40000), w)

	sh, err := st.Short("s")
	require.NoError(t, err)
	require.Equal(t, int16(-300), sh)

	dw, err := st.Dword("dw")
	require.NoError(t, err)
	require.Equal(t, uint32(3000000000), dw)

	i, err := st.Int("i")
	require.NoError(t, err)
	require.Equal(t, int32(-2000000), i)

	dw64, err := st.Dword64("dw64")
	require.NoError(t, err)
	require.Equal(t, uint64(1<<60), dw64)

	i64, err := st.Int64("i64")
	require.NoError(t, err)
	require.Equal(t, int64(-(1 << 50)), i64)

	f, err := st.Float("f")
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f)

	d, err := st.Double("d")
	require.NoError(t, err)
	require.Equal(t, 2.25, d)

	str, err := st.ExoString("str")
	require.NoError(t, err)
	require.Equal(t, "text", str)

	ref, err := st.ResRef("ref")
	require.NoError(t, err)
	require.Equal(t, "portrait.tga", ref)

	gotLoc, err := st.LocString("loc")
	require.NoError(t, err)
	require.True(t, loc.Equal(gotLoc))

	bin, err := st.Void("bin")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, bin)

	gotChild, err := st.Struct("st")
	require.NoError(t, err)
	require.True(t, child.Equal(gotChild))

	lst, err := st.List("lst")
	require.NoError(t, err)
	require.Len(t, lst, 2)
	require.Equal(t, uint32(1), lst[0].TypeID())
}

func TestStruct_Equal(t *testing.T) {
	build := func() *Struct {
		st := New(3)
		_ = st.Add("A", Int(1))
		_ = st.Add("B", ExoString("x"))

		return st
	}

	require.True(t, build().Equal(build()))

	t.Run("Different type id", func(t *testing.T) {
		a, b := build(), build()
		b.SetTypeID(4)
		require.False(t, a.Equal(b))
	})

	t.Run("Different field order", func(t *testing.T) {
		a := build()
		b := New(3)
		_ = b.Add("B", ExoString("x"))
		_ = b.Add("A", Int(1))
		require.False(t, a.Equal(b))
	})

	t.Run("Different value", func(t *testing.T) {
		a, b := build(), build()
		b.Set("A", Int(2))
		require.False(t, a.Equal(b))
	})

	t.Run("Nil handling", func(t *testing.T) {
		var nilStruct *Struct
		require.True(t, nilStruct.Equal(nil))
		require.False(t, build().Equal(nil))
	})
}

package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStruct_String(t *testing.T) {
	st := New(AnyType)
	_ = st.Add("HP", Int(55))
	_ = st.Add("Name", ExoString("Tordek"))

	out := st.String()
	require.Contains(t, out, "HP: 55")
	require.Contains(t, out, `Name: "Tordek"`)
	// Untyped structs render without a type id.
	require.NotContains(t, out, "0xFFFFFFFF")
}

func TestStruct_String_Nested(t *testing.T) {
	child := New(3)
	_ = child.Add("X", Byte(1))

	st := New(AnyType)
	_ = st.Add("Child", StructValue(child))
	_ = st.Add("Ref", ResRef("portrait.tga"))

	out := st.String()
	require.Contains(t, out, "(0x3)")
	require.Contains(t, out, "X: 1")
	require.Contains(t, out, "Ref<portrait.tga>")
}

package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nwnkit/gff/errs"
	"github.com/nwnkit/gff/format"
)

func TestLocString_Add(t *testing.T) {
	loc := NewLocString(1234)
	require.Equal(t, uint32(1234), loc.StrRef)
	require.Equal(t, 0, loc.Len())

	require.NoError(t, loc.Add(format.LangEnglish, format.GenderMale, "Hello sir"))
	require.NoError(t, loc.Add(format.LangEnglish, format.GenderFemale, "Hello milady"))
	require.NoError(t, loc.Add(format.LangFrench, format.GenderMale, "Salut"))
	require.Equal(t, 3, loc.Len())

	text, ok := loc.Get(format.LangEnglish, format.GenderFemale)
	require.True(t, ok)
	require.Equal(t, "Hello milady", text)

	_, ok = loc.Get(format.LangGerman, format.GenderMale)
	require.False(t, ok)
}

func TestLocString_DuplicateKey(t *testing.T) {
	loc := NewLocString(NoStrRef)
	require.NoError(t, loc.Add(format.LangEnglish, format.GenderMale, "first"))

	err := loc.Add(format.LangEnglish, format.GenderMale, "second")
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrDuplicateLocalization)

	// The same language with the other gender is a distinct key.
	require.NoError(t, loc.Add(format.LangEnglish, format.GenderFemale, "second"))
}

func TestLocString_Set(t *testing.T) {
	loc := NewLocString(NoStrRef)
	loc.Set(format.LangEnglish, format.GenderMale, "first")
	loc.Set(format.LangEnglish, format.GenderMale, "second")

	require.Equal(t, 1, loc.Len())
	text, ok := loc.Get(format.LangEnglish, format.GenderMale)
	require.True(t, ok)
	require.Equal(t, "second", text)
}

func TestLocString_Entries(t *testing.T) {
	loc := NewLocString(NoStrRef)
	require.NoError(t, loc.Add(format.LangFrench, format.GenderMale, "a"))
	require.NoError(t, loc.Add(format.LangEnglish, format.GenderMale, "b"))

	// Insertion order preserved, not sorted by language.
	entries := loc.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, format.LangFrench, entries[0].Lang)
	require.Equal(t, format.LangEnglish, entries[1].Lang)
}

func TestLocString_Equal(t *testing.T) {
	build := func() *LocString {
		l := NewLocString(42)
		_ = l.Add(format.LangEnglish, format.GenderMale, "hi")

		return l
	}

	require.True(t, build().Equal(build()))

	other := build()
	other.StrRef = 43
	require.False(t, build().Equal(other))

	var nilLoc *LocString
	require.True(t, nilLoc.Equal(nil))
	require.False(t, build().Equal(nil))
}

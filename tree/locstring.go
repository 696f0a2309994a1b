package tree

import (
	"fmt"

	"github.com/nwnkit/gff/errs"
	"github.com/nwnkit/gff/format"
)

// NoStrRef marks a localized string with no talk-table reference.
const NoStrRef uint32 = 0xFFFFFFFF

// LocKey identifies one localized substring by language and gender.
type LocKey struct {
	Lang   format.Language
	Gender format.Gender
}

// LocEntry is one localized substring of a CExoLocString.
type LocEntry struct {
	Lang   format.Language
	Gender format.Gender
	Text   string
}

// LocString is the payload of a CExoLocString field: a numeric talk-table
// string reference plus localized substrings keyed by (language, gender).
// Substring insertion order is preserved for deterministic encoding.
type LocString struct {
	// StrRef is the talk-table string reference, or NoStrRef.
	StrRef uint32

	entries []LocEntry
	index   map[LocKey]int
}

// NewLocString creates an empty LocString with the given string reference.
func NewLocString(strRef uint32) *LocString {
	return &LocString{
		StrRef: strRef,
		index:  make(map[LocKey]int),
	}
}

// Add appends a localized substring. Adding a second substring for the same
// (language, gender) pair returns errs.ErrDuplicateLocalization.
func (l *LocString) Add(lang format.Language, gender format.Gender, text string) error {
	key := LocKey{Lang: lang, Gender: gender}
	if _, ok := l.index[key]; ok {
		return fmt.Errorf("%w: %s/%s", errs.ErrDuplicateLocalization, lang, gender)
	}

	l.index[key] = len(l.entries)
	l.entries = append(l.entries, LocEntry{Lang: lang, Gender: gender, Text: text})

	return nil
}

// Set stores a localized substring, replacing any existing entry for the
// same (language, gender) pair.
func (l *LocString) Set(lang format.Language, gender format.Gender, text string) {
	key := LocKey{Lang: lang, Gender: gender}
	if i, ok := l.index[key]; ok {
		l.entries[i].Text = text
		return
	}

	l.index[key] = len(l.entries)
	l.entries = append(l.entries, LocEntry{Lang: lang, Gender: gender, Text: text})
}

// Get returns the substring for a (language, gender) pair.
func (l *LocString) Get(lang format.Language, gender format.Gender) (string, bool) {
	i, ok := l.index[LocKey{Lang: lang, Gender: gender}]
	if !ok {
		return "", false
	}

	return l.entries[i].Text, true
}

// Entries returns the localized substrings in insertion order. The returned
// slice must not be modified.
func (l *LocString) Entries() []LocEntry {
	return l.entries
}

// Len returns the number of localized substrings.
func (l *LocString) Len() int {
	return len(l.entries)
}

// Equal reports whether two localizations carry the same string reference
// and the same substrings in the same order.
func (l *LocString) Equal(other *LocString) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.StrRef != other.StrRef || len(l.entries) != len(other.entries) {
		return false
	}
	for i, e := range l.entries {
		if other.entries[i] != e {
			return false
		}
	}

	return true
}

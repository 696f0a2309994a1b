package tree

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/nwnkit/gff/format"
)

// Fingerprint computes a 64-bit xxHash64 over the struct's canonical
// traversal: type ids, labels, value kinds and payloads, in field order.
//
// Two structurally equal trees always share a fingerprint, independent of
// how they were built. The hash covers insertion order, so reordering fields
// changes it. Useful as a cheap identity for caching decoded trees and for
// round-trip assertions; it is not a cryptographic digest.
func (s *Struct) Fingerprint() uint64 {
	d := xxhash.New()
	s.hashInto(d)

	return d.Sum64()
}

func hashUint32(d *xxhash.Digest, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, _ = d.Write(b[:])
}

func hashUint64(d *xxhash.Digest, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, _ = d.Write(b[:])
}

func hashString(d *xxhash.Digest, s string) {
	hashUint32(d, uint32(len(s)))
	_, _ = d.WriteString(s)
}

func (s *Struct) hashInto(d *xxhash.Digest) {
	hashUint32(d, s.typeID)
	hashUint32(d, uint32(len(s.fields)))
	for _, f := range s.fields {
		hashString(d, f.Label)
		f.Value.hashInto(d)
	}
}

func (v Value) hashInto(d *xxhash.Digest) {
	hashUint32(d, uint32(v.typ))

	switch v.typ {
	case format.TypeStruct:
		v.st.hashInto(d)
	case format.TypeLocString:
		hashUint32(d, v.loc.StrRef)
		hashUint32(d, uint32(len(v.loc.entries)))
		for _, e := range v.loc.entries {
			hashUint32(d, uint32(e.Lang))
			hashUint32(d, uint32(e.Gender))
			hashString(d, e.Text)
		}
	case format.TypeList:
		hashUint32(d, uint32(len(v.list)))
		for _, st := range v.list {
			st.hashInto(d)
		}
	case format.TypeVoid:
		hashUint32(d, uint32(len(v.data)))
		_, _ = d.Write(v.data)
	case format.TypeExoString, format.TypeResRef:
		hashString(d, v.str)
	default:
		hashUint64(d, v.num)
	}
}

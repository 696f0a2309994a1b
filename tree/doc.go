// Package tree provides the in-memory representation of GFF data: an owned,
// strictly hierarchical tree of structs, labeled fields and typed values.
//
// A Struct is an ordered mapping from label to value with a caller-defined
// 32-bit type id. A Value is one of the sixteen closed GFF value kinds,
// accessed through typed getters that return errs.ErrTypeMismatch when the
// requested kind does not match.
//
// Trees are created by the codec package's decoder or programmatically:
//
//	st := tree.New(tree.AnyType)
//	_ = st.Add("HP", tree.Int(55))
//	_ = st.Add("Name", tree.ExoString("Tordek"))
//
// The tree is value oriented: no struct-table indices, byte offsets or any
// other artifact of the packed layout leaks into this package.
package tree

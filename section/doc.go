// Package section implements the fixed byte layout of a GFF buffer: the
// 56-byte header and the six packed sections it delimits (Struct Table,
// Field Table, Label Table, Field Data Block, Field Indices Array and List
// Indices Array).
//
// The package only models the raw layout. Header gives Parse/Bytes for the
// preamble; Tables gives bounds-checked, read-only typed views over the
// sections of a complete in-memory buffer. Resolution of the offset-based
// indirection between sections belongs to the codec package.
package section

// Package codec turns GFF byte buffers into tree.Struct values and back.
//
// The Decoder resolves the offset-based indirection between the six raw
// sections into an owned tree; the Encoder flattens a tree into fresh
// section tables with deduplicated labels and a recomputed header. Both
// traversals are iterative with an explicit frame stack, so adversarially
// deep nesting cannot exhaust the goroutine stack, and both reject cyclic
// references.
//
// Decode and Encode are pure functions of their input; the package holds no
// shared mutable state, so any number of decodes and encodes may run
// concurrently on distinct buffers and trees.
package codec

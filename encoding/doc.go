// Package encoding implements the per-type value codec of the GFF format:
// the fixed inline-vs-indirect storage rules, the Field Data Block reader
// and builder for indirect payloads, and the legacy game charsets used by
// the text value types.
//
// DecodeValue and EncodeValue cover every value kind except Struct and List,
// whose 4-byte payloads are table indices that only the codec package has
// the context to resolve.
package encoding

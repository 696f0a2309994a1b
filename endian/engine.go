// Package endian provides byte order utilities for binary encoding and decoding.
//
// The GFF container is little-endian on disk, so nearly every caller wants
// GetLittleEndianEngine(). The engine combines ByteOrder and AppendByteOrder
// from encoding/binary into one interface so section readers and builders can
// share a single parameter for both read and append operations.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, value)
//
// The returned engines are immutable and stateless, and safe for concurrent
// use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian
// from the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the on-disk byte
// order of the GFF format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

package pool

import "sync"

// Pool for uint32 index slices reused while flattening trees. Each struct
// emits its field-table indices through a scratch slice with struct-local
// lifetime, so pooling avoids one allocation per struct.
var uint32SlicePool = sync.Pool{
	New: func() any { return &[]uint32{} },
}

// GetUint32Slice retrieves and resizes a uint32 slice from the pool.
//
// The returned slice has the exact length specified by size. If the pooled
// slice has insufficient capacity, a new slice is allocated. The caller must
// call the returned cleanup function (typically with defer) to return the
// slice to the pool.
//
//	indices, cleanup := pool.GetUint32Slice(fieldCount)
//	defer cleanup()
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint32, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { uint32SlicePool.Put(ptr) }
}

package gpu

import "unsafe"

// Float32Bytes reinterprets a float32 slice as bytes without copying.
func Float32Bytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}

// Uint32Bytes reinterprets a uint32 slice as bytes without copying.
func Uint32Bytes(v []uint32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}

// Vec3Bytes reinterprets packed xyz positions as bytes without copying.
func Vec3Bytes(v [][3]float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*12)
}

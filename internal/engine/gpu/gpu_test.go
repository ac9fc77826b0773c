package gpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferUsage(t *testing.T) {
	u := UsageUniform | UsageCopyDst
	assert.True(t, u.Has(UsageUniform))
	assert.False(t, u.Has(UsageVertex))
	assert.Equal(t, "uniform|copy-dst", u.String())
	assert.Equal(t, "none", BufferUsage(0).String())
}

func TestByteViews(t *testing.T) {
	assert.Nil(t, Float32Bytes(nil))
	assert.Len(t, Float32Bytes(make([]float32, 16)), 64)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 1, 0, 0}, Uint32Bytes([]uint32{1, 256}))
	assert.Len(t, Vec3Bytes(make([][3]float32, 3)), 36)
}

func TestResourceErrorUnwrap(t *testing.T) {
	err := &ResourceError{Kind: "buffer", Label: "mesh vertices", Err: ErrDeviceLost}
	assert.True(t, errors.Is(err, ErrDeviceLost))
	assert.Equal(t, `create buffer "mesh vertices": gpu: device lost`, err.Error())
}

func TestVertexFormatComponents(t *testing.T) {
	assert.Equal(t, int32(2), Float32x2.Components())
	assert.Equal(t, int32(3), Float32x3.Components())
	assert.Equal(t, int32(4), Float32x4.Components())
}

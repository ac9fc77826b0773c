package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tgaHeader(kind, bpp, desc byte, w, h int) []byte {
	hdr := make([]byte, 18)
	hdr[2] = kind
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	hdr[17] = desc
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	data := tgaHeader(2, 24, 0, 2, 2)
	// Bottom row first, BGR.
	data = append(data,
		255, 0, 0, 0, 255, 0, // bottom: blue, green
		0, 0, 255, 255, 255, 255, // top: red, white
	)
	img, err := DecodeTGA(data)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(1, 1))
}

func TestDecodeTGARLETopDown(t *testing.T) {
	data := tgaHeader(10, 32, 0x20, 3, 1)
	data = append(data,
		0x81, 10, 20, 30, 40, // repeat 2
		0x00, 1, 2, 3, 4, // raw 1
	)
	img, err := DecodeTGA(data)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{30, 20, 10, 40}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{30, 20, 10, 40}, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{3, 2, 1, 4}, img.RGBAAt(2, 0))
}

func TestDecodeTGAGray(t *testing.T) {
	data := append(tgaHeader(3, 8, 0x20, 2, 1), 0, 200)
	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, img.RGBAAt(1, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", make([]byte, 10)},
		{"color mapped", func() []byte { h := tgaHeader(2, 24, 0, 1, 1); h[1] = 1; return h }()},
		{"unsupported type", tgaHeader(1, 8, 0, 1, 1)},
		{"bad depth", tgaHeader(2, 16, 0, 1, 1)},
		{"empty", tgaHeader(2, 24, 0, 0, 4)},
		{"truncated", append(tgaHeader(2, 24, 0, 2, 2), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(10, 24, 0, 4, 1), 0x83, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.SetNRGBA(6, 5, color.NRGBA{10, 20, 30, 255})
	out := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), out.Rect)
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, out.RGBAAt(1, 0))

	same := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.Same(t, same, ToRGBA(same))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("LINEAR")
	require.NoError(t, err)
	assert.Equal(t, Linear, f)
	assert.Equal(t, "linear", f.Key())
	assert.Equal(t, "Nearest", Nearest.String())

	_, err = ParseFilter("bicubic")
	assert.Error(t, err)
}

package asset

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/texcomp/internal/engine/texture"
	"github.com/Faultbox/texcomp/pkg/math"
)

const cubeOBJ = `# unit quad and a triangle
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1/1 2/1/1 3/1/1 4/1/1
f -4//1 -3//1 -1//1
`

func TestDecodeOBJ(t *testing.T) {
	pos, idx, err := DecodeOBJ(strings.NewReader(cubeOBJ))
	require.NoError(t, err)
	assert.Len(t, pos, 4)
	assert.Equal(t, [3]float32{1, 1, 0}, pos[2])
	// Quad fans into two triangles; negative references resolve against 4 vertices.
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 0, 1, 3}, idx)
}

func TestDecodeOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad float", "v 1 two 3\n"},
		{"short face", "v 0 0 0\nf 1 1\n"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"bad reference", "v 0 0 0\nf a b c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeOBJ(strings.NewReader(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestMeshIdentity(t *testing.T) {
	pos := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	a, err := NewMesh("a", pos, []uint32{0, 1, 2})
	require.NoError(t, err)
	b, err := NewMesh("renamed", [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint32{0, 1, 2})
	require.NoError(t, err)
	c, err := NewMesh("a", pos, []uint32{0, 2, 1})
	require.NoError(t, err)

	assert.Equal(t, a.Identity(), b.Identity(), "identity depends on content only")
	assert.NotEqual(t, a.Identity(), c.Identity())
	assert.Equal(t, 1, a.TriangleCount())
	assert.Equal(t, 3, a.VertexCount())

	lo, hi := a.Bounds()
	assert.Equal(t, math.Vec3{}, lo)
	assert.Equal(t, math.Vec3{X: 1, Y: 1}, hi)
}

func TestNewMeshValidates(t *testing.T) {
	_, err := NewMesh("bad", [][3]float32{{0, 0, 0}}, []uint32{0, 0})
	assert.Error(t, err)
	_, err = NewMesh("bad", [][3]float32{{0, 0, 0}}, []uint32{0, 0, 1})
	assert.Error(t, err)
}

type fakeUploader struct {
	next    uint64
	uploads []texture.Filter
	deleted []uint64
}

func (f *fakeUploader) Upload(_ *image.RGBA, filter texture.Filter) (uint64, error) {
	f.next++
	f.uploads = append(f.uploads, filter)
	return f.next, nil
}

func (f *fakeUploader) Delete(id uint64) { f.deleted = append(f.deleted, id) }

func TestImageTextureCachePerFilter(t *testing.T) {
	img := NewImage("checker.png", image.NewRGBA(image.Rect(0, 0, 4, 2)))
	up := &fakeUploader{}

	n1, err := img.Texture(up, texture.Nearest)
	require.NoError(t, err)
	n2, _ := img.Texture(up, texture.Nearest)
	l1, _ := img.Texture(up, texture.Linear)

	assert.Equal(t, n1, n2)
	assert.NotEqual(t, n1, l1)
	assert.Equal(t, []texture.Filter{texture.Nearest, texture.Linear}, up.uploads)
	assert.Equal(t, math.Vec2{X: 4, Y: 2}, img.Size())

	img.Release(up)
	assert.ElementsMatch(t, []uint64{n1, l1}, up.deleted)
	n3, _ := img.Texture(up, texture.Nearest)
	assert.NotEqual(t, n1, n3, "released textures are uploaded again")
}

func TestDecodeDispatch(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}
	src.Set(2, 1, color.RGBA{1, 2, 3, 255})

	var pngBuf, bmpBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	require.NoError(t, bmp.Encode(&bmpBuf, src))

	for name, data := range map[string][]byte{"a.PNG": pngBuf.Bytes(), "b.bmp": bmpBuf.Bytes()} {
		a, err := Decode(name, bytes.NewReader(data))
		require.NoError(t, err, name)
		img, ok := a.(*Image)
		require.True(t, ok, name)
		assert.Equal(t, KindImage, a.Kind())
		assert.Equal(t, color.RGBA{1, 2, 3, 255}, img.Pixels().RGBAAt(2, 1), name)
	}

	m, err := Decode("quad.obj", strings.NewReader(cubeOBJ))
	require.NoError(t, err)
	assert.Equal(t, KindMesh, m.Kind())
	assert.Equal(t, "quad.obj", m.Name())

	_, err = Decode("notes.txt", strings.NewReader("hi"))
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = Decode("broken.png", strings.NewReader("not a png"))
	assert.Error(t, err)
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	tga := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 24, 0x20, 9, 8, 7}
	path := filepath.Join(dir, "dot.tga")
	require.NoError(t, os.WriteFile(path, tga, 0o644))

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dot.tga", a.Name())
	assert.Equal(t, color.RGBA{7, 8, 9, 255}, a.(*Image).Pixels().RGBAAt(0, 0))

	_, err = Load(filepath.Join(dir, "model.fbx"))
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("x/y/Photo.JPEG"))
	assert.True(t, Supported("mesh.obj"))
	assert.False(t, Supported("archive.zip"))
	assert.Contains(t, Extensions(), ".webp")
}

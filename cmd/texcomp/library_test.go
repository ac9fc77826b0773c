package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/texcomp/internal/asset"
	"github.com/Faultbox/texcomp/internal/engine/texture"
)

const cubeOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

type countingUploader struct {
	next    uint64
	deleted []uint64
}

func (u *countingUploader) Upload(*image.RGBA, texture.Filter) (uint64, error) {
	u.next++
	return u.next, nil
}

func (u *countingUploader) Delete(id uint64) { u.deleted = append(u.deleted, id) }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLibraryOpen(t *testing.T) {
	dir := t.TempDir()
	lib := newLibrary(nil)

	mesh := writeFile(t, dir, "quad.obj", cubeOBJ)
	require.NoError(t, lib.open(mesh))
	require.Equal(t, 1, lib.list.Len())
	assert.Equal(t, asset.KindMesh, lib.selected().Kind())
	assert.Equal(t, "quad.obj", lib.selected().Name())

	err := lib.open(writeFile(t, dir, "notes.txt", "hello"))
	assert.ErrorIs(t, err, asset.ErrUnsupported)
	assert.Equal(t, 1, lib.list.Len())

	err = lib.open(writeFile(t, dir, "broken.png", "not a png"))
	assert.Error(t, err)
	assert.Equal(t, 1, lib.list.Len())
}

func TestLibraryReopenSelectsExisting(t *testing.T) {
	dir := t.TempDir()
	lib := newLibrary(nil)
	a := writeFile(t, dir, "a.obj", cubeOBJ)
	b := writeFile(t, dir, "b.obj", cubeOBJ)
	require.NoError(t, lib.open(a))
	require.NoError(t, lib.open(b))

	require.NoError(t, lib.open(a))
	assert.Equal(t, 2, lib.list.Len())
	assert.Equal(t, "a.obj", lib.selected().Name())
}

func TestLibraryRemoveReleasesTextures(t *testing.T) {
	up := &countingUploader{}
	lib := newLibrary(up)
	img := asset.NewImage("a.png", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	lib.load = func(string) (asset.Asset, error) { return img, nil }

	require.NoError(t, lib.open("a.png"))
	_, err := img.Texture(up, texture.Nearest)
	require.NoError(t, err)
	_, err = img.Texture(up, texture.Linear)
	require.NoError(t, err)

	lib.releaseAll()
	assert.Zero(t, lib.list.Len())
	assert.ElementsMatch(t, []uint64{1, 2}, up.deleted)
	assert.Nil(t, lib.selected())
}

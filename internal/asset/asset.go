// Package asset decodes images and meshes dropped into the viewer and
// dispatches on the file extension.
package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/texcomp/internal/engine/texture"
)

// Kind distinguishes the viewer an asset opens in.
type Kind int

const (
	KindImage Kind = iota
	KindMesh
)

func (k Kind) String() string {
	if k == KindMesh {
		return "mesh"
	}
	return "image"
}

// Asset is a decoded image or mesh.
type Asset interface {
	Name() string
	Kind() Kind
}

// ErrUnsupported is returned for file extensions no decoder handles.
var ErrUnsupported = errors.New("unsupported file type")

var (
	imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
	meshExts  = []string{".obj"}
)

// Extensions lists every supported extension, for file dialog filters.
func Extensions() []string {
	out := append([]string{}, imageExts...)
	out = append(out, ".tga")
	return append(out, meshExts...)
}

// Supported reports whether path has a known extension.
func Supported(path string) bool {
	return slices.Contains(Extensions(), strings.ToLower(filepath.Ext(path)))
}

// Load reads and decodes the file at path.
func Load(path string) (Asset, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(filepath.Base(path), f)
}

// Decode decodes r using the extension of name.
func Decode(name string, r io.Reader) (Asset, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == ".tga":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		img, err := texture.DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return NewImage(name, img), nil
	case slices.Contains(imageExts, ext):
		img, _, err := image.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return NewImage(name, texture.ToRGBA(img)), nil
	case slices.Contains(meshExts, ext):
		pos, idx, err := DecodeOBJ(r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return NewMesh(name, pos, idx)
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
}

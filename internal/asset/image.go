package asset

import (
	"fmt"
	"image"

	"github.com/Faultbox/texcomp/internal/engine/texture"
	"github.com/Faultbox/texcomp/pkg/math"
)

// TextureUploader turns decoded pixels into GPU textures.
type TextureUploader interface {
	Upload(img *image.RGBA, filter texture.Filter) (uint64, error)
	Delete(id uint64)
}

// Image is a decoded RGBA image with one lazily uploaded texture per filter.
type Image struct {
	name     string
	pixels   *image.RGBA
	textures map[texture.Filter]uint64
}

// NewImage wraps decoded pixels.
func NewImage(name string, pixels *image.RGBA) *Image {
	return &Image{name: name, pixels: pixels, textures: make(map[texture.Filter]uint64)}
}

func (i *Image) Name() string { return i.name }
func (i *Image) Kind() Kind   { return KindImage }

// Pixels returns the decoded image.
func (i *Image) Pixels() *image.RGBA { return i.pixels }

// Size returns the image size in pixels.
func (i *Image) Size() math.Vec2 {
	b := i.pixels.Bounds()
	return math.Vec2{X: float32(b.Dx()), Y: float32(b.Dy())}
}

// Texture returns the texture for filter, uploading it on first use.
func (i *Image) Texture(up TextureUploader, filter texture.Filter) (uint64, error) {
	if id, ok := i.textures[filter]; ok {
		return id, nil
	}
	id, err := up.Upload(i.pixels, filter)
	if err != nil {
		return 0, fmt.Errorf("image %s: %s texture: %w", i.name, filter, err)
	}
	i.textures[filter] = id
	return id, nil
}

// Release deletes every uploaded texture.
func (i *Image) Release(up TextureUploader) {
	for f, id := range i.textures {
		up.Delete(id)
		delete(i.textures, f)
	}
}

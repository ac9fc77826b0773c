package texture

import (
	"errors"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLUploader creates GL textures on the current context.
type GLUploader struct{}

// Upload copies img into a new texture sampled with filter and returns its name.
func (GLUploader) Upload(img *image.RGBA, filter Filter) (uint64, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, errors.New("texture: empty image")
	}
	mode := int32(gl.NEAREST)
	if filter == Linear {
		mode = gl.LINEAR
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, mode)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &id)
		return 0, errors.New("texture: upload failed")
	}
	return uint64(id), nil
}

// Delete releases a texture returned by Upload.
func (GLUploader) Delete(id uint64) {
	tex := uint32(id)
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}

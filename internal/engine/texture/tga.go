// Package texture decodes TGA files, normalizes images to RGBA and uploads
// them as GL textures with a chosen sampling filter.
package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types handled by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes uncompressed or RLE true-color (24/32 bit) and grayscale
// (8 bit) TGA images.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: header needs 18 bytes, have %d", len(data))
	}
	idLen := int(data[0])
	if data[1] != 0 {
		return nil, errors.New("tga: color-mapped images are not supported")
	}
	kind := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topDown := data[17]&0x20 != 0

	gray := kind == tgaGray || kind == tgaGrayRLE
	rle := kind == tgaTrueColorRLE || kind == tgaGrayRLE
	switch {
	case kind != tgaTrueColor && kind != tgaTrueColorRLE && !gray:
		return nil, fmt.Errorf("tga: unsupported image type %d", kind)
	case gray && bpp != 8:
		return nil, fmt.Errorf("tga: unsupported grayscale depth %d", bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("tga: unsupported color depth %d", bpp)
	case width == 0 || height == 0:
		return nil, errors.New("tga: empty image")
	}
	if 18+idLen > len(data) {
		return nil, errTGATruncated
	}

	px := &tgaPixels{src: data[18+idLen:], size: bpp / 8}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	total := width * height
	for n := 0; n < total; {
		count, repeat := 1, false
		if rle {
			hdr, err := px.byte()
			if err != nil {
				return nil, err
			}
			count = int(hdr&0x7f) + 1
			repeat = hdr&0x80 != 0
		}
		var c [4]byte
		for i := 0; i < count && n < total; i++ {
			if i == 0 || !repeat {
				var err error
				if c, err = px.pixel(); err != nil {
					return nil, err
				}
			}
			x, y := n%width, n/width
			if !topDown {
				y = height - 1 - y
			}
			copy(img.Pix[img.PixOffset(x, y):], c[:])
			n++
		}
	}
	return img, nil
}

type tgaPixels struct {
	src  []byte
	pos  int
	size int
}

func (p *tgaPixels) byte() (byte, error) {
	if p.pos >= len(p.src) {
		return 0, errTGATruncated
	}
	b := p.src[p.pos]
	p.pos++
	return b, nil
}

// pixel reads one BGR(A) or gray pixel and returns it as RGBA.
func (p *tgaPixels) pixel() ([4]byte, error) {
	if p.pos+p.size > len(p.src) {
		return [4]byte{}, errTGATruncated
	}
	s := p.src[p.pos : p.pos+p.size]
	p.pos += p.size
	switch p.size {
	case 1:
		return [4]byte{s[0], s[0], s[0], 255}, nil
	case 3:
		return [4]byte{s[2], s[1], s[0], 255}, nil
	default:
		return [4]byte{s[2], s[1], s[0], s[3]}, nil
	}
}

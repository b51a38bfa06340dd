package modrequests

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	thumbSize    = 512
	thumbQuality = 85
)

var ErrNotAnImage = errors.New("file is not a supported image")

// thumbnail decodifica la foto (jpeg/png) y devuelve un jpeg que entra en
// thumbSize x thumbSize manteniendo la proporción. Si ya es más chica no se agranda.
func thumbnail(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	thumb := resize.Thumbnail(thumbSize, thumbSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), format, nil
}

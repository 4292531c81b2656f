package content

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/gen2brain/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageLoader is a reference Loader for texture- and raster-terrain-bearing
// tile content: png/jpeg via the standard library, tiff (common for
// GeoTIFF-derived terrain tiles) and bmp via golang.org/x/image, and webp
// via gen2brain/webp, mirroring the format-switch idiom used elsewhere in
// the pack's own image decoding helper. It exists to give these
// dependencies a concrete home; a production embedder supplies its own
// ContentLoader for b3dm/pnts/glb binary tile formats, which are outside
// this package's scope.
type ImageLoader struct{}

// NewImageLoader constructs an ImageLoader. It holds no state; the
// constructor exists for symmetry with other Factory-returned loaders.
func NewImageLoader() *ImageLoader { return &ImageLoader{} }

// Decode implements Loader. contentType is matched case-sensitively
// against the MIME subtype or file extension the manifest declared.
func (ImageLoader) Decode(_ context.Context, contentType string, data []byte) (any, int64, error) {
	img, err := decodeImage(data, contentType)
	if err != nil {
		return nil, 0, err
	}
	return img, int64(len(data)), nil
}

func decodeImage(data []byte, contentType string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch contentType {
	case "png", "image/png":
		return png.Decode(r)
	case "jpeg", "jpg", "image/jpeg":
		return jpeg.Decode(r)
	case "webp", "image/webp":
		return webp.Decode(r)
	case "tiff", "tif", "image/tiff":
		return tiff.Decode(r)
	case "bmp", "image/bmp":
		return bmp.Decode(r)
	default:
		return nil, fmt.Errorf("content: unsupported image content type %q", contentType)
	}
}

func init() {
	for _, name := range []string{"png", "jpeg", "webp", "tiff", "bmp"} {
		Register(name, func() Loader { return NewImageLoader() })
	}
}

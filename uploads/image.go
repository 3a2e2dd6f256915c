// Package uploads normalizes product images and stores them either on the
// local disk or in an S3 compatible bucket.
package uploads

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"shop-service/common"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const jpegQuality = 80

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// AllowedExtension reports whether filename looks like a supported image.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// NewKey returns a fresh object key for a product image.
func NewKey() string {
	return "products/image-" + uuid.New().String() + ".jpg"
}

// Limits bounds what Normalize accepts and produces. Zero fields are not
// enforced.
type Limits struct {
	MaxWidth  uint
	MaxPixels int
}

// Normalize decodes the uploaded image, shrinks it to at most MaxWidth
// pixels wide keeping the aspect ratio, and re-encodes it as JPEG. Images
// whose header declares more than MaxPixels pixels are refused before any
// pixel data is decoded.
func Normalize(r io.Reader, filename string, lim Limits) ([]byte, error) {
	if !AllowedExtension(filename) {
		return nil, common.Validation("Only image files are allowed (jpg, jpeg, png, gif)")
	}

	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, &common.Error{Kind: common.ErrValidation, Message: "Invalid image file", Err: err}
	}
	if lim.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(lim.MaxPixels) {
		return nil, common.Validation(fmt.Sprintf("Image is too large (%dx%d pixels)", cfg.Width, cfg.Height))
	}

	img, _, err := image.Decode(io.MultiReader(&header, r))
	if err != nil {
		return nil, &common.Error{Kind: common.ErrValidation, Message: "Invalid image file", Err: err}
	}

	if lim.MaxWidth > 0 && uint(img.Bounds().Dx()) > lim.MaxWidth {
		img = resize.Resize(lim.MaxWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

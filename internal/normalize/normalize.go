// Package normalize turns an arbitrary uploaded image into the canonical
// stored representation: orientation corrected, bounded to 1920x1920, and
// re-encoded as JPEG at quality 85.
package normalize

import (
	"bytes"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"renotrack/internal/apperr"
)

const (
	// MaxUploadBytes is the largest accepted raw upload.
	MaxUploadBytes = 10 << 20 // 10 MiB

	// StoredExt is the extension every stored photo carries after
	// normalization.
	StoredExt = ".jpg"

	maxDimension = 1920
	jpegQuality  = 85
)

// allowedTypes is the declared content-type allow-list checked before any
// decode work happens. HEIC/HEIF are accepted here but have no pure-Go
// decoder, so they fail later in Normalize.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// CheckUpload validates the declared content type and size before
// normalization is attempted.
func CheckUpload(declaredType string, size int64) error {
	if !allowedTypes[declaredType] {
		return apperr.Validation("unsupported media type: " + declaredType)
	}
	if size > MaxUploadBytes {
		return apperr.Validation("photo exceeds the 10 MiB upload limit")
	}
	return nil
}

// Normalize decodes raw, applies EXIF orientation, scales it down to fit
// within 1920x1920 (never upscaling), and re-encodes it as JPEG. The input
// bytes are never stored; only the returned encoding is.
func Normalize(raw []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperr.Normalization("failed to decode image", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, apperr.Normalization("failed to encode image", err)
	}
	return buf.Bytes(), nil
}

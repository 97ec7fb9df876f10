package utils

// MaxProofImageSize is the upload cap for proof-of-work images.
const MaxProofImageSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageValidation is the outcome of validating an uploaded image file.
type ImageValidation struct {
	Valid   bool
	Message string
}

// ValidateImage checks an uploaded file's MIME type and size against the
// proof-of-work upload rules.
func ValidateImage(contentType string, size int64) ImageValidation {
	if _, ok := allowedImageTypes[contentType]; !ok {
		return ImageValidation{
			Valid:   false,
			Message: "Format file tidak didukung. Gunakan JPEG, PNG, atau WebP.",
		}
	}
	if size > MaxProofImageSize {
		return ImageValidation{
			Valid:   false,
			Message: "Ukuran file terlalu besar. Maksimal 5MB.",
		}
	}
	return ImageValidation{Valid: true, Message: "File valid"}
}

// ImageExtension returns the canonical file extension for an accepted image
// content type, or "" when the type is not accepted.
func ImageExtension(contentType string) string {
	return allowedImageTypes[contentType]
}

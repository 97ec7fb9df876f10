package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Import for WebP decoding support

	"github.com/hadirly/attendance-backend-go/internal/pkg/storage"
	"github.com/hadirly/attendance-backend-go/internal/pkg/utils"
)

type FileService interface {
	// UploadProofOfWork stores a WFH proof-of-work screenshot and returns
	// its public URL and stored filename.
	UploadProofOfWork(ctx context.Context, attendanceID string, file io.Reader, contentType string, size int64) (url string, filename string, err error)

	// DeleteByURL removes a previously uploaded file given its public URL.
	DeleteByURL(ctx context.Context, fileURL string) error

	// GetFileURL generates URL to access file
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadProofOfWork validates, optionally compresses and stores a proof
// screenshot. Oversized JPEG/PNG images are recompressed; WebP is stored
// as-is since it is already efficiently encoded.
func (s *fileServiceImpl) UploadProofOfWork(ctx context.Context, attendanceID string, file io.Reader, contentType string, size int64) (string, string, error) {
	if v := utils.ValidateImage(contentType, size); !v.Valid {
		return "", "", fmt.Errorf("%s", v.Message)
	}

	buffer, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read image: %w", err)
	}

	ext := utils.ImageExtension(contentType)

	// Recompress large JPEG/PNG uploads, converting to JPEG.
	if len(buffer) > 512*1024 && (contentType == "image/jpeg" || contentType == "image/jpg" || contentType == "image/png") {
		compressed, err := compressImage(buffer, 512*1024, 100*1024)
		if err == nil {
			buffer = compressed
			ext = ".jpg"
			contentType = "image/jpeg"
		}
	}

	timestamp := time.Now().Unix()
	filename := fmt.Sprintf("proof_%s_%d%s", attendanceID, timestamp, ext)
	path := filepath.Join("attendance", filename)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(buffer), path, contentType)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload proof of work: %w", err)
	}

	url, err := s.storage.GetURL(ctx, uploadedPath, 0)
	if err != nil {
		return "", "", fmt.Errorf("failed to build file url: %w", err)
	}

	return url, filename, nil
}

// DeleteByURL maps a public URL back to a storage path and removes the file.
func (s *fileServiceImpl) DeleteByURL(ctx context.Context, fileURL string) error {
	idx := strings.Index(fileURL, "/attendance/")
	if idx < 0 {
		return fmt.Errorf("unrecognized file url: %s", fileURL)
	}
	path := strings.TrimPrefix(fileURL[idx:], "/")
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

// compressImage compresses an image to a target size range.
// maxSize: maximum allowed size
// minSize: minimum target size
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize && len(buffer) >= minSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	originalWidth := bounds.Dx()
	originalHeight := bounds.Dy()

	// Start with quality 85 and reduce progressively
	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: quality})
		if err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}

		compressed = buf.Bytes()

		if len(compressed) <= maxSize && len(compressed) >= minSize {
			return compressed, nil
		}

		if len(compressed) > maxSize {
			quality -= 5
			continue
		}

		if len(compressed) < minSize && quality <= 60 {
			return compressed, nil
		}

		break
	}

	// If still too large after quality reduction, resize toward the middle
	// of the target range.
	if len(compressed) > maxSize {
		targetSize := (maxSize + minSize) / 2
		ratio := math.Sqrt(float64(targetSize) / float64(len(compressed)))
		newWidth := int(float64(originalWidth) * ratio)
		newHeight := int(float64(originalHeight) * ratio)

		if newWidth < 600 {
			newWidth = 600
		}
		if newHeight < 400 {
			newHeight = 400
		}

		resized := resizeImage(img, newWidth, newHeight)

		buf := new(bytes.Buffer)
		err = jpeg.Encode(buf, resized, &jpeg.Options{Quality: 70})
		if err != nil {
			return nil, fmt.Errorf("failed to encode resized image: %w", err)
		}

		compressed = buf.Bytes()
	}

	return compressed, nil
}

// resizeImage resizes an image using high-quality interpolation.
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

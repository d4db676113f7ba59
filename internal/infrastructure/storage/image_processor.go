package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

var (
	ErrNotImage          = errors.New("please upload an image file")
	ErrUnsupportedFormat = errors.New("only jpeg and png images are allowed")
	ErrImageTooLarge     = errors.New("image exceeds the upload size limit")
)

const thumbnailSize = 200

type ImageProcessor struct {
	MaxSize int64 // bytes, MAX_FILE_UPLOAD
}

func NewImageProcessor(maxSize int64) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = 1000000
	}
	return &ImageProcessor{MaxSize: maxSize}
}

// ValidateImage kiểm tra file là JPEG/PNG và không vượt quá MaxSize.
// Returns the file extension to store it under.
func (p *ImageProcessor) ValidateImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotImage
	}

	var ext string
	switch format {
	case "jpeg":
		ext = ".jpg"
	case "png":
		ext = ".png"
	default:
		return "", ErrUnsupportedFormat
	}

	if int64(len(data)) > p.MaxSize {
		return "", fmt.Errorf("%w (%d bytes)", ErrImageTooLarge, p.MaxSize)
	}
	return ext, nil
}

// Thumbnail crop về 200x200 rồi encode JPEG chất lượng 85
func (p *ImageProcessor) Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	thumb := imaging.Fill(img, thumbnailSize, thumbnailSize, imaging.Center, imaging.Lanczos)
	b := new(bytes.Buffer)
	if err := imaging.Encode(b, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return b.Bytes(), nil
}

// internal/services/media_service.go
package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"
)

var (
	ErrFileTooLarge   = errors.New("file too large")
	ErrNotImage       = errors.New("file is not an image")
	ErrTypeNotAllowed = errors.New("file type not allowed")
)

// MediaService turns uploaded images into embeddable data URLs. Nothing is
// written to disk or object storage.
type MediaService struct{}

type UploadOptions struct {
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

type EncodedImage struct {
	Filename string `json:"filename,omitempty"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	DataURL  string `json:"data_url"`
}

func NewMediaService() *MediaService {
	return &MediaService{}
}

func (s *MediaService) GetDefaultUploadOptions(category string) UploadOptions {
	switch category {
	case "avatars":
		return UploadOptions{
			MaxSize:      2 * 1024 * 1024, // 2MB
			AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		}
	case "products":
		return UploadOptions{
			MaxSize:      10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml"},
		}
	default:
		return UploadOptions{
			MaxSize: 5 * 1024 * 1024, // 5MB
		}
	}
}

// EncodeImage reads r, checks that the content sniffs as an allowed image and
// returns it as a base64 data URL.
func (s *MediaService) EncodeImage(r io.Reader, filename string, options UploadOptions) (*EncodedImage, error) {
	reader := r
	if options.MaxSize > 0 {
		reader = io.LimitReader(r, options.MaxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if options.MaxSize > 0 && int64(len(data)) > options.MaxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, options.MaxSize)
	}

	detected := mimetype.Detect(data)
	mimeType := strings.TrimSpace(strings.Split(detected.String(), ";")[0])
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, mimeType)
	}

	if len(options.AllowedTypes) > 0 && !isAllowed(detected, options.AllowedTypes) {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotAllowed, mimeType)
	}

	return &EncodedImage{
		Filename: filename,
		MimeType: mimeType,
		Size:     int64(len(data)),
		DataURL:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// EncodeUpload encodes one multipart upload.
func (s *MediaService) EncodeUpload(header *multipart.FileHeader, options UploadOptions) (*EncodedImage, error) {
	if options.MaxSize > 0 && header.Size > options.MaxSize {
		return nil, fmt.Errorf("%w: file size %d bytes exceeds %d bytes", ErrFileTooLarge, header.Size, options.MaxSize)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	return s.EncodeImage(file, header.Filename, options)
}

// EncodeUploads encodes several uploads concurrently. Results keep the input
// order; the first failure cancels the rest.
func (s *MediaService) EncodeUploads(ctx context.Context, headers []*multipart.FileHeader, options UploadOptions) ([]*EncodedImage, error) {
	results := make([]*EncodedImage, len(headers))

	g, ctx := errgroup.WithContext(ctx)
	for i, header := range headers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			encoded, err := s.EncodeUpload(header, options)
			if err != nil {
				return fmt.Errorf("%s: %w", header.Filename, err)
			}
			results[i] = encoded
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func isAllowed(detected *mimetype.MIME, allowed []string) bool {
	for _, t := range allowed {
		if detected.Is(t) {
			return true
		}
	}
	return false
}

package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	gifBytes = append([]byte("GIF89a"), make([]byte, 32)...)
)

type testUpload struct {
	field    string
	filename string
	content  []byte
}

func multipartHeaders(t *testing.T, field string, uploads ...testUpload) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, u := range uploads {
		part, err := writer.CreateFormFile(u.field, u.filename)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field]
}

func TestEncodeImageBuildsDataURL(t *testing.T) {
	media := NewMediaService()

	encoded, err := media.EncodeImage(bytes.NewReader(pngBytes), "avatar.png", media.GetDefaultUploadOptions("avatars"))
	require.NoError(t, err)

	assert.Equal(t, "image/png", encoded.MimeType)
	assert.Equal(t, int64(len(pngBytes)), encoded.Size)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBytes), encoded.DataURL)
}

func TestEncodeImageRejectsNonImages(t *testing.T) {
	media := NewMediaService()

	_, err := media.EncodeImage(strings.NewReader("just some text"), "notes.txt", media.GetDefaultUploadOptions("avatars"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestEncodeImageEnforcesLimits(t *testing.T) {
	media := NewMediaService()

	_, err := media.EncodeImage(bytes.NewReader(pngBytes), "big.png", UploadOptions{MaxSize: 8})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = media.EncodeImage(bytes.NewReader(gifBytes), "anim.gif", UploadOptions{AllowedTypes: []string{"image/png"}})
	assert.ErrorIs(t, err, ErrTypeNotAllowed)
}

func TestEncodeUploadsKeepsInputOrder(t *testing.T) {
	media := NewMediaService()
	headers := multipartHeaders(t, "images",
		testUpload{"images", "a.png", pngBytes},
		testUpload{"images", "b.gif", gifBytes},
		testUpload{"images", "c.png", pngBytes},
	)

	encoded, err := media.EncodeUploads(context.Background(), headers, media.GetDefaultUploadOptions("products"))
	require.NoError(t, err)
	require.Len(t, encoded, 3)

	assert.Equal(t, "a.png", encoded[0].Filename)
	assert.Equal(t, "image/gif", encoded[1].MimeType)
	assert.Equal(t, "c.png", encoded[2].Filename)
}

func TestEncodeUploadsFailsOnAnyBadFile(t *testing.T) {
	media := NewMediaService()
	headers := multipartHeaders(t, "images",
		testUpload{"images", "a.png", pngBytes},
		testUpload{"images", "readme.txt", []byte("hello world")},
	)

	_, err := media.EncodeUploads(context.Background(), headers, media.GetDefaultUploadOptions("products"))
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Contains(t, err.Error(), "readme.txt")
}

package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestObjectKey(t *testing.T) {
	now := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

	key := ObjectKey(FolderGallery, "Poster.PNG", "image/png", now)
	assert.Regexp(t, regexp.MustCompile(`^gallery/20250607-[0-9a-f-]{36}\.png$`), key)

	key = ObjectKey(FolderThumbnails, "noext", "image/jpeg", now)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
}

func TestSniffAndKinds(t *testing.T) {
	mime := Sniff(pngBytes(t, 2, 2))
	assert.Equal(t, "image/png", mime)
	assert.True(t, IsImage(mime))
	assert.False(t, IsVideo(mime))
	assert.True(t, IsVideo("video/mp4; codecs=avc1"))
	assert.False(t, IsImage(Sniff([]byte("plain text body"))))
}

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "uploads/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "blog/a.txt", strings.NewReader("hello"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/blog/a.txt", url)

	data, err := os.ReadFile(filepath.Join(dir, "blog", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(context.Background(), "blog/a.txt"))
	assert.True(t, errors.Is(store.Delete(context.Background(), "blog/a.txt"), ErrObjectNotFound))
}

func TestLocalRejectsEscapingKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"), "")
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "uploads", "etc", "passwd"))
	assert.NoError(t, statErr, "key must be confined to the upload dir")

	_, err = store.Put(context.Background(), "  ", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemory("https://cdn.example.com/media/")

	url, err := store.Put(context.Background(), "gallery/x.png", bytes.NewReader([]byte{1, 2}), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/gallery/x.png", url)

	data, contentType, ok := store.Get("gallery/x.png")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2}, data)
	assert.Equal(t, "image/png", contentType)
	assert.Len(t, store.Keys("gallery/"), 1)

	store.FailPut = errors.New("boom")
	_, err = store.Put(context.Background(), "gallery/y.png", bytes.NewReader(nil), "")
	assert.EqualError(t, err, "boom")
}

func TestS3PublicURL(t *testing.T) {
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/blog/a.png",
		s3PublicURL(S3Config{Bucket: "media", Region: "eu-west-1"}, "blog/a.png"))

	assert.Equal(t, "http://localhost:9000/media/blog/a.png",
		s3PublicURL(S3Config{Bucket: "media", Endpoint: "http://localhost:9000", UsePathStyle: true}, "blog/a.png"))

	assert.Equal(t, "https://media.storage.example.com/blog/a.png",
		s3PublicURL(S3Config{Bucket: "media", Endpoint: "https://storage.example.com"}, "/blog/a.png"))

	assert.Equal(t, "https://cdn.example.com/blog/a.png",
		s3PublicURL(S3Config{Bucket: "media", PublicBaseURL: "https://cdn.example.com/"}, "blog/a.png"))
}

func TestThumbnailScalesWideImages(t *testing.T) {
	out, err := Thumbnail(pngBytes(t, 960, 480))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	out, err = Thumbnail(pngBytes(t, 100, 50))
	require.NoError(t, err)
	img, err = jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())

	_, err = Thumbnail([]byte("not an image"))
	assert.Error(t, err)
}

// pngHeader 只包含签名与 IHDR，声明 w x h 像素但没有图像数据。
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA

	chunk := append([]byte("IHDR"), ihdr...)
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestThumbnailRejectsOversizedDimensions(t *testing.T) {
	_, err := Thumbnail(pngHeader(30000, 30000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrImageTooLarge))
}

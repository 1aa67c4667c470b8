package attachment

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// DefaultMimeType is used when neither the picked file nor its extension gives a content type.
const DefaultMimeType = "application/octet-stream"

// Payload gives access to the raw bytes of a picked file until they are uploaded.
type Payload interface {
	Open() (io.ReadCloser, error)
}

// FilePayload reads the bytes from a path on disk.
type FilePayload string

func (p FilePayload) Open() (io.ReadCloser, error) {
	return os.Open(string(p))
}

// BytesPayload holds the bytes in memory.
type BytesPayload []byte

func (p BytesPayload) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(p)), nil
}

// File is a candidate picked by the buyer, before it is accepted as an Image.
type File struct {
	Name    string
	Size    int64
	Type    string
	Payload Payload
}

// FileFromPath stats path and builds a File whose type is guessed from the extension.
func FileFromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	return File{
		Name:    filepath.Base(path),
		Size:    info.Size(),
		Type:    MimeTypeByName(path),
		Payload: FilePayload(path),
	}, nil
}

// MimeTypeByName guesses the content type from the extension of name, or returns "".
func MimeTypeByName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if ct := imageTypeByExtension(ext); ct != "" {
		return ct
	}
	if mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil {
		return mediaType
	}
	return ""
}

// IsImageType reports whether ct is a well-formed image/* media type.
func IsImageType(ct string) bool {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	sub, ok := strings.CutPrefix(mediaType, "image/")
	return ok && sub != ""
}

// imageTypeByExtension pins the photo formats so hosts with their own mime.types agree.
func imageTypeByExtension(ext string) string {
	switch strings.TrimPrefix(ext, ".") {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	case "avif":
		return "image/avif"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	case "heic":
		return "image/heic"
	case "heif":
		return "image/heif"
	default:
		return ""
	}
}

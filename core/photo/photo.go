package photo

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNotAnImage = errors.New("not an image")
	ErrBadDataURL = errors.New("malformed image data")
)

// Blob is one candidate photo: an image payload plus its mime type.
// Blobs are stored and transported as data URLs, exactly as the record
// collections hold them.
type Blob struct {
	MIME string
	Data []byte
}

// DataURL encodes the blob in `data:<mime>;base64,<payload>` form.
func (b Blob) DataURL() string {
	return "data:" + b.MIME + ";base64," + base64.StdEncoding.EncodeToString(b.Data)
}

// ParseDataURL decodes a data-URL image blob.
func ParseDataURL(s string) (Blob, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Blob{}, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Blob{}, ErrBadDataURL
	}
	mime, enc, ok := strings.Cut(meta, ";")
	if !ok || enc != "base64" {
		return Blob{}, ErrBadDataURL
	}
	if !strings.HasPrefix(mime, "image/") {
		return Blob{}, ErrNotAnImage
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Blob{}, ErrBadDataURL
	}
	return Blob{MIME: mime, Data: data}, nil
}

// Source is an asynchronous capture capability. Both providers resolve to
// the same candidate Blob; a failed capture is user-visible and abandoned.
type Source interface {
	Capture(ctx context.Context) (Blob, error)
}

// FileSource yields a blob from a picked file.
type fileSource struct {
	r io.Reader
}

func NewFileSource(r io.Reader) Source {
	return &fileSource{r: r}
}

func (src *fileSource) Capture(ctx context.Context) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	data, err := io.ReadAll(src.r)
	if err != nil {
		return Blob{}, errors.Wrap(err, "reading image file")
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return Blob{}, ErrNotAnImage
	}
	return Blob{MIME: mime, Data: data}, nil
}

// FrameSource yields a blob from a still frame the camera already encoded
// as a data URL.
type frameSource struct {
	dataURL string
}

func NewFrameSource(dataURL string) Source {
	return &frameSource{dataURL: dataURL}
}

func (src *frameSource) Capture(ctx context.Context) (Blob, error) {
	if err := ctx.Err(); err != nil {
		return Blob{}, err
	}
	return ParseDataURL(src.dataURL)
}

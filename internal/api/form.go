package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form accumulates multipart fields and files. Save/update operations
// that may carry uploads always go through a Form, even when no file
// changed, so call sites never branch on file presence.
type Form struct {
	buf    bytes.Buffer
	w      *multipart.Writer
	closed bool
	err    error
}

func NewForm() *Form {
	f := &Form{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

func (f *Form) Field(name, value string) *Form {
	if f.err == nil {
		f.err = f.w.WriteField(name, value)
	}
	return f
}

func (f *Form) File(name, filename string, r io.Reader) *Form {
	if f.err != nil {
		return f
	}
	part, err := f.w.CreateFormFile(name, filename)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = io.Copy(part, r)
	return f
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// FileWithType is File with an explicit part Content-Type;
// CreateFormFile would label every upload application/octet-stream.
func (f *Form) FileWithType(name, filename, contentType string, r io.Reader) *Form {
	if f.err != nil {
		return f
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(name), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", contentType)
	part, err := f.w.CreatePart(h)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = io.Copy(part, r)
	return f
}

func (f *Form) ContentType() string { return f.w.FormDataContentType() }

// Reader closes the writer (writing the final boundary) and returns
// the encoded body.
func (f *Form) Reader() (io.Reader, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !f.closed {
		if err := f.w.Close(); err != nil {
			return nil, err
		}
		f.closed = true
	}
	return bytes.NewReader(f.buf.Bytes()), nil
}

package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
)

// Image parts are always sent with a fixed content type and filename,
// regardless of the source file name.
const (
	imageFieldName   = "c_image"
	imageFileName    = "complaint_image.jpg"
	imageContentType = "image/jpeg"
)

// formField is one text field of a multipart complaint payload.
type formField struct {
	name  string
	value string
}

// buildComplaintForm encodes the given fields as multipart/form-data.
// When imagePath is non-empty the file is attached as a binary part named
// c_image; otherwise the image part is omitted entirely.
func buildComplaintForm(fields []formField, imagePath string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if imagePath != "" {
		src, err := os.Open(imagePath)
		if err != nil {
			return nil, "", fmt.Errorf("open image: %w", err)
		}
		defer src.Close()

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, imageFieldName, imageFileName))
		h.Set("Content-Type", imageContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, src); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

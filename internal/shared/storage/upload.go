package storage

import (
	"mime/multipart"
	"net/http"

	"go-commission/internal/shared/apperror"
)

// MaxUploadSize bounds every uploaded file.
const MaxUploadSize = 10 << 20

var ErrFileTooLarge = apperror.New(
	apperror.CodeInvalidInput,
	"File exceeds the 10 MB limit",
	http.StatusBadRequest,
)

// OpenUploads opens every multipart file header. The returned func closes
// them and is safe to call when an error was returned.
func OpenUploads(headers []*multipart.FileHeader) ([]Upload, func(), error) {
	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	uploads := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > MaxUploadSize {
			closeAll()
			return nil, func() {}, ErrFileTooLarge
		}
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		uploads = append(uploads, Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     f,
		})
	}
	return uploads, closeAll, nil
}

package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"folio/internal/storage"
)

// sniffLen is how many leading bytes are read to detect the file type.
const sniffLen = 512

// multipartOverhead leaves room for form fields around the file part.
const multipartOverhead = 1 << 20

// Upload stores a file and returns its public URL. It takes either a
// multipart form (field "file", optional "filename") or a raw body with
// the name in the "filename" query parameter.
func (a *Admin) Upload(w http.ResponseWriter, r *http.Request) {
	if a.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "File storage is not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadSize+multipartOverhead)

	var (
		body     io.Reader
		filename string
		size     int64
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(storage.MaxUploadSize); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
				return
			}
			writeError(w, http.StatusBadRequest, "Invalid upload form.")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file provided.")
			return
		}
		defer file.Close()
		body, size = file, header.Size
		filename = r.FormValue("filename")
		if filename == "" {
			filename = header.Filename
		}
	} else {
		body, size = r.Body, r.ContentLength
		filename = r.URL.Query().Get("filename")
	}

	filename = strings.TrimSpace(filename)
	if filename == "" {
		writeError(w, http.StatusBadRequest, "A filename is required.")
		return
	}
	if size > storage.MaxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
		return
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Failed to read file.")
		return
	}
	if n == 0 {
		writeError(w, http.StatusBadRequest, "The file is empty.")
		return
	}
	contentType, ok := storage.DetectType(head[:n])
	if !ok {
		writeError(w, http.StatusUnsupportedMediaType, "File type "+contentType+" is not allowed.")
		return
	}

	key := storage.ObjectName(filename)
	url, err := a.uploader.Upload(r.Context(), key, contentType, io.MultiReader(bytes.NewReader(head[:n]), body), size)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.Is(err, storage.ErrTooLarge) || errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 10 MB.")
			return
		}
		slog.Error("upload failed", "error", err, "key", key)
		writeError(w, http.StatusInternalServerError, "Failed to upload file.")
		return
	}

	slog.Info("file uploaded", "key", key, "type", contentType)
	writeJSON(w, http.StatusCreated, map[string]string{"url": url, "key": key, "content_type": contentType})
}

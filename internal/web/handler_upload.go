package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/gallery"
)

func (s *Server) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.ErrNoFile.Reason, s.logger)
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	photo, err := s.gallery.Upload(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		s.writeGalleryError(w, err, "Failed to save file")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		Filename: photo.Filename,
		URL:      photo.URL,
	}, s.logger)
}

func (s *Server) handleListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := s.gallery.List(r.Context())
	if err != nil {
		s.logger.Error("list photos failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list images", s.logger)
		return
	}

	images := make([]imageEntry, 0, len(photos))
	for _, p := range photos {
		images = append(images, imageEntry{
			ID:        p.ID,
			Filename:  p.Filename,
			URL:       p.URL,
			Timestamp: p.CreatedAt.Unix(),
			Size:      p.Size,
		})
	}
	writeJSON(w, http.StatusOK, listResponse{Images: images}, s.logger)
}

func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimSpace(r.FormValue("filename"))
	if identifier == "" {
		identifier = strings.TrimSpace(r.FormValue("id"))
	}

	if err := s.gallery.Delete(r.Context(), identifier); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "File not found", s.logger)
			return
		}
		s.writeGalleryError(w, err, "Failed to delete file")
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true}, s.logger)
}

// writeGalleryError maps a gallery error to a response. Validation reasons
// are shown verbatim; anything else is logged and reported as failMsg.
func (s *Server) writeGalleryError(w http.ResponseWriter, err error, failMsg string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Reason, s.logger)
		return
	}
	s.logger.Error(strings.ToLower(failMsg), "error", err)
	writeError(w, http.StatusInternalServerError, failMsg, s.logger)
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	// Dotfiles are in-flight writes, never gallery photos.
	if err := gallery.ValidateIdentifier(filename); err != nil || strings.HasPrefix(filename, ".") {
		http.NotFound(w, r)
		return
	}

	reader, mimeType, err := s.photoStore.Get(r.Context(), s.keyPrefix+filename)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("read photo failed", "filename", filename, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "photo reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write photo failed", "filename", filename, "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}

package web

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/gallery"
	"github.com/vbonduro/photowall/internal/musiclink"
)

const (
	// maxRequestSize leaves room for multipart framing around the largest image.
	maxRequestSize = gallery.MaxUploadSize + 1<<20
	maxFormMemory  = 8 << 20
)

// handleAction dispatches on the "action" query or form parameter.
//
//	@Summary		Gallery action endpoint
//	@Description	upload (POST, multipart field "photo"), list (GET), delete (POST, field "filename"), music (GET loads, POST field "link" saves)
//	@Tags			gallery
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			action		query		string	true	"upload, list, delete or music"	Enums(upload, list, delete, music)
//	@Param			photo		formData	file	false	"image to upload"
//	@Param			filename	formData	string	false	"filename or id to delete"
//	@Param			link		formData	string	false	"YouTube link to save"
//	@Success		200			{object}	uploadResponse
//	@Success		200			{object}	listResponse
//	@Success		200			{object}	musicResponse
//	@Failure		400			{object}	errorResponse
//	@Failure		404			{object}	errorResponse
//	@Failure		500			{object}	errorResponse
//	@Router			/api [post]
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	defer s.removeFormFiles(r)

	// Only a POST without ?action= has to read its body to find the action.
	action := r.URL.Query().Get("action")
	if action == "" && r.Method == http.MethodPost {
		if !s.parseForm(w, r) {
			return
		}
		action = r.PostFormValue("action")
	}

	switch {
	case action == "upload" && r.Method == http.MethodPost:
		if s.parseForm(w, r) {
			s.handleUploadPhoto(w, r)
		}
	case action == "list":
		s.handleListPhotos(w, r)
	case action == "delete" && r.Method == http.MethodPost:
		if s.parseForm(w, r) {
			s.handleDeletePhoto(w, r)
		}
	case action == "music" && r.Method == http.MethodGet:
		s.handleLoadMusic(w, r)
	case action == "music" && r.Method == http.MethodPost:
		if s.parseForm(w, r) {
			s.handleSaveMusic(w, r)
		}
	default:
		writeError(w, http.StatusBadRequest, "Invalid action", s.logger)
	}
}

// parseForm reads a size-limited request body into r.Form once. It writes
// the error response and reports false when the body is too large.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if r.PostForm != nil {
		return true
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	var err error
	if isMultipart(r.Header.Get("Content-Type")) {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, domain.ErrTooLarge.Reason, s.logger)
			return false
		}
		s.logger.Debug("form parse failed", "error", err)
	}
	return true
}

func (s *Server) removeFormFiles(r *http.Request) {
	if r.MultipartForm == nil {
		return
	}
	if err := r.MultipartForm.RemoveAll(); err != nil {
		s.logger.Error("failed to remove multipart temp files", "error", err)
	}
}

// isMultipart reports whether contentType is multipart/form-data, ignoring
// case and parameters.
func isMultipart(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "multipart/form-data"
}

func (s *Server) handleLoadMusic(w http.ResponseWriter, r *http.Request) {
	link, ok, err := s.links.Load(r.Context())
	if err != nil {
		s.logger.Error("load music link failed", "error", err)
	}
	if err != nil || !ok {
		writeJSON(w, http.StatusOK, musicResponse{}, s.logger)
		return
	}

	resp := musicResponse{Link: &link.Link}
	if id, valid := musiclink.VideoID(link.Link); valid {
		resp.VideoID = id
	}
	if !link.UpdatedAt.IsZero() {
		resp.Timestamp = link.UpdatedAt.Unix()
	}
	writeJSON(w, http.StatusOK, resp, s.logger)
}

func (s *Server) handleSaveMusic(w http.ResponseWriter, r *http.Request) {
	link := strings.TrimSpace(r.FormValue("link"))
	id, ok := musiclink.VideoID(link)
	if !ok {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidLink.Reason, s.logger)
		return
	}

	if err := s.links.Save(r.Context(), link); err != nil {
		s.logger.Error("save music link failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save link", s.logger)
		return
	}

	s.logger.Info("music link saved", "video_id", id)
	writeJSON(w, http.StatusOK, saveMusicResponse{Success: true, VideoID: id}, s.logger)
}

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error" example:"Invalid file type"`
}

type successResponse struct {
	Success bool `json:"success" example:"true"`
}

type uploadResponse struct {
	Success  bool   `json:"success" example:"true"`
	Filename string `json:"filename" example:"1766599200_5f3a9c1e2b7d4.png"`
	URL      string `json:"url" example:"/uploads/1766599200_5f3a9c1e2b7d4.png"`
}

type imageEntry struct {
	ID        string `json:"id" example:"1766599200_5f3a9c1e2b7d4"`
	Filename  string `json:"filename" example:"1766599200_5f3a9c1e2b7d4.png"`
	URL       string `json:"url" example:"/uploads/1766599200_5f3a9c1e2b7d4.png"`
	Timestamp int64  `json:"timestamp" example:"1766599200"`
	Size      int64  `json:"size,omitempty" example:"2048"`
}

type listResponse struct {
	Images []imageEntry `json:"images"`
}

type musicResponse struct {
	Link      *string `json:"link"`
	VideoID   string  `json:"videoId,omitempty" example:"dQw4w9WgXcQ"`
	Timestamp int64   `json:"timestamp,omitempty" example:"1766599200"`
}

type saveMusicResponse struct {
	Success bool   `json:"success" example:"true"`
	VideoID string `json:"videoId" example:"dQw4w9WgXcQ"`
}

// writeJSON writes a JSON-encoded payload with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, errorResponse{Error: message}, logger)
}

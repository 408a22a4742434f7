package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/arvid/skriv/internal/apperr"
	"github.com/arvid/skriv/internal/contentservice"
)

const maxUploadBytes = 100 << 20 // 100 MB audio uploads

// CreateTape handles POST /api/tapes (multipart/form-data with fields
// title, description, duration, date and file field "audio").
func (h *Handler) CreateTape(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Title and audio file required"))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read audio payload"))
		return
	}

	in := contentservice.TapeInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Duration:    r.FormValue("duration"),
		Date:        r.FormValue("date"),
	}
	item, err := h.svc.CreateTape(r.Context(), in, audio, header.Filename)
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorBody("Title and audio file required"))
			return
		}
		slog.Error("create tape failed", slog.String("title", in.Title), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to create tape"))
		return
	}

	writeJSON(w, http.StatusOK, TapeResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: in.Description,
		Duration:    item.Duration,
		Date:        in.Date,
		HasAudio:    true,
		Message:     "Tape created successfully",
	})
}

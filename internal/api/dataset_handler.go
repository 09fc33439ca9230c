package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/geoquiz/backend/internal/domain/dataset"
	"github.com/geoquiz/backend/internal/domain/quiz"
)

// ── Request / Response types ────────────────────────────────────────────────

type DatasetResponse struct {
	Entries int      `json:"entries" example:"197"`
	Min     int      `json:"min" example:"1"`
	Max     int      `json:"max" example:"197"`
	Topics  []string `json:"topics" example:"countries,capitals,flags"`
	Modes   []string `json:"modes" example:"free-text,flashcard"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getDataset describes the loaded dataset and the menu choices.
// @Summary      Describe the dataset
// @Description  Entry count, slider bounds, and the selectable topics and modes.
// @Tags         Dataset
// @Produce      json
// @Success      200  {object}  DatasetResponse
// @Router       /dataset [get]
func (h *Handler) getDataset(w http.ResponseWriter, r *http.Request) {
	lo, hi := h.quiz.Bounds()

	topics := make([]string, 0, len(quiz.Topics))
	for _, t := range quiz.Topics {
		topics = append(topics, t.String())
	}
	modes := make([]string, 0, len(quiz.Modes))
	for _, m := range quiz.Modes {
		modes = append(modes, m.String())
	}

	respondJSON(w, http.StatusOK, DatasetResponse{
		Entries: h.quiz.Dataset().Len(),
		Min:     lo,
		Max:     hi,
		Topics:  topics,
		Modes:   modes,
	})
}

// getFlag serves the flag image of a country.
// @Summary      Get a flag
// @Tags         Dataset
// @Produce      png
// @Param        country  path  string  true  "Country name"
// @Success      200
// @Failure      404  {object}  map[string]string  "flag not found"
// @Router       /flags/{country} [get]
func (h *Handler) getFlag(w http.ResponseWriter, r *http.Request) {
	country := r.PathValue("country")
	path := filepath.Join(h.flagsDir, dataset.FlagFileName(country))

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		respondError(w, http.StatusNotFound, "flag not found")
		return
	}
	if err != nil {
		h.logger.Error("flag lookup failed", "error", err, "country", country)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.logger.Error("flag stat failed", "error", err, "country", country)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

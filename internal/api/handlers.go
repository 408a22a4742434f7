package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arvid/skriv/internal/apperr"
	"github.com/arvid/skriv/internal/contentservice"
	"github.com/arvid/skriv/internal/models"
	"github.com/arvid/skriv/internal/release"
)

const maxBodyBytes = 10 << 20 // 10 MB JSON bodies

// Handler holds the API route handlers.
type Handler struct {
	svc    *contentservice.Service
	runner *release.Runner
	repo   string
	branch string
}

// NewHandler creates a new Handler.
func NewHandler(svc *contentservice.Service, runner *release.Runner, repo, branch string) *Handler {
	return &Handler{svc: svc, runner: runner, repo: repo, branch: branch}
}

// ListArticles handles GET /api/articles: the merged listing of all three
// categories, sorted by date descending.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		slog.Error("list articles failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to read articles"))
		return
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// CreateArticle handles POST /api/articles.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Title and content required"))
		return
	}

	item, err := h.svc.Create(r.Context(), contentservice.CreateInput{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: models.Category(req.Category),
		Date:     req.Date,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("create article failed", slog.String("title", req.Title), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to create article"))
		return
	}

	writeJSON(w, http.StatusOK, ArticleResponse{
		ID:       item.ID,
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: req.Category,
		Date:     req.Date,
		Message:  "Article created successfully",
	})
}

// UpdateArticle handles PUT /api/articles/{id}. The destination path is
// derived from the new title when present, else from the id; no strict
// field validation beyond what the codec needs.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	id := chi.URLParam(r, "id")

	var req UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	err := h.svc.Update(r.Context(), id, contentservice.CreateInput{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Category: models.Category(req.Category),
		Date:     req.Date,
	})
	if err != nil {
		slog.Error("update article failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to update article"))
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Article updated successfully"})
}

// DeleteArticle handles DELETE /api/articles/{id}?category=.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	category := models.Category(r.URL.Query().Get("category"))

	if err := h.svc.Delete(r.Context(), id, category); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("Article not found"))
			return
		}
		slog.Error("delete article failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to delete article"))
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Article deleted successfully"})
}

// DeleteTape handles DELETE /api/tapes/{id}: removes the metadata file and
// every recognised audio variant, succeeding when at least one was there.
func (h *Handler) DeleteTape(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.DeleteTape(r.Context(), id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("Tape not found"))
			return
		}
		slog.Error("delete tape failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to delete tape"))
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Tape deleted successfully"})
}

// DeployStatus handles GET /api/deploy/status. Always available, even in
// production mode.
func (h *Handler) DeployStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, DeployStatusResponse{
		Ready:  true,
		Repo:   h.repo,
		Branch: h.branch,
	})
}

// Deploy handles POST /api/deploy: runs the release pipeline and reports
// either the full step list or the partial progress before a fatal step.
func (h *Handler) Deploy(w http.ResponseWriter, r *http.Request) {
	res := h.runner.Deploy(r.Context())
	if !res.Success {
		writeJSON(w, http.StatusInternalServerError, DeployFailureResponse{
			Success: false,
			Error:   res.Err.Error(),
			Message: "Deployment failed. Check server logs for details.",
			Steps:   res.Steps,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

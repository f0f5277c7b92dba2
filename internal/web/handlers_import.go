package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/cookbook/internal/logging"
	"github.com/JonMunkholm/cookbook/internal/recipe"
)

// previewResponse describes a parsed upload awaiting confirmation.
type previewResponse struct {
	Token      string            `json:"token"`
	Recipes    []recipe.Recipe   `json:"recipes"`
	RowErrors  []recipe.RowError `json:"row_errors"`
	ValidCount int               `json:"valid_count"`
	ErrorCount int               `json:"error_count"`
}

// handleImportPreview accepts a multipart CSV upload, parses it, and holds
// the result under a one-time token. Nothing is written to the database
// until the client confirms.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	file, _, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	recipes, rowErrors := recipe.DecodeCSV(file)
	if recipes == nil && rowErrors == nil {
		writeError(w, http.StatusBadRequest, "empty or unreadable CSV")
		return
	}

	token := s.previews.put(recipes, rowErrors)

	logging.FromContext(r.Context()).Info("import preview",
		"token", token,
		"valid", len(recipes),
		"errors", len(rowErrors),
	)

	if rowErrors == nil {
		rowErrors = []recipe.RowError{}
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}

	writeJSON(w, http.StatusOK, previewResponse{
		Token:      token,
		Recipes:    recipes,
		RowErrors:  rowErrors,
		ValidCount: len(recipes),
		ErrorCount: len(rowErrors),
	})
}

// handleImportConfirm commits a previously previewed batch. Tokens are
// single-use; confirming twice or after expiry yields a 404.
func (s *Server) handleImportConfirm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	sess, ok := s.previews.take(token)
	if !ok {
		writeError(w, http.StatusNotFound, "preview expired or already confirmed")
		return
	}

	if len(sess.recipes) == 0 {
		writeError(w, http.StatusBadRequest, "no valid recipes to import")
		return
	}

	ids, err := s.store.ImportRecipes(r.Context(), sess.recipes)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("import confirmed",
		"token", token,
		"imported", len(ids),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"imported":   len(ids),
		"recipe_ids": ids,
	})
}

// handleImportTemplate serves a starter CSV with example recipes in both
// flat and sectioned form.
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="recipe_template.csv"`)
	w.Write([]byte(recipe.TemplateCSV()))
}

// handleExport streams every stored recipe as a CSV download in the same
// format the importer accepts.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	stored, err := s.store.AllRecipes(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	recipes := make([]recipe.Recipe, 0, len(stored))
	for _, sr := range stored {
		recipes = append(recipes, sr.Recipe)
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="recipes.csv"`)
	if err := recipe.EncodeCSV(w, recipes); err != nil {
		logging.FromContext(r.Context()).Error("export encode failed", "error", err)
	}
}

package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/cookbook/internal/recipe"
	"github.com/JonMunkholm/cookbook/internal/store"
)

// handleListRecipes returns recipe summaries, filtered and ordered by query
// parameters: category, favorites=true, q (title search), and sort
// (title, created, or updated).
func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	filter := store.ListFilter{
		Category:      r.URL.Query().Get("category"),
		FavoritesOnly: r.URL.Query().Get("favorites") == "true",
		Search:        r.URL.Query().Get("q"),
		Sort:          r.URL.Query().Get("sort"),
	}

	recipes, err := s.store.ListRecipes(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	rec, ok := decodeRecipe(w, r)
	if !ok {
		return
	}

	created, err := s.store.CreateRecipe(r.Context(), rec)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	rec, err := s.store.GetRecipe(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	rec, ok := decodeRecipe(w, r)
	if !ok {
		return
	}

	updated, err := s.store.UpdateRecipe(r.Context(), id, rec)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteRecipe(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	favorite, err := s.store.ToggleFavorite(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":          id,
		"is_favorite": favorite,
	})
}

// recipeID parses the recipeID URL parameter, writing a 400 on failure.
func recipeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "recipeID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return uuid.Nil, false
	}
	return id, true
}

// decodeRecipe reads and validates a recipe payload, writing a 400 on
// failure. Validation mirrors the CSV decoder: a title is always required,
// and a flat recipe needs instructions while a sectioned one needs at least
// one section with instructions.
func decodeRecipe(w http.ResponseWriter, r *http.Request) (recipe.Recipe, bool) {
	var rec recipe.Recipe
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return recipe.Recipe{}, false
	}

	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return recipe.Recipe{}, false
	}

	if rec.HasSections {
		hasInstructions := false
		for _, sec := range rec.Sections {
			if strings.TrimSpace(sec.Instructions) != "" {
				hasInstructions = true
				break
			}
		}
		if !hasInstructions {
			writeError(w, http.StatusBadRequest, "sectioned recipe must have at least one section with instructions")
			return recipe.Recipe{}, false
		}
	} else if strings.TrimSpace(rec.Instructions) == "" {
		writeError(w, http.StatusBadRequest, "instructions are required")
		return recipe.Recipe{}, false
	}

	return rec, true
}

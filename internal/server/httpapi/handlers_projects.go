package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/proplusapp/proplus/internal/server/ids"
	"github.com/proplusapp/proplus/internal/server/models"
	"github.com/proplusapp/proplus/internal/server/services"
)

type projectIn struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type projectOut struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	OwnerID     string  `json:"owner_id"`
	CreatedAt   string  `json:"created_at"`
}

func toProjectOut(p *models.Project) projectOut {
	return projectOut{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		OwnerID:     p.OwnerID.String(),
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in projectIn
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	project, err := s.projects.Create(r.Context(), identity, services.ProjectInput{
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectOut(project))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "skip", 0)

	result, err := s.projects.List(r.Context(), identity, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]projectOut, 0, len(result))
	for _, p := range result {
		out = append(out, toProjectOut(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := s.projectRequest(w, r)
	if !ok {
		return
	}

	project, err := s.projects.Get(r.Context(), identity, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectOut(project))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := s.projectRequest(w, r)
	if !ok {
		return
	}

	var in projectIn
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	project, err := s.projects.Update(r.Context(), identity, id, services.ProjectInput{
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectOut(project))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := s.projectRequest(w, r)
	if !ok {
		return
	}

	if err := s.projects.Delete(r.Context(), identity, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// projectRequest extracts the caller identity and the validated path id.
// Malformed ids are rejected before any store round trip.
func (s *Server) projectRequest(w http.ResponseWriter, r *http.Request) (*models.Identity, ids.ID, bool) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "unauthorized")
		return nil, "", false
	}

	id, err := ids.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		writeError(w, err)
		return nil, "", false
	}

	return identity, id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

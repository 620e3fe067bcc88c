package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// selectedProjectsRequest is the body of POST /api/projects/selected. The
// order field is accepted for backward compatibility but ignored: rank is
// re-derived from array position.
type selectedProjectsRequest struct {
	SelectedProjects []struct {
		ID    int  `json:"id"`
		Order *int `json:"order"`
	} `json:"selectedProjects"`
}

// getAllProjects serves the public project list, newest year first. Store
// failures degrade to an empty list so the public site keeps rendering.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects := h.projectRepo.FindAll()
		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"projects": projects,
		})
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, findErr := h.projectRepo.FindByID(id)
		if findErr != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", findErr))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"project": project,
		})
	}
}

func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validateProjectInput(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Add(input)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "project", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusCreated, map[string]any{
			"project": project,
		})
	}
}

func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.ProjectInput
		if decodeErr := json.NewDecoder(r.Body).Decode(&input); decodeErr != nil {
			h.logger.Error().Err(decodeErr).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := validateProjectInput(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, updateErr := h.projectRepo.Update(id, input)
		if updateErr != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "project", updateErr))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("project"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"project": project,
		})
	}
}

func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseProjectID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if deleteErr := h.projectRepo.Delete(id); deleteErr != nil {
			if errs.IsNotFound(deleteErr) {
				h.responder.WriteError(w, deleteErr)
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "project", deleteErr))
			return
		}

		h.logger.Info().Str("admin", ctxAdminUsername(r.Context())).Int("projectID", id).Msg("project deleted")

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"message": "project deleted",
		})
	}
}

// getSelectedProjects serves the homepage-featured set, at most three
// projects ordered by rank.
func (h projectHandler) getSelectedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindSelected()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "selected projects", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"projects": projects,
		})
	}
}

// setSelectedProjects replaces the featured set with the ids of the request
// body in array order, capped at three.
func (h projectHandler) setSelectedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body selectedProjectsRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode selected projects request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if body.SelectedProjects == nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("selectedProjects"))
			return
		}

		ids := make([]int, 0, len(body.SelectedProjects))
		for _, entry := range body.SelectedProjects {
			ids = append(ids, entry.ID)
		}

		if err := h.projectRepo.SetSelected(ids); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "selected projects", err))
			return
		}

		projects, err := h.projectRepo.FindSelected()
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "selected projects", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"projects": projects,
		})
	}
}

func parseProjectID(r *http.Request) (int, error) {
	idStr := chi.URLParam(r, "projectID")
	if idStr == "" {
		return 0, errs.NewBadRequestError("missing projectID")
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid projectID")
	}
	return id, nil
}

func validateProjectInput(input models.ProjectInput) error {
	if input.Title == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if input.Year == nil {
		return errs.NewMissingRequiredFieldError("year")
	}
	if input.Description == "" {
		return errs.NewMissingRequiredFieldError("description")
	}
	if len(input.Languages) == 0 {
		return errs.NewInvalidFieldError("languages", "must be a non-empty list")
	}
	return nil
}

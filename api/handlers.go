package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog/log"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens sessionTokens, blobStore *services.BlobStore, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(database.ProjectRepo()),
		authHandler:    newAuthHandler(database.AdminRepo(), tokens),
		uploadHandler:  newUploadHandler(blobStore),
		healthHandler:  newHealthHandler(startupTime),
	}
}

type healthHandler struct {
	responder   Responder
	startupTime time.Time
}

func newHealthHandler(startupTime time.Time) healthHandler {
	return healthHandler{
		responder:   NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		startupTime: startupTime,
	}
}

func (h healthHandler) status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"status": "ok",
			"uptime": time.Since(h.startupTime).String(),
		})
	}
}

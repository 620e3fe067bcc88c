package api

import (
	"encoding/json"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	adminRepo *database.AdminRepo
	tokens    sessionTokens
}

func newAuthHandler(adminRepo *database.AdminRepo, tokens sessionTokens) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		adminRepo: adminRepo,
		tokens:    tokens,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login checks the credentials against the stored bcrypt hash and issues a
// session token. Bad username and bad password produce the same response.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if body.Username == "" || body.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("username and password are required"))
			return
		}

		ok, err := h.adminRepo.CheckPassword(body.Username, body.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "admin", err))
			return
		}
		if !ok {
			h.logger.Warn().Str("username", body.Username).Msg("failed login attempt")
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		token, err := h.tokens.Issue(body.Username)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"token": token,
		})
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-site-backend/database"
)

const testSecret = "test-secret"

// newTestServer wires the real router against an in-memory database with a
// fixed token secret and blob storage disabled.
func newTestServer(t *testing.T) (*chi.Mux, database.Database) {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gdb))

	db := database.New(gdb)
	tokens := newSessionTokens(testSecret, time.Hour)
	handlers := initializeHandlers(db, tokens, nil, time.Now())

	mux := chi.NewRouter()
	mux.Use(LogInternalServerErrors)
	setupRoutes(mux, handlers, newAuthMiddleware(tokens))
	return mux, db
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := newSessionTokens(testSecret, time.Hour).Issue("admin")
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, mux *chi.Mux, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func createTestProject(t *testing.T, mux *chi.Mux, token, title string, year int) map[string]any {
	t.Helper()

	recorder := doJSON(t, mux, http.MethodPost, "/api/projects", token, map[string]any{
		"title":       title,
		"year":        year,
		"description": "about " + title,
		"languages":   []string{"Go"},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	envelope := decodeEnvelope(t, recorder)
	return envelope["project"].(map[string]any)
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ahmed-sobhani/rag-chat-be-core/internal/domain"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/repository"
	"github.com/ahmed-sobhani/rag-chat-be-core/internal/service"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/middleware"
)

const testAPIKey = "test-api-key"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.SessionModel{}, &domain.MessageModel{}))

	sessions := service.NewSessionService(repository.NewGormSessionRepository(db))
	messages := service.NewMessageService(repository.NewGormMessageRepository(db), sessions)

	engine := gin.New()
	h := NewHandler(sessions, messages, middleware.NewAuthMiddleware(testAPIKey), db)
	h.RegisterRoutes(engine)
	return engine
}

func doRequest(t *testing.T, router *gin.Engine, method, path, user string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.HeaderAPIKey, testAPIKey)
	if user != "" {
		req.Header.Set(middleware.HeaderUsername, user)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func createSession(t *testing.T, router *gin.Engine, user, title string) string {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/v1/chat/sessions", user,
		fmt.Sprintf(`{"title":%q}`, title))
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeData(t, w)["id"].(string)
}

func TestMissingAPIKey(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/sessions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestWrongAPIKey(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/sessions", nil)
	req.Header.Set(middleware.HeaderAPIKey, "wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	// No API key required for health.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCreateSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/chat/sessions", "alice",
		`{"title":"Trip planning","isFavorite":true}`)
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "Trip planning", data["title"])
	assert.Equal(t, "alice", data["user"])
	assert.Equal(t, true, data["isFavorite"])
	assert.NotEmpty(t, data["createdAt"])
}

func TestCreateSession_MissingTitle(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/chat/sessions", "alice", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSession_DefaultUser(t *testing.T) {
	router := newTestRouter(t)

	// No username header resolves to the sentinel identity.
	w := doRequest(t, router, http.MethodPost, "/api/v1/chat/sessions", "", `{"title":"No header"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "default", decodeData(t, w)["user"])
}

func TestGetSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "alice", "Trip planning")

	w := doRequest(t, router, http.MethodGet, "/api/v1/chat/sessions/"+id, "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decodeData(t, w)["id"])
}

func TestGetSession_OtherUser(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "alice", "Trip planning")

	w := doRequest(t, router, http.MethodGet, "/api/v1/chat/sessions/"+id, "bob", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetSession_MalformedID(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/chat/sessions/not-a-uuid", "alice", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSessionsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	createSession(t, router, "alice", "First chat")
	createSession(t, router, "alice", "Second chat")
	createSession(t, router, "bob", "Bob chat")

	w := doRequest(t, router, http.MethodGet, "/api/v1/chat/sessions?limit=1", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, float64(2), data["totalItems"])
	assert.Equal(t, float64(2), data["totalPages"])
	assert.Equal(t, float64(1), data["currentPage"])
	assert.Equal(t, true, data["hasNextPage"])
	assert.Equal(t, false, data["hasPreviousPage"])
	assert.Len(t, data["items"], 1)
}

func TestListSessions_InvalidDates(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet,
		"/api/v1/chat/sessions?fromDate=2024-03-31&toDate=2024-03-01", "alice", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "alice", "Old title")

	w := doRequest(t, router, http.MethodPatch, "/api/v1/chat/sessions/"+id, "alice",
		`{"title":"New title"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New title", decodeData(t, w)["title"])
}

func TestUpdateSession_ExplicitFalseFavorite(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/chat/sessions", "alice",
		`{"title":"Chat","isFavorite":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeData(t, w)["id"].(string)

	w = doRequest(t, router, http.MethodPatch, "/api/v1/chat/sessions/"+id, "alice",
		`{"isFavorite":false}`)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, false, data["isFavorite"])
	assert.Equal(t, "Chat", data["title"])
}

func TestToggleFavoriteEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "alice", "Chat")

	w := doRequest(t, router, http.MethodPatch, "/api/v1/chat/sessions/"+id+"/favorite", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeData(t, w)["isFavorite"])
}

func TestDeleteSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "alice", "Chat")

	w := doRequest(t, router, http.MethodDelete, "/api/v1/chat/sessions/"+id, "alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/chat/sessions/"+id, "alice", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMessageEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "alice", "Chat")

	w := doRequest(t, router, http.MethodPost, "/api/v1/chat/sessions/"+id+"/messages", "alice",
		`{"message":"hello","metadata":{"source":"web"}}`)
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, id, data["sessionId"])
	assert.Equal(t, "hello", data["message"])
	assert.Equal(t, "alice", data["sender"])
}

func TestCreateMessage_MissingBody(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "alice", "Chat")

	w := doRequest(t, router, http.MethodPost, "/api/v1/chat/sessions/"+id+"/messages", "alice", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMessagesEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "alice", "Chat")

	for i := 0; i < 3; i++ {
		w := doRequest(t, router, http.MethodPost, "/api/v1/chat/sessions/"+id+"/messages", "alice",
			fmt.Sprintf(`{"message":"msg %d"}`, i))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(t, router, http.MethodGet, "/api/v1/chat/sessions/"+id+"/messages?sort=ASC", "alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, float64(3), data["totalItems"])
	assert.Len(t, data["items"], 3)
}

func TestListMessages_OtherUsersSessionEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := createSession(t, router, "alice", "Chat")

	w := doRequest(t, router, http.MethodGet, "/api/v1/chat/sessions/"+id+"/messages", "bob", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

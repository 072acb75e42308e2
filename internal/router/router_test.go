package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AanchalGupta0502/SocialeX/internal/logging"
	"github.com/AanchalGupta0502/SocialeX/internal/models"
	"github.com/AanchalGupta0502/SocialeX/internal/realtime"
	"github.com/AanchalGupta0502/SocialeX/internal/repositories"
	"github.com/AanchalGupta0502/SocialeX/internal/services"
	"github.com/AanchalGupta0502/SocialeX/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := repositories.NewMemoryStore()
	logger := logging.Discard()
	v := validators.NewValidator()

	accounts := services.NewAccounts(store, "test-secret", time.Hour)
	profiles := services.NewProfiles(store)
	graph := services.NewSocialGraph(store, store, nil, logger)
	content := services.NewContent(store, store, store, logger)

	rt := realtime.NewRouter(realtime.NewHub(logger), realtime.Services{
		Profiles: profiles,
		Graph:    graph,
		Chats:    services.NewChatStore(store),
		Content:  content,
	}, v, logger, realtime.Options{HandlerTimeout: time.Second, SendBuffer: 8})

	e := echo.New()
	e.Validator = v
	SetupRoutes(e, Dependencies{
		Users:    store,
		Posts:    store,
		Stories:  store,
		Accounts: accounts,
		Profiles: profiles,
		Graph:    graph,
		Content:  content,
		Realtime: rt,
		Logger:   logger,
	})
	return &testServer{e: e}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, username string) models.AuthResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/auth/register", "",
		`{"username":"`+username+`","email":"`+username+`@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connections":0`)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice")

	t.Run("duplicate email is rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/register", "",
			`{"username":"alice2","email":"alice@example.com","password":"secret123"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login returns a working token", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "",
			`{"email":"alice@example.com","password":"secret123"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		rec = s.do(t, http.MethodGet, "/api/auth/profile", resp.Token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"alice"`)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/login", "",
			`{"email":"alice@example.com","password":"nope-nope"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("profile requires a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/auth/profile", "", "").Code)
		assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/auth/profile", "garbage", "").Code)
	})

	t.Run("firebase login is not offered without a verifier", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/auth/firebase-login", "", `{"idToken":"x"}`)
		assert.NotEqual(t, http.StatusOK, rec.Code)
	})

	assert.Equal(t, "alice", alice.User.Username)
}

func TestFollowLikeAndFeed(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")
	bobID := bob.User.ID.Hex()

	rec := s.do(t, http.MethodPost, "/api/post", bob.Token, `{"content":"hello from bob"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, bobID, post.UserID)

	rec = s.do(t, http.MethodPost, "/api/users/"+bobID+"/follow", alice.Token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/post/"+post.ID.Hex()+"/like", alice.Token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var liked realtime.LikeUpdated
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &liked))
	assert.Equal(t, []string{alice.User.ID.Hex()}, liked.Likes)

	rec = s.do(t, http.MethodGet, "/api/feed", alice.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var feed struct {
		Posts []struct {
			Content string `json:"content"`
			IsLiked bool   `json:"isLiked"`
		} `json:"posts"`
		HasMore bool `json:"hasMore"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "hello from bob", feed.Posts[0].Content)
	assert.True(t, feed.Posts[0].IsLiked)
	assert.False(t, feed.HasMore)
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice")
	bob := s.register(t, "bob")

	rec := s.do(t, http.MethodPost, "/api/post", bob.Token, `{"content":"mine"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/post/"+post.ID.Hex(), alice.Token, "").Code)
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/post/"+post.ID.Hex(), bob.Token, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/post/"+post.ID.Hex(), "", "").Code)
}

func TestLikeUnknownPost(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice")

	rec := s.do(t, http.MethodPost, "/api/post/not-a-post/like", alice.Token, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post not found")
}

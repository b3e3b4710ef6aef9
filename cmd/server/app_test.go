package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/blog-api/internal/api"
	"github.com/phrazzld/blog-api/internal/config"
	"github.com/phrazzld/blog-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "error"},
		Auth:   config.AuthConfig{JWTSecret: "test-secret", TokenLifetimeMinutes: 60},
	}
}

// testServer is a fully wired application over an in-memory database.
type testServer struct {
	t       *testing.T
	app     *application
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app, err := newApplication(testConfig(), testutils.DiscardLogger(), testutils.NewTestDB(t))
	require.NoError(t, err)

	return &testServer{t: t, app: app, handler: app.setupRouter()}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signup(email, password string) string {
	s.t.Helper()

	rec := s.do(testutils.NewJSONRequest(s.t, http.MethodPost, "/api/v1/user/signup",
		map[string]string{"email": email, "password": password}))
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return testutils.DecodeJSON[api.TokenResponse](s.t, rec).JWT
}

func (s *testServer) createPost(token, title, content string) uuid.UUID {
	s.t.Helper()

	req := testutils.NewJSONRequest(s.t, http.MethodPost, "/api/v1/blog/",
		map[string]string{"title": title, "content": content})
	rec := s.do(testutils.WithBearer(req, token))
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return testutils.DecodeJSON[api.CreatePostResponse](s.t, rec).ID
}

func (s *testServer) getPost(id string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, "/api/v1/blog/"+id, nil))
}

func TestSignupIssuesTokenForNewUser(t *testing.T) {
	s := newTestServer(t)

	token := s.signup("a@x.io", "p")

	claims, err := s.app.jwtService.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	user, err := s.app.userStore.GetByEmail(context.Background(), "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	rec := s.do(testutils.NewJSONRequest(t, http.MethodPost, "/api/v1/user/signup",
		map[string]string{"email": "a@x.io", "password": "other"}))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, api.MsgUserExists, testutils.ErrorMessage(t, rec))
}

func TestSigninIgnoresPassword(t *testing.T) {
	s := newTestServer(t)
	s.signup("a@x.io", "p")

	rec := s.do(testutils.NewJSONRequest(t, http.MethodPost, "/api/v1/user/signin",
		map[string]string{"email": "a@x.io", "password": "not-the-password"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, testutils.DecodeJSON[api.TokenResponse](t, rec).JWT)

	rec = s.do(testutils.NewJSONRequest(t, http.MethodPost, "/api/v1/user/signin",
		map[string]string{"email": "nobody@x.io", "password": "p"}))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, api.MsgUserNotFound, testutils.ErrorMessage(t, rec))
}

func TestCreatePostRequiresBearerToken(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("a@x.io", "p")

	s.createPost(token, "T", "C")

	body := map[string]string{"title": "T", "content": "C"}
	tests := []struct {
		name   string
		header string
	}{
		{name: "no header"},
		{name: "no token after scheme", header: "Bearer"},
		{name: "garbled token", header: "Bearer not.a.jwt"},
		{name: "token signed with another secret", header: "Bearer " + forgeToken(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutils.NewJSONRequest(t, http.MethodPost, "/api/v1/blog/", body)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := s.do(req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, api.MsgUnauthorized, testutils.ErrorMessage(t, rec))
		})
	}
}

func TestOnlyAuthorCanUpdatePost(t *testing.T) {
	s := newTestServer(t)
	tokenA := s.signup("a@x.io", "p")
	tokenB := s.signup("b@x.io", "p")
	postID := s.createPost(tokenA, "T", "C")

	req := testutils.NewJSONRequest(t, http.MethodPut, "/api/v1/blog/",
		map[string]string{"id": postID.String(), "title": "hijacked"})
	rec := s.do(testutils.WithBearer(req, tokenB))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, api.MsgUpdatePostFailed, testutils.ErrorMessage(t, rec))

	got := testutils.DecodeJSON[api.PostResponse](t, s.getPost(postID.String()))
	assert.Equal(t, "T", got.Title)

	req = testutils.NewJSONRequest(t, http.MethodPut, "/api/v1/blog/",
		map[string]string{"id": postID.String(), "title": "T2"})
	rec = s.do(testutils.WithBearer(req, tokenA))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%q,"message":"Updated post"}`, postID), rec.Body.String())

	got = testutils.DecodeJSON[api.PostResponse](t, s.getPost(postID.String()))
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, "C", got.Content)
}

func TestBlogWritesAnswerUnreadableBodiesWith500(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("a@x.io", "p")

	req := testutils.NewJSONRequest(t, http.MethodPost, "/api/v1/blog/", `{not json`)
	rec := s.do(testutils.WithBearer(req, token))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, api.MsgCreatePostFailed, testutils.ErrorMessage(t, rec))

	req = testutils.NewJSONRequest(t, http.MethodPut, "/api/v1/blog/", `{"id":5}`)
	rec = s.do(testutils.WithBearer(req, token))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, api.MsgUpdatePostFailed, testutils.ErrorMessage(t, rec))

	rec = s.do(testutils.NewJSONRequest(t, http.MethodPost, "/api/v1/user/signup", `{not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, api.MsgInvalidRequest, testutils.ErrorMessage(t, rec))
}

func TestUnroutedRequestsGetJSON404(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/api/v1/blog/", "/api/v1/user/signin", "/nowhere"} {
		rec := s.do(httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, api.MsgNotFound, testutils.ErrorMessage(t, rec))
	}
}

func TestReadRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("bulk on empty store", func(t *testing.T) {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/blog/bulk", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("unknown post", func(t *testing.T) {
		rec := s.getPost(uuid.NewString())
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, api.MsgPostNotFound, testutils.ErrorMessage(t, rec))
	})

	t.Run("health", func(t *testing.T) {
		rec := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})
}

func TestSignupCreateGetFlow(t *testing.T) {
	s := newTestServer(t)

	token := s.signup("a@x.io", "p")
	postID := s.createPost(token, "T", "C")

	rec := s.getPost(postID.String())
	require.Equal(t, http.StatusOK, rec.Code)
	got := testutils.DecodeJSON[api.PostResponse](t, rec)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, postID, got.ID)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/blog/bulk", nil))
	posts := testutils.DecodeJSON[[]api.PostResponse](t, rec)
	require.Len(t, posts, 1)
	assert.Equal(t, postID, posts[0].ID)
}

func TestRunStopsWhenContextCanceled(t *testing.T) {
	db := testutils.NewTestDB(t)
	app, err := newApplication(testConfig(), testutils.DiscardLogger(), db)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not shut down")
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "pool should be closed after shutdown")
}

// forgeToken signs a well-formed token with a secret the server does not know.
func forgeToken(t *testing.T) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  uuid.NewString(),
		"iat": time.Now().Unix(),
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	return token
}

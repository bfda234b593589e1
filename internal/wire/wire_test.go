package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"movie-catalog/internal/data/repository/memory"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{Name: "movie-catalog-test"},
		JWT: utils.JWTConfig{
			Secret:      "test-secret",
			Issuer:      "movie-catalog-test",
			ExpiryHours: 1,
		},
		RateLimit: utils.RateLimitConfig{RPS: 1000, Burst: 1000},
	}
}

func newTestRouter(t *testing.T, config *utils.Config) *chi.Mux {
	t.Helper()
	return Wiring(memory.New().Repository(), config, zap.NewNop()).Router
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// signupAndLogin registers a user and returns a bearer token for it
func signupAndLogin(t *testing.T, h http.Handler, username string) string {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/signup", map[string]string{
		"username":  username,
		"full_name": "Test User",
		"email":     username + "@example.com",
		"password":  "testpassword",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	form := url.Values{"username": {username}, "password": {"testpassword"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	lw := httptest.NewRecorder()
	h.ServeHTTP(lw, req)
	require.Equal(t, http.StatusOK, lw.Code, lw.Body.String())

	body := decode[map[string]any](t, lw)
	assert.Equal(t, "bearer", body["token_type"])
	return body["access_token"].(string)
}

func createMovie(t *testing.T, h http.Handler, token, title string) int64 {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/movies/", map[string]string{
		"title":          title,
		"genre":          "Test Genre",
		"publisher":      "Test Publisher",
		"year_published": "2024",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode[map[string]any](t, w)
	assert.Equal(t, title, body["title"])
	return int64(body["id"].(float64))
}

func TestSignup(t *testing.T) {
	h := newTestRouter(t, testConfig())

	w := doJSON(t, h, http.MethodPost, "/signup", map[string]string{
		"username":  "testuser",
		"full_name": "Test User",
		"email":     "testuser@example.com",
		"password":  "testpassword",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	assert.Equal(t, "testuser", body["username"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, w.Body.String(), "testpassword")

	dup := doJSON(t, h, http.MethodPost, "/signup", map[string]string{
		"username":  "testuser",
		"full_name": "Other",
		"email":     "other@example.com",
		"password":  "testpassword",
	}, "")
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.Equal(t, "username already registered", decode[map[string]any](t, dup)["detail"])

	for _, username := range []string{"john_doe", "j.doe"} {
		signupAndLogin(t, h, username)
	}

	spaced := doJSON(t, h, http.MethodPost, "/signup", map[string]string{
		"username":  "john doe",
		"full_name": "John Doe",
		"email":     "johndoe@example.com",
		"password":  "testpassword",
	}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, spaced.Code)

	bad := doJSON(t, h, http.MethodPost, "/signup", map[string]string{"username": "x"}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, bad.Code)
	assert.Contains(t, decode[map[string]any](t, bad), "errors")
}

func TestLogin(t *testing.T) {
	h := newTestRouter(t, testConfig())
	signupAndLogin(t, h, "testuser")

	w := doJSON(t, h, http.MethodPost, "/login", map[string]string{"username": "testuser", "password": "testpassword"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[map[string]any](t, w)["access_token"])

	for _, creds := range []map[string]string{
		{"username": "testuser", "password": "wrongpassword"},
		{"username": "nobody", "password": "testpassword"},
	} {
		w := doJSON(t, h, http.MethodPost, "/login", creds, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Incorrect username or password", decode[map[string]any](t, w)["detail"])
	}
}

func TestLoginMultipartForm(t *testing.T) {
	h := newTestRouter(t, testConfig())
	signupAndLogin(t, h, "testuser")

	login := func(password string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("username", "testuser"))
		require.NoError(t, mw.WriteField("password", password))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/login", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w := login("testpassword")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]any](t, w)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])

	w = login("wrongpassword")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUser(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")

	w := doJSON(t, h, http.MethodGet, "/users/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "testuser", decode[map[string]any](t, w)["username"])

	w = doJSON(t, h, http.MethodGet, "/users/me", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestMovieLifecycle(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")

	id := createMovie(t, h, token, "Test Movie")
	path := fmt.Sprintf("/movies/%d", id)

	w := doJSON(t, h, http.MethodGet, "/movies/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = doJSON(t, h, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	movie := decode[map[string]any](t, w)
	assert.Equal(t, float64(id), movie["id"])
	assert.Equal(t, "Test Genre", movie["genre"])
	assert.Equal(t, "2024", movie["year_published"])

	w = doJSON(t, h, http.MethodPut, path, map[string]string{
		"title":          "Updated Movie",
		"genre":          "Updated Genre",
		"publisher":      "Updated Publisher",
		"year_published": "2025",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Updated Movie", decode[map[string]any](t, w)["title"])

	w = doJSON(t, h, http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf("movie %d deleted successfully", id), decode[map[string]any](t, w)["message"])

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w = doJSON(t, h, method, path, nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "movie not found", decode[map[string]any](t, w)["detail"])
	}

	w = doJSON(t, h, http.MethodGet, "/movies", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestMovieValidationAndAuth(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")

	w := doJSON(t, h, http.MethodPost, "/movies/", map[string]string{"title": "Only a title"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodPost, "/movies/", map[string]string{"title": "Only a title"}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, h, http.MethodGet, "/movies/abc", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// nothing was written by the rejected requests
	w = doJSON(t, h, http.MethodGet, "/movies", nil, "")
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestUnassignedIDsAreNotFound(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")
	createMovie(t, h, token, "Test Movie")

	update := map[string]string{
		"title":          "Updated Movie",
		"genre":          "Updated Genre",
		"publisher":      "Updated Publisher",
		"year_published": "2025",
	}

	tests := []struct {
		method string
		path   string
		body   any
		detail string
	}{
		{http.MethodGet, "/movies/0", nil, "movie not found"},
		{http.MethodGet, "/movies/-3", nil, "movie not found"},
		{http.MethodPut, "/movies/0", update, "movie not found"},
		{http.MethodDelete, "/movies/-1", nil, "movie not found"},
		{http.MethodPost, "/ratings/0", map[string]float64{"rating": 4}, "movie not found"},
		{http.MethodGet, "/ratings/-1/stats", nil, "movie not found"},
		{http.MethodPost, "/comments/0/replies", map[string]string{"reply": "hi"}, "comment not found"},
		{http.MethodDelete, "/comments/-1", nil, "comment not found"},
		{http.MethodDelete, "/comments/replies/0", nil, "reply not found"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doJSON(t, h, tt.method, tt.path, tt.body, token)
			assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
			assert.Equal(t, tt.detail, decode[map[string]any](t, w)["detail"])
		})
	}
}

func TestMovieOwnership(t *testing.T) {
	h := newTestRouter(t, testConfig())
	owner := signupAndLogin(t, h, "owner")
	other := signupAndLogin(t, h, "other")

	id := createMovie(t, h, owner, "Mine")
	path := fmt.Sprintf("/movies/%d", id)

	w := doJSON(t, h, http.MethodDelete, path, nil, other)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "not the owner of this movie", decode[map[string]any](t, w)["detail"])

	w = doJSON(t, h, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMoviePagination(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")
	for i := 0; i < 5; i++ {
		createMovie(t, h, token, fmt.Sprintf("Movie %d", i))
	}

	w := doJSON(t, h, http.MethodGet, "/movies?page=2&per_page=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-Total-Count"))

	page := decode[[]map[string]any](t, w)
	require.Len(t, page, 2)
	assert.Equal(t, "Movie 2", page[0]["title"])
}

func TestRatings(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")
	id := createMovie(t, h, token, "Test Movie")

	w := doJSON(t, h, http.MethodGet, fmt.Sprintf("/ratings/%d/rate", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]any](t, w))

	w = doJSON(t, h, http.MethodPost, fmt.Sprintf("/ratings/%d", id), map[string]float64{"rating": 4.0}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 4.0, decode[map[string]any](t, w)["rating"])

	w = doJSON(t, h, http.MethodPost, fmt.Sprintf("/ratings/%d/", id), map[string]float64{"rating": 2.0}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, fmt.Sprintf("/ratings/%d/rate", id), nil, "")
	assert.Len(t, decode[[]map[string]any](t, w), 2)

	w = doJSON(t, h, http.MethodGet, fmt.Sprintf("/ratings/%d/stats", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[map[string]any](t, w)
	assert.Equal(t, 3.0, stats["average_rating"])
	assert.Equal(t, 2.0, stats["rating_count"])

	for _, value := range []float64{4.0, 99} {
		w = doJSON(t, h, http.MethodPost, "/ratings/999", map[string]float64{"rating": value}, token)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "movie not found", decode[map[string]any](t, w)["detail"])
	}

	w = doJSON(t, h, http.MethodPost, fmt.Sprintf("/ratings/%d", id), map[string]float64{"rating": 99}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRatingStoredAtOneDecimal(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")
	id := createMovie(t, h, token, "Test Movie")

	w := doJSON(t, h, http.MethodPost, fmt.Sprintf("/ratings/%d", id), map[string]float64{"rating": 4.25}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 4.3, decode[map[string]any](t, w)["rating"])

	w = doJSON(t, h, http.MethodGet, fmt.Sprintf("/ratings/%d/rate", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	ratings := decode[[]map[string]any](t, w)
	require.Len(t, ratings, 1)
	assert.Equal(t, 4.3, ratings[0]["rating"])
}

func TestCommentsAndReplies(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")
	movieID := createMovie(t, h, token, "Test Movie")

	w := doJSON(t, h, http.MethodPost, "/comments/", map[string]any{"comment": "Great movie!", "movie_id": movieID}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	comment := decode[map[string]any](t, w)
	assert.Equal(t, "Great movie!", comment["comment"])
	commentID := int64(comment["id"].(float64))

	var lastReplyID int64
	for _, text := range []string{"first", "second", "third"} {
		w = doJSON(t, h, http.MethodPost, fmt.Sprintf("/comments/%d/replies/", commentID), map[string]string{"reply": text}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		thread := decode[map[string]any](t, w)
		replies := thread["replies"].([]any)
		last := replies[len(replies)-1].(map[string]any)
		assert.Equal(t, text, last["reply"])
		lastReplyID = int64(last["id"].(float64))
	}

	w = doJSON(t, h, http.MethodGet, fmt.Sprintf("/comments/%d/comments", movieID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[[]map[string]any](t, w)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0]["replies"], 3)

	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/comments/replies/%d", lastReplyID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reply deleted successfuly", decode[map[string]any](t, w)["message"])

	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/comments/replies/%d", lastReplyID), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/comments/%d", commentID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "comment deleted successfuly", decode[map[string]any](t, w)["message"])

	w = doJSON(t, h, http.MethodPost, fmt.Sprintf("/comments/%d/replies", commentID), map[string]string{"reply": "late"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "comment not found", decode[map[string]any](t, w)["detail"])

	w = doJSON(t, h, http.MethodGet, "/comments/999/comments", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String())
}

func TestCommentRequiresText(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")

	w := doJSON(t, h, http.MethodPost, "/comments", map[string]string{}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, h, http.MethodPost, "/comments", map[string]any{"comment": "hi", "movie_id": 404}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "movie not found", decode[map[string]any](t, w)["detail"])
}

func TestDeleteMovieCascadesToComments(t *testing.T) {
	h := newTestRouter(t, testConfig())
	token := signupAndLogin(t, h, "testuser")
	movieID := createMovie(t, h, token, "Test Movie")

	w := doJSON(t, h, http.MethodPost, "/comments", map[string]any{"comment": "bye", "movie_id": movieID}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	commentID := int64(decode[map[string]any](t, w)["id"].(float64))

	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/movies/%d", movieID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/comments/%d", commentID), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndCorrelationID(t *testing.T) {
	h := newTestRouter(t, testConfig())

	w := doJSON(t, h, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Correlation-Id"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Correlation-Id", "abc123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc123", rec.Header().Get("X-Correlation-Id"))
}

func TestLoginRateLimited(t *testing.T) {
	config := testConfig()
	config.RateLimit = utils.RateLimitConfig{RPS: 0.001, Burst: 2}
	h := newTestRouter(t, config)

	creds := map[string]string{"username": "nobody", "password": "x"}
	for i := 0; i < 2; i++ {
		w := doJSON(t, h, http.MethodPost, "/login", creds, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := doJSON(t, h, http.MethodPost, "/login", creds, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

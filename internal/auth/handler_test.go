package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libroshare/backend/internal/middleware"
)

func newTestRouter(store UserStore) *chi.Mux {
	codec := NewTokenCodec([]byte("test-secret"), TokenTTL)
	svc := NewService(store, NewBcryptHasher(), codec, nil, zerolog.Nop())
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/{id}", h.PublicProfile)
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerToken)
			r.Get("/me", h.Me)
			r.Put("/me", h.UpdateMe)
			r.Delete("/me", h.DeleteMe)
		})
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHTTP_RegisterLoginProfileDelete(t *testing.T) {
	t.Parallel()
	r := newTestRouter(newFakeUserStore())

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		`{"email":"a@x.com","username":"alice","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Second registration with the same email conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		`{"email":"a@x.com","username":"alice2","password":"pw2"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "",
		`{"email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)

	w = doJSON(t, r, http.MethodGet, "/api/users/me", loginResp.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodDelete, "/api/users/me", loginResp.Token, "")
	require.Equal(t, http.StatusOK, w.Code)

	// Token still verifies, but the account is gone.
	w = doJSON(t, r, http.MethodGet, "/api/users/me", loginResp.Token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestHTTP_LoginFailures(t *testing.T) {
	t.Parallel()
	r := newTestRouter(newFakeUserStore())

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		`{"email":"a@x.com","username":"alice","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPw := doJSON(t, r, http.MethodPost, "/api/auth/login", "",
		`{"email":"a@x.com","password":"nope"}`)
	unknown := doJSON(t, r, http.MethodPost, "/api/auth/login", "",
		`{"email":"b@x.com","password":"pw1"}`)

	assert.Equal(t, http.StatusForbidden, wrongPw.Code)
	assert.Equal(t, http.StatusForbidden, unknown.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestHTTP_BadBodies(t *testing.T) {
	t.Parallel()
	r := newTestRouter(newFakeUserStore())

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHTTP_TokenErrorsAreDistinct(t *testing.T) {
	t.Parallel()
	store := newFakeUserStore()
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodGet, "/api/users/me", "garbage", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")

	// No Authorization header at all.
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHTTP_UpdateMergesFields(t *testing.T) {
	t.Parallel()
	store := newFakeUserStore()
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		`{"email":"a@x.com","username":"alice","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "",
		`{"email":"a@x.com","password":"pw1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))

	w = doJSON(t, r, http.MethodPut, "/api/users/me", loginResp.Token,
		`{"bookshelf":["book-1"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/users/me", loginResp.Token,
		`{"username":"alicia"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users/me", loginResp.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alicia"`)
	assert.Contains(t, w.Body.String(), `"book-1"`)
}

func TestHTTP_PublicProfile(t *testing.T) {
	t.Parallel()
	store := newFakeUserStore()
	r := newTestRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "",
		`{"email":"a@x.com","username":"alice","password":"pw1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var id string
	for hexID := range store.users {
		id = hexID
	}

	w = doJSON(t, r, http.MethodGet, "/api/users/"+id, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodGet, "/api/users/000000000000000000000000", "", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

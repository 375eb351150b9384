package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jr777pal/PetNest-India/internal/domain/catalog"
	"github.com/jr777pal/PetNest-India/internal/infra/localstore"
	"github.com/jr777pal/PetNest-India/internal/middleware"
	"github.com/jr777pal/PetNest-India/internal/usecase"
	"github.com/jr777pal/PetNest-India/internal/wishlist"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"http error", usecase.NewHTTPError(http.StatusConflict, "Order cannot be cancelled"), http.StatusConflict, "Order cannot be cancelled"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unknown", io.ErrUnexpectedEOF, http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, writeError(c, tc.err))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.msg, decodeError(t, rec))
		})
	}
}

func TestCheckCsrf(t *testing.T) {
	cases := []struct {
		name   string
		cookie string
		header string
		want   bool
	}{
		{"match", "abc", "abc", true},
		{"mismatch", "abc", "abd", false},
		{"no header", "abc", "", false},
		{"no cookie", "", "abc", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: tc.cookie})
			}
			if tc.header != "" {
				req.Header.Set(csrfHeaderName, tc.header)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())
			assert.Equal(t, tc.want, checkCsrf(c))
		})
	}
}

// CSRFで弾くのでusecaseまで届かない
func TestRefresh_RejectsMissingCsrf(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(nil, time.Hour, false)
	h.RegisterRoutes(e.Group(""), e.Group(""))

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader("{}"))
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: "rt"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid csrf token", decodeError(t, rec))
}

func TestSetAndClearAuthCookies(t *testing.T) {
	h := NewAuthHandler(nil, time.Hour, true)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	h.setAuthCookies(c, "refresh-plain", "csrf-plain")

	got := map[string]*http.Cookie{}
	for _, ck := range rec.Result().Cookies() {
		got[ck.Name] = ck
	}
	require.Contains(t, got, refreshCookieName)
	require.Contains(t, got, csrfCookieName)
	assert.True(t, got[refreshCookieName].HttpOnly)
	assert.False(t, got[csrfCookieName].HttpOnly)
	assert.True(t, got[refreshCookieName].Secure)
	assert.Equal(t, "csrf-plain", got[csrfCookieName].Value)

	rec = httptest.NewRecorder()
	c = echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	h.clearAuthCookies(c)
	for _, ck := range rec.Result().Cookies() {
		assert.Empty(t, ck.Value)
		assert.Less(t, ck.MaxAge, 0)
	}
}

func TestMe_RequiresUserInContext(t *testing.T) {
	h := NewAuthHandler(nil, time.Hour, false)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), rec)

	require.NoError(t, h.me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserIDFromContext(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := getUserIDFromContext(c)
	assert.False(t, ok)

	c.Set(middleware.CtxUserIDKey, "user-1")
	id, ok := getUserIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
}

func TestQueryInt(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/?limit=20&page=x", nil), httptest.NewRecorder())

	v, err := queryInt(c, "limit", 50)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	v, err = queryInt(c, "offset", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	_, err = queryInt(c, "page", 1)
	assert.Error(t, err)
}

func newWishlistServer(t *testing.T) *echo.Echo {
	t.Helper()
	kv, err := localstore.Open(filepath.Join(t.TempDir(), "wishlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	e := echo.New()
	NewWishlistHandler(usecase.NewWishlistUsecase(wishlist.New(kv), testLogger())).RegisterRoutes(e.Group(""))
	return e
}

func serve(e *echo.Echo, method, path, body, clientID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if clientID != "" {
		req.Header.Set(clientIDHeader, clientID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestWishlistHandler(t *testing.T) {
	e := newWishlistServer(t)

	rec := serve(e, http.MethodGet, "/wishlist", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "X-Client-ID header is required", decodeError(t, rec))

	rec = serve(e, http.MethodPost, "/wishlist", `{"name":"Bruno","breed":"Golden Retriever","price":18000}`, "c1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(e, http.MethodGet, "/wishlist", "", "c1")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []wishlist.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Bruno", items[0].Name)

	var status usecase.WishlistStatusOutput
	rec = serve(e, http.MethodGet, "/wishlist/Bruno", "", "c1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, usecase.WishlistStatusOutput{Name: "Bruno", Saved: true}, status)

	rec = serve(e, http.MethodGet, "/wishlist/Bruno", "", "c2")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Saved)

	rec = serve(e, http.MethodGet, "/wishlist/Bruno", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodPost, "/wishlist/toggle", `{"name":"Bruno"}`, "c1")
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled usecase.WishlistToggleOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.False(t, toggled.Added)
	assert.Empty(t, toggled.Items)

	rec = serve(e, http.MethodDelete, "/wishlist/Bruno", "", "c1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPetHandler_FeaturedAndValidation(t *testing.T) {
	featured, err := catalog.LoadFeatured()
	require.NoError(t, err)

	// DBに行く前に返る経路だけ見る
	e := echo.New()
	NewPetHandler(usecase.NewCatalogUsecase(nil, featured, testLogger())).RegisterRoutes(e.Group(""))

	rec := serve(e, http.MethodGet, "/pets/featured", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pets []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pets))
	assert.Len(t, pets, len(featured.List()))

	rec = serve(e, http.MethodGet, "/pets", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "type is required", decodeError(t, rec))

	rec = serve(e, http.MethodGet, "/pets?type=dog&price_range=cheap", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

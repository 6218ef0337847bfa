package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbasket/gateway/pkg/backend"
	"github.com/mealbasket/gateway/pkg/cart"
	"github.com/mealbasket/gateway/pkg/events"
	"github.com/mealbasket/gateway/pkg/favorites"
	"github.com/mealbasket/gateway/pkg/session"
	"github.com/mealbasket/gateway/pkg/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend mimics the upstream food-ordering API for handler tests.
func fakeBackend(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login":
			var creds map[string]string
			json.NewDecoder(r.Body).Decode(&creds)
			role := "USER"
			if strings.HasPrefix(creds["email"], "vendor") {
				role = "VENDOR"
			}
			if creds["password"] != "secret1" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"message":"Invalid email or password"}`))
				return
			}
			w.Write([]byte(`{"success":true,"data":{"id":7,"email":"` + creds["email"] +
				`","name":"Test Account","role":"` + role + `","token":"tok-7"}}`))
		case r.URL.Path == "/auth/logout":
			w.WriteHeader(http.StatusInternalServerError)
		case r.URL.Path == "/auth/register":
			w.Write([]byte(`{"success":false,"message":"User with this email already exists"}`))
		case r.URL.Path == "/orders" && r.Method == http.MethodPost:
			raw, _ := io.ReadAll(r.Body)
			if strings.Contains(string(raw), "declined-card") {
				w.Write([]byte(`{"success":false,"message":"Payment was declined"}`))
				return
			}
			w.Write([]byte(`{"success":true,"data":{"orderId":"o-1"}}`))
		case strings.HasPrefix(r.URL.Path, "/vendor/") && strings.HasSuffix(r.URL.Path, "/products"):
			if r.Header.Get("Authorization") != "Bearer tok-7" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"message":"unauthorized"}`))
				return
			}
			w.Write([]byte(`{"success":true,"data":[]}`))
		default:
			w.Write([]byte(`{"success":true,"data":[]}`))
		}
	}))
}

type testEnv struct {
	engine  *gin.Engine
	kv      *storage.MemoryStore
	cookies []*http.Cookie
}

func newTestEnv(t *testing.T, backendURL string) *testEnv {
	kv := storage.NewMemoryStore()
	api := NewAPI(
		backend.New(backendURL),
		session.NewStore(kv),
		cart.NewStore(kv),
		favorites.NewStore(kv),
		events.NewBus(),
	)
	return &testEnv{engine: NewEngine(api), kv: kv}
}

// do performs a request, carrying the context cookie across calls the way a
// browser would.
func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range e.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		e.cookies = append(e.cookies, cookie)
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestLoginThenWrongRoleRedirect(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	rec := env.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "USER", data["role"])
	assert.Equal(t, "/", data["redirect"])

	// A USER poking at the vendor subtree is sent to their own home.
	rec = env.do(t, http.MethodGet, "/api/vendor/products", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "/", decode(t, rec)["redirect"])
}

func TestUnauthenticatedRoleRouteRedirectsToLogin(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	rec := env.do(t, http.MethodGet, "/api/orders", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", decode(t, rec)["redirect"])
}

func TestInvalidCredentials(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	rec := env.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"nope99"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// No partial session may survive a failed login.
	rec = env.do(t, http.MethodGet, "/api/session", "")
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, data["authenticated"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	rec := env.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"secret1","confirm_password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "already registered")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	rec := env.do(t, http.MethodPost, "/api/auth/register",
		`{"name":"Asha","email":"asha@example.com","password":"secret1","confirm_password":"secret2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartFlowQuantityFloor(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	product := `{"id":"p-1","name":"Chicken Momo","price":12.99}`
	env.do(t, http.MethodPost, "/api/cart/items", product)
	env.do(t, http.MethodPost, "/api/cart/items", product)

	rec := env.do(t, http.MethodPut, "/api/cart/items/p-1", `{"delta":-5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "12.99", data["total"])
	items := data["items"].(map[string]interface{})
	item := items["p-1"].(map[string]interface{})
	assert.Equal(t, float64(1), item["quantity"])
}

func TestLogoutClearsEverythingDespiteBackendFailure(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	env.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"secret1"}`)
	env.do(t, http.MethodPost, "/api/cart/items",
		`{"id":"p-1","name":"Chicken Momo","price":12.99}`)

	// The fake backend 500s on /auth/logout; local cleanup proceeds anyway.
	rec := env.do(t, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login", decode(t, rec)["redirect"])

	rec = env.do(t, http.MethodGet, "/api/session", "")
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, data["authenticated"])

	rec = env.do(t, http.MethodGet, "/api/cart", "")
	cartData := decode(t, rec)["data"].(map[string]interface{})
	assert.Empty(t, cartData["items"])
}

func TestCheckoutClearsCart(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	env.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"secret1"}`)
	env.do(t, http.MethodPost, "/api/cart/items",
		`{"id":"p-1","name":"Chicken Momo","price":12.99}`)

	rec := env.do(t, http.MethodPost, "/api/orders", `{"payment":"cash"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/cart", "")
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Empty(t, data["items"])
	assert.Equal(t, "0.00", data["total"])
}

func TestRejectedCheckoutLeavesCartIntact(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	env.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"asha@example.com","password":"secret1"}`)
	env.do(t, http.MethodPost, "/api/cart/items",
		`{"id":"p-1","name":"Chicken Momo","price":12.99}`)

	rec := env.do(t, http.MethodPost, "/api/orders", `{"payment":"declined-card"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Payment was declined", decode(t, rec)["message"])

	rec = env.do(t, http.MethodGet, "/api/cart", "")
	data := decode(t, rec)["data"].(map[string]interface{})
	items := data["items"].(map[string]interface{})
	require.Contains(t, items, "p-1")
	assert.Equal(t, "12.99", data["total"])
}

func TestConcurrentBrowseDoesNotLeakServerSearch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			close(started)
			<-release // hold one browser's full-list fetch open
			w.Write([]byte(`{"success":true,"data":[{"id":"a","name":"Aloo Chop","price":10,"category":"food"}]}`))
		case "/products/search":
			w.Write([]byte(`{"success":true,"data":[{"id":"c","name":"Chicken Momo","price":13}]}`))
		}
	}))
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	browse := func(path, contextID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(&http.Cookie{Name: "mb_context", Value: contextID})
		rec := httptest.NewRecorder()
		env.engine.ServeHTTP(rec, req)
		return rec
	}

	browsed := make(chan *httptest.ResponseRecorder, 1)
	go func() { browsed <- browse("/api/catalog?category=food", "ctx-a") }()
	<-started

	// A second browser runs a server search while the first fetch is held.
	rec := browse("/api/catalog?search=momo&server=true", "ctx-b")
	require.Equal(t, http.StatusOK, rec.Code)
	searchData := decode(t, rec)["data"].(map[string]interface{})
	require.Equal(t, "server", searchData["source"])

	close(release)
	rec = <-browsed
	require.Equal(t, http.StatusOK, rec.Code)

	// The first browser's response reflects its own fetch, not the other
	// browser's search results.
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "local", data["source"])
	products := data["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, "a", products[0].(map[string]interface{})["id"])
}

func TestUpstream401TearsDownSession(t *testing.T) {
	upstream := fakeBackend(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	env.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"vendor@example.com","password":"secret1"}`)

	// Corrupt the stored token so the next vendor call hits a 401 upstream.
	rec := env.do(t, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var contextKey string
	for _, cookie := range env.cookies {
		if cookie.Name == "mb_context" {
			contextKey = cookie.Value
		}
	}
	require.NotEmpty(t, contextKey)
	require.NoError(t, env.kv.Set(context.Background(), "session:"+contextKey+":token", []byte("stale-token")))

	rec = env.do(t, http.MethodGet, "/api/vendor/products", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", decode(t, rec)["redirect"])

	// The session is gone for good.
	rec = env.do(t, http.MethodGet, "/api/session", "")
	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, data["authenticated"])
}

package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"task-manager-service/internal/adapter/gin/handler"
	"task-manager-service/internal/adapter/session"
	"task-manager-service/internal/adapter/store/jsonfile"
	"task-manager-service/internal/config"
	"task-manager-service/internal/usecase/auth"
	"task-manager-service/internal/usecase/task"
	"task-manager-service/pkg/security"
)

const testCookieName = "taskman_session"

// newTestServer wires the full stack with a json file store in a temp
// directory and in-memory sessions. Nothing is mocked.
func newTestServer(t *testing.T) *gin.Engine {
	return newTestServerWithRedis(t, nil)
}

// newTestServerWithRedis additionally enables the rate limiter over the
// given client, with a burst of 3 and near-zero refill.
func newTestServerWithRedis(t *testing.T, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Session.CookieName = testCookieName
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	if rdb != nil {
		cfg.RateLimit = config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 0.001,
			BurstCapacity:     3,
		}
	}

	store, err := jsonfile.NewStore(t.TempDir(), logger)
	require.NoError(t, err)

	sessions := session.NewMemoryStore(time.Hour)
	hasher := security.NewBcryptHasher(bcrypt.MinCost)

	authUC := auth.New(jsonfile.NewUserRepo(store, logger), sessions, hasher, logger)
	taskUC := task.New(jsonfile.NewTaskRepo(store, logger), logger)

	cookie := handler.CookieConfig{Name: testCookieName, TTL: time.Hour}
	authHandler := handler.NewAuthHandler(authUC, cookie, "test", logger)
	taskHandler := handler.NewTaskHandler(taskUC, logger)

	return New(cfg, sessions, rdb, authHandler, taskHandler, logger)
}

func doJSON(r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestFullUserJourney(t *testing.T) {
	r := newTestServer(t)

	// Task routes are closed before authentication.
	w := doJSON(r, "GET", "/api/tasks", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Health is open.
	w = doJSON(r, "GET", "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Signup establishes a session immediately.
	w = doJSON(r, "POST", "/api/auth/signup", map[string]string{
		"firstName":    "Grace",
		"lastName":     "Hopper",
		"emailAddress": "Grace@Example.com",
		"password":     "compilers",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	cookie := findCookie(w, testCookieName)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)

	// The stored email is normalized.
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "grace@example.com", user["emailAddress"])

	// Create a task.
	w = doJSON(r, "POST", "/api/tasks", map[string]string{
		"title":    "  Write tests  ",
		"priority": "High",
		"dueDate":  "2026-09-15",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decode(t, w)["task"].(map[string]interface{})
	taskID := created["id"].(string)
	assert.Equal(t, "Write tests", created["title"])
	assert.Equal(t, false, created["isCompleted"])

	// Toggle completion.
	w = doJSON(r, "PATCH", "/api/tasks/"+taskID+"/toggle", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	toggled := decode(t, w)["task"].(map[string]interface{})
	assert.Equal(t, true, toggled["isCompleted"])

	// Stats reflect the single completed task.
	w = doJSON(r, "GET", "/api/tasks/stats", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(1), stats["completed"])
	assert.Equal(t, float64(1), stats["high"])

	// List returns it with the count.
	w = doJSON(r, "GET", "/api/tasks", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	// Delete, then the task is gone.
	w = doJSON(r, "DELETE", "/api/tasks/"+taskID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/tasks/"+taskID, nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Logout invalidates the session server-side.
	w = doJSON(r, "POST", "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/api/tasks", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginJourney(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(r, "POST", "/api/auth/signup", map[string]string{
		"firstName":    "Alan",
		"lastName":     "Turing",
		"emailAddress": "alan@example.com",
		"password":     "enigma1",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password is rejected without leaking which part failed.
	w = doJSON(r, "POST", "/api/auth/login", map[string]string{
		"emailAddress": "alan@example.com",
		"password":     "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decode(t, w)["code"])

	// Duplicate signup is rejected.
	w = doJSON(r, "POST", "/api/auth/signup", map[string]string{
		"firstName":    "Alan",
		"lastName":     "Turing",
		"emailAddress": "ALAN@example.com",
		"password":     "enigma1",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// A fresh login issues a working session.
	w = doJSON(r, "POST", "/api/auth/login", map[string]string{
		"emailAddress": "alan@example.com",
		"password":     "enigma1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := findCookie(w, testCookieName)
	require.NotNil(t, cookie)

	w = doJSON(r, "GET", "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["isAuthenticated"])
}

func TestLoginAttemptsAreThrottled(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := newTestServerWithRedis(t, client)

	creds := map[string]string{
		"emailAddress": "nobody@example.com",
		"password":     "guess",
	}

	// The burst allows a few failed attempts, each rejected on its merits.
	for i := 0; i < 3; i++ {
		w := doJSON(r, "POST", "/api/auth/login", creds, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "attempt %d", i+1)
	}

	// Then the bucket is empty and the limiter cuts in.
	w := doJSON(r, "POST", "/api/auth/login", creds, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", decode(t, w)["code"])
}

func TestTaskIsolationBetweenUsers(t *testing.T) {
	r := newTestServer(t)

	signup := func(email string) *http.Cookie {
		w := doJSON(r, "POST", "/api/auth/signup", map[string]string{
			"firstName":    "Test",
			"lastName":     "User",
			"emailAddress": email,
			"password":     "password",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)
		c := findCookie(w, testCookieName)
		require.NotNil(t, c)
		return c
	}

	alice := signup("alice@example.com")
	bob := signup("bob@example.com")

	w := doJSON(r, "POST", "/api/tasks", map[string]string{
		"title":    "Alice's task",
		"priority": "Low",
	}, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decode(t, w)["task"].(map[string]interface{})["id"].(string)

	// Bob cannot see, update, toggle or delete Alice's task.
	w = doJSON(r, "GET", "/api/tasks/"+taskID, nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, "PUT", "/api/tasks/"+taskID, map[string]string{"title": "stolen"}, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, "DELETE", "/api/tasks/"+taskID, nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, "GET", "/api/tasks", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])

	// Alice still owns it.
	w = doJSON(r, "GET", "/api/tasks/"+taskID, nil, alice)
	assert.Equal(t, http.StatusOK, w.Code)
}

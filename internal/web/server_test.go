package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conorfennell/myeng/internal/domain"
	"github.com/conorfennell/myeng/internal/service"
	"github.com/conorfennell/myeng/internal/storage"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "web.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := zap.NewNop()
	return NewServer(
		opts,
		service.NewUserService(db, log),
		service.NewQuestionService(db, log),
		service.NewTestService(db, log),
		db,
		log,
	)
}

func do(t *testing.T, srv http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func TestUsersAPI(t *testing.T) {
	srv := newTestServer(t, Options{Prefix: "/api"})

	user := map[string]any{
		"id":            7,
		"surname":       "Petrova",
		"name":          "Anna",
		"age":           19,
		"address":       "Kazan",
		"email":         "anna@example.com",
		"password":      "secret",
		"telegram_name": "@anna",
		"aim":           "IELTS",
	}

	code, body := do(t, srv, http.MethodPost, "/api/users", user)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK - the user has been added", body["success"])

	t.Run("round trip", func(t *testing.T) {
		code, body := do(t, srv, http.MethodGet, "/api/users/7", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body["message"])

		data := body["user_data"].(map[string]any)
		for k, v := range user {
			if n, ok := v.(int); ok {
				assert.Equal(t, float64(n), data[k], k)
				continue
			}
			assert.Equal(t, v, data[k], k)
		}
	})

	t.Run("duplicate id leaves original", func(t *testing.T) {
		code, body := do(t, srv, http.MethodPost, "/api/users", map[string]any{"id": 7, "name": "Other"})
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "such user already exists", body["message"])

		_, body = do(t, srv, http.MethodGet, "/api/users/7", nil)
		assert.Equal(t, "Anna", body["user_data"].(map[string]any)["name"])
	})

	t.Run("list", func(t *testing.T) {
		_, body := do(t, srv, http.MethodGet, "/api/users", nil)
		users := body["users"].([]any)
		assert.Len(t, users, 1)
	})

	t.Run("repeated reads are identical", func(t *testing.T) {
		first := httptest.NewRecorder()
		srv.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/users/7", nil))
		second := httptest.NewRecorder()
		srv.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/users/7", nil))
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("delete then get", func(t *testing.T) {
		code, body := do(t, srv, http.MethodDelete, "/api/users/7", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok, user successfully deleted", body["message"])

		code, body = do(t, srv, http.MethodGet, "/api/users/7", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "such user does not exist", body["message"])
		assert.NotContains(t, body, "user_data")

		_, body = do(t, srv, http.MethodDelete, "/api/users/7", nil)
		assert.Equal(t, "such user does not exist", body["message"])
	})

	t.Run("empty list is an array", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))
		assert.JSONEq(t, `{"users": []}`, rec.Body.String())
	})
}

func TestCreateUserArguments(t *testing.T) {
	srv := newTestServer(t, Options{})

	t.Run("missing id", func(t *testing.T) {
		code, body := do(t, srv, http.MethodPost, "/users", map[string]any{"name": "No id"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, missingArgument, body["message"].(map[string]any)["id"])
	})

	t.Run("id is not a number", func(t *testing.T) {
		code, body := do(t, srv, http.MethodPost, "/users", map[string]any{"id": "abc"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, body["message"].(map[string]any)["id"], "invalid integer")
	})

	t.Run("numeric strings are coerced", func(t *testing.T) {
		code, body := do(t, srv, http.MethodPost, "/users", map[string]any{"id": "12", "age": "30"})
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "success")

		_, body = do(t, srv, http.MethodGet, "/users/12", nil)
		assert.Equal(t, float64(30), body["user_data"].(map[string]any)["age"])
	})

	t.Run("form body", func(t *testing.T) {
		form := url.Values{"id": {"13"}, "name": {"Form"}}
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		_, body := do(t, srv, http.MethodGet, "/users/13", nil)
		assert.Equal(t, "Form", body["user_data"].(map[string]any)["name"])
	})

	t.Run("query string", func(t *testing.T) {
		code, _ := do(t, srv, http.MethodPost, "/users?id=14&aim=work", nil)
		assert.Equal(t, http.StatusOK, code)

		_, body := do(t, srv, http.MethodGet, "/users/14", nil)
		assert.Equal(t, "work", body["user_data"].(map[string]any)["aim"])
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestQuestionsAPI(t *testing.T) {
	srv := newTestServer(t, Options{Prefix: "/api"})

	code, body := do(t, srv, http.MethodPost, "/api/questions", map[string]any{
		"id": 5, "theme": "food", "text": "яблоко", "ans": "apple",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok - question added", body["message"])

	_, body = do(t, srv, http.MethodGet, "/api/questions/5", nil)
	assert.Equal(t, map[string]any{
		"id": float64(5), "theme": "food", "text": "яблоко", "ans": "apple",
	}, body["question"])

	code, body = do(t, srv, http.MethodGet, "/api/questions/6", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "such question does not exist", body["error"])
	assert.NotContains(t, body, "question")

	do(t, srv, http.MethodPost, "/api/questions", map[string]any{"theme": "travel", "text": "поезд", "ans": "train"})
	_, body = do(t, srv, http.MethodGet, "/api/questions?theme=food", nil)
	assert.Len(t, body["questions"], 1)
	_, body = do(t, srv, http.MethodGet, "/api/questions", nil)
	assert.Len(t, body["questions"], 2)

	// An id of 0 is treated like an omitted id.
	do(t, srv, http.MethodPost, "/api/questions", map[string]any{"id": 0, "theme": "zero", "text": "ноль", "ans": "zero"})
	code, body = do(t, srv, http.MethodGet, "/api/questions?theme=zero", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["questions"], 1)
	assert.Equal(t, float64(7), body["questions"].([]any)[0].(map[string]any)["id"])
}

func TestAssignTestAPI(t *testing.T) {
	srv := newTestServer(t, Options{Prefix: "/api"})

	code, body := do(t, srv, http.MethodGet, "/api/tests/animals/1", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "no such test", body["error"])

	const n = 3
	for i := 0; i < n; i++ {
		code, body := do(t, srv, http.MethodPost, "/api/tests", map[string]any{
			"theme":        "animals",
			"questions":    fmt.Sprintf("%d;%d", i*2+1, i*2+2),
			"passed_users": "",
		})
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "ok - test added", body["message"])
	}

	seen := map[float64]bool{}
	for i := 0; i < n; i++ {
		_, body := do(t, srv, http.MethodGet, "/api/tests/animals/42", nil)
		require.Equal(t, "ok", body["message"], body)
		test := body["test"].(map[string]any)
		id := test["id"].(float64)
		assert.False(t, seen[id])
		seen[id] = true
		assert.Equal(t, "42,", test["passed_users"])
	}

	_, body = do(t, srv, http.MethodGet, "/api/tests/animals/42", nil)
	assert.Equal(t, "all existing test are passed", body["error"])

	_, body = do(t, srv, http.MethodGet, "/api/tests/animals/7", nil)
	assert.Equal(t, "42,7,", body["test"].(map[string]any)["passed_users"])
}

func TestStrictStatus(t *testing.T) {
	srv := newTestServer(t, Options{StrictStatus: true})

	code, _ := do(t, srv, http.MethodGet, "/users/1", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, srv, http.MethodGet, "/tests/none/1", nil)
	assert.Equal(t, http.StatusNotFound, code)

	do(t, srv, http.MethodPost, "/users", map[string]any{"id": 1})
	code, body := do(t, srv, http.MethodPost, "/users", map[string]any{"id": 1})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "such user already exists", body["message"])
}

func TestRoutingAndMiddleware(t *testing.T) {
	srv := newTestServer(t, Options{Prefix: "/api"})

	t.Run("health", func(t *testing.T) {
		code, body := do(t, srv, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("routes live under the prefix", func(t *testing.T) {
		code, _ := do(t, srv, http.MethodGet, "/users", nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("wrong method", func(t *testing.T) {
		for _, prefix := range []string{"/api", ""} {
			srv := newTestServer(t, Options{Prefix: prefix})
			code, body := do(t, srv, http.MethodPut, prefix+"/users/1", nil)
			assert.Equal(t, http.StatusMethodNotAllowed, code, "prefix %q", prefix)
			assert.Equal(t, "method not allowed", body["message"])
		}
	})

	t.Run("request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		rec = httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
	})
}

// contendedTests always loses the passed-users update.
type contendedTests struct{}

func (contendedTests) Create(context.Context, domain.Test) (int64, error) { return 0, nil }

func (contendedTests) Assign(context.Context, string, int64) (domain.Test, error) {
	return domain.Test{}, service.ErrAssignConflict
}

func TestAssignConflictStatus(t *testing.T) {
	for _, tc := range []struct {
		name   string
		strict bool
		want   int
	}{
		{name: "compatible", strict: false, want: http.StatusOK},
		{name: "strict", strict: true, want: http.StatusConflict},
	} {
		t.Run(tc.name, func(t *testing.T) {
			base := newTestServer(t, Options{})
			srv := NewServer(Options{StrictStatus: tc.strict}, base.users, base.questions, contendedTests{}, base.store, zap.NewNop())

			code, body := do(t, srv, http.MethodGet, "/tests/animals/1", nil)
			assert.Equal(t, tc.want, code)
			assert.Equal(t, service.ErrAssignConflict.Error(), body["error"])
			assert.Nil(t, body["test"])
		})
	}
}

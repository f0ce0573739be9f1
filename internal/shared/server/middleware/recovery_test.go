package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readiness-backend/internal/shared/telemetry"
)

func TestRecoveryReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	defer telemetry.SetOutput(os.Stdout)

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/sessions/:id/boom", func(c *gin.Context) {
		c.Set("wizardStep", "resume")
		panic("kaboom")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/sessions/abc/boom", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != "internal" {
		t.Fatalf("expected code internal, got %q", body.Error.Code)
	}
	logged := buf.String()
	for _, want := range []string{`"msg":"panic"`, `"session_id":"abc"`, `"wizard_step":"resume"`, `"route":"/sessions/:id/boom"`, `"error":"kaboom"`} {
		if !strings.Contains(logged, want) {
			t.Fatalf("expected %s in panic log, got %q", want, logged)
		}
	}
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/id", nil))
	id := resp.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated uuid, got %q", id)
	}
	if resp.Body.String() != id {
		t.Fatalf("context id %q does not match header %q", resp.Body.String(), id)
	}

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("X-Request-Id", "given")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Header().Get("X-Request-Id") != "given" {
		t.Fatalf("expected incoming id to be kept")
	}

	for _, bad := range []string{"has space", "line\nbreak", strings.Repeat("x", 65)} {
		req = httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header["X-Request-Id"] = []string{bad}
		resp = httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if got := resp.Header().Get("X-Request-Id"); got == bad {
			t.Fatalf("expected unsafe id %q to be replaced", bad)
		}
	}
}

func TestRequestFieldsIncludeSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var fields map[string]any
	router := gin.New()
	router.Use(RequestID())
	router.GET("/sessions/:id", func(c *gin.Context) {
		c.Set("wizardStep", "skills")
		fields = RequestFields(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/sessions/s-1", nil)
	req.Header.Set("X-Request-Id", "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	if fields["request_id"] != "req-1" || fields["session_id"] != "s-1" || fields["wizard_step"] != "skills" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advocatehub/internal/config"
	serviceMocks "advocatehub/internal/service/mocks"
	"advocatehub/internal/viewer"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/fail/:status", func(c *fiber.Ctx) error {
		code, _ := c.ParamsInt("status")
		return fiber.NewError(code)
	})
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return fmt.Errorf("limiter: %w", fiber.ErrTooManyRequests)
	})
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("boom") })

	cases := []struct {
		target string
		status int
		code   string
	}{
		{"/fail/400", http.StatusBadRequest, "BAD_REQUEST"},
		{"/fail/401", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"/fail/403", http.StatusForbidden, "FORBIDDEN"},
		{"/fail/413", http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{"/fail/429", http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"/fail/503", http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"/wrapped", http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"/plain", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp.Body))
		})
	}
}

func TestErrorHandler_BodyLimit(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(), BodyLimit: 16})
	app.Post("/profile/posts", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/profile/posts", strings.NewReader(strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", "text/plain")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "PAYLOAD_TOO_LARGE", errorCode(t, resp.Body))
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, Deps{
		Documents: new(serviceMocks.MockDocumentService),
		Session:   config.SessionConfig{LoginPath: "/login"},

		PublicHost:   "hub.example.com",
		PublicScheme: "https",
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("docs redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/docs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
		assert.Equal(t, "/swagger/index.html", resp.Header.Get("Location"))
	})

	t.Run("swagger document ignores the request host", func(t *testing.T) {
		for _, host := range []string{"client-1.example.net", "client-2.example.net"} {
			req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
			req.Host = host
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			b, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(b), `"host": "hub.example.com"`)
			assert.Contains(t, string(b), `"https"`)
			assert.NotContains(t, string(b), host)
		}
	})

	t.Run("login page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/login?next=/chat", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		b, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(b), `action="/auth/login"`)
		assert.Contains(t, string(b), `value="/chat"`)
	})
}

func TestViewer(t *testing.T) {
	app := fiber.New()
	app.Get("/viewer", Viewer())

	cases := []struct {
		name   string
		query  string
		expect string
	}{
		{"pdf embeds", "?src=https://files.example.com/a.pdf", "<iframe"},
		{"image embeds", "?src=https://cdn.example.com/a.PNG", "<img"},
		{"other links out", "?src=https://files.example.com/report.docx", `target="_blank"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/viewer"+tc.query, nil)
			req.Header.Set("Accept", "text/html")
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			b, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(b), tc.expect)
		})
	}

	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/viewer?src=https://cdn.example.com/doc&type=pdf", nil)
		req.Header.Set("Accept", "application/json")
		resp, _ := app.Test(req)

		var d viewer.Directive
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
		assert.Equal(t, viewer.ModeEmbedDocument, d.Mode)
		assert.Equal(t, "https://cdn.example.com/doc", d.Locator)
	})

	t.Run("empty locator renders nothing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/viewer?type=pdf", nil)
		req.Header.Set("Accept", "text/html")
		resp, _ := app.Test(req)

		b, _ := io.ReadAll(resp.Body)
		assert.NotContains(t, string(b), "<iframe")
		assert.NotContains(t, string(b), "<img")
	})
}

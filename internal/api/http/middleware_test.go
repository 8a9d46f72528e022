package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/attendance-service/internal/api/http"
	"github.com/spec-kit/attendance-service/internal/observability"
	"github.com/spec-kit/attendance-service/pkg/util"
)

func TestErrorMiddlewareMapsDomainError(t *testing.T) {
	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return util.NewConflict("already checked in", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, util.CodeConflict, body.Error.Code)
	require.Equal(t, "already checked in", body.Error.Message)
}

func TestRequestMetricsRecordMappedStatus(t *testing.T) {
	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return util.NewConflict("already checked in", nil)
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": "ok"})
	})

	for _, path := range []string{"/boom", "/ok"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	requests, errors := metrics.Snapshot()
	require.Equal(t, int64(1), requests["/boom|GET|409"])
	require.Equal(t, int64(1), requests["/ok|GET|200"])
	require.Equal(t, int64(1), errors["/boom|GET|CONFLICT"])
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/Anoch123/exodus-instant-booking/internal/reachability"
	"github.com/gofiber/fiber/v2"
)

func TestServerStatusGate(t *testing.T) {
	var probeErr error
	prober := reachability.ProberFunc(func(context.Context) error {
		return probeErr
	})

	monitor := reachability.NewMonitor(prober, time.Hour, time.Second)
	monitor.Refresh(context.Background())

	app := fiber.New()
	app.Get("/data", ServerStatus(monitor), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/data", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 while reachable", resp.StatusCode)
	}

	probeErr = syscall.ECONNREFUSED
	monitor.Refresh(context.Background())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/data", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 while unreachable", resp.StatusCode)
	}
}

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passingCheck() CheckFunc {
	return func(_ context.Context) error {
		return nil
	}
}

func failingCheck(msg string) CheckFunc {
	return func(_ context.Context) error {
		return errors.New(msg)
	}
}

func TestLiveEndpoint_AllPassing(t *testing.T) {
	h := New()
	h.Add(Liveness, "goroutines", time.Second, passingCheck())
	h.Add(Liveness, "storage", time.Second, passingCheck())

	w := httptest.NewRecorder()
	h.LiveEndpoint(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

func TestLiveEndpoint_FailingPastThreshold(t *testing.T) {
	h := New()
	h.Add(Liveness, "db", time.Second, failingCheck("connection refused"))

	// Probes start healthy; three consecutive failures flip them.
	ctx := context.Background()
	p := h.probes[Liveness][0]
	p.run(ctx)
	p.run(ctx)
	p.run(ctx)

	w := httptest.NewRecorder()
	h.LiveEndpoint(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "connection refused", body.Checks["db"])
}

func TestLiveEndpoint_FailureBelowThreshold(t *testing.T) {
	h := New()
	h.Add(Liveness, "flaky", time.Second, failingCheck("temporary"))

	ctx := context.Background()
	p := h.probes[Liveness][0]
	p.run(ctx)
	p.run(ctx)

	w := httptest.NewRecorder()
	h.LiveEndpoint(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestReadyEndpoint_NotReadyByDefault(t *testing.T) {
	h := New()
	h.Add(Readiness, "orders-dir", time.Second, passingCheck())

	w := httptest.NewRecorder()
	h.ReadyEndpoint(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body statusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body.Checks, "_readiness")
}

func TestReadyEndpoint_ReadyAndPassing(t *testing.T) {
	h := New()
	h.Add(Readiness, "orders-dir", time.Second, passingCheck())
	h.SetReady(true)

	w := httptest.NewRecorder()
	h.ReadyEndpoint(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIsReady(t *testing.T) {
	h := New()
	h.Add(Readiness, "db", time.Second, passingCheck())

	assert.False(t, h.IsReady(), "not ready before SetReady")

	h.SetReady(true)
	assert.True(t, h.IsReady())

	h.SetReady(false)
	assert.False(t, h.IsReady(), "not ready after draining")
}

func TestIsReady_FailingProbe(t *testing.T) {
	h := New()
	h.Add(Readiness, "db", time.Second, failingCheck("down"))
	h.SetReady(true)

	require.True(t, h.IsReady(), "probe starts healthy")

	ctx := context.Background()
	p := h.probes[Readiness][0]
	p.run(ctx)
	p.run(ctx)
	p.run(ctx)

	assert.False(t, h.IsReady())
}

func TestProbeRecovers(t *testing.T) {
	failing := true
	h := New()
	h.Add(Liveness, "flaky", time.Second, func(_ context.Context) error {
		if failing {
			return errors.New("down")
		}
		return nil
	})
	p := h.probes[Liveness][0]
	ctx := context.Background()

	p.run(ctx)
	p.run(ctx)
	p.run(ctx)
	_, failed := p.failure()
	require.True(t, failed)

	failing = false
	p.run(ctx)
	_, failed = p.failure()
	assert.False(t, failed, "one success recovers the probe")
}

func TestStopIsIdempotent(t *testing.T) {
	h := New()
	h.Add(Liveness, "goroutines", time.Second, passingCheck())

	h.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	h.Stop()
	h.Stop()
}

func TestGoroutineCountCheck(t *testing.T) {
	assert.NoError(t, GoroutineCountCheck(100000)(context.Background()))

	err := GoroutineCountCheck(0)(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds threshold")
}

func TestDirWritableCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, DirWritableCheck(dir)(context.Background()))

	// No probe files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = DirWritableCheck(dir + "/does-not-exist")(context.Background())
	assert.Error(t, err)
}

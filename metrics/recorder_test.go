package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/automoto/skyclimb/levelgen"
	"github.com/automoto/skyclimb/shared/leveldata"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ levelgen.Recorder = (*Recorder)(nil)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)

	r.SlotGenerated(leveldata.PlatformBatch)
	r.SlotGenerated(leveldata.PlatformBatch)
	r.SlotGenerated(leveldata.Maze)
	r.SlotsCleaned(3)
	r.CapHit()
	r.DriftCorrected()
	r.PoolExhausted(leveldata.KindEnemy)
	r.PoolExhausted(leveldata.KindEnemy)
	r.PlacementRejected()
	r.FallbackUsed()
	r.ActiveSlots(7)
	r.ActiveSlots(5)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.slotsGenerated.WithLabelValues("platform_batch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.slotsGenerated.WithLabelValues("maze")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.slotsCleaned))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.capHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.driftCorrections))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.poolExhausted.WithLabelValues("enemy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejections))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fallbacks))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.activeSlots))
}

func TestRecorderExposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)
	r.CapHit()

	expected := `
# HELP skyclimb_generation_cap_hits_total Ticks that stopped generating at the per-tick cap.
# TYPE skyclimb_generation_cap_hits_total counter
skyclimb_generation_cap_hits_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "skyclimb_generation_cap_hits_total"))
}

func TestNewRecorderRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	assert.Error(t, err)
}

func TestNewRecorderWithoutRegistry(t *testing.T) {
	r, err := NewRecorder(nil)
	require.NoError(t, err)
	r.SlotsCleaned(2)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.slotsCleaned))
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)
	r.SlotGenerated(leveldata.Maze)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `skyclimb_slots_generated_total{type="maze"} 1`)
}

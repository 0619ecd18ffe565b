package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder()

	r.GameCreated()
	r.RatingSubmitted()
	r.RatingSubmitted()
	r.ObserveRequest(http.MethodGet, "/api/games", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.gamesCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.ratingsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("GET", "/api/games", "200")))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.GameCreated()
		r.RatingSubmitted()
		r.ObserveRequest(http.MethodPost, "/api/games", http.StatusCreated, time.Millisecond)
	})
	assert.Nil(t, r.Registry())
	assert.NotNil(t, r.Handler())
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.GameCreated()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "games_created_total 1")
}

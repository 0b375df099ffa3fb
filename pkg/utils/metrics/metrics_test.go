package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/secmon-lab/airisk/pkg/utils/metrics"
)

func TestRecorder(t *testing.T) {
	r := metrics.New()
	r.Scored("critical")
	r.Scored("critical")
	r.Scored("low")
	r.Stored()
	r.HTTPRequest(http.MethodGet, http.StatusOK)

	count, err := testutil.GatherAndCount(r.Registry(), "airisk_assessments_scored_total")
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(2)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()
	gt.String(t, string(body)).Contains(`airisk_assessments_scored_total{tier="critical"} 2`)
	gt.String(t, string(body)).Contains(`airisk_http_requests_total{method="GET",status="200"} 1`)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *metrics.Recorder
	r.Scored("low")
	r.Stored()
	r.Rejected()
	r.HTTPRequest(http.MethodPost, http.StatusCreated)
}

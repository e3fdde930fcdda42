package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveReport(t *testing.T) {
	okBefore := testutil.ToFloat64(ReportsTotal.WithLabelValues("ok"))
	failedBefore := testutil.ToFloat64(ReportsTotal.WithLabelValues("query"))

	ObserveReport("ok", 10*time.Millisecond, 42)
	ObserveReport("query", time.Millisecond, 0)

	if got := testutil.ToFloat64(ReportsTotal.WithLabelValues("ok")); got != okBefore+1 {
		t.Errorf("reports_total{ok} = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(ReportsTotal.WithLabelValues("query")); got != failedBefore+1 {
		t.Errorf("reports_total{query} = %v, want %v", got, failedBefore+1)
	}
	if got := testutil.ToFloat64(ReportRecords); got != 42 {
		t.Errorf("report_records = %v, want 42 (failures must not reset it)", got)
	}
	if testutil.CollectAndCount(ReportDuration) == 0 {
		t.Error("expected report_duration_seconds to be collected")
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	Register()
	Register()
	ObserveReport("ok", time.Millisecond, 1)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "reportbot_reports_total") {
		t.Error("reportbot_reports_total missing from /metrics output")
	}
}

func TestObserveSettingsReload(t *testing.T) {
	okBefore := testutil.ToFloat64(SettingsReloads.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(SettingsReloads.WithLabelValues("error"))

	ObserveSettingsReload(nil)
	ObserveSettingsReload(errors.New("bad toml"))
	ObserveSettingsReload(errors.New("bad toml"))

	if got := testutil.ToFloat64(SettingsReloads.WithLabelValues("ok")); got != okBefore+1 {
		t.Errorf("settings_reloads_total{ok} = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(SettingsReloads.WithLabelValues("error")); got != errBefore+2 {
		t.Errorf("settings_reloads_total{error} = %v, want %v", got, errBefore+2)
	}
}

package gateways

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ochairo/rsasxlsx/internal/domain/interfaces/gateways"
)

func TestPrometheusRecorder_Counts(t *testing.T) {
	r := NewPrometheusRecorder("")

	r.RecordMember(gateways.OutcomeConverted)
	r.RecordMember(gateways.OutcomeConverted)
	r.RecordMember(gateways.OutcomeFailed)
	r.RecordRows(3, 2)
	r.RecordRows(1, 0)

	if got := testutil.ToFloat64(r.members.WithLabelValues(gateways.OutcomeConverted)); got != 2 {
		t.Errorf("converted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.members.WithLabelValues(gateways.OutcomeFailed)); got != 1 {
		t.Errorf("failed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.emitted); got != 4 {
		t.Errorf("emitted = %v, want 4", got)
	}
	if got := testutil.ToFloat64(r.suppressed); got != 2 {
		t.Errorf("suppressed = %v, want 2", got)
	}

	if err := r.Flush(); err != nil {
		t.Errorf("Flush() without textfile error = %v", err)
	}
}

func TestPrometheusRecorder_FlushTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsasxlsx.prom")
	r := NewPrometheusRecorder(path)
	r.RecordMember(gateways.OutcomeConverted)
	r.RecordRows(5, 1)

	if err := r.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		`rsasxlsx_members_total{outcome="converted"} 1`,
		"rsasxlsx_rows_emitted_total 5",
		"rsasxlsx_rows_suppressed_total 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}
}

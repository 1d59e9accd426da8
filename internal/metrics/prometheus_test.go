package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/cadrefs/docmgr"
	cadtestutil "github.com/erraggy/cadrefs/internal/testutil"
	"github.com/erraggy/cadrefs/refcount"
)

func TestRecorder_RecordCount(t *testing.T) {
	r := NewRecorder(false)

	r.RecordCount(refcount.OutcomeSuccess, 5, 2, 10*time.Millisecond)
	r.RecordCount(refcount.OutcomeSuccess, 3, 0, time.Millisecond)
	r.RecordCount("ConfigurationNotFound", 0, 0, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(r.CountsTotal.WithLabelValues(refcount.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.CountsTotal.WithLabelValues("ConfigurationNotFound")), 0)
	assert.InDelta(t, 8, testutil.ToFloat64(r.ComponentsScanned), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.ComponentsSuppressed), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(r.CountDuration))
}

func TestRecorder_WithCounter(t *testing.T) {
	r := NewRecorder(false)
	c := refcount.New()
	c.Metrics = r

	doc := cadtestutil.NewDocument(cadtestutil.NewAssemblyDocument())
	_, err := c.Count(doc)
	require.NoError(t, err)

	c.Configuration = "Missing"
	_, err = c.Count(doc)
	require.Error(t, err)

	_, err = c.Count(docmgr.Document(nil))
	require.Error(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(r.CountsTotal.WithLabelValues(refcount.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.CountsTotal.WithLabelValues("ConfigurationNotFound")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.CountsTotal.WithLabelValues(refcount.OutcomeInvalidArgument)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(r.ComponentsScanned), 0)
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder(true)
	r.RecordCount(refcount.OutcomeSuccess, 1, 0, time.Millisecond)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `cadrefs_counts_total{outcome="success"} 1`), "unexpected body: %s", text)
	assert.Contains(t, text, "go_goroutines")
}

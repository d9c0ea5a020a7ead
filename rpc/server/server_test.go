package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/VictoriaMetrics/metrics"
	"github.com/kfdigitals/battedball/lib/dataset"
	"github.com/kfdigitals/battedball/lib/query"
	"github.com/kfdigitals/battedball/rpc/common"
	"github.com/kfdigitals/battedball/rpc/serializer"
	"github.com/kfdigitals/battedball/rpc/transport"
)

// captureTransport records the registered handler instead of listening
type captureTransport struct {
	handler transport.ServerHandleFunc
}

func (c *captureTransport) RegisterHandler(handler transport.ServerHandleFunc) { c.handler = handler }
func (c *captureTransport) Listen(common.ServerConfig) error                  { return nil }
func (c *captureTransport) Serve(net.Listener, common.ServerConfig) error     { return nil }
func (c *captureTransport) Close() error                                      { return nil }

// panicService panics on every query
type panicService struct{}

func (panicService) ListRows(query.Filters) ([]dataset.Row, error) { panic("column vanished") }
func (panicService) Summarize() (query.Summary, error)            { panic("column vanished") }
func (panicService) Health() query.Health                         { return query.Health{DataLoaded: true, Rows: 1} }

// failingSerializer cannot serialize rows
type failingSerializer struct {
	serializer.IAPISerializer
}

func (f failingSerializer) Serialize(v any) ([]byte, error) {
	if _, ok := v.([]dataset.Row); ok {
		return nil, errors.New("unsupported value")
	}
	return f.IAPISerializer.Serialize(v)
}

func scenarioTable() *dataset.Table {
	return dataset.NewTable([]dataset.Row{
		{Batter: "John Smith", Pitcher: "Max Fried", ExitSpeed: dataset.Num(95.2), LaunchAngle: dataset.Num(12.0)},
		{Batter: "Jane Doe", Pitcher: "Spencer Strider", ExitSpeed: dataset.Num(88.0), LaunchAngle: dataset.Num(25.0)},
	})
}

func newTestServer(config common.ServerConfig, service query.IQueryService, s serializer.IAPISerializer) *captureTransport {
	ct := &captureTransport{}
	srv := NewAPIServer(config, service, ct, s)
	srv.init()
	return ct
}

func call(t *testing.T, ct *captureTransport, route common.Route, params url.Values) (int, string) {
	t.Helper()
	status, contentType, body := ct.handler(&common.Request{Route: route, Params: params, RequestID: "test"})
	if contentType != "application/json" {
		t.Errorf("expected application/json, got %q", contentType)
	}
	return status, string(body)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name  string
		table *dataset.Table
		want  string
	}{
		{"Loaded", scenarioTable(), `{"status":"healthy","data_loaded":true}`},
		{"Empty", dataset.EmptyTable(), `{"status":"healthy","data_loaded":false}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ct := newTestServer(common.ServerConfig{}, query.NewQueryService(tc.table), serializer.NewJSONSerializer())
			status, body := call(t, ct, common.RouteHealth, nil)
			if status != http.StatusOK {
				t.Errorf("expected 200, got %d", status)
			}
			if body != tc.want {
				t.Errorf("expected %s, got %s", tc.want, body)
			}
		})
	}
}

func TestData(t *testing.T) {
	ct := newTestServer(common.ServerConfig{}, query.NewQueryService(scenarioTable()), serializer.NewJSONSerializer())

	tests := []struct {
		name    string
		params  url.Values
		batters []string
	}{
		{"All", nil, []string{"John Smith", "Jane Doe"}},
		{"Batter", url.Values{"batter": {"smith"}}, []string{"John Smith"}},
		{"MinExitSpeed", url.Values{"min_exit_speed": {"90"}}, []string{"John Smith"}},
		{"MaxLaunchAngle", url.Values{"max_launch_angle": {"15"}}, []string{"John Smith"}},
		{"MalformedIgnored", url.Values{"min_exit_speed": {"fast"}}, []string{"John Smith", "Jane Doe"}},
		{"NoMatch", url.Values{"pitcher": {"nobody"}}, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := call(t, ct, common.RouteData, tc.params)
			if status != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", status, body)
			}

			var rows []map[string]any
			if err := json.Unmarshal([]byte(body), &rows); err != nil {
				t.Fatalf("invalid body %s: %v", body, err)
			}
			if rows == nil {
				t.Fatalf("expected a JSON array, got %s", body)
			}
			if len(rows) != len(tc.batters) {
				t.Fatalf("expected %d rows, got %d", len(tc.batters), len(rows))
			}
			for i, r := range rows {
				if r["BATTER"] != tc.batters[i] {
					t.Errorf("row %d: expected batter %q, got %v", i, tc.batters[i], r["BATTER"])
				}
				if len(r) != len(dataset.Columns) {
					t.Errorf("row %d: expected %d columns, got %d", i, len(dataset.Columns), len(r))
				}
				// missing values render as empty strings
				if r["VIDEO_LINK"] != "" || r["HANG_TIME"] != "" {
					t.Errorf("row %d: missing values not rendered as empty string: %v", i, r)
				}
			}
		})
	}
}

func TestStrictParams(t *testing.T) {
	params := url.Values{"min_exit_speed": {"fast"}}

	ct := newTestServer(common.ServerConfig{StrictParams: true}, query.NewQueryService(scenarioTable()), serializer.NewJSONSerializer())
	status, body := call(t, ct, common.RouteData, params)
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
	if !strings.Contains(body, "min_exit_speed") {
		t.Errorf("expected error naming the parameter, got %s", body)
	}

	// an empty table is reported before parameter errors
	ct = newTestServer(common.ServerConfig{StrictParams: true}, query.NewQueryService(dataset.EmptyTable()), serializer.NewJSONSerializer())
	if status, _ := call(t, ct, common.RouteData, params); status != http.StatusInternalServerError {
		t.Errorf("expected 500 for empty table, got %d", status)
	}
}

func TestSummary(t *testing.T) {
	ct := newTestServer(common.ServerConfig{}, query.NewQueryService(scenarioTable()), serializer.NewJSONSerializer())

	status, body := call(t, ct, common.RouteSummary, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var summary query.Summary
	if err := json.Unmarshal([]byte(body), &summary); err != nil {
		t.Fatalf("invalid body %s: %v", body, err)
	}
	if summary.TotalBattedBalls != 2 || summary.UniqueBatters != 2 || summary.UniquePitchers != 2 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.AvgExitSpeed == nil || *summary.AvgExitSpeed < 91.59 || *summary.AvgExitSpeed > 91.61 {
		t.Errorf("expected avg_exit_speed 91.6, got %v", summary.AvgExitSpeed)
	}
}

func TestEmptyTableErrors(t *testing.T) {
	ct := newTestServer(common.ServerConfig{}, query.NewQueryService(dataset.EmptyTable()), serializer.NewJSONSerializer())

	for _, route := range []common.Route{common.RouteData, common.RouteSummary} {
		t.Run(route.String(), func(t *testing.T) {
			status, body := call(t, ct, route, nil)
			if status != http.StatusInternalServerError {
				t.Errorf("expected 500, got %d", status)
			}
			if body != `{"error":"Data not loaded"}` {
				t.Errorf("unexpected error payload: %s", body)
			}
		})
	}
}

func TestFailures(t *testing.T) {
	t.Run("Panic", func(t *testing.T) {
		ct := newTestServer(common.ServerConfig{}, panicService{}, serializer.NewJSONSerializer())
		status, body := call(t, ct, common.RouteSummary, nil)
		if status != http.StatusInternalServerError || !strings.Contains(body, "column vanished") {
			t.Errorf("expected 500 with panic message, got %d %s", status, body)
		}
	})

	t.Run("Serialization", func(t *testing.T) {
		ct := newTestServer(common.ServerConfig{}, query.NewQueryService(scenarioTable()), failingSerializer{serializer.NewJSONSerializer()})
		status, body := call(t, ct, common.RouteData, nil)
		if status != http.StatusInternalServerError || !strings.Contains(body, "failed to serialize response") {
			t.Errorf("expected 500 with serialization error, got %d %s", status, body)
		}
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		ct := newTestServer(common.ServerConfig{}, query.NewQueryService(scenarioTable()), serializer.NewJSONSerializer())
		if status, _ := call(t, ct, common.Route("/api/unknown"), nil); status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})
}

func TestRegisterMetrics(t *testing.T) {
	set := metrics.NewSet()
	RegisterMetrics(set, query.NewQueryService(scenarioTable()))

	var buf bytes.Buffer
	set.WritePrometheus(&buf)

	for _, want := range []string{"battedball_dataset_rows 2", "battedball_dataset_loaded 1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in metrics output:\n%s", want, buf.String())
		}
	}
}

package cli

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pegplanner/pkg/grid"
	"github.com/matzehuels/pegplanner/pkg/observability"
	"github.com/matzehuels/pegplanner/pkg/persist"
	"github.com/matzehuels/pegplanner/pkg/planner"
	"github.com/matzehuels/pegplanner/pkg/store"
)

type recordedRequest struct {
	path   string
	status int
}

type recordingHTTPHooks struct {
	mu   sync.Mutex
	reqs []recordedRequest
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, _, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reqs = append(h.reqs, recordedRequest{path, status})
}

func newTestServer(t *testing.T) (*httptest.Server, *previewServer, store.Store) {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()
	p, err := planner.Open(ctx, planner.Options{Store: s})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, err := p.Place(ctx, "bin-small", grid.Cell{X: 2, Y: 2}); !ok || err != nil {
		t.Fatalf("Place() = %v, %v", ok, err)
	}
	ps := newPreviewServer(p, log.New(io.Discard))
	srv := httptest.NewServer(ps.routes())
	t.Cleanup(srv.Close)
	return srv, ps, s
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPreviewHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp := get(t, srv.URL+"/healthz")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Server"), "pegplanner/") {
		t.Errorf("Server header = %q", resp.Header.Get("Server"))
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["status"] != "ok" {
		t.Errorf("body = %v, %v", body, err)
	}
}

func TestPreviewImages(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := get(t, srv.URL+"/board.svg")
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("svg Content-Type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<svg") || !strings.Contains(string(body), "Parts Bin") {
		t.Errorf("svg body missing board or item")
	}

	resp = get(t, srv.URL+"/board.png")
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 24*32*2 {
		t.Errorf("png width = %d", b.Dx())
	}
}

func TestPreviewAPI(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var rec persist.Record
	if err := json.NewDecoder(get(t, srv.URL+"/api/layout").Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.Items) != 1 || rec.Items[0].TemplateID != "bin-small" {
		t.Errorf("layout = %+v", rec)
	}

	var cat catalogResponse
	if err := json.NewDecoder(get(t, srv.URL+"/api/catalog").Body).Decode(&cat); err != nil {
		t.Fatal(err)
	}
	if len(cat.Templates) == 0 || len(cat.BoardSizes) == 0 || cat.Colors[0].ID != "white" {
		t.Errorf("catalog = %d templates, %d sizes", len(cat.Templates), len(cat.BoardSizes))
	}

	var sum planner.Summary
	if err := json.NewDecoder(get(t, srv.URL+"/api/summary").Body).Decode(&sum); err != nil {
		t.Fatal(err)
	}
	if sum.Items != 1 {
		t.Errorf("summary items = %d", sum.Items)
	}

	if resp := get(t, srv.URL+"/nope"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d", resp.StatusCode)
	}
}

func TestPreviewReloadsStore(t *testing.T) {
	srv, ps, s := newTestServer(t)
	ctx := context.Background()

	other, err := planner.Open(ctx, planner.Options{Store: s})
	if err != nil {
		t.Fatal(err)
	}
	if err := other.Clear(ctx); err != nil {
		t.Fatal(err)
	}

	ps.mu.Lock()
	ps.loaded = time.Time{}
	ps.mu.Unlock()

	var rec persist.Record
	if err := json.NewDecoder(get(t, srv.URL+"/api/layout").Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	if len(rec.Items) != 0 {
		t.Errorf("preview did not pick up the cleared layout: %+v", rec.Items)
	}
}

func TestPreviewRequestHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv, _, _ := newTestServer(t)
	io.ReadAll(get(t, srv.URL+"/healthz").Body)
	io.ReadAll(get(t, srv.URL+"/missing").Body)

	// The hook fires after the response is flushed.
	deadline := time.Now().Add(2 * time.Second)
	for {
		hooks.mu.Lock()
		n := len(hooks.reqs)
		hooks.mu.Unlock()
		if n >= 2 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	want := []recordedRequest{{"/healthz", 200}, {"/missing", 404}}
	if len(hooks.reqs) != len(want) {
		t.Fatalf("requests = %+v", hooks.reqs)
	}
	for i := range want {
		if hooks.reqs[i] != want[i] {
			t.Errorf("request %d = %+v, want %+v", i, hooks.reqs[i], want[i])
		}
	}
}

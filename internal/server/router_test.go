package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foodtrack/internal/model"
	"foodtrack/internal/repository"
	"foodtrack/internal/service"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func newTestServer(t *testing.T, mutate func(*Deps)) *httptest.Server {
	t.Helper()

	collections := repository.NewMemoryCollections()
	d := Deps{
		Catalog:     service.NewCatalogService(repository.NewMemoryCatalog(model.DefaultCatalog())),
		Orders:      service.NewOrderService(repository.NewMemoryOrders(), nil),
		Collections: service.NewCollectionService(collections, model.DefaultWasteTypes(), nil),
		Reports:     service.NewReportService(collections, model.DefaultWasteTypes()),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if mutate != nil {
		mutate(&d)
	}

	srv := httptest.NewServer(NewRouter(d))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %q: %v", b, err)
	}
	return v
}

type message struct {
	Message string `json:"message"`
}

func TestListRestaurants(t *testing.T) {
	srv := newTestServer(t, nil)

	code, body := do(t, srv, http.MethodGet, "/api/restaurants", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	got := decode[[]map[string]any](t, body)
	if len(got) != 2 {
		t.Fatalf("got %d restaurants", len(got))
	}
	if got[0]["id"] != float64(1) || got[0]["name"] != "KFC - Crispy & Hot" {
		t.Errorf("unexpected first restaurant: %v", got[0])
	}
	if _, ok := got[0]["menu"]; ok {
		t.Error("restaurant list must not include menus")
	}
}

func TestGetMenu(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/api/restaurants/1/menu", http.StatusOK},
		{"/api/restaurants/2/menu", http.StatusOK},
		{"/api/restaurants/99/menu", http.StatusNotFound},
		{"/api/restaurants/abc/menu", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := do(t, srv, http.MethodGet, tt.path, "")
			if code != tt.wantCode {
				t.Fatalf("status = %d, want %d", code, tt.wantCode)
			}
			if code == http.StatusNotFound {
				if m := decode[message](t, body); m.Message != "Restaurant not found" {
					t.Errorf("message = %q", m.Message)
				}
				return
			}
			menu := decode[[]model.MenuItem](t, body)
			if len(menu) != 3 {
				t.Errorf("got %d menu items", len(menu))
			}
		})
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil)

	code, body := do(t, srv, http.MethodPost, "/api/orders", `{"restaurantId":1,"items":[{"id":1}],"total":150}`)
	if code != http.StatusCreated {
		t.Fatalf("place status = %d, body %s", code, body)
	}
	placed := decode[map[string]any](t, body)
	if placed["orderId"] != float64(1001) || placed["status"] != "Order Placed" || placed["message"] != "Order successfully placed" {
		t.Fatalf("unexpected place response: %v", placed)
	}

	code, body = do(t, srv, http.MethodGet, "/api/orders/1001", "")
	if code != http.StatusOK {
		t.Fatalf("get status = %d", code)
	}
	got := decode[map[string]any](t, body)
	if got["id"] != float64(1001) || got["status"] != "Order Placed" || got["total"] != float64(150) {
		t.Fatalf("unexpected order: %v", got)
	}

	for _, want := range []string{"Preparing", "Out for Delivery", "Delivered", "Delivered"} {
		code, body = do(t, srv, http.MethodPatch, "/api/orders/1001/update-status", "")
		if code != http.StatusOK {
			t.Fatalf("advance status = %d", code)
		}
		adv := decode[map[string]any](t, body)
		if adv["id"] != float64(1001) || adv["newStatus"] != want {
			t.Fatalf("advance = %v, want %q", adv, want)
		}
	}
}

func TestPlaceOrderRejectsMissingFields(t *testing.T) {
	srv := newTestServer(t, nil)

	bodies := []string{
		`{"restaurantId":1,"items":[],"total":150}`,
		`{"restaurantId":1,"total":150}`,
		`{"restaurantId":1,"items":[{"id":1}]}`,
		`{"restaurantId":1,"items":[{"id":1}],"total":0}`,
		`{"items":[{"id":1}],"total":150}`,
		`{"restaurantId":1,"items":"burger","total":150}`,
		`not json`,
	}

	for _, b := range bodies {
		code, body := do(t, srv, http.MethodPost, "/api/orders", b)
		if code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", b, code)
			continue
		}
		if m := decode[message](t, body); m.Message != "Missing order details." {
			t.Errorf("%s: message = %q", b, m.Message)
		}
	}

	code, body := do(t, srv, http.MethodPost, "/api/orders", `{"restaurantId":7,"items":[{"id":1}],"total":10}`)
	if code != http.StatusCreated {
		t.Fatalf("status = %d", code)
	}
	if placed := decode[map[string]any](t, body); placed["orderId"] != float64(1001) {
		t.Fatalf("rejected requests consumed ids: %v", placed)
	}
}

func TestUnknownOrder(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, req := range []struct{ method, path string }{
		{http.MethodGet, "/api/orders/9999"},
		{http.MethodPatch, "/api/orders/9999/update-status"},
		{http.MethodGet, "/api/orders/abc"},
	} {
		code, body := do(t, srv, req.method, req.path, "")
		if code != http.StatusNotFound {
			t.Errorf("%s %s: status = %d", req.method, req.path, code)
			continue
		}
		if m := decode[message](t, body); m.Message != "Order not found" {
			t.Errorf("%s %s: message = %q", req.method, req.path, m.Message)
		}
	}
}

func TestCollectionsAndSummary(t *testing.T) {
	srv := newTestServer(t, nil)

	code, body := do(t, srv, http.MethodGet, "/wastes", "")
	if code != http.StatusOK || len(decode[[]model.WasteType](t, body)) != 3 {
		t.Fatalf("wastes: %d %s", code, body)
	}

	code, body = do(t, srv, http.MethodPost, "/collections", `{"location":"5 Elm St","typeId":"w1","weightKg":20}`)
	if code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", code, body)
	}
	created := decode[model.Collection](t, body)
	if created.Status != model.CollectionPending || created.ID == "" {
		t.Fatalf("unexpected collection: %+v", created)
	}

	code, _ = do(t, srv, http.MethodPost, "/collections", `{"location":"","typeId":"w1"}`)
	if code != http.StatusBadRequest {
		t.Errorf("blank location status = %d", code)
	}

	code, _ = do(t, srv, http.MethodPost, "/collections", `{"location":"x","typeId":"w2"}`)
	if code != http.StatusCreated {
		t.Fatalf("second create status = %d", code)
	}

	code, body = do(t, srv, http.MethodPatch, "/collections/"+created.ID+"/collect", "")
	if code != http.StatusOK || decode[model.Collection](t, body).Status != model.CollectionCollected {
		t.Fatalf("collect: %d %s", code, body)
	}

	code, _ = do(t, srv, http.MethodPatch, "/collections/nope/collect", "")
	if code != http.StatusNotFound {
		t.Errorf("unknown collection status = %d", code)
	}

	code, body = do(t, srv, http.MethodGet, "/collections", "")
	if code != http.StatusOK || len(decode[[]model.Collection](t, body)) != 2 {
		t.Fatalf("list: %d %s", code, body)
	}

	code, body = do(t, srv, http.MethodGet, "/reports/summary", "")
	if code != http.StatusOK {
		t.Fatalf("summary status = %d", code)
	}
	sum := decode[service.Summary](t, body)
	want := service.Summary{Pending: 1, Collected: 1, Total: 2, TotalWasteKg: 20, RecyclingRate: 100}
	if sum != want {
		t.Errorf("summary = %+v, want %+v", sum, want)
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, nil)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/orders/1001/update-status", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPatch) {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('foodtrack')"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := newTestServer(t, func(d *Deps) { d.StaticDir = dir })

	code, body := do(t, srv, http.MethodGet, "/app.js", "")
	if code != http.StatusOK || !bytes.Contains(body, []byte("foodtrack")) {
		t.Fatalf("static: %d %s", code, body)
	}

	code, _ = do(t, srv, http.MethodGet, "/api/restaurants", "")
	if code != http.StatusOK {
		t.Fatalf("api shadowed by static files: %d", code)
	}
}

func TestStaticFilesHideDotfiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"app.js":      "console.log('foodtrack')",
		".env":        "DATABASE_URI=postgres://admin:secret@db/foodtrack\n",
		".git/config": "[core]\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	srv := newTestServer(t, func(d *Deps) { d.StaticDir = dir })

	for _, path := range []string{"/.env", "/.git/config", "/.git/"} {
		code, body := do(t, srv, http.MethodGet, path, "")
		if code != http.StatusNotFound {
			t.Errorf("GET %s = %d %s, want 404", path, code, body)
		}
		if bytes.Contains(body, []byte("secret")) {
			t.Errorf("GET %s leaked %s", path, body)
		}
	}

	code, body := do(t, srv, http.MethodGet, "/", "")
	if code != http.StatusOK {
		t.Fatalf("listing: %d", code)
	}
	if !bytes.Contains(body, []byte("app.js")) || bytes.Contains(body, []byte(".env")) || bytes.Contains(body, []byte(".git")) {
		t.Errorf("listing = %s", body)
	}
}

func TestHasDotSegment(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"/app.js", false},
		{"/", false},
		{"/static/app.js", false},
		{"/.env", true},
		{"/.git/config", true},
		{"/static/.hidden/app.js", true},
	}
	for _, tt := range tests {
		if got := hasDotSegment(tt.name); got != tt.want {
			t.Errorf("hasDotSegment(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		db       *fakePinger
		wantCode int
		storage  string
	}{
		{"memory", nil, http.StatusOK, "memory"},
		{"postgres up", &fakePinger{}, http.StatusOK, "postgres"},
		{"postgres down", &fakePinger{err: errors.New("refused")}, http.StatusServiceUnavailable, "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(d *Deps) {
				if tt.db != nil {
					d.DB = *tt.db
				}
			})

			code, body := do(t, srv, http.MethodGet, "/healthz", "")
			if code != tt.wantCode {
				t.Fatalf("status = %d, want %d", code, tt.wantCode)
			}
			if got := decode[map[string]any](t, body); got["storage"] != tt.storage {
				t.Errorf("storage = %v, want %s", got["storage"], tt.storage)
			}
		})
	}
}

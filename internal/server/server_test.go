package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"contentfilter/internal/codec"
	"contentfilter/internal/filter"
)

const custom = "Custom Mode"

func modePath(mode string, rest ...string) string {
	parts := append([]string{"/api/modes", url.PathEscape(mode)}, rest...)
	return strings.Join(parts, "/")
}

func newTestServer(t *testing.T) (*Server, *filter.Store) {
	t.Helper()
	store := filter.NewStore()
	srv := New(store, Options{StorePath: filepath.Join(t.TempDir(), "store.json")})
	srv.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }
	return srv, store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestListModes(t *testing.T) {
	srv, store := newTestServer(t)
	if _, err := store.AddMany(custom, filter.Blacklist, []string{"a", "b"}); err != nil {
		t.Fatalf("AddMany: %v", err)
	}

	rec := do(t, srv.Handler(), http.MethodGet, "/api/modes", "")
	var modes []modeSummary
	decode(t, rec, &modes)
	if len(modes) != 3 {
		t.Fatalf("modes = %+v", modes)
	}
	last := modes[2]
	if last.Name != custom || last.Blacklist != 2 || last.Description != "Customize your own filtering." {
		t.Fatalf("custom summary = %+v", last)
	}
}

func TestAddGetRemove(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, modePath(custom, "whitelist"), `{"item":"hello"}`)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"added":1}` {
		t.Fatalf("add = %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, http.MethodPost, modePath(custom, "whitelist"), `{"items":["hello","help","world"]}`)
	if strings.TrimSpace(rec.Body.String()) != `{"added":2}` {
		t.Fatalf("add many = %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, modePath(custom)+"?q=HEL", "")
	var got modeResponse
	decode(t, rec, &got)
	if !reflect.DeepEqual(got.Whitelist, []string{"hello", "help"}) || len(got.Blacklist) != 0 {
		t.Fatalf("search = %+v", got)
	}

	rec = do(t, h, http.MethodDelete, modePath(custom, "whitelist", "help"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove = %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, http.MethodDelete, modePath(custom, "whitelist", "help"), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second remove = %d, want 404", rec.Code)
	}
}

func TestRemoveEscapedItem(t *testing.T) {
	srv, store := newTestServer(t)
	if _, err := store.Add(custom, filter.Blacklist, "a/b c"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	rec := do(t, srv.Handler(), http.MethodDelete, modePath(custom, "blacklist", url.PathEscape("a/b c")), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove = %d %s", rec.Code, rec.Body.String())
	}
	if items, _ := store.Items(custom, filter.Blacklist); len(items) != 0 {
		t.Fatalf("blacklist = %v", items)
	}
}

func TestAddErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{name: "unknown mode", target: modePath("Nope", "whitelist"), body: `{"item":"x"}`, want: http.StatusNotFound},
		{name: "unknown kind", target: modePath(custom, "greylist"), body: `{"item":"x"}`, want: http.StatusNotFound},
		{name: "empty item", target: modePath(custom, "whitelist"), body: `{"item":"  "}`, want: http.StatusBadRequest},
		{name: "bad json", target: modePath(custom, "whitelist"), body: `{`, want: http.StatusBadRequest},
		{name: "control char", target: modePath(custom, "whitelist"), body: `{"item":"a\u0007b"}`, want: http.StatusBadRequest},
		{name: "section marker", target: modePath(custom, "blacklist"), body: `{"item":"=== spam"}`, want: http.StatusBadRequest},
	}
	srv, _ := newTestServer(t)
	h := srv.Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Fatalf("body = %s", rec.Body.String())
			}
		})
	}
}

func TestSortClearStats(t *testing.T) {
	srv, store := newTestServer(t)
	h := srv.Handler()
	if _, err := store.AddMany(custom, filter.Whitelist, []string{"b", "c", "a"}); err != nil {
		t.Fatalf("AddMany: %v", err)
	}

	rec := do(t, h, http.MethodPost, modePath(custom, "sort")+"?dir=desc", "")
	var lists filter.Lists
	decode(t, rec, &lists)
	if !reflect.DeepEqual(lists.Whitelist, []string{"c", "b", "a"}) {
		t.Fatalf("sorted = %v", lists.Whitelist)
	}
	if rec := do(t, h, http.MethodPost, modePath(custom, "sort")+"?dir=sideways", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad direction = %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, modePath(custom, "stats"), "")
	var stats filter.Stats
	decode(t, rec, &stats)
	if stats.Whitelist.Count != 3 || stats.Whitelist.AverageLength != 1 || stats.Blacklist.Count != 0 {
		t.Fatalf("stats = %+v", stats)
	}

	rec = do(t, h, http.MethodPost, modePath(custom, "clear"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear = %d", rec.Code)
	}
	if items, _ := store.Items(custom, filter.Whitelist); len(items) != 0 {
		t.Fatalf("whitelist after clear = %v", items)
	}
}

func TestExportImport(t *testing.T) {
	srv, store := newTestServer(t)
	h := srv.Handler()
	if _, err := store.AddMany(custom, filter.Whitelist, []string{"good"}); err != nil {
		t.Fatalf("AddMany: %v", err)
	}
	if _, err := store.AddMany(custom, filter.Blacklist, []string{"bad"}); err != nil {
		t.Fatalf("AddMany: %v", err)
	}

	for _, format := range []string{"csv", "txt"} {
		t.Run(format, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, modePath(custom, "export")+"?format="+format, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("export = %d %s", rec.Code, rec.Body.String())
			}
			want := `attachment; filename="content_filter_Custom Mode_20240309_140507.` + format + `"`
			if got := rec.Header().Get("Content-Disposition"); got != want {
				t.Fatalf("Content-Disposition = %q, want %q", got, want)
			}

			rec = do(t, h, http.MethodPost, modePath(filter.DefaultMode(), "import")+"?format="+format, rec.Body.String())
			if strings.TrimSpace(rec.Body.String()) != `{"added":2}` {
				t.Fatalf("import = %s", rec.Body.String())
			}
			lists, _ := store.Lists(filter.DefaultMode())
			if !reflect.DeepEqual(lists.Whitelist, []string{"good"}) || !reflect.DeepEqual(lists.Blacklist, []string{"bad"}) {
				t.Fatalf("imported = %+v", lists)
			}
			if err := store.Clear(filter.DefaultMode()); err != nil {
				t.Fatalf("Clear: %v", err)
			}
		})
	}

	if rec := do(t, h, http.MethodGet, modePath(custom, "export")+"?format=xml", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, modePath("Nope", "import"), "Type,Item\n"); rec.Code != http.StatusNotFound {
		t.Fatalf("import unknown mode = %d", rec.Code)
	}
}

func TestCheck(t *testing.T) {
	srv, store := newTestServer(t)
	if _, err := store.Add(filter.DefaultMode(), filter.Blacklist, "Violence"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/check", `{"text":"no violence here"}`)
	var v filter.Verdict
	decode(t, rec, &v)
	if v.Status != filter.StatusBlocked || !reflect.DeepEqual(v.Blocked, []string{"violence"}) {
		t.Fatalf("verdict = %+v", v)
	}

	rec = do(t, h, http.MethodPost, "/api/check", `{"mode":"Custom Mode","text":"no violence here"}`)
	decode(t, rec, &v)
	if v.Status != filter.StatusAllowed {
		t.Fatalf("custom verdict = %+v", v)
	}

	if rec := do(t, h, http.MethodPost, "/api/check", `{"mode":"Nope","text":"x"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown mode = %d", rec.Code)
	}
}

func TestSave(t *testing.T) {
	srv, store := newTestServer(t)
	if _, err := store.Add(custom, filter.Whitelist, "kept"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	rec := do(t, srv.Handler(), http.MethodPost, "/api/store/save", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("save = %d %s", rec.Code, rec.Body.String())
	}
	if _, err := os.Stat(srv.opts.StorePath); err != nil {
		t.Fatalf("store file: %v", err)
	}
	data, err := codec.LoadStore(srv.opts.StorePath)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	if !reflect.DeepEqual(data[custom].Whitelist, []string{"kept"}) {
		t.Fatalf("saved = %+v", data[custom])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodPut, "/api/modes", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

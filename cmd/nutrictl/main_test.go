package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// fakeStore is an in-memory objectStore.
type fakeStore struct {
	objects map[string][]byte
}

func (f *fakeStore) Put(_ context.Context, bucket, key string, body []byte) error {
	f.objects[bucket+"/"+key] = append([]byte(nil), body...)
	return nil
}

func (f *fakeStore) Get(_ context.Context, bucket, key string) ([]byte, error) {
	b, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, io.EOF
	}
	return b, nil
}

// runCLI executes nutrictl against server with the given args and returns combined output.
func runCLI(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NUTRIAI_SERVER", "")
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(append([]string{"--server", server}, args...))
	err := root.Execute()
	return buf.String(), err
}

// newTestRoot builds a root command whose object store is store instead of S3.
func newTestRoot(server string, store objectStore) (*cobra.Command, *bytes.Buffer) {
	app := &cli{server: server, newStore: func(*cobra.Command) (objectStore, error) { return store, nil }}
	root := &cobra.Command{Use: "nutrictl", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(newExportCmd(app), newImportCmd(app), newResetCmd(app))
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	return root, buf
}

func TestRootHelp(t *testing.T) {
	out, err := runCLI(t, "http://unused", "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	for _, sub := range []string{"export", "import", "seed", "reset", "goals", "today"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing %q", sub)
		}
	}
}

func TestExport_WritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/export" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"profile":null,"exportDate":"2026-10-18T00:00:00Z"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "backup.json")
	out, err := runCLI(t, srv.URL, "export", "--out", path)
	if err != nil {
		t.Fatalf("export failed: %v (%s)", err, out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(data), "exportDate") {
		t.Errorf("unexpected backup contents: %s", data)
	}
}

func TestExportImport_S3RoundTrip(t *testing.T) {
	var imported string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/export":
			w.Write([]byte(`{"goals":{"calories":1800},"exportDate":"2026-10-18T00:00:00Z"}`))
		case "/api/import":
			b, _ := io.ReadAll(r.Body)
			imported = string(b)
			w.Write([]byte(`{"imported":["nutriai_nutrition_goals"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	store := &fakeStore{objects: map[string][]byte{}}

	root, buf := newTestRoot(srv.URL, store)
	root.SetArgs([]string{"export", "--s3-bucket", "backups", "--s3-key", "a.json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("export failed: %v (%s)", err, buf.String())
	}
	if _, ok := store.objects["backups/a.json"]; !ok {
		t.Fatalf("expected object backups/a.json, have %v", store.objects)
	}

	root, buf = newTestRoot(srv.URL, store)
	root.SetArgs([]string{"import", "--s3-bucket", "backups", "--s3-key", "a.json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("import failed: %v (%s)", err, buf.String())
	}
	if !strings.Contains(imported, `"calories":1800`) {
		t.Errorf("server received %q", imported)
	}
	if !strings.Contains(buf.String(), "nutriai_nutrition_goals") {
		t.Errorf("expected imported key in output, got %q", buf.String())
	}
}

func TestImport_RequiresSource(t *testing.T) {
	_, err := runCLI(t, "http://unused", "import")
	if err == nil || !strings.Contains(err.Error(), "--file") {
		t.Fatalf("expected missing source error, got %v", err)
	}
}

func TestImport_RejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("not json"), 0o644)

	_, err := runCLI(t, "http://unused", "import", "--file", path)
	if err == nil || !strings.Contains(err.Error(), "not valid JSON") {
		t.Fatalf("expected invalid JSON error, got %v", err)
	}
}

func TestReset_RequiresConfirmation(t *testing.T) {
	_, err := runCLI(t, "http://unused", "reset")
	if err == nil {
		t.Fatal("expected error without --yes")
	}
}

func TestReset_SampleOnlySkipsOnConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/sample-data" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"sample data is not active"}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "reset", "--yes", "--sample-only")
	if err != nil {
		t.Fatalf("expected skip, got %v", err)
	}
	if !strings.Contains(out, "Skipped") {
		t.Errorf("expected skip notice, got %q", out)
	}
}

func TestGoals_ServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"nutrition goals not found"}`))
	}))
	defer srv.Close()

	_, err := runCLI(t, srv.URL, "goals")
	if err == nil || !strings.Contains(err.Error(), "nutrition goals not found") {
		t.Fatalf("expected server message in error, got %v", err)
	}
}

func TestToday_PrintsSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date") != "2026-10-18" {
			t.Errorf("expected date query, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"daily":{"date":"2026-10-18","target":{"calories":1800,"protein":90},
			"consumed":{"calories":1430,"protein":56},"meals":[{"time":"08:00","type":"breakfast","name":"Poha"}]},
			"score":79,"scoreBand":"good","recommendations":["Add 34g protein"]}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, srv.URL, "today", "--date", "2026-10-18")
	if err != nil {
		t.Fatalf("today failed: %v", err)
	}
	for _, want := range []string{"score 79 (good)", "1430 / 1800", "Poha", "Add 34g protein"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

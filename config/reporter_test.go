package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Archive(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	src := filepath.Join(dir, "course.yaml")
	if err := os.WriteFile(src, []byte("course: {id: 2}\n"), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	if err := r.StoreCopy("source/course.yaml", src); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	// source changes after the copy was made must not be visible
	if err := os.WriteFile(src, []byte("changed\n"), 0644); err != nil {
		t.Fatalf("rewrite source: %v", err)
	}
	r.StoreData("outline.html", []byte("<ul></ul>"))
	r.Store("missing.log", filepath.Join(dir, "does-not-exist.log"))

	if got := r.Name(); got != conf.Destination {
		t.Errorf("Name() = %q, want %q", got, conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	files := readArchive(t, conf.Destination)
	if files["source/course.yaml"] != "course: {id: 2}\n" {
		t.Errorf("source copy = %q", files["source/course.yaml"])
	}
	if files["outline.html"] != "<ul></ul>" {
		t.Errorf("outline.html = %q", files["outline.html"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file should not be archived")
	}
	manifest := files["MANIFEST"]
	for _, name := range []string{"source/course.yaml", "outline.html", "missing.log"} {
		if !strings.Contains(manifest, name) {
			t.Errorf("MANIFEST misses %s:\n%s", name, manifest)
		}
	}
	for _, tmp := range r.temps {
		if _, err := os.Stat(tmp); !os.IsNotExist(err) {
			t.Errorf("temporary copy directory %s was not removed", tmp)
		}
	}
}

func TestReport_StoreCopyVersionsNames(t *testing.T) {
	dir := t.TempDir()
	r := &Report{entries: make(map[string]entry)}

	src := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(src, []byte("a"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := r.StoreCopy("a", src); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	if err := r.StoreCopy("a", src); err != nil {
		t.Fatalf("StoreCopy() error: %v", err)
	}
	if len(r.entries) != 2 {
		t.Errorf("entries = %d, want 2", len(r.entries))
	}
	for _, tmp := range r.temps {
		os.RemoveAll(tmp)
	}
}

func TestReport_StoreCopyDirectory(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.StoreCopy("dir", t.TempDir()); err == nil {
		t.Error("expected error for directory")
	}
}

func TestReport_StoreDataTwicePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("x", []byte("1"))
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate data entry")
		}
	}()
	r.StoreData("x", []byte("2"))
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	// all methods are nil-safe
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.StoreCopy("a", "b"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Error("Name on nil report should be empty")
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

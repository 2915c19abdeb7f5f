package catz

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestIsGZ(t *testing.T) {
	cases := map[string]bool{
		"photos.csv.gz": true,
		"PHOTOS.CSV.GZ": true,
		"photos.csv":    false,
		"gz":            false,
		"dir.gz/x.csv":  false,
	}
	for path, want := range cases {
		if got := IsGZ(path); got != want {
			t.Errorf("IsGZ(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestGZFileWriterReader(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "out.csv.gz")
	w, err := NewGZFileWriter(target, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("a,b\n1,2\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	// Closing twice is a no-op.
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	// Stdlib reader first, so a broken stream fails here.
	f, err := os.Open(target)
	if err != nil {
		t.Fatal(err)
	}
	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	read, err := io.ReadAll(gr)
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	if string(read) != "a,b\n1,2\n" {
		t.Errorf("read %q", read)
	}

	r, err := NewGZFileReader(target)
	if err != nil {
		t.Fatal(err)
	}
	read, err = io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if string(read) != "a,b\n1,2\n" {
		t.Errorf("read %q", read)
	}
}

func TestOpenReader(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.csv")
	if err := os.WriteFile(plain, []byte("plain\n"), 0600); err != nil {
		t.Fatal(err)
	}
	zipped := filepath.Join(dir, "zipped.csv.gz")
	w, err := NewGZFileWriter(zipped, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("zipped\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string]string{plain: "plain\n", zipped: "zipped\n"} {
		rc, err := OpenReader(path)
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != want {
			t.Errorf("%s: read %q, want %q", path, got, want)
		}
	}

	if _, err := OpenReader(plain + ".gz"); !os.IsNotExist(err) {
		t.Errorf("missing file: %v", err)
	}
	if _, err := NewGZFileReader(plain); err == nil {
		t.Error("plain file should not open as gzip")
	}
}

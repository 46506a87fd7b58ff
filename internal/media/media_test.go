package media

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{1024*1024 - 1, "1024.0 KB"},
		{1024 * 1024, "1.0 MB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.size); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()

	t.Run("sizes", func(t *testing.T) {
		cases := map[string]struct {
			size int
			want string
		}{
			"small.jpg":  {500, "500 B"},
			"medium.jpg": {2048, "2.0 KB"},
			"large.jpg":  {3 * 1024 * 1024, "3.0 MB"},
		}
		for name, c := range cases {
			path := writeFile(t, dir, name, c.size)
			info, ok := Resolve(path)
			if !ok {
				t.Fatalf("expected %s to resolve", name)
			}
			if info.Name != name || info.Path != path {
				t.Errorf("unexpected info %+v", info)
			}
			if info.SizeFormatted() != c.want {
				t.Errorf("%s: SizeFormatted() = %q, want %q", name, info.SizeFormatted(), c.want)
			}
		}
	})

	t.Run("timestamp", func(t *testing.T) {
		path := writeFile(t, dir, "dated.jpg", 10)
		stamp := time.Date(2024, 7, 4, 18, 5, 0, 0, time.Local)
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			t.Fatal(err)
		}
		info, ok := Resolve(path)
		if !ok {
			t.Fatal("expected file to resolve")
		}
		if got := info.CreatedFormatted(); got != "Jul 04, 2024 18:05" {
			t.Errorf("CreatedFormatted() = %q", got)
		}
	})

	t.Run("unresolvable", func(t *testing.T) {
		for _, p := range []string{"", "   ", filepath.Join(dir, "missing.jpg"), dir} {
			if _, ok := Resolve(p); ok {
				t.Errorf("expected %q to be unresolvable", p)
			}
		}
	})
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "photo.jpg", 128)

	if !Delete(path) {
		t.Fatal("expected first delete to succeed")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected file to be gone, stat err = %v", err)
	}
	if Delete(path) {
		t.Error("expected second delete to report false")
	}
	if Delete("") {
		t.Error("expected empty path to report false")
	}
	if Delete(dir) {
		t.Error("expected directory to be refused")
	}
}

package java

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/jnigen/classfile/classfiletest"
	"github.com/dhamidi/jnigen/mangle"
)

func classBytes(name string) []byte {
	return classfiletest.New(name).Method(classfiletest.Public, "run", "()V").Bytes()
}

func writeZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func names(classes []*Class) []string {
	var out []string
	for _, c := range classes {
		out = append(out, c.Name)
	}
	return out
}

func TestLoadPath(t *testing.T) {
	dir := t.TempDir()

	inner := writeZip(t, map[string][]byte{
		"c/Nested.class": classBytes("c/Nested"),
	})
	jar := writeZip(t, map[string][]byte{
		"b/Zipped.class":       classBytes("b/Zipped"),
		"b/module-info.class":  []byte("not a class"),
		"META-INF/MANIFEST.MF": []byte("Manifest-Version: 1.0\n"),
		"lib/inner.jar":        inner,
	})

	files := map[string][]byte{
		"a/Loose.class": classBytes("a/Loose"),
		"lib/dep.jar":   jar,
		"README.md":     []byte("ignored"),
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("directory", func(t *testing.T) {
		classes, err := LoadPath(dir, mangle.StyleGo)
		if err != nil {
			t.Fatalf("LoadPath error: %v", err)
		}
		got := names(classes)
		want := []string{"a/Loose", "b/Zipped", "c/Nested"}
		if len(got) != len(want) {
			t.Fatalf("classes = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("classes[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("jar", func(t *testing.T) {
		classes, err := LoadPath(filepath.Join(dir, "lib/dep.jar"), mangle.StyleGo)
		if err != nil {
			t.Fatalf("LoadPath error: %v", err)
		}
		if got := names(classes); len(got) != 2 || got[0] != "b/Zipped" || got[1] != "c/Nested" {
			t.Errorf("classes = %v", got)
		}
	})

	t.Run("single class", func(t *testing.T) {
		classes, err := LoadPath(filepath.Join(dir, "a/Loose.class"), mangle.StyleGo)
		if err != nil || len(classes) != 1 {
			t.Fatalf("LoadPath = %v, %v", names(classes), err)
		}
		if name, _ := classes[0].Methods[0].GoName(); name != "Run" {
			t.Errorf("GoName() = %q, want Run", name)
		}
	})

	t.Run("broken entries are reported", func(t *testing.T) {
		broken := filepath.Join(t.TempDir(), "broken.jar")
		data := writeZip(t, map[string][]byte{
			"x/Good.class": classBytes("x/Good"),
			"x/Bad.class":  []byte{0xCA, 0xFE},
		})
		if err := os.WriteFile(broken, data, 0o644); err != nil {
			t.Fatal(err)
		}
		classes, err := LoadPath(broken, mangle.StyleGo)
		if err == nil {
			t.Error("LoadPath succeeded on a broken class")
		}
		if len(classes) != 1 || classes[0].Name != "x/Good" {
			t.Errorf("classes = %v, want [x/Good]", names(classes))
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := LoadPath(filepath.Join(dir, "nope"), mangle.StyleGo); err == nil {
			t.Error("LoadPath succeeded on a missing path")
		}
	})
}

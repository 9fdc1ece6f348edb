package java

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhamidi/jnigen/classfile"
	"github.com/dhamidi/jnigen/mangle"
)

// LoadReader reads a single class file.
func LoadReader(r io.Reader, style mangle.Style) (*Class, error) {
	cf, err := classfile.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromClassFile(cf, style), nil
}

func LoadFile(path string, style mangle.Style) (*Class, error) {
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return FromClassFile(cf, style), nil
}

// LoadPath loads every class reachable from path: a .class file, a .jar
// or .zip archive (including jars nested inside it), or a directory
// tree holding any of those. Classes are returned sorted by name.
// Unreadable entries are reported together after the rest are loaded.
func LoadPath(path string, style mangle.Style) ([]*Class, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var classes []*Class
	var errs []error
	if info.IsDir() {
		classes, errs = loadDirectory(path, style)
	} else {
		classes, errs = loadFile(path, style)
	}

	sort.Slice(classes, func(i, j int) bool { return classes[i].Name < classes[j].Name })
	return classes, errors.Join(errs...)
}

func loadDirectory(root string, style mangle.Style) ([]*Class, []error) {
	var classes []*Class
	var errs []error
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, fmt.Errorf("walk %s: %w", path, err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		cs, es := loadFile(path, style)
		classes = append(classes, cs...)
		errs = append(errs, es...)
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("walk %s: %w", root, err))
	}
	return classes, errs
}

func loadFile(path string, style mangle.Style) ([]*Class, []error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".class":
		if skipClassEntry(path) {
			return nil, nil
		}
		class, err := LoadFile(path, style)
		if err != nil {
			return nil, []error{err}
		}
		return []*Class{class}, nil
	case ".jar", ".zip":
		r, err := zip.OpenReader(path)
		if err != nil {
			return nil, []error{fmt.Errorf("open zip %s: %w", path, err)}
		}
		defer r.Close()
		return loadZip(&r.Reader, path, style)
	}
	return nil, nil
}

func loadZip(zr *zip.Reader, name string, style mangle.Style) ([]*Class, []error) {
	var classes []*Class
	var errs []error
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(f.Name)) {
		case ".class":
			if skipClassEntry(f.Name) {
				continue
			}
			class, err := loadZipClass(f, style)
			if err != nil {
				errs = append(errs, fmt.Errorf("parse %s in %s: %w", f.Name, name, err))
				continue
			}
			classes = append(classes, class)
		case ".jar":
			cs, es := loadNestedJar(f, name, style)
			classes = append(classes, cs...)
			errs = append(errs, es...)
		}
	}
	return classes, errs
}

func loadZipClass(f *zip.File, style mangle.Style) (*Class, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return LoadReader(rc, style)
}

func loadNestedJar(f *zip.File, outer string, style mangle.Style) ([]*Class, []error) {
	rc, err := f.Open()
	if err != nil {
		return nil, []error{fmt.Errorf("open jar %s in %s: %w", f.Name, outer, err)}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, []error{fmt.Errorf("read jar %s in %s: %w", f.Name, outer, err)}
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, []error{fmt.Errorf("open jar %s in %s as zip: %w", f.Name, outer, err)}
	}
	return loadZip(zr, outer+"!"+f.Name, style)
}

func skipClassEntry(name string) bool {
	base := filepath.Base(name)
	return base == "module-info.class" || base == "package-info.class"
}

// Package source finds CRU files on disk.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rcliao/cru-schedule/internal/cru"
)

// Ext is the extension of eligible files.
const Ext = ".cru"

// Result is what Discover found.
type Result struct {
	Sources []cru.Source `json:"-"`
	Files   []string     `json:"files"`
	Skipped []string     `json:"skipped"`
}

// Discover walks dir recursively and reads every .cru file. Other files are
// listed in Skipped. Both lists are sorted by path so the parse order does not
// depend on the file system.
func Discover(dir string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	res := &Result{}
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != Ext {
			res.Skipped = append(res.Skipped, path)
			return nil
		}
		res.Files = append(res.Files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	sort.Strings(res.Files)
	sort.Strings(res.Skipped)

	for _, path := range res.Files {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		res.Sources = append(res.Sources, cru.Source{Name: path, Text: string(b)})
	}
	return res, nil
}

// Load discovers dir and feeds everything to p: skipped files first, then
// every source in path order.
func Load(p *cru.Parser, dir string) (*Result, error) {
	res, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	for _, path := range res.Skipped {
		p.SkipFile(path)
	}
	if err := p.ParseAll(res.Sources...); err != nil {
		return nil, err
	}
	return res, nil
}

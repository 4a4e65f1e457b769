// Package dataset provides read-only access to the bundled blocklist
// datasets. A dataset is addressed by (type name, category) and resolves to
// an ordered list of entries, one entry per line in the backing files.
package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Sentinel errors for dataset access failures.
var (
	// ErrNotFound indicates no dataset exists for the requested key.
	ErrNotFound = errors.New("dataset not found")
	// ErrCorrupt indicates the backing resource could not be parsed.
	ErrCorrupt = errors.New("dataset corrupt")
)

// Dataset is an immutable, ordered collection of blocklist entries.
type Dataset struct {
	Type     string
	Category string
	Entries  []string
}

// Key returns the "type/category" identifier for log and error messages.
func (d Dataset) Key() string {
	return d.Type + "/" + d.Category
}

// Store reads datasets from a filesystem tree laid out as
// <type_name>/<category>/<file>.txt.
type Store struct {
	fsys   fs.FS
	logger *log.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store backed by the given filesystem.
func NewStore(fsys fs.FS, opts ...Option) *Store {
	s := &Store{
		fsys:   fsys,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every dataset file under the (typeName, category) directory,
// in lexical file order, and returns the merged entry list. Duplicate
// entries keep their first occurrence.
func (s *Store) Load(typeName, category string) (Dataset, error) {
	dir, err := s.categoryDir(typeName, category)
	if err != nil {
		return Dataset{}, err
	}

	files, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		return Dataset{}, fmt.Errorf("%w: %s/%s", ErrNotFound, typeName, category)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".txt") {
			continue
		}
		names = append(names, f.Name())
	}
	if len(names) == 0 {
		return Dataset{}, fmt.Errorf("%w: %s/%s has no dataset files", ErrNotFound, typeName, category)
	}
	sort.Strings(names)

	ds := Dataset{Type: typeName, Category: category}
	seen := make(map[string]struct{})
	for _, name := range names {
		entries, err := s.readFile(path.Join(dir, name))
		if err != nil {
			return Dataset{}, err
		}
		for _, e := range entries {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			ds.Entries = append(ds.Entries, e)
		}
	}

	s.logger.Debug("loaded dataset", "key", ds.Key(), "files", len(names), "entries", len(ds.Entries))
	return ds, nil
}

// LoadFile reads a single named dataset file within a category. The ".txt"
// extension may be omitted.
func (s *Store) LoadFile(typeName, category, filename string) (Dataset, error) {
	dir, err := s.categoryDir(typeName, category)
	if err != nil {
		return Dataset{}, err
	}
	if !validSegment(filename) && !validSegment(strings.TrimSuffix(filename, ".txt")) {
		return Dataset{}, fmt.Errorf("%w: %s/%s/%s", ErrNotFound, typeName, category, filename)
	}
	if !strings.HasSuffix(filename, ".txt") {
		filename += ".txt"
	}

	entries, err := s.readFile(path.Join(dir, filename))
	if err != nil {
		return Dataset{}, err
	}

	ds := Dataset{Type: typeName, Category: category}
	seen := make(map[string]struct{})
	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		ds.Entries = append(ds.Entries, e)
	}

	s.logger.Debug("loaded dataset file", "key", ds.Key(), "file", filename, "entries", len(ds.Entries))
	return ds, nil
}

// Types lists the available dataset type names.
func (s *Store) Types() ([]string, error) {
	dirs, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading dataset root: %w", err)
	}
	var types []string
	for _, d := range dirs {
		if d.IsDir() {
			types = append(types, d.Name())
		}
	}
	sort.Strings(types)
	return types, nil
}

// Categories lists the categories available for a dataset type.
func (s *Store) Categories(typeName string) ([]string, error) {
	if !validSegment(typeName) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, typeName)
	}
	dirs, err := fs.ReadDir(s.fsys, typeName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, typeName)
	}
	var cats []string
	for _, d := range dirs {
		if d.IsDir() {
			cats = append(cats, d.Name())
		}
	}
	sort.Strings(cats)
	return cats, nil
}

func (s *Store) categoryDir(typeName, category string) (string, error) {
	if !validSegment(typeName) || !validSegment(category) {
		return "", fmt.Errorf("%w: %s/%s", ErrNotFound, typeName, category)
	}
	dir := path.Join(typeName, category)
	info, err := fs.Stat(s.fsys, dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s/%s", ErrNotFound, typeName, category)
	}
	return dir, nil
}

func (s *Store) readFile(name string) ([]string, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	entries, err := parseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return entries, nil
}

// parseEntries splits a dataset file into trimmed entries. Blank lines and
// lines starting with '#' are skipped.
func parseEntries(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("not valid UTF-8")
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, errors.New("contains NUL bytes")
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	return entries, nil
}

// validSegment rejects path segments that could escape the dataset tree.
func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\")
}

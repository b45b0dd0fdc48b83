package coreconf

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/autocore/internal/logging"
)

const (
	// ConfDir is the directory, relative to the root, holding configurations.
	ConfDir = "conf"

	// FileExt is the extension of persisted configuration files.
	FileExt = ".conf"
)

// nameRe validates configuration names: they become file names, so path
// separators and leading dots are not allowed.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName returns a *ValueError when name cannot be used as a
// configuration name.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return &ValueError{
			Key:    "name",
			Value:  name,
			Reason: "must start with a letter or digit and contain only letters, digits, '.', '_' or '-'",
		}
	}
	return nil
}

// Store reads and writes persisted configurations under <root>/conf.
// Concurrent writers of the same name are not coordinated.
type Store struct {
	root   string
	logger *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger replaces the store's logger.
func WithStoreLogger(logger *log.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore returns a Store rooted at root. An empty root means the current
// directory.
func NewStore(root string, opts ...StoreOption) *Store {
	if root == "" {
		root = "."
	}
	s := &Store{root: root}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.New("store")
	}
	return s
}

// Root returns the directory containing the conf directory.
func (s *Store) Root() string { return s.root }

// Path returns the file path for the named configuration.
func (s *Store) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, ConfDir, name+FileExt), nil
}

// Write persists entries as the named configuration, replacing any existing
// file. The content is written to a temporary file in the same directory
// and renamed into place, so readers never observe a partial file.
func (s *Store) Write(name string, entries []Entry) (string, error) {
	p, err := s.Path(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, name, entries); err != nil {
		return "", fmt.Errorf("encoding configuration %q: %w", name, err)
	}

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating configuration directory %q: %w", dir, err)
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return "", fmt.Errorf("writing temp configuration %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return "", fmt.Errorf("renaming temp configuration to %q: %w", p, err)
	}

	s.logger.Debug("configuration written", "name", name, "path", p, "entries", len(entries))
	return p, nil
}

// Read decodes the named configuration.
func (s *Store) Read(name string) ([]Entry, error) {
	p, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration %q not found at %s: %w", name, p, err)
		}
		return nil, fmt.Errorf("opening configuration %q: %w", name, err)
	}
	defer f.Close() //nolint:errcheck

	entries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading configuration %s: %w", p, err)
	}
	s.logger.Debug("configuration read", "name", name, "path", p, "entries", len(entries))
	return entries, nil
}

// Summary describes one stored configuration.
type Summary struct {
	Name        string
	Path        string
	Fingerprint uint64  // xxhash of the file content
	Entries     []Entry // nil when Err is set
	Err         error   // decode failure, if any
}

// List returns every stored configuration sorted by name. Files that fail to
// decode are still listed, with Err set.
func (s *Store) List() ([]Summary, error) {
	fsys := os.DirFS(s.root)
	matches, err := doublestar.Glob(fsys, path.Join(ConfDir, "*"+FileExt))
	if err != nil {
		return nil, fmt.Errorf("listing configurations: %w", err)
	}
	sort.Strings(matches)

	var out []Summary
	for _, m := range matches {
		name := strings.TrimSuffix(path.Base(m), FileExt)
		if ValidateName(name) != nil {
			continue
		}
		data, err := fs.ReadFile(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", m, err)
		}
		sum := Summary{
			Name:        name,
			Path:        filepath.Join(s.root, filepath.FromSlash(m)),
			Fingerprint: xxhash.Sum64(data),
		}
		sum.Entries, sum.Err = Decode(bytes.NewReader(data))
		out = append(out, sum)
	}
	return out, nil
}

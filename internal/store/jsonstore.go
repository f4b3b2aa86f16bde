// Package store persists finished design runs as JSON files
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/WSDOT/PGSuper-sub013/internal/artifact"
)

const indexFile = "index.jsonl"

// Run is one persisted design run
type Run struct {
	ID         string            `json:"id"`
	Girder     string            `json:"girder"`
	Source     string            `json:"source,omitempty"` // girder file
	Length     float64           `json:"length,omitempty"` // girder length (mm)
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Artifact   artifact.Snapshot `json:"artifact"`
}

// IndexEntry is one line of the run index
type IndexEntry struct {
	ID        string           `json:"id"`
	File      string           `json:"file"`
	Girder    string           `json:"girder"`
	Outcome   artifact.Outcome `json:"outcome"`
	StartedAt time.Time        `json:"started_at"`
}

// JSONStore writes one file per run under dir
type JSONStore struct {
	dir        string
	writeIndex bool
	now        func() time.Time
	newID      func() string
}

type Option func(*JSONStore)

// WithIndex appends every saved run to dir/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDs replaces the random run ids
func WithIDs(next func() string) Option {
	return func(s *JSONStore) { s.newID = next }
}

func NewJSONStore(dir string, opts ...Option) *JSONStore {
	s := &JSONStore{
		dir:   dir,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh run id
func (s *JSONStore) NewID() string { return s.newID() }

// SaveRun writes the run and returns its id. A run without an id or start
// time gets one.
func (s *JSONStore) SaveRun(run Run) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &artifact.OpError{Op: "store.mkdir", Kind: artifact.KindStore, Key: s.dir, Err: err}
	}

	if run.ID == "" {
		run.ID = s.newID()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = s.now()
	}
	run.StartedAt = run.StartedAt.UTC()
	if run.FinishedAt.IsZero() {
		run.FinishedAt = s.now().UTC()
	}

	slug := slugify(run.Girder)
	if slug == "" {
		slug = "girder"
	}
	filename := fmt.Sprintf("%s_%s_%s.json", run.StartedAt.Format("20060102T150405Z"), slug, shortID(run.ID))
	path := filepath.Join(s.dir, filename)

	b, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", &artifact.OpError{Op: "store.marshal", Kind: artifact.KindStore, Key: path, Err: err}
	}

	// tmp then rename
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &artifact.OpError{Op: "store.write", Kind: artifact.KindStore, Key: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &artifact.OpError{Op: "store.rename", Kind: artifact.KindStore, Key: path, Err: err}
	}

	if s.writeIndex {
		entry := IndexEntry{
			ID:        run.ID,
			File:      filename,
			Girder:    run.Girder,
			Outcome:   run.Artifact.Outcome,
			StartedAt: run.StartedAt,
		}
		if err := s.appendIndex(entry); err != nil {
			return run.ID, &artifact.OpError{Op: "store.index", Kind: artifact.KindStore, Key: run.ID, Err: err}
		}
	}
	return run.ID, nil
}

func (s *JSONStore) appendIndex(e IndexEntry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(s.dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

// List reads the run index in the order runs were saved
func (s *JSONStore) List() ([]IndexEntry, error) {
	f, err := os.Open(filepath.Join(s.dir, indexFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &artifact.OpError{Op: "store.list", Kind: artifact.KindStore, Err: err}
	}
	defer f.Close()

	var out []IndexEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		var e IndexEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, &artifact.OpError{Op: "store.list", Kind: artifact.KindStore, Err: err}
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, &artifact.OpError{Op: "store.list", Kind: artifact.KindStore, Err: err}
	}
	return out, nil
}

// LoadRun reads a run by id through the index
func (s *JSONStore) LoadRun(id string) (Run, error) {
	entries, err := s.List()
	if err != nil {
		return Run{}, err
	}
	for _, e := range entries {
		if e.ID != id {
			continue
		}
		path := filepath.Join(s.dir, e.File)
		b, err := os.ReadFile(path)
		if err != nil {
			return Run{}, &artifact.OpError{Op: "store.read", Kind: artifact.KindStore, Key: path, Err: err}
		}
		var run Run
		if err := json.Unmarshal(b, &run); err != nil {
			return Run{}, &artifact.OpError{Op: "store.decode", Kind: artifact.KindStore, Key: path, Err: err}
		}
		return run, nil
	}
	return Run{}, &artifact.OpError{Op: "store.load", Kind: artifact.KindInvalidInput, Key: id, Err: os.ErrNotExist}
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// slugify produces a safe filename component
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/spf13/afero"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; fine for a local single-user CLI.

// DefaultFileName is used when no path is configured.
const DefaultFileName = "tasks.json"

// seqSuffix names the sidecar that remembers the highest ID ever assigned.
const seqSuffix = ".seq"

type Store struct {
	fs   afero.Fs
	path string
	log  *log.Logger
}

type Option func(*Store)

// WithFs swaps the filesystem, mostly for tests.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) { s.fs = fs }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns a store backed by the file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		fs:   afero.NewOsFs(),
		path: path,
		log:  log.New(io.Discard),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

// Load reads the backing file. A missing file is an empty store.
func (s *Store) Load() (*model.Snapshot, error) {
	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("no store yet", "path", s.path)
			return &model.Snapshot{Tasks: []model.Task{}}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	if where, err := validate(b); err != nil {
		return nil, &CorruptError{Path: s.path, Where: where, Err: err}
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, &CorruptError{Path: s.path, Err: err}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	snap := &model.Snapshot{Tasks: tasks, LastID: model.NextID(tasks) - 1}
	if seq := s.readSeq(); seq > snap.LastID {
		snap.LastID = seq
	}
	s.log.Debug("loaded", "path", s.path, "count", len(tasks), "last_id", snap.LastID)
	return snap, nil
}

// Save replaces the backing file with snap. The ID sidecar goes first so an
// interrupted save can only leave a gap in IDs, never hand one out twice.
func (s *Store) Save(snap *model.Snapshot) error {
	tasks := snap.Tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	lastID := snap.LastID
	if m := model.NextID(tasks) - 1; m > lastID {
		lastID = m
	}

	seq, err := json.Marshal(seqFile{LastID: lastID})
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.writeFile(s.path+seqSuffix, append(seq, '\n')); err != nil {
		return err
	}

	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.writeFile(s.path, append(b, '\n')); err != nil {
		return err
	}
	s.log.Debug("saved", "path", s.path, "count", len(tasks), "last_id", lastID)
	return nil
}

type seqFile struct {
	LastID int `json:"last_id"`
}

// readSeq never fails: the task file is the source of truth and the sidecar
// only raises the floor for new IDs.
func (s *Store) readSeq() int {
	p := s.path + seqSuffix
	b, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("ignoring id sequence", "path", p, "err", err)
		}
		return 0
	}
	var sf seqFile
	if err := json.Unmarshal(b, &sf); err != nil {
		s.log.Warn("ignoring id sequence", "path", p, "err", err)
		return 0
	}
	if sf.LastID < 0 || sf.LastID > model.MaxID {
		s.log.Warn("ignoring id sequence", "path", p, "last_id", sf.LastID)
		return 0
	}
	return sf.LastID
}

// writeFile writes to a temp file next to path and renames it into place,
// so readers see either the old content or the new, never a partial file.
func (s *Store) writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("sync file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("close file: %w", err)
	}
	if err := s.fs.Chmod(tmp, 0o644); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

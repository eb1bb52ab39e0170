// Package journal persists the bookmark list as a single JSON document
// replaced atomically via temp-file-and-rename, so readers never see a
// half-written file. Normal operation debounces writes; a generation
// counter lets a superseded write abandon itself instead of clobbering
// a newer one.
package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	natomic "github.com/natefinch/atomic"

	"waymark/internal/domain"
	"waymark/internal/ports"
)

// orphanAge is how old a leftover temp file must be before Load sweeps
// it. Younger files may belong to a write still in flight.
const orphanAge = 10 * time.Second

// errStale marks a save superseded by a newer generation. Not a
// user-facing failure: the newer write owns the canonical file.
var errStale = errors.New("superseded save")

// Journal is the file-backed implementation of ports.Journal.
type Journal struct {
	path     string
	debounce time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending []domain.Bookmark
	dirty   bool
	closed  bool

	// gen is bumped by every save request; an in-flight write compares
	// its captured value before the write and before the rename, and
	// aborts when superseded. This is the sole guard against two
	// overlapping debounce cycles completing out of order.
	gen atomic.Uint64
	seq atomic.Uint64 // temp file numbering
}

// New creates a journal at path. debounce is the quiet period for
// scheduled saves; logger may be nil.
func New(path string, debounce time.Duration, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{path: path, debounce: debounce, log: logger}
}

// Path returns the canonical journal file path.
func (j *Journal) Path() string { return j.path }

// fileEnvelope is the persisted layout.
type fileEnvelope struct {
	Bookmarks []record `json:"bookmarks"`
	SavedAt   int64    `json:"saved_at"`
}

// record is one persisted bookmark. The current shape is a field-named
// object; a legacy positional array ["fname", row, col, timestamp] is
// still accepted on load.
type record struct {
	ID        int64  `json:"id,omitempty"`
	Fname     string `json:"fname"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Timestamp int64  `json:"timestamp"`
}

func (r *record) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var parts []any
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		if len(parts) < 4 {
			return fmt.Errorf("positional record has %d fields, want 4", len(parts))
		}
		fname, ok := parts[0].(string)
		if !ok {
			return errors.New("positional record: fname is not a string")
		}
		row, ok1 := parts[1].(float64)
		col, ok2 := parts[2].(float64)
		ts, ok3 := parts[3].(float64)
		if !ok1 || !ok2 || !ok3 {
			return errors.New("positional record: non-numeric field")
		}
		*r = record{Fname: fname, Row: int(row), Col: int(col), Timestamp: int64(ts)}
		return nil
	}

	type plain record
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = record(p)
	return nil
}

func encode(marks []domain.Bookmark, savedAt int64) []byte {
	env := fileEnvelope{
		Bookmarks: make([]record, 0, len(marks)),
		SavedAt:   savedAt,
	}
	for _, m := range marks {
		env.Bookmarks = append(env.Bookmarks, record{
			ID:        m.ID,
			Fname:     m.File,
			Row:       m.Row,
			Col:       m.Col,
			Timestamp: m.Stamp,
		})
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		// Only plain ints and strings above; cannot fail.
		panic(err)
	}
	return data
}

// Load reads the persisted bookmarks. A missing file, empty file,
// malformed JSON, or missing "bookmarks" key all yield an empty result
// rather than an error: corrupt state must never block startup.
// Leftover temp files older than orphanAge are swept first.
func (j *Journal) Load() (ports.LoadResult, error) {
	j.sweepOrphans()

	raw, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ports.LoadResult{}, nil
	}
	if err != nil {
		j.log.Warn("journal read failed, starting empty", "path", j.path, "err", err)
		return ports.LoadResult{}, nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ports.LoadResult{}, nil
	}

	var env fileEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		j.log.Warn("journal is corrupt, starting empty", "path", j.path, "err", err)
		return ports.LoadResult{}, nil
	}

	var out []domain.Bookmark
	var maxID int64
	for _, r := range env.Bookmarks {
		if r.Fname == "" {
			continue
		}
		out = append(out, domain.Bookmark{
			ID:    r.ID,
			File:  r.Fname,
			Row:   r.Row,
			Col:   r.Col,
			Stamp: r.Timestamp,
		})
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	// Legacy records carry no ID; assign fresh ones past the maximum.
	for i := range out {
		if out[i].ID == 0 {
			maxID++
			out[i].ID = maxID
		}
	}

	return ports.LoadResult{Bookmarks: out, MaxID: maxID}, nil
}

// sweepOrphans removes crash residue: numbered temp files whose write
// never reached the rename step.
func (j *Journal) sweepOrphans() {
	dir := filepath.Dir(j.path)
	prefix := filepath.Base(j.path) + ".tmp."
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < orphanAge {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			j.log.Warn("orphan temp file not removed", "name", e.Name(), "err", err)
		}
	}
}

// SaveNow writes the snapshot synchronously, cancelling any pending
// debounce. It bumps the generation before writing, so an in-flight
// asynchronous save can no longer reach the canonical file. Used at
// shutdown.
func (j *Journal) SaveNow(marks []domain.Bookmark) error {
	j.mu.Lock()
	if j.timer != nil {
		j.timer.Stop()
		j.timer = nil
	}
	j.dirty = false
	j.mu.Unlock()

	j.gen.Add(1)

	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	data := encode(marks, time.Now().Unix())
	if err := natomic.WriteFile(j.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Schedule records the snapshot as pending and (re)starts the debounce
// timer. Each call bumps the generation, superseding any write already
// in flight; mutations within the window collapse into one write.
func (j *Journal) Schedule(marks []domain.Bookmark) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}
	j.pending = marks
	j.dirty = true
	j.gen.Add(1)
	if j.timer != nil {
		j.timer.Stop()
	}
	j.timer = time.AfterFunc(j.debounce, j.flush)
}

func (j *Journal) flush() {
	job := j.startSave()
	if job == nil {
		return
	}
	if err := job.run(); err != nil {
		j.log.Warn("journal save failed, will retry next cycle", "err", err)
		j.mu.Lock()
		j.dirty = true
		j.mu.Unlock()
	}
}

// startSave captures the pending snapshot, the live generation, and a
// uniquely numbered temp path. Returns nil when there is nothing to do.
func (j *Journal) startSave() *saveJob {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed || !j.dirty {
		return nil
	}
	j.dirty = false
	return &saveJob{
		j:    j,
		gen:  j.gen.Load(),
		tmp:  fmt.Sprintf("%s.tmp.%d", j.path, j.seq.Add(1)),
		data: encode(j.pending, time.Now().Unix()),
	}
}

// saveJob is one asynchronous write: open, write+sync, rename, with a
// staleness check before the write and again before the rename.
type saveJob struct {
	j    *Journal
	gen  uint64
	tmp  string
	data []byte
	f    *os.File
}

func (job *saveJob) run() error {
	if err := job.open(); err != nil {
		return err
	}
	if err := job.write(); err != nil {
		job.abort()
		if errors.Is(err, errStale) {
			return nil
		}
		return err
	}
	if err := job.rename(); err != nil {
		job.abort()
		if errors.Is(err, errStale) {
			return nil
		}
		return err
	}
	return nil
}

func (job *saveJob) stale() bool {
	return job.gen != job.j.gen.Load()
}

func (job *saveJob) open() error {
	if err := os.MkdirAll(filepath.Dir(job.tmp), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	f, err := os.OpenFile(job.tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open temp file: %w", err)
	}
	job.f = f
	return nil
}

func (job *saveJob) write() error {
	if job.stale() {
		return errStale
	}
	if _, err := job.f.Write(job.data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := job.f.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := job.f.Close(); err != nil {
		job.f = nil
		return fmt.Errorf("close temp file: %w", err)
	}
	job.f = nil
	return nil
}

func (job *saveJob) rename() error {
	if job.stale() {
		return errStale
	}
	if err := os.Rename(job.tmp, job.j.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// abort discards the temp file without touching the canonical path.
func (job *saveJob) abort() {
	if job.f != nil {
		job.f.Close()
		job.f = nil
	}
	os.Remove(job.tmp)
}

// Close stops the debounce timer and refuses further scheduled writes.
// The caller is expected to SaveNow first if dirty state matters.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.closed = true
	if j.timer != nil {
		j.timer.Stop()
		j.timer = nil
	}
	return nil
}

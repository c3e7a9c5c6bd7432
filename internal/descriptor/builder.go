package descriptor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"xmlcreator/internal/metadata"
)

// DefaultTimezone is the civil timezone descriptor timestamps are stamped in.
const DefaultTimezone = "America/New_York"

// Status reports what Build did.
type Status int

const (
	// StatusWritten means a new descriptor file was created.
	StatusWritten Status = iota
	// StatusExists means a descriptor for the same sanitized name was already on disk.
	StatusExists
	// StatusMissingInput means the record carried no usable filename.
	StatusMissingInput
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusExists:
		return "exists"
	case StatusMissingInput:
		return "missing_input"
	default:
		return "unknown"
	}
}

// Result describes one Build call. Path is set only for StatusWritten.
type Result struct {
	Path     string
	UniqueID string
	Status   Status
}

// Produced reports whether a new file was written.
func (r Result) Produced() bool {
	return r.Status == StatusWritten && r.Path != ""
}

// Builder writes descriptors into Dir.
type Builder struct {
	Dir      string
	Location *time.Location
	Now      func() time.Time
}

// NewBuilder returns a builder for dir stamping times in loc (UTC when nil).
func NewBuilder(dir string, loc *time.Location) *Builder {
	return &Builder{Dir: dir, Location: loc, Now: time.Now}
}

// LoadLocation resolves a timezone name, defaulting to DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// PathFor returns the absolute descriptor path for a raw video filename.
func (b *Builder) PathFor(filename string) (string, bool, error) {
	stem := SanitizeName(filename)
	if !validStem(stem) {
		return "", false, nil
	}
	dir, err := filepath.Abs(b.Dir)
	if err != nil {
		return "", false, fmt.Errorf("resolve output directory: %w", err)
	}
	return filepath.Join(dir, stem+Extension), true, nil
}

// Build writes the descriptor for rec unless one already exists at its path.
// Existing files are never read or rewritten.
func (b *Builder) Build(rec metadata.Record) (Result, error) {
	if rec.Filename == "" {
		return Result{Status: StatusMissingInput}, nil
	}
	path, ok, err := b.PathFor(rec.Filename)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Status: StatusMissingInput}, nil
	}
	id := UniqueID(rec.Filename)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return Result{UniqueID: id, Status: StatusExists}, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Result{}, fmt.Errorf("stat descriptor: %w", err)
	}

	body, err := Render(rec, b.now())
	if err != nil {
		return Result{}, err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return Result{UniqueID: id, Status: StatusExists}, nil
		}
		return Result{}, fmt.Errorf("create descriptor: %w", err)
	}
	if _, err := file.Write(body); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return Result{}, fmt.Errorf("write descriptor: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return Result{}, fmt.Errorf("close descriptor: %w", err)
	}
	return Result{Path: path, UniqueID: id, Status: StatusWritten}, nil
}

func (b *Builder) now() time.Time {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	loc := b.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

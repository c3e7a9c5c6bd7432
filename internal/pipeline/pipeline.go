package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"xmlcreator/internal/delivery"
	"xmlcreator/internal/descriptor"
	"xmlcreator/internal/ledger"
	"xmlcreator/internal/logging"
	"xmlcreator/internal/metadata"
	"xmlcreator/internal/notifications"
	"xmlcreator/internal/rights"
	"xmlcreator/internal/services"
	"xmlcreator/internal/sheet"
)

// LockFileName is created inside the lock directory while a run is active.
const LockFileName = ".xmlcreator.lock"

// Status lines reported when a run ends early.
const (
	StatusNoVideos = "No videos are ready. Check back later."
	StatusNoFiles  = "No XML files were created."
)

// ErrRunInProgress is returned when another process holds the run lock.
var ErrRunInProgress = errors.New("another run is in progress")

// Ledger records run history. *ledger.Store satisfies it.
type Ledger interface {
	BeginRun(ctx context.Context, runID string, started time.Time) error
	RecordDescriptor(ctx context.Context, runID string, d ledger.Descriptor) error
	RecordDelivery(ctx context.Context, runID, path string, deliveryErr error) error
	FinishRun(ctx context.Context, run ledger.Run) error
}

// Options wires the collaborators of a Pipeline. Ledger, Notifier and Logger
// are optional.
type Options struct {
	Source   sheet.Source
	Bindings metadata.Bindings
	Registry rights.Registry
	Builder  *descriptor.Builder
	Opener   delivery.Opener
	Ledger   Ledger
	Notifier notifications.Service
	Logger   *slog.Logger
	// LockDir holds the run lock. Defaults to the builder's output directory.
	LockDir string
	// NewRunID overrides run id generation.
	NewRunID func() string
}

// Pipeline executes runs against a fixed set of collaborators.
type Pipeline struct {
	source   sheet.Source
	bindings metadata.Bindings
	registry rights.Registry
	builder  *descriptor.Builder
	opener   delivery.Opener
	ledger   Ledger
	notifier notifications.Service
	logger   *slog.Logger
	lockDir  string
	newRunID func() string
}

// New validates opts and returns a Pipeline.
func New(opts Options) (*Pipeline, error) {
	switch {
	case opts.Source == nil:
		return nil, errors.New("pipeline requires a sheet source")
	case opts.Builder == nil:
		return nil, errors.New("pipeline requires a descriptor builder")
	case opts.Opener == nil:
		return nil, errors.New("pipeline requires a delivery opener")
	}
	if err := opts.Bindings.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "bindings", "", err)
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.New("", 0)
	}
	lockDir := opts.LockDir
	if lockDir == "" {
		lockDir = opts.Builder.Dir
	}
	newRunID := opts.NewRunID
	if newRunID == nil {
		newRunID = func() string { return uuid.NewString() }
	}

	return &Pipeline{
		source:   opts.Source,
		bindings: opts.Bindings,
		registry: opts.Registry,
		builder:  opts.Builder,
		opener:   opts.Opener,
		ledger:   opts.Ledger,
		notifier: notifier,
		logger:   logging.NewComponentLogger(opts.Logger, "pipeline"),
		lockDir:  lockDir,
		newRunID: newRunID,
	}, nil
}

// Run performs one pass. The returned Summary is populated as far as the run
// progressed, even when an error is returned.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	started := time.Now()
	summary := Summary{
		RunID:   p.newRunID(),
		Skipped: make(map[metadata.Skip]int),
	}
	ctx = services.WithRunID(ctx, summary.RunID)

	lock, err := p.acquireLock()
	if err != nil {
		return summary, err
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logging.WarnWithContext(p.logger, "release run lock failed", "lock_release_failed",
				logging.String(logging.FieldPath, lock.Path()), logging.Error(unlockErr))
		}
	}()

	p.beginRun(ctx, summary.RunID, started)
	runErr := p.run(ctx, &summary)
	summary.Duration = time.Since(started)
	p.finishRun(ctx, &summary, runErr)
	p.notify(ctx, summary, runErr)
	return summary, runErr
}

func (p *Pipeline) run(ctx context.Context, summary *Summary) error {
	logger := logging.WithContext(ctx, p.logger)

	records, err := p.collect(ctx, summary)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		summary.Status = StatusNoVideos
		logger.Info(StatusNoVideos, logging.Int("done_rows", summary.Done))
		return nil
	}

	if err := p.build(ctx, summary, records); err != nil {
		return err
	}
	if len(summary.Produced) == 0 {
		summary.Status = StatusNoFiles
		logger.Info(StatusNoFiles,
			logging.Int("records", summary.Records),
			logging.Int("existing", summary.Existing),
			logging.Int("rejected", summary.Rejected))
		return nil
	}

	if err := p.deliver(ctx, summary); err != nil {
		return err
	}
	summary.Status = fmt.Sprintf("Created and delivered %d XML files.", summary.Delivered)
	return nil
}

// collect builds the header index, scans for done markers and extracts each
// complete row. A header that cannot be found fails the run even when no row
// is marked done.
func (p *Pipeline) collect(ctx context.Context, summary *Summary) ([]metadata.Record, error) {
	ctx = services.WithStage(ctx, "extract")
	logger := logging.WithContext(ctx, p.logger)

	index, err := metadata.BuildHeaderIndex(p.source, p.bindings)
	if err != nil {
		if errors.Is(err, metadata.ErrHeaderNotFound) {
			return nil, services.Wrap(services.ErrNotFound, "extract", "header index", "", err)
		}
		return nil, services.Wrap(services.ErrValidation, "extract", "header index", "", err)
	}

	done, err := metadata.ScanDone(p.source, p.bindings.DoneMarker)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "extract", "scan", "", err)
	}
	summary.Done = len(done)
	if len(done) == 0 {
		return nil, nil
	}

	extractor := metadata.Extractor{Index: index, Registry: p.registry, Source: p.source}
	records := make([]metadata.Record, 0, len(done))
	for _, coord := range done {
		rec, skip, err := extractor.Extract(coord)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "extract", "read row", coord.String(), err)
		}
		if skip != metadata.SkipNone {
			summary.Skipped[skip]++
			if skip != metadata.SkipWrongColumn {
				logger.Debug("row skipped",
					logging.Int(logging.FieldRow, coord.Row),
					logging.String(logging.FieldSkipReason, skip.String()))
			}
			continue
		}
		records = append(records, rec)
	}
	summary.Records = len(records)
	return records, nil
}

// build writes a descriptor per record, skipping those already on disk.
func (p *Pipeline) build(ctx context.Context, summary *Summary, records []metadata.Record) error {
	ctx = services.WithStage(ctx, "build")
	logger := logging.WithContext(ctx, p.logger)

	for _, rec := range records {
		result, err := p.builder.Build(rec)
		if err != nil {
			return services.Wrap(services.ErrValidation, "build", "write descriptor", rec.Filename, err)
		}
		switch result.Status {
		case descriptor.StatusWritten:
			summary.Produced = append(summary.Produced, result.Path)
			logger.Info("descriptor written",
				logging.String(logging.FieldFilename, rec.Filename),
				logging.String(logging.FieldPath, result.Path))
			p.recordDescriptor(ctx, summary.RunID, rec, result)
		case descriptor.StatusExists:
			summary.Existing++
			logger.Debug("descriptor exists", logging.String(logging.FieldFilename, rec.Filename))
		case descriptor.StatusMissingInput:
			summary.Rejected++
			logging.WarnWithContext(logger, "filename cannot name a descriptor", "descriptor_rejected",
				logging.String(logging.FieldFilename, rec.Filename),
				logging.String(logging.FieldErrorHint, "filename must not contain path separators"))
		}
	}
	return nil
}

// deliver uploads every produced descriptor over one session. The first
// failure aborts the remaining uploads.
func (p *Pipeline) deliver(ctx context.Context, summary *Summary) error {
	ctx = services.WithStage(ctx, "deliver")
	logger := logging.WithContext(ctx, p.logger)

	uploader, err := p.opener.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := uploader.Close(); closeErr != nil {
			logging.WarnWithContext(logger, "close delivery session failed", "delivery_close_failed",
				logging.Error(closeErr))
		}
	}()

	for _, path := range summary.Produced {
		uploadErr := uploader.Upload(ctx, path)
		p.recordDelivery(ctx, summary.RunID, path, uploadErr)
		if uploadErr != nil {
			return fmt.Errorf("deliver %s: %w", filepath.Base(path), uploadErr)
		}
		summary.Delivered++
		logger.Info("descriptor delivered", logging.String(logging.FieldPath, path))
	}
	return nil
}

func (p *Pipeline) acquireLock() (*flock.Flock, error) {
	if err := os.MkdirAll(p.lockDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "lock", "create lock directory", err)
	}
	lock := flock.New(filepath.Join(p.lockDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is locked", ErrRunInProgress, lock.Path())
	}
	return lock, nil
}

func (p *Pipeline) beginRun(ctx context.Context, runID string, started time.Time) {
	if p.ledger == nil {
		return
	}
	if err := p.ledger.BeginRun(ctx, runID, started); err != nil {
		logging.WarnWithContext(p.logger, "ledger begin failed", "ledger_write_failed", logging.Error(err))
	}
}

func (p *Pipeline) recordDescriptor(ctx context.Context, runID string, rec metadata.Record, result descriptor.Result) {
	if p.ledger == nil {
		return
	}
	err := p.ledger.RecordDescriptor(ctx, runID, ledger.Descriptor{
		Filename: rec.Filename,
		UniqueID: result.UniqueID,
		Path:     result.Path,
	})
	if err != nil {
		logging.WarnWithContext(p.logger, "ledger descriptor write failed", "ledger_write_failed", logging.Error(err))
	}
}

func (p *Pipeline) recordDelivery(ctx context.Context, runID, path string, deliveryErr error) {
	if p.ledger == nil {
		return
	}
	if err := p.ledger.RecordDelivery(ctx, runID, path, deliveryErr); err != nil {
		logging.WarnWithContext(p.logger, "ledger delivery write failed", "ledger_write_failed", logging.Error(err))
	}
}

func (p *Pipeline) finishRun(ctx context.Context, summary *Summary, runErr error) {
	if p.ledger == nil {
		return
	}
	run := ledger.Run{
		ID:        summary.RunID,
		Status:    ledger.StatusCompleted,
		Message:   summary.Status,
		Produced:  len(summary.Produced),
		Delivered: summary.Delivered,
	}
	switch {
	case runErr != nil:
		run.Status = ledger.StatusFailed
		run.Message = runErr.Error()
	case len(summary.Produced) == 0:
		run.Status = ledger.StatusNoop
	}
	if err := p.ledger.FinishRun(context.WithoutCancel(ctx), run); err != nil {
		logging.WarnWithContext(p.logger, "ledger finish failed", "ledger_write_failed", logging.Error(err))
	}
}

func (p *Pipeline) notify(ctx context.Context, summary Summary, runErr error) {
	ctx = context.WithoutCancel(ctx)
	var err error
	switch {
	case runErr != nil:
		err = p.notifier.NotifyError(ctx, runErr)
	case len(summary.Produced) > 0:
		err = p.notifier.NotifyRunCompleted(ctx, len(summary.Produced), summary.Delivered, summary.Duration)
	default:
		return
	}
	if err != nil {
		logging.WarnWithContext(p.logger, "notification failed", "notification_failed", logging.Error(err))
	}
}

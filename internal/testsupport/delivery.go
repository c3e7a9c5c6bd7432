package testsupport

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"xmlcreator/internal/delivery"
)

// FakeOpener is an in-memory delivery.Opener that records uploads.
type FakeOpener struct {
	// OpenErr is returned by Open when set.
	OpenErr error
	// FailOn maps a file base name to the error its upload returns.
	FailOn map[string]error

	mu       sync.Mutex
	opens    int
	closed   int
	uploaded []string
}

var _ delivery.Opener = (*FakeOpener)(nil)

// Open returns a session sharing this opener's record.
func (f *FakeOpener) Open(context.Context) (delivery.Uploader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opens++
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	return &fakeUploader{owner: f}, nil
}

// Uploaded returns the paths successfully uploaded, in order.
func (f *FakeOpener) Uploaded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.uploaded...)
}

// Opens reports how many sessions were opened.
func (f *FakeOpener) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

// Closed reports how many sessions were closed.
func (f *FakeOpener) Closed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeUploader struct {
	owner  *FakeOpener
	closed bool
}

func (u *fakeUploader) Upload(ctx context.Context, localPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.closed {
		return errors.New("upload after close")
	}
	u.owner.mu.Lock()
	defer u.owner.mu.Unlock()
	if err, ok := u.owner.FailOn[filepath.Base(localPath)]; ok {
		return err
	}
	u.owner.uploaded = append(u.owner.uploaded, localPath)
	return nil
}

func (u *fakeUploader) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	u.owner.mu.Lock()
	u.owner.closed++
	u.owner.mu.Unlock()
	return nil
}

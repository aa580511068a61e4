package categorize

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockTimeout = 2 * time.Second

// ErrLocked means another process holds the batch lock.
var ErrLocked = errors.New("another batch job is running")

// Lock takes the data directory's batch lock so that imports and
// categorization runs from separate processes do not interleave. The
// returned func releases it.
func Lock(ctx context.Context, dataDir string) (func(), error) {
	fl := flock.New(filepath.Join(dataDir, "aitools.lock"))

	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return func() { _ = fl.Unlock() }, nil
}

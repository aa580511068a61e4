package categorize

import (
	"context"
	"sync"
	"time"
)

type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	Last      Stats  `json:"last"`
	Running   bool   `json:"running"`
}

// Tracker runs at most one categorization at a time in the background
// and remembers how the last one went.
type Tracker struct {
	mu sync.Mutex
	st Status
	wg sync.WaitGroup
}

func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st
}

// Start launches run unless one is already in flight. It reports whether
// a run was started.
func (t *Tracker) Start(ctx context.Context, run func(context.Context) (Stats, error)) bool {
	t.mu.Lock()
	if t.st.Running {
		t.mu.Unlock()
		return false
	}
	t.st.Running = true
	t.st.LastRunAt = time.Now().Format(time.RFC3339)
	t.st.LastError = ""
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		stats, err := run(ctx)

		t.mu.Lock()
		defer t.mu.Unlock()
		t.st.Running = false
		t.st.Last = stats
		if err != nil {
			t.st.LastError = err.Error()
			return
		}
		t.st.LastOkAt = time.Now().Format(time.RFC3339)
	}()
	return true
}

// Wait blocks until the in-flight run, if any, has finished.
func (t *Tracker) Wait() { t.wg.Wait() }

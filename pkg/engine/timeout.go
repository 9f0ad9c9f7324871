package engine

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// ErrSuperseded is returned to a caller whose evaluation finished after a
// newer one had started.
var ErrSuperseded = errors.New("evaluation superseded by newer request")

// evalResult carries one evaluation's output across the goroutine boundary.
type evalResult struct {
	session *session
	errors  []EvalError
	err     error
}

// waitWithTimeout waits for the evaluation tagged gen. Results that arrive
// after a newer evaluation started are discarded with ErrSuperseded.
//
// On timeout the goroutine may keep running; its late result lands in the
// buffered channel and is dropped.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	timeout time.Duration,
	mu *sync.Mutex,
	currentGen *uint64,
) (*session, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()
		if gen != current {
			return nil, nil, ErrSuperseded
		}
		return res.session, res.errors, res.err

	case <-timer.C:
		return nil, nil, errors.Errorf("evaluation timed out after %s", timeout)
	}
}

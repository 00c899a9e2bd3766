package service

import "sync"

// ReinitTask is the handle of a background re-initialization started by Reset.
type ReinitTask struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newReinitTask() *ReinitTask {
	return &ReinitTask{done: make(chan struct{})}
}

func (t *ReinitTask) finish(err error) {
	t.once.Do(func() {
		t.err = err
		close(t.done)
	})
}

// Done is closed when the re-initialization has finished.
func (t *ReinitTask) Done() <-chan struct{} {
	return t.done
}

// Err returns the failure the re-initialization reported, if any.
// It is only meaningful after Done is closed.
func (t *ReinitTask) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

package safe_close

import "sync"

// SafeClose ties the lifetime of a set of goroutines together.
//
//  1. Goroutines are started with Attach and must return once the close
//     signal is received.
//  2. A goroutine that fails returns its error, which sends the close signal
//     to all others. Only the first error is kept.
//  3. The owner calls CloseWait to stop everything and collect the error.
//     CloseWait must not be called from an attached goroutine.
type SafeClose struct {
	m           sync.Mutex
	wg          sync.WaitGroup
	closeSignal chan struct{}
	closeErr    error
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// SendCloseSignal closes the signal channel. It is safe to call it many times
// from many goroutines. The first call decides the error returned by Err.
func (s *SafeClose) SendCloseSignal(err error) {
	s.m.Lock()
	defer s.m.Unlock()

	select {
	case <-s.closeSignal:
	default:
		s.closeErr = err
		close(s.closeSignal)
	}
}

func (s *SafeClose) ReceiveCloseSignal() <-chan struct{} {
	return s.closeSignal
}

// Err returns the error the close signal was sent with.
func (s *SafeClose) Err() error {
	s.m.Lock()
	defer s.m.Unlock()
	return s.closeErr
}

// Attach runs f in a new goroutine. A non-nil error from f sends the close
// signal. If s is already closed, f is not run.
func (s *SafeClose) Attach(f func(closeSignal <-chan struct{}) error) {
	s.m.Lock()
	select {
	case <-s.closeSignal:
		s.m.Unlock()
		return
	default:
		s.wg.Add(1)
	}
	s.m.Unlock()

	go func() {
		defer s.wg.Done()
		if err := f(s.closeSignal); err != nil {
			s.SendCloseSignal(err)
		}
	}()
}

// CloseWait sends the close signal, waits for all attached goroutines and
// returns the first error.
func (s *SafeClose) CloseWait() error {
	s.SendCloseSignal(nil)
	s.wg.Wait()
	return s.Err()
}

package modules

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/safing/securerandom/log"
)

var errNoModule = errors.New("missing module (is nil!)")

// PanicError wraps a panic recovered from a worker or control function.
type PanicError struct {
	ModuleName string
	TaskName   string
	PanicValue interface{}
	StackTrace string
}

func (pe *PanicError) Error() string {
	return fmt.Sprintf("%s: %s panicked: %v", pe.ModuleName, pe.TaskName, pe.PanicValue)
}

// StartWorker directly starts a generic worker, such as a long running (and possibly mostly idle) entropy feeder. A call to StartWorker starts a new goroutine and returns immediately.
func (m *Module) StartWorker(name string, fn func(context.Context) error) {
	if m == nil {
		log.Errorf(`modules: cannot start worker "%s" with nil module`, name)
		return
	}

	m.addWorker()
	go func() {
		defer m.finishWorker()

		err := m.runWorker(name, fn)
		switch {
		case err == nil:
			return
		case errors.Is(err, context.Canceled):
			log.Debugf("%s: worker %s was canceled: %s", m.Name, name, err)
		default:
			log.Errorf("%s: worker %s failed: %s", m.Name, name, err)
		}
	}()
}

// RunWorker directly runs a generic worker. A call to RunWorker blocks until the worker is finished.
func (m *Module) RunWorker(name string, fn func(context.Context) error) error {
	if m == nil {
		log.Errorf(`modules: cannot start worker "%s" with nil module`, name)
		return errNoModule
	}

	m.addWorker()
	defer m.finishWorker()

	return m.runWorker(name, fn)
}

func (m *Module) addWorker() {
	atomic.AddInt32(m.workerCnt, 1)
	m.workerGroup.Add(1)
}

func (m *Module) finishWorker() {
	atomic.AddInt32(m.workerCnt, -1)
	m.workerGroup.Done()
}

func (m *Module) runWorker(name string, fn func(context.Context) error) (err error) {
	defer func() {
		// recover from panic
		panicVal := recover()
		if panicVal != nil {
			err = &PanicError{
				ModuleName: m.Name,
				TaskName:   name,
				PanicValue: panicVal,
				StackTrace: string(debug.Stack()),
			}
		}
	}()

	// run
	err = fn(m.Ctx)
	return
}

func (m *Module) runCtrlFnWithTimeout(name string, timeout time.Duration, fn func() error) error {
	ctrlFnError := make(chan error, 1)
	go func() {
		ctrlFnError <- m.runCtrlFn(name, fn)
	}()

	// wait for results
	select {
	case err := <-ctrlFnError:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("timed out (%s)", timeout)
	}
}

func (m *Module) runCtrlFn(name string, fn func() error) (err error) {
	if fn == nil {
		return
	}

	defer func() {
		// recover from panic
		panicVal := recover()
		if panicVal != nil {
			err = &PanicError{
				ModuleName: m.Name,
				TaskName:   name,
				PanicValue: panicVal,
				StackTrace: string(debug.Stack()),
			}
		}
	}()

	// run
	err = fn()
	return
}

package log

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ContextTracerKey is the key used for the context key/value storage.
type ContextTracerKey struct{}

// ContextTracer is attached to a context in order bind logs to a context.
type ContextTracer struct {
	sync.Mutex
	actions []*action
}

type action struct {
	timestamp time.Time
	level     Severity
	msg       string
	file      string
	line      int
}

var key = ContextTracerKey{}

// AddTracer adds a ContextTracer to the returned Context. Will return a nil ContextTracer if logging level is not set to trace. Will return a nil ContextTracer if one already exists.
func AddTracer(ctx context.Context) (context.Context, *ContextTracer) {
	if ctx != nil && fastcheckLevel(TraceLevel) {
		// check pkg levels
		if pkgLevelsActive.IsSet() {
			// get file
			_, file, _, ok := runtime.Caller(1)
			if !ok {
				// cannot get file, ignore
				return ctx, nil
			}
			pathSegments := strings.Split(file, "/")
			if len(pathSegments) < 2 {
				return ctx, nil
			}
			pkgLevelsLock.Lock()
			severity, ok := pkgLevels[pathSegments[len(pathSegments)-2]]
			pkgLevelsLock.Unlock()
			if ok && TraceLevel < severity {
				return ctx, nil
			}
		}

		// check for existing tracer
		_, ok := ctx.Value(key).(*ContextTracer)
		if !ok {
			// add and return new tracer
			tracer := &ContextTracer{}
			return context.WithValue(ctx, key, tracer), tracer
		}
	}
	return ctx, nil
}

// Tracer returns the ContextTracer previously added to the given Context.
func Tracer(ctx context.Context) *ContextTracer {
	if ctx != nil {
		tracer, ok := ctx.Value(key).(*ContextTracer)
		if ok {
			return tracer
		}
	}
	return nil
}

// Submit collected logs on the context for further processing/outputting. Does nothing if called on a nil ContextTracer.
func (tracer *ContextTracer) Submit() {
	if tracer == nil {
		return
	}

	tracer.Lock()
	if len(tracer.actions) == 0 {
		tracer.Unlock()
		return
	}

	// extract last action
	lastAction := tracer.actions[len(tracer.actions)-1]
	tracer.actions = tracer.actions[:len(tracer.actions)-1]
	tracer.Unlock()

	// create log line
	line := &logLine{
		msg:       lastAction.msg,
		tracer:    tracer,
		level:     lastAction.level,
		timestamp: lastAction.timestamp,
		file:      lastAction.file,
		line:      lastAction.line,
	}

	// highest level of all actions is used
	tracer.Lock()
	for _, a := range tracer.actions {
		if a.level > line.level {
			line.level = a.level
		}
	}
	tracer.Unlock()

	if !started.IsSet() {
		select {
		case logBuffer <- line:
		default:
		}
		return
	}

	select {
	case logBuffer <- line:
	default:
		select {
		case forceEmptyingOfBuffer <- struct{}{}:
		default:
		}
		select {
		case logBuffer <- line:
		case <-shutdownSignal:
			return
		}
	}

	// wake up writer if necessary
	if logsWaitingFlag.SetToIf(false, true) {
		select {
		case logsWaiting <- struct{}{}:
		default:
		}
	}
}

func (tracer *ContextTracer) logTrace(level Severity, msg string) {
	// get file and line
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = ""
		line = 0
	} else {
		if len(file) > 3 {
			file = file[:len(file)-3]
		} else {
			file = ""
		}
	}

	tracer.Lock()
	defer tracer.Unlock()
	tracer.actions = append(tracer.actions, &action{
		timestamp: time.Now(),
		level:     level,
		msg:       msg,
		file:      file,
		line:      line,
	})
}

// Trace is used to log tiny steps. Log traces to context if you can!
func (tracer *ContextTracer) Trace(msg string) {
	switch {
	case tracer != nil:
		tracer.logTrace(TraceLevel, msg)
	case fastcheck(TraceLevel):
		log(TraceLevel, msg, nil)
	}
}

// Tracef is used to log tiny steps. Log traces to context if you can!
func (tracer *ContextTracer) Tracef(format string, things ...interface{}) {
	switch {
	case tracer != nil:
		tracer.logTrace(TraceLevel, fmt.Sprintf(format, things...))
	case fastcheck(TraceLevel):
		log(TraceLevel, fmt.Sprintf(format, things...), nil)
	}
}

// Debugf is used to log minor errors or unexpected events. These occurrences are usually not worth mentioning in itself, but they might hint at a bigger problem.
func (tracer *ContextTracer) Debugf(format string, things ...interface{}) {
	switch {
	case tracer != nil:
		tracer.logTrace(DebugLevel, fmt.Sprintf(format, things...))
	case fastcheck(DebugLevel):
		log(DebugLevel, fmt.Sprintf(format, things...), nil)
	}
}

// Warningf is used to log (potentially) bad events, but nothing broke (even a little) and there is no need to panic yet.
func (tracer *ContextTracer) Warningf(format string, things ...interface{}) {
	switch {
	case tracer != nil:
		tracer.logTrace(WarningLevel, fmt.Sprintf(format, things...))
	case fastcheck(WarningLevel):
		log(WarningLevel, fmt.Sprintf(format, things...), nil)
	}
}

// Errorf is used to log errors that break or impair functionality. The task/process may have to be aborted and tried again later. The system is still operational.
func (tracer *ContextTracer) Errorf(format string, things ...interface{}) {
	switch {
	case tracer != nil:
		tracer.logTrace(ErrorLevel, fmt.Sprintf(format, things...))
	case fastcheck(ErrorLevel):
		log(ErrorLevel, fmt.Sprintf(format, things...), nil)
	}
}

func fastcheckLevel(level Severity) bool {
	return uint32(level) >= atomic.LoadUint32(logLevel)
}

package log

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tevino/abool"
)

// concept
/*
- Logging function:
  - check if package-based levelling is enabled
    - if yes, check if level is active for this package
  - check if level is active
  - send data to backend via big buffered channel
- Backend:
  - started with Start(), lines logged before that are queued
  - writes everything to stdout
- Channel overbuffering protection:
  - if buffer is full, trigger write
*/

// Severity describes a log level.
type Severity uint32

type logLine struct {
	msg       string
	tracer    *ContextTracer
	level     Severity
	timestamp time.Time
	file      string
	line      int
}

// Log Levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

var (
	logBuffer             chan *logLine
	forceEmptyingOfBuffer chan struct{}

	logLevelInt = uint32(InfoLevel)
	logLevel    = &logLevelInt

	pkgLevelsActive = abool.NewBool(false)
	pkgLevels       = make(map[string]Severity)
	pkgLevelsLock   sync.Mutex

	logsWaiting     = make(chan struct{}, 1)
	logsWaitingFlag = abool.NewBool(false)

	shutdownSignal    = make(chan struct{})
	shutdownWaitGroup sync.WaitGroup

	started       = abool.NewBool(false)
	startedSignal = make(chan struct{})

	// ErrAlreadyStarted is returned by Start when logging is already running.
	ErrAlreadyStarted = errors.New("logging already started")
)

func init() {
	logBuffer = make(chan *logLine, 1024)
	forceEmptyingOfBuffer = make(chan struct{}, 4)
}

// SetPkgLevels sets individual log levels for packages. Only effective after Start().
func SetPkgLevels(levels map[string]Severity) {
	pkgLevelsLock.Lock()
	pkgLevels = levels
	pkgLevelsLock.Unlock()
	pkgLevelsActive.Set()
}

// UnSetPkgLevels removes all individual log levels for packages.
func UnSetPkgLevels() {
	pkgLevelsActive.UnSet()
}

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(logLevel))
}

// SetLogLevel sets a new log level. Only effective after Start().
func SetLogLevel(level Severity) {
	atomic.StoreUint32(logLevel, uint32(level))
}

// ParseLevel returns the level severity of a log level name.
func ParseLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	}
	return 0
}

// Start starts the logging system. Must be called in order to see logs.
func Start() (err error) {
	if !started.SetToIf(false, true) {
		return ErrAlreadyStarted
	}

	if logLevelFlag != "" {
		initialLogLevel := ParseLevel(logLevelFlag)
		if initialLogLevel > 0 {
			SetLogLevel(initialLogLevel)
		} else {
			err = fmt.Errorf("log warning: invalid log level \"%s\", falling back to level info", logLevelFlag)
			fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		}
	}

	// get and set package log levels
	if pkgLogLevelsFlag != "" {
		newPkgLevels := make(map[string]Severity)
		for _, pair := range strings.Split(pkgLogLevelsFlag, ",") {
			splitted := strings.Split(pair, "=")
			if len(splitted) != 2 {
				err = fmt.Errorf("log warning: invalid package log level \"%s\", ignoring", pair)
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				break
			}
			pkgLevel := ParseLevel(splitted[1])
			if pkgLevel == 0 {
				err = fmt.Errorf("log warning: invalid package log level \"%s\", ignoring", pair)
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				break
			}
			newPkgLevels[splitted[0]] = pkgLevel
		}
		SetPkgLevels(newPkgLevels)
	}

	shutdownWaitGroup.Add(1)
	go writer()
	close(startedSignal)

	// wake up writer for queued lines
	select {
	case logsWaiting <- struct{}{}:
	default:
	}

	return err
}

// Shutdown writes remaining log lines and waits for the writer to exit.
func Shutdown() {
	if !started.IsSet() {
		return
	}
	select {
	case <-shutdownSignal:
		return
	default:
		close(shutdownSignal)
	}
	shutdownWaitGroup.Wait()
}

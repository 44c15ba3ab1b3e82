package log

import (
	"fmt"
	"sync"
	"time"
)

var (
	counter     uint16
	counterLock sync.Mutex

	useColor = true
)

const (
	maxCount   uint16 = 999
	rightArrow        = "▶"
)

func (s Severity) String() string {
	switch s {
	case TraceLevel:
		return "TRAC"
	case DebugLevel:
		return "DEBU"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARN"
	case ErrorLevel:
		return "ERRO"
	case CriticalLevel:
		return "CRIT"
	default:
		return "NONE"
	}
}

func (s Severity) color() string {
	switch s {
	case DebugLevel:
		return "\033[36m"
	case InfoLevel:
		return "\033[34m"
	case WarningLevel:
		return "\033[33m"
	case ErrorLevel:
		return "\033[31m"
	case CriticalLevel:
		return "\033[35m"
	default:
		return ""
	}
}

func endColor() string {
	return "\033[0m"
}

// SetColor enables or disables colored output.
func SetColor(enabled bool) {
	useColor = enabled
}

func nextCount() uint16 {
	counterLock.Lock()
	defer counterLock.Unlock()

	counter++
	if counter > maxCount {
		counter = 1
	}
	return counter
}

func shortFile(file string) string {
	if len(file) > 10 {
		return file[len(file)-10:]
	}
	return file
}

func formatLine(line *logLine, useColor bool) string {
	colorStart := ""
	colorEnd := ""
	if useColor {
		colorStart = line.level.color()
		colorEnd = endColor()
	}

	count := nextCount()

	var fLine string
	if line.line == 0 {
		fLine = fmt.Sprintf("%s%s ? %s %s %03d%s %s", colorStart, line.timestamp.Format("060102 15:04:05.000"), rightArrow, line.level.String(), count, colorEnd, line.msg)
	} else {
		fLine = fmt.Sprintf("%s%s %s:%03d %s %s %03d%s %s", colorStart, line.timestamp.Format("060102 15:04:05.000"), shortFile(line.file), line.line, rightArrow, line.level.String(), count, colorEnd, line.msg)
	}

	if line.tracer != nil {
		line.tracer.Lock()
		defer line.tracer.Unlock()

		// append full trace time
		if len(line.tracer.actions) > 0 {
			fLine += fmt.Sprintf(" Σ=%s", line.timestamp.Sub(line.tracer.actions[0].timestamp))
		}

		// append all trace actions
		var d time.Duration
		for i, action := range line.tracer.actions {
			if useColor {
				colorStart = action.level.color()
			}
			if i == len(line.tracer.actions)-1 { // last
				d = line.timestamp.Sub(action.timestamp)
			} else {
				d = line.tracer.actions[i+1].timestamp.Sub(action.timestamp)
			}
			fLine += fmt.Sprintf("\n%s%19s %s:%03d %s %s%s     %s", colorStart, d, shortFile(action.file), action.line, rightArrow, action.level.String(), colorEnd, action.msg)
		}
	}

	return fLine
}

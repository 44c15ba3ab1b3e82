package log

import (
	"fmt"
	"os"
	"time"
)

func writeLine(line *logLine) {
	fmt.Fprintln(os.Stdout, formatLine(line, useColor))
}

func writer() {
	defer shutdownWaitGroup.Done()

	for {
		// wait until logs need to be processed
		select {
		case <-logsWaiting:
			logsWaitingFlag.UnSet()
		case <-forceEmptyingOfBuffer:
		case <-shutdownSignal:
			writeAll()
			writeLine(&logLine{
				msg:       "===== LOGGING STOPPED =====",
				level:     WarningLevel,
				timestamp: time.Now(),
			})
			return
		}

		writeAll()
	}
}

func writeAll() {
	for {
		select {
		case line := <-logBuffer:
			writeLine(line)
		default:
			return
		}
	}
}

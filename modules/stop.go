package modules

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"

	"github.com/safing/securerandom/log"
)

var shutdownFlag = abool.NewBool(false)

// ErrShutdownInProgress is returned by Shutdown when it is called more than once.
var ErrShutdownInProgress = errors.New("shutdown already initiated")

// Shutdown stops all started modules in the correct order. Errors of single modules do not stop the shutdown and are returned together.
func Shutdown() error {
	if !shutdownFlag.SetToIf(false, true) {
		return ErrShutdownInProgress
	}

	if startComplete.IsSet() {
		log.Warning("modules: starting shutdown...")
	} else {
		log.Warning("modules: aborting, shutting down...")
	}

	modulesLock.RLock()
	defer modulesLock.RUnlock()

	var multierr *multierror.Error
	reports := make(chan *report)
	execCnt := 0
	reportCnt := 0

	for {
		// find modules to stop
		for _, m := range modules {
			if m.ReadyToStop() {
				execCnt++
				m.inTransition.Set()

				execM := m
				go func() {
					reports <- &report{
						module: execM,
						err:    execM.shutdown(),
					}
				}()
			}
		}

		// exit if done
		if execCnt == reportCnt {
			break
		}

		// wait for reports
		rep := <-reports
		rep.module.inTransition.UnSet()
		if rep.err != nil {
			multierr = multierror.Append(multierr, fmt.Errorf("failed to stop module %s: %w", rep.module.Name, rep.err))
		}
		reportCnt++
		rep.module.Stopped.Set()
		log.Infof("modules: stopped %s", rep.module.Name)
	}

	err := multierr.ErrorOrNil()
	if err != nil {
		log.Errorf("modules: shutdown completed with errors: %s", err)
	} else {
		log.Info("modules: shutdown complete")
	}
	return err
}

// Package modules provides a small module ecosystem to cleanly put the
// moving parts of the random generators together.
//
// Modules are started in a multi-stage process and may depend on other
// modules:
// - Go's init(): register the module
// - prep: register config options
// - start: start actual work, access config
// - stop: gracefully shut down
//
// **Workers**
// A simple function that is run by the module while catching
// panics and reporting them. Ideal for long running (possibly) idle goroutines,
// such as entropy feeders.
package modules

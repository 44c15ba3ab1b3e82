package log

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContextTracer(t *testing.T) {
	// skip
	if testing.Short() {
		t.Skip()
	}

	SetLogLevel(TraceLevel)
	defer SetLogLevel(InfoLevel)

	ctx, tracer := AddTracer(context.Background())
	assert.NotNil(t, tracer)
	assert.Same(t, tracer, Tracer(ctx))

	// adding again keeps the existing tracer
	_, second := AddTracer(ctx)
	assert.Nil(t, second)

	tracer.Trace("random: selecting default generator")
	time.Sleep(1 * time.Millisecond)
	tracer.Tracef("random: %s generator is not supported", "getrandom")
	time.Sleep(1 * time.Millisecond)
	tracer.Debugf("random: using %s generator", "device")
	tracer.Warningf("generator: failed to close %s", "/dev/urandom")
	tracer.Submit()

	// nil tracers fall back to normal logging
	Tracer(context.Background()).Trace("not traced")

	time.Sleep(10 * time.Millisecond)
}

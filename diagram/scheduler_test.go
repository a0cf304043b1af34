package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteScheduler_NestedSuspension(t *testing.T) {
	d := triangle(t)
	s := d.scheduler
	before := s.Stats()

	s.Suspend()
	s.Suspend()
	s.RequestRoute(d.Link("ab"))
	s.RequestRoute(d.Link("bc"))
	s.RequestRoute(d.Link("ab"))
	assert.Equal(t, 2, s.Pending())

	s.Resume()
	assert.True(t, s.IsSuspended())
	assert.Equal(t, before.Routes, s.Stats().Routes, "inner resume keeps deferring")

	s.Resume()
	assert.False(t, s.IsSuspended())
	assert.Zero(t, s.Pending())
	assert.Equal(t, before.Routes+2, s.Stats().Routes)
	assert.Equal(t, before.Deferred+2, s.Stats().Deferred)
}

func TestRouteScheduler_ResumeWithoutSuspend(t *testing.T) {
	s := NewRouteScheduler(nil)
	s.Resume()
	assert.False(t, s.IsSuspended())
	assert.Equal(t, Stats{}, s.Stats())
}

func TestRouteScheduler_Forget(t *testing.T) {
	d := triangle(t)
	s := d.scheduler
	before := s.Stats().Routes

	s.Suspend()
	s.RequestRoute(d.Link("ab"))
	s.RequestRoute(d.Link("bc"))
	s.Forget(d.Link("ab"))
	s.Forget(d.Link("ac"))
	assert.Equal(t, 1, s.Pending())
	s.Resume()

	assert.Equal(t, before+1, s.Stats().Routes)
}

func TestRouteScheduler_UnconnectedLinksAreNotCounted(t *testing.T) {
	s := NewRouteScheduler(nil)
	l := NewLink("loose", nil)
	s.RequestRoute(l)
	assert.Zero(t, s.Stats().Routes)
	assert.Equal(t, Unrouted, l.State())
}

func TestRouteScheduler_RequestsDuringFlushAreRouted(t *testing.T) {
	d := triangle(t)
	ab, bc := d.Link("ab"), d.Link("bc")
	// Routing ab reroutes bc as a side effect.
	d.Port("a").Observe(func(l *Link) {
		if l == ab {
			bc.Invalidate()
		}
	})
	before := d.Stats().Routes

	d.SuspendRouting()
	ab.Invalidate()
	d.ResumeRouting()

	assert.Equal(t, before+2, d.Stats().Routes)
	assert.Equal(t, Routed, bc.State())
}

func TestRouteScheduler_PendingLinkIsRoutedOncePerFlush(t *testing.T) {
	d := triangle(t)
	ab, bc := d.Link("ab"), d.Link("bc")
	d.Port("a").Observe(func(l *Link) {
		if l == ab {
			bc.Invalidate()
		}
	})
	before := d.Stats().Routes

	d.SuspendRouting()
	ab.Invalidate()
	bc.Invalidate()
	d.ResumeRouting()

	assert.Equal(t, before+2, d.Stats().Routes, "bc still waits in the batch when ab asks for it")
	assert.Equal(t, Routed, bc.State())
	assert.Zero(t, d.scheduler.Pending())
}

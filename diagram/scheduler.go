package diagram

import "log/slog"

// RouteScheduler runs route computations immediately, or collects them
// while suspended and runs each pending link once on the final resume.
type RouteScheduler struct {
	depth   int
	pending []*Link
	queued  map[*Link]bool
	stats   Stats
	logger  *slog.Logger
}

// NewRouteScheduler returns a scheduler that is not suspended.
func NewRouteScheduler(logger *slog.Logger) *RouteScheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RouteScheduler{queued: make(map[*Link]bool), logger: logger}
}

// Suspend starts deferring requests. Calls nest.
func (s *RouteScheduler) Suspend() {
	s.depth++
}

// IsSuspended reports whether requests are being deferred.
func (s *RouteScheduler) IsSuspended() bool {
	return s.depth > 0
}

// Resume ends one suspension. Ending the outermost one routes every
// pending link in the order it was first requested.
func (s *RouteScheduler) Resume() {
	if s.depth == 0 {
		return
	}
	s.depth--
	if s.depth > 0 {
		return
	}
	s.flush()
}

func (s *RouteScheduler) flush() {
	if len(s.pending) > 0 {
		s.logger.Debug("resuming routing", "pending", len(s.pending))
	}
	// A link stays queued until its turn in the batch, so requests made
	// while the batch runs do not route it twice. Anything else requested
	// meanwhile is routed at once.
	for len(s.pending) > 0 && s.depth == 0 {
		batch := s.pending
		s.pending = nil
		for _, l := range batch {
			if !s.queued[l] {
				continue
			}
			delete(s.queued, l)
			s.route(l)
		}
	}
}

// RequestRoute routes l now, or adds it to the pending set. A link that is
// already pending is left alone.
func (s *RouteScheduler) RequestRoute(l *Link) {
	if s.queued[l] {
		return
	}
	if s.depth == 0 {
		s.route(l)
		return
	}
	s.queued[l] = true
	s.pending = append(s.pending, l)
	s.stats.Deferred++
	s.logger.Debug("route deferred", "link", l.ID)
}

// Forget drops l from the pending set.
func (s *RouteScheduler) Forget(l *Link) {
	if !s.queued[l] {
		return
	}
	delete(s.queued, l)
	for i, p := range s.pending {
		if p == l {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
}

// Pending returns the number of deferred links.
func (s *RouteScheduler) Pending() int {
	return len(s.pending)
}

// Stats returns the routing counters.
func (s *RouteScheduler) Stats() Stats {
	return s.stats
}

func (s *RouteScheduler) route(l *Link) {
	if l.CalculateStroke() {
		s.stats.Routes++
	}
}

func (s *RouteScheduler) countFallback() {
	s.stats.Fallbacks++
}

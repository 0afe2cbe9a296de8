package flow

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/model"
)

// Searcher looks up restaurants for a free-text query. Implementations live
// at the boundary (pkg/places); the reducer never calls them directly.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Restaurant, error)
}

// Detector looks up social profile metrics for a place. A typed failure is
// reported through the error; it becomes a DetectionFailed message, never a
// crash.
type Detector interface {
	Detect(ctx context.Context, placeID string) (instagram, facebook model.PlatformMetrics, err error)
}

// Session is the single logical thread of control around the reducer: it
// processes one message at a time to completion before accepting the next, so
// there is exactly one mutator of the snapshot and no locks are needed around
// it. External lookups run as goroutines whose completions come back as
// ordinary messages tagged with the request token that started them.
type Session struct {
	ID string

	searcher Searcher
	detector Detector

	mu    sync.Mutex
	state State

	ctx    context.Context
	cancel context.CancelFunc
	inbox  chan Msg
	done   chan struct{}
}

// NewSession creates a session in the initial state and starts its mailbox.
// A nil searcher or detector degrades that lookup to an immediate typed
// failure (the credential for it was absent at startup).
func NewSession(ctx context.Context, searcher Searcher, detector Detector) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:       uuid.New().String(),
		searcher: searcher,
		detector: detector,
		state:    Initial(),
		ctx:      ctx,
		cancel:   cancel,
		inbox:    make(chan Msg, 64),
		done:     make(chan struct{}),
	}
	go s.loop()
	return s
}

// State returns the current state snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch enqueues a message for processing. It is safe from any goroutine.
func (s *Session) Dispatch(msg Msg) {
	select {
	case s.inbox <- msg:
	case <-s.ctx.Done():
	}
}

// Close stops the session and cancels any outstanding lookups.
func (s *Session) Close() {
	s.cancel()
	<-s.done
}

func (s *Session) loop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case msg := <-s.inbox:
			s.step(msg)
		}
	}
}

func (s *Session) step(msg Msg) {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, msg)
	s.state = next
	s.mu.Unlock()

	if prev.Name() != next.Name() {
		zap.L().Info("flow: transition",
			zap.String("session", s.ID),
			zap.String("msg", msg.Kind()),
			zap.String("from", prev.Name()),
			zap.String("to", next.Name()),
		)
	}

	s.runEffects(msg, next)
}

// Submit is a convenience for the UI: it tags a search with a fresh token and
// dispatches it.
func (s *Session) Submit(query string) {
	s.Dispatch(SearchSubmitted{Query: query, Token: uuid.New().String()})
}

// Select tags the detection request for the chosen restaurant with a fresh
// token and dispatches it.
func (s *Session) Select(r model.Restaurant) {
	s.Dispatch(RestaurantSelected{Restaurant: r, Token: uuid.New().String()})
}

// runEffects launches the async lookups implied by the state just entered.
// Completions are delivered back through the mailbox carrying the token of
// the request that started them, so completions for abandoned states are
// recognized as stale and dropped by the reducer.
func (s *Session) runEffects(msg Msg, next State) {
	switch m := msg.(type) {
	case SearchSubmitted:
		if _, ok := next.(Loading); !ok {
			return
		}
		go s.search(m.Query, m.Token)
	case RestaurantSelected:
		if _, ok := next.(SocialDetection); !ok {
			return
		}
		go s.detect(m.Restaurant, m.Token)
	}
}

func (s *Session) search(query, token string) {
	if s.searcher == nil {
		s.Dispatch(SearchFailed{Token: token, Reason: "search unavailable: no places credential"})
		return
	}
	results, err := s.searcher.Search(s.ctx, query)
	if err != nil {
		zap.L().Warn("flow: restaurant search failed",
			zap.String("session", s.ID),
			zap.String("query", query),
			zap.Error(err),
		)
		s.Dispatch(SearchFailed{Token: token, Reason: err.Error()})
		return
	}
	s.Dispatch(SearchCompleted{Token: token, Results: results})
}

func (s *Session) detect(r model.Restaurant, token string) {
	if s.detector == nil {
		s.Dispatch(DetectionFailed{Token: token, Reason: "detection unavailable: no social credential"})
		return
	}
	ig, fb, err := s.detector.Detect(s.ctx, r.PlaceID)
	if err != nil {
		s.Dispatch(DetectionFailed{Token: token, Reason: err.Error()})
		return
	}
	s.Dispatch(DetectionSucceeded{Token: token, Instagram: ig, Facebook: fb})
}

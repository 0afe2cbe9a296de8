package flow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/opportunity-cli/internal/model"
)

type fakeSearcher struct {
	results []model.Restaurant
	err     error
	delay   time.Duration
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]model.Restaurant, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.results, f.err
}

type fakeDetector struct {
	instagram model.PlatformMetrics
	facebook  model.PlatformMetrics
	err       error
	delay     time.Duration
}

func (f *fakeDetector) Detect(ctx context.Context, placeID string) (model.PlatformMetrics, model.PlatformMetrics, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return model.PlatformMetrics{}, model.PlatformMetrics{}, ctx.Err()
		}
	}
	return f.instagram, f.facebook, f.err
}

// waitFor polls the session until the state matches or the deadline passes.
func waitFor(t *testing.T, s *Session, name string) State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if st := s.State(); st.Name() == name {
			return st
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %q, got %q", name, s.State().Name())
	return nil
}

func TestSession_SearchFlow(t *testing.T) {
	searcher := &fakeSearcher{results: []model.Restaurant{testRestaurant}}
	s := NewSession(context.Background(), searcher, &fakeDetector{})
	defer s.Close()

	s.Submit("mario's pizza")

	// Poll through the Loading round-trip until the results land.
	deadline := time.Now().Add(2 * time.Second)
	var rs RestaurantSearch
	for time.Now().Before(deadline) {
		if st, ok := s.State().(RestaurantSearch); ok && len(st.Results) > 0 {
			rs = st
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Len(t, rs.Results, 1)
	assert.Equal(t, "Mario's", rs.Results[0].Name)
}

func TestSession_SearchFailureNonBlocking(t *testing.T) {
	searcher := &fakeSearcher{err: eris.New("places: quota exceeded")}
	s := NewSession(context.Background(), searcher, &fakeDetector{})
	defer s.Close()

	s.Submit("mario's pizza")
	time.Sleep(100 * time.Millisecond)

	// Back on the search form, not stuck in Loading and not Failed.
	assert.Equal(t, "restaurant_search", s.State().Name())
}

func TestSession_DetectionFlowMergesMetrics(t *testing.T) {
	det := &fakeDetector{instagram: model.PlatformMetrics{Followers: 800, AvgLikes: 30, HasEngagement: true}}
	s := NewSession(context.Background(), &fakeSearcher{}, det)
	defer s.Close()

	s.Select(testRestaurant)

	st := waitFor(t, s, "data_entry")
	de := st.(DataEntry)
	assert.Equal(t, 800, de.Snapshot.Instagram.Followers)
}

func TestSession_NilDetectorDegrades(t *testing.T) {
	s := NewSession(context.Background(), &fakeSearcher{}, nil)
	defer s.Close()

	s.Select(testRestaurant)

	st := waitFor(t, s, "data_entry")
	de := st.(DataEntry)
	assert.Zero(t, de.Snapshot.Instagram.Followers)
}

// slowThenFastDetector answers its first call slowly with one payload and
// every later call immediately with another.
type slowThenFastDetector struct {
	mu    sync.Mutex
	calls int
}

func (d *slowThenFastDetector) Detect(ctx context.Context, placeID string) (model.PlatformMetrics, model.PlatformMetrics, error) {
	d.mu.Lock()
	d.calls++
	first := d.calls == 1
	d.mu.Unlock()

	if first {
		select {
		case <-time.After(150 * time.Millisecond):
		case <-ctx.Done():
		}
		return model.PlatformMetrics{Followers: 9999}, model.PlatformMetrics{}, nil
	}
	return model.PlatformMetrics{Followers: 42}, model.PlatformMetrics{}, nil
}

func TestSession_StaleDetectionAfterRestart(t *testing.T) {
	det := &slowThenFastDetector{}
	s := NewSession(context.Background(), &fakeSearcher{}, det)
	defer s.Close()

	// First flow: detection for Mario's is outstanding when the user
	// restarts.
	s.Select(testRestaurant)
	waitFor(t, s, "social_detection")
	s.Dispatch(StartOver{})
	waitFor(t, s, "restaurant_search")

	// Second flow completes immediately.
	s.Select(model.Restaurant{PlaceID: "p2", Name: "Luigi's"})
	waitFor(t, s, "data_entry")

	// Let the first flow's completion arrive; its stale token must not
	// mutate the snapshot created by the later flow.
	time.Sleep(300 * time.Millisecond)

	de, ok := s.State().(DataEntry)
	require.True(t, ok)
	assert.Equal(t, "Luigi's", de.Snapshot.Restaurant.Name)
	assert.Equal(t, 42, de.Snapshot.Instagram.Followers)
}

func TestSession_SerializesMessages(t *testing.T) {
	s := NewSession(context.Background(), &fakeSearcher{}, nil)
	defer s.Close()

	s.Select(testRestaurant)
	waitFor(t, s, "data_entry")

	for i := 0; i < 50; i++ {
		s.Dispatch(AddKeyword{Entry: model.KeywordEntry{Keyword: "kw", SearchVolume: 10, CurrentPosition: 5, TargetPosition: 1}})
	}
	s.Dispatch(SetAvgTicket{Value: 25})
	s.Dispatch(RunAnalysis{})

	st := waitFor(t, s, "analysis")
	an := st.(Analysis)
	assert.Len(t, an.Snapshot.Keywords, 50)
}

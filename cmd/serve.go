package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/opportunity-cli/internal/flow"
	"github.com/sells-group/opportunity-cli/internal/model"
	"github.com/sells-group/opportunity-cli/internal/store"
	"github.com/sells-group/opportunity-cli/pkg/places"
	"github.com/sells-group/opportunity-cli/pkg/social"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session API server",
	Long:  "Serves interactive analysis sessions over HTTP: each session is a state machine advanced by posted messages, plus read access to stored runs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		// Missing credentials degrade the corresponding lookup to a typed
		// failure inside the session instead of blocking startup.
		var searcher flow.Searcher
		if cfg.Places.Key != "" {
			searcher = placesSearcher{client: places.NewClient(cfg.Places.Key,
				places.WithBaseURL(cfg.Places.BaseURL),
				places.WithRPS(cfg.Places.RPS),
			)}
		} else {
			zap.L().Warn("no places credential, restaurant search disabled")
		}

		var detector flow.Detector
		if cfg.Social.Key != "" {
			detector = social.NewClient(cfg.Social.Key, social.WithBaseURL(cfg.Social.BaseURL))
		} else {
			zap.L().Warn("no social credential, profile detection disabled")
		}

		hub := newSessionHub(searcher, detector, st)
		defer hub.closeAll()

		router := newRouter(hub, st)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// placesSearcher adapts the Places text-search call to the flow's lookup
// interface.
type placesSearcher struct {
	client places.Client
}

func (p placesSearcher) Search(ctx context.Context, query string) ([]model.Restaurant, error) {
	return p.client.TextSearch(ctx, query)
}

// sessionHub owns the live sessions. Session message processing is serialized
// inside each session; the hub only guards the map.
type sessionHub struct {
	searcher flow.Searcher
	detector flow.Detector
	store    store.Store

	mu       sync.Mutex
	sessions map[string]*flow.Session
}

func newSessionHub(searcher flow.Searcher, detector flow.Detector, st store.Store) *sessionHub {
	return &sessionHub{
		searcher: searcher,
		detector: detector,
		store:    st,
		sessions: make(map[string]*flow.Session),
	}
}

// create starts a session detached from any request context; sessions outlive
// the request that created them and are stopped via Close.
func (h *sessionHub) create() *flow.Session {
	s := flow.NewSession(context.Background(), h.searcher, h.detector)
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	return s
}

func (h *sessionHub) get(id string) (*flow.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	return s, ok
}

func (h *sessionHub) remove(id string) (*flow.Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if ok {
		delete(h.sessions, id)
	}
	return s, ok
}

func (h *sessionHub) closeAll() {
	h.mu.Lock()
	sessions := make([]*flow.Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessions = make(map[string]*flow.Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func newRouter(hub *sessionHub, st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/sessions", func(w http.ResponseWriter, r *http.Request) {
		s := hub.create()
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":    s.ID,
			"state": stateView(s.State()),
		})
	})

	r.Get("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		s, ok := hub.get(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "session not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"id":    s.ID,
			"state": stateView(s.State()),
		})
	})

	r.Post("/sessions/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		s, ok := hub.get(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "session not found")
			return
		}

		var req struct {
			Kind    string          `json:"kind"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		msg, err := flow.DecodeMsg(req.Kind, req.Payload)
		if err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}

		s.Dispatch(msg)
		writeJSON(w, http.StatusAccepted, map[string]string{
			"status": "accepted",
			"kind":   req.Kind,
		})
	})

	r.Get("/sessions/{id}/report", func(w http.ResponseWriter, r *http.Request) {
		s, ok := hub.get(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "session not found")
			return
		}

		analysis, ok := s.State().(flow.Analysis)
		if !ok {
			httpError(w, http.StatusConflict, "session has no completed analysis")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"restaurant": analysis.Snapshot.Restaurant,
			"result":     analysis.Result,
			"levers":     analysis.Levers,
		})
	})

	r.Post("/sessions/{id}/save", func(w http.ResponseWriter, r *http.Request) {
		s, ok := hub.get(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "session not found")
			return
		}

		analysis, ok := s.State().(flow.Analysis)
		if !ok {
			httpError(w, http.StatusConflict, "session has no completed analysis")
			return
		}

		run, err := hub.store.SaveRun(r.Context(), analysis.Snapshot, analysis.Result)
		if err != nil {
			zap.L().Error("save run failed", zap.String("session", s.ID), zap.Error(err))
			httpError(w, http.StatusInternalServerError, "save failed")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"run_id": run.ID})
	})

	r.Delete("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		s, ok := hub.remove(chi.URLParam(r, "id"))
		if !ok {
			httpError(w, http.StatusNotFound, "session not found")
			return
		}
		s.Close()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/runs", func(w http.ResponseWriter, r *http.Request) {
		filter := store.RunFilter{
			Restaurant: r.URL.Query().Get("restaurant"),
			Limit:      50,
		}
		runs, err := st.ListRuns(r.Context(), filter)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "list runs failed")
			return
		}
		writeJSON(w, http.StatusOK, runs)
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		run, err := st.GetRun(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpError(w, http.StatusNotFound, "run not found")
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	return r
}

// stateView flattens the state union into a JSON shape tagged by state name.
func stateView(s flow.State) map[string]any {
	v := map[string]any{"name": s.Name()}
	switch st := s.(type) {
	case flow.Loading:
		v["query"] = st.Query
	case flow.RestaurantSearch:
		v["query"] = st.Query
		if st.Results == nil {
			v["results"] = []model.Restaurant{}
		} else {
			v["results"] = st.Results
		}
	case flow.SocialDetection:
		v["restaurant"] = st.Restaurant
	case flow.DataEntry:
		v["snapshot"] = st.Snapshot
	case flow.Analysis:
		v["snapshot"] = st.Snapshot
		v["result"] = st.Result
		v["levers"] = st.Levers
	case flow.Failed:
		v["message"] = st.Message
		v["prev"] = st.Prev.Name()
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/settings"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ErrNoSettingsFile is returned by the save action when the server has no settings path.
var ErrNoSettingsFile = errors.New("no settings file configured")

// Resetter starts the camera target reset animation. scene.Scene satisfies it.
type Resetter interface {
	ResetTarget()
}

// Server is the remote control panel: HTTP endpoints for health, settings and schema, and a
// websocket that applies parameter changes and actions and streams profiler samples.
type Server interface {
	// Handler returns the HTTP handler serving every endpoint, wrapped with CORS headers.
	//
	// Returns:
	//   - http.Handler: the panel's handler
	Handler() http.Handler

	// ListenAndServe serves on the configured address until ctx is cancelled, then shuts
	// the server down gracefully.
	//
	// Parameters:
	//   - ctx: cancels the server
	//
	// Returns:
	//   - error: error if the listener fails
	ListenAndServe(ctx context.Context) error

	// Handle applies one control request and builds its reply.
	//
	// Parameters:
	//   - req: the decoded request
	//
	// Returns:
	//   - Reply: the outcome and the settings after the request
	Handle(req Request) Reply

	// Clients returns the number of connected websocket clients.
	Clients() int

	// Close disconnects every client and removes the store and profiler subscriptions.
	Close()
}

type server struct {
	mu *sync.Mutex

	addr         string
	store        settings.Store
	settingsPath string
	resetter     Resetter
	profiler     *profiler.Profiler
	startTime    time.Time

	upgrader websocket.Upgrader
	clients  map[*client]struct{}

	unsubscribe []func()
}

var _ Server = &server{}

// NewServer creates a control panel for store. It subscribes to store changes and, when a
// profiler is configured, to profiler samples. NewServer panics if store is nil.
//
// Parameters:
//   - store: the live settings
//   - options: functional options to configure the server
//
// Returns:
//   - Server: the newly created server
func NewServer(store settings.Store, options ...ServerOption) Server {
	if store == nil {
		panic("panel: NewServer requires a non-nil settings store")
	}

	s := &server{
		mu:        &sync.Mutex{},
		addr:      ":8080",
		store:     store,
		startTime: time.Now(),
		clients:   make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	for _, option := range options {
		option(s)
	}

	s.unsubscribe = append(s.unsubscribe, store.Subscribe(s.broadcastSettings))
	if s.profiler != nil {
		s.unsubscribe = append(s.unsubscribe, s.profiler.Subscribe(s.broadcastStats))
	}
	return s
}

func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /settings", s.handleSettings)
	mux.HandleFunc("GET /schema", s.handleSchema)
	mux.HandleFunc("/control", s.handleControl)
	return withCORS(mux)
}

func (s *server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("control panel listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("control panel: %w", err)
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("control panel shutdown: %w", err)
	}
	log.Info().Msg("control panel stopped")
	return nil
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("panel encode response")
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := Health{
		Status:  "ok",
		UptimeS: time.Since(s.startTime).Seconds(),
		Clients: s.Clients(),
	}
	if s.profiler != nil {
		h.Frames = s.profiler.Frames()
		h.FPS = s.profiler.Latest().FPS
	}
	writeJSON(w, h)
}

func (s *server) handleSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.store.Snapshot())
}

func (s *server) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, settings.Schema())
}

func (s *server) handleControl(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("panel upgrade")
		return
	}

	c := newClient(conn)
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("panel client connected")

	go c.writeLoop()
	c.enqueue(mustMarshal(SettingsUpdate{Type: TypeSettings, Settings: s.store.Snapshot()}))

	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		c.close()
		log.Info().Str("remote", conn.RemoteAddr().String()).Msg("panel client disconnected")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var reply Reply
		req, err := decodeRequest(data)
		if err != nil {
			reply = s.reply(err)
		} else {
			reply = s.Handle(req)
		}
		c.enqueue(mustMarshal(reply))
	}
}

// decodeRequest decodes data keeping numbers as json.Number so settings see exact values.
func decodeRequest(data []byte) (Request, error) {
	var req Request
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	return req, nil
}

func (s *server) Handle(req Request) Reply {
	action := req.Action
	if action == "" && req.Panel != "" {
		if p, err := settings.Lookup(req.Panel, req.Key); err == nil && p.Kind == settings.KindAction {
			action = p.Key
		}
	}

	var err error
	switch {
	case action == ActionResetTarget:
		if s.resetter == nil {
			err = errors.New("no camera to reset")
		} else {
			s.resetter.ResetTarget()
			log.Debug().Msg("panel requested camera target reset")
		}
	case action == ActionSave:
		err = s.save()
	case action != "":
		err = fmt.Errorf("unknown action %q", action)
	case req.Panel == "":
		err = errors.New("request needs a panel and key or an action")
	default:
		err = s.store.Set(req.Panel, req.Key, req.Value)
	}
	return s.reply(err)
}

func (s *server) reply(err error) Reply {
	r := Reply{Type: TypeReply, OK: err == nil, Settings: s.store.Snapshot()}
	if err != nil {
		r.Error = err.Error()
		log.Debug().Err(err).Msg("panel request rejected")
	}
	return r
}

func (s *server) save() error {
	if s.settingsPath == "" {
		return ErrNoSettingsFile
	}
	if err := settings.Save(s.settingsPath, s.store.Snapshot()); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	log.Info().Str("path", s.settingsPath).Msg("settings saved")
	return nil
}

func (s *server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *server) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, fn := range unsubscribe {
		fn()
	}
	for _, c := range clients {
		c.close()
	}
}

func (s *server) broadcast(msg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.enqueue(msg)
	}
}

func (s *server) broadcastSettings(cur settings.Settings) {
	s.broadcast(mustMarshal(SettingsUpdate{Type: TypeSettings, Settings: cur}))
}

func (s *server) broadcastStats(sample profiler.Sample) {
	if !s.store.Snapshot().General.ShowStats {
		return
	}
	s.broadcast(mustMarshal(StatsUpdate{Type: TypeStats, Stats: sample}))
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("panel: marshal %T: %v", v, err))
	}
	return b
}

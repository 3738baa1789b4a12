package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/jsonedit/internal/errors"
	"github.com/vango-dev/jsonedit/pkg/render"
	"github.com/vango-dev/jsonedit/pkg/value"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// DocumentSource loads the document a new session starts from.
type DocumentSource interface {
	Load(ctx context.Context) (value.Value, error)
}

// DocumentSourceFunc adapts a function to DocumentSource.
type DocumentSourceFunc func(ctx context.Context) (value.Value, error)

// Load calls f.
func (f DocumentSourceFunc) Load(ctx context.Context) (value.Value, error) {
	return f(ctx)
}

// RootFunc builds the root component for a document. onChanged must be
// called with every committed root value.
type RootFunc func(initial value.Value, onChanged func(value.Value)) Component

// Config holds the configuration of a Server.
type Config struct {
	// Title is the page title.
	Title string

	// Root builds the component mounted by each session. Required.
	Root RootFunc

	// Source loads the initial document. Nil starts every session at null.
	Source DocumentSource

	// OnCommit is called with every committed root value, under the
	// context of the event that committed it.
	OnCommit func(ctx context.Context, v value.Value) error

	// Middleware wraps every dispatched event.
	Middleware []Middleware

	// OnSessionCreate and OnSessionClose observe the session lifecycle.
	OnSessionCreate func(*Session)
	OnSessionClose  func(*Session)

	// ReadTimeout is the maximum time to wait for a client message.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// CheckOrigin validates the WebSocket origin. Nil accepts same-origin
	// requests only.
	CheckOrigin func(r *http.Request) bool

	// Logger is the structured logger. Default: slog.Default().
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = "jsonedit"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 64 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Server serves the editor over HTTP and WebSocket.
type Server struct {
	config   Config
	router   chi.Router
	sessions *SessionManager
	upgrader websocket.Upgrader
	renderer *render.Renderer
	logger   *slog.Logger

	mu    sync.RWMutex
	doc   value.Value
	valid bool
}

// New creates a Server.
func New(config Config) *Server {
	config.applyDefaults()
	s := &Server{
		config:   config,
		sessions: NewSessionManager(config.Logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   config.Logger,
	}
	s.sessions.OnSessionCreate(config.OnSessionCreate)
	s.sessions.OnSessionClose(config.OnSessionClose)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/value", s.handleValue)
	r.Get("/healthz", s.handleHealth)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router returns the chi router so callers can mount extra routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Value returns the last committed document, loading it from the source
// if nothing was committed yet.
func (s *Server) Value(ctx context.Context) (value.Value, error) {
	s.mu.RLock()
	doc, ok := s.doc, s.valid
	s.mu.RUnlock()
	if ok {
		return doc, nil
	}
	return s.load(ctx)
}

func (s *Server) load(ctx context.Context) (value.Value, error) {
	if s.config.Source == nil {
		return value.Null(), nil
	}
	return s.config.Source.Load(ctx)
}

// NewSession loads the document and mounts a session for it.
func (s *Server) NewSession(ctx context.Context) (*Session, error) {
	if s.config.Root == nil {
		return nil, errors.New("E120").WithDetail("server: Config.Root is required")
	}
	initial, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var sess *Session
	root := s.config.Root(initial, func(v value.Value) {
		s.commit(sess, v)
	})
	sess, err = NewSession(root,
		WithSessionLogger(s.logger),
		WithMiddleware(s.config.Middleware...),
		WithRenderer(s.renderer))
	if err != nil {
		return nil, err
	}
	s.sessions.Add(sess)
	return sess, nil
}

func (s *Server) commit(sess *Session, v value.Value) {
	s.mu.Lock()
	s.doc, s.valid = v, true
	s.mu.Unlock()

	if s.config.OnCommit == nil {
		return
	}
	ctx := context.Background()
	if sess != nil {
		ctx = sess.Context()
	}
	if err := s.config.OnCommit(ctx, v); err != nil {
		s.logger.Error("commit failed", "session", sessionID(sess), "error", err)
	}
}

// Sweep closes detached sessions idle for longer than maxIdle.
func (s *Server) Sweep(maxIdle time.Duration) int {
	return s.sessions.Sweep(maxIdle)
}

// RunJanitor sweeps idle sessions every interval until ctx is done.
func (s *Server) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep(maxIdle)
		}
	}
}

// Close closes every session.
func (s *Server) Close() {
	s.sessions.CloseAll()
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.NewSession(r.Context())
	if err != nil {
		s.logger.Error("session create failed", "error", err)
		http.Error(w, "failed to load document", http.StatusInternalServerError)
		return
	}

	body := vdom.Div(
		vdom.ID(rootElementID),
		vdom.Data("session", sess.ID),
		sess.Tree(),
	)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = s.renderer.RenderPage(w, render.PageData{
		Title:   s.config.Title,
		Body:    body,
		Scripts: []render.ScriptTag{{Inline: clientScript}},
	})
	if err != nil {
		s.logger.Error("page render failed", "session", sess.ID, "error", err)
	}
}

func (s *Server) handleValue(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Value(r.Context())
	if err != nil {
		s.logger.Error("value load failed", "error", err)
		http.Error(w, "failed to load document", http.StatusInternalServerError)
		return
	}
	data, err := value.MarshalIndent(doc, "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	sess, ok := s.sessions.Get(id)
	if !ok {
		http.Error(w, ErrSessionNotFound.Error(), http.StatusNotFound)
		return
	}
	if !sess.attached.CompareAndSwap(false, true) {
		http.Error(w, "session already attached", http.StatusConflict)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sess.attached.Store(false)
		s.logger.Error("websocket upgrade failed", "session", id, "error", err)
		return
	}

	defer func() {
		conn.Close()
		s.sessions.Remove(id)
		vango.ReleaseContext()
	}()

	conn.SetReadLimit(s.config.MaxMessageSize)
	s.readLoop(r.Context(), conn, sess)
}

// readLoop handles client events until the connection closes.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, sess *Session) {
	for {
		conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", "session", sess.ID, "error", err)
			}
			return
		}

		reply := s.handleMessage(ctx, sess, data)
		out, err := encodeServerMessage(reply)
		if err != nil {
			s.logger.Error("encode reply failed", "session", sess.ID, "error", err)
			return
		}
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			s.logger.Warn("websocket write error", "session", sess.ID, "error", err)
			return
		}
	}
}

func (s *Server) handleMessage(ctx context.Context, sess *Session, data []byte) serverMessage {
	msg, err := decodeClientMessage(data)
	if err != nil {
		return errorMessage(0, errors.New("E020").Wrap(stderrors.Join(ErrInvalidEvent, err)))
	}

	before := sess.Renders()
	ev := msg.event().WithContext(ctx)
	err = sess.Dispatch(ev)

	reply := serverMessage{Seq: ev.Seq}
	if err != nil {
		reply = errorMessage(ev.Seq, err)
	}
	// A missing handler usually means the client holds a stale tree, so it
	// gets the current one along with the error.
	if sess.Renders() != before || errors.HasCode(err, "E009") {
		html, herr := sess.HTML()
		if herr != nil {
			return errorMessage(ev.Seq, herr)
		}
		reply.HTML = html
	}
	return reply
}

func sessionID(s *Session) string {
	if s == nil {
		return ""
	}
	return s.ID
}

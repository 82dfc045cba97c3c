package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/bounce/internal/core/observability/log"
	"github.com/zeusync/bounce/internal/core/system"
	"github.com/zeusync/bounce/pkg/generic"
)

const (
	writeTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

var framePool = generic.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

// encodeFrame writes s as one JSON line into buf. The result aliases buf.
func encodeFrame(buf *bytes.Buffer, s system.Snapshot) ([]byte, error) {
	if err := json.NewEncoder(buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SnapshotSource is what the stream reads frames from.
type SnapshotSource interface {
	Snapshot() system.Snapshot
}

// Config holds stream server configuration
type Config struct {
	ListenAddr string
	Path       string
	// Interval between broadcasts. Frames identical to the previous one are skipped.
	Interval time.Duration
}

// StreamServer pushes JSON world snapshots to websocket clients.
type StreamServer struct {
	config Config
	source SnapshotSource
	logger log.Log

	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	lastHash uint64
	hasLast  bool

	server  *http.Server
	addr    atomic.Value // string
	running atomic.Bool
}

func NewStreamServer(config Config, source SnapshotSource, logger log.Log) (*StreamServer, error) {
	if config.ListenAddr == "" || config.Interval <= 0 {
		return nil, fmt.Errorf("%w: listen address and positive interval required", ErrInvalidConfig)
	}
	if config.Path == "" {
		config.Path = "/ws"
	}
	if !strings.HasPrefix(config.Path, "/") {
		config.Path = "/" + config.Path
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &StreamServer{
		config:  config,
		source:  source,
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}, nil
}

// Handler serves the websocket endpoint and a plain JSON snapshot at /snapshot.
func (s *StreamServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.handleWebSocket)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	return mux
}

// Addr returns the bound address once Run has started listening.
func (s *StreamServer) Addr() string {
	if v, ok := s.addr.Load().(string); ok {
		return v
	}
	return ""
}

// ClientCount returns the number of connected websocket clients.
func (s *StreamServer) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Run listens and broadcasts until ctx is cancelled, then shuts down.
func (s *StreamServer) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}
	defer s.running.Store(false)

	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}
	s.addr.Store(ln.Addr().String())
	s.server = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	s.logger.Info("stream listening", log.String("addr", ln.Addr().String()), log.String("path", s.config.Path))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return s.shutdown()
			case <-ticker.C:
				if _, err := s.BroadcastOnce(); err != nil {
					s.logger.Warn("broadcast failed", log.Error(err))
				}
			}
		}
	})
	return g.Wait()
}

func (s *StreamServer) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.mu.Lock()
	for conn := range s.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		delete(s.clients, conn)
	}
	s.mu.Unlock()

	s.logger.Info("stream stopped")
	return s.server.Shutdown(ctx)
}

// BroadcastOnce sends the current snapshot to every client unless it is
// byte-identical to the last frame broadcast. It reports whether a frame went out.
func (s *StreamServer) BroadcastOnce() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clients) == 0 {
		return false, nil
	}

	buf := framePool.Get()
	defer framePool.Put(buf)
	frame, err := encodeFrame(buf, s.source.Snapshot())
	if err != nil {
		return false, err
	}
	hash := xxhash.Sum64(frame)
	if s.hasLast && hash == s.lastHash {
		return false, nil
	}
	s.lastHash, s.hasLast = hash, true

	var errs error
	for conn := range s.clients {
		if err := writeFrame(conn, frame); err != nil {
			errs = errors.Join(errs, err)
			_ = conn.Close()
			delete(s.clients, conn)
		}
	}
	return true, errs
}

func writeFrame(conn *websocket.Conn, frame []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, frame)
}

func (s *StreamServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.source.Snapshot()); err != nil {
		s.logger.Warn("snapshot encode failed", log.Error(err))
	}
}

func (s *StreamServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	buf := framePool.Get()
	frame, err := encodeFrame(buf, s.source.Snapshot())
	if err == nil {
		s.mu.Lock()
		err = writeFrame(conn, frame)
		if err == nil {
			s.clients[conn] = struct{}{}
		}
		s.mu.Unlock()
	}
	framePool.Put(buf)
	if err != nil {
		s.logger.Warn("initial snapshot failed", log.Error(err))
		_ = conn.Close()
		return
	}

	s.logger.Debug("stream client connected", log.String("remote", conn.RemoteAddr().String()))

	// Clients never send anything meaningful; reading only detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		_ = conn.Close()
	}
	s.mu.Unlock()
	s.logger.Debug("stream client disconnected", log.String("remote", conn.RemoteAddr().String()))
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/filter"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/models"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/querysync"
)

const (
	liveReadLimit    = 4096
	livePongWait     = 60 * time.Second
	livePingPeriod   = 50 * time.Second
	liveWriteWait    = 5 * time.Second
	liveFetchTimeout = 20 * time.Second
)

// Inbound message types
const (
	liveHydrate  = "hydrate"
	liveSet      = "set"
	liveToggle   = "toggle"
	liveReset    = "reset"
	liveNavigate = "navigate"
)

var errNotHydrated = errors.New("session not hydrated")

// InventorySource returns the full, unfiltered inventory
type InventorySource interface {
	Inventory(ctx context.Context) ([]*models.Vehicle, error)
}

// LiveHandler runs one filter session per WebSocket connection. The client
// mirrors every "replace" event into its address bar.
type LiveHandler struct {
	upgrader  websocket.Upgrader
	inventory InventorySource
	window    time.Duration
}

// NewLiveHandler creates the live filter endpoint. An empty origin list or
// "*" accepts every origin.
func NewLiveHandler(inventory InventorySource, allowedOrigins []string, window time.Duration) *LiveHandler {
	return &LiveHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		inventory: inventory,
		window:    window,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 || slices.Contains(allowed, "*") {
			return true
		}
		return slices.Contains(allowed, origin)
	}
}

type liveRequest struct {
	Type  string `json:"type"`
	Query string `json:"query"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type stateEvent struct {
	Type     string            `json:"type"`
	Session  string            `json:"session"`
	State    string            `json:"state"`
	Query    string            `json:"query"`
	Criteria filter.Criteria   `json:"criteria"`
	Count    int               `json:"count"`
	Vehicles []*models.Vehicle `json:"vehicles"`
	Options  filter.Options    `json:"options"`
}

type replaceEvent struct {
	Type  string `json:"type"`
	Query string `json:"query"`
}

type errorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Serve godoc
// @Summary Live filter session
// @Description Upgrades to a WebSocket. Send {"type":"hydrate","query":"?q=golf"} first, then set/toggle/reset/navigate messages. The server answers with state snapshots and debounced replace events carrying the canonical query string.
// @Tags vehicles
// @Success 101 {string} string "Switching Protocols"
// @Failure 403 {object} map[string]string "error: Origin not allowed"
// @Router /api/live [get]
func (h *LiveHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("Live upgrade failed", "ip", c.ClientIP(), "err", err)
		return
	}

	s := &liveSession{
		id:      uuid.NewString(),
		conn:    conn,
		handler: h,
	}
	log.Debug("Live session opened", "session", s.id, "ip", c.ClientIP())

	done := make(chan struct{})
	go s.pingLoop(done)
	s.readLoop(c.Request.Context())
	close(done)
	s.close()

	log.Debug("Live session closed", "session", s.id)
}

// liveSession is the page instance behind one connection. It is the
// engine's Location.
type liveSession struct {
	id      string
	conn    *websocket.Conn
	handler *LiveHandler

	wmu sync.Mutex

	mu      sync.Mutex
	engine  *querysync.Engine
	options filter.Options
}

func (s *liveSession) readLoop(ctx context.Context) {
	s.conn.SetReadLimit(liveReadLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(livePongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("Live read failed", "session", s.id, "err", err)
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(livePongWait))

		var req liveRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			s.sendError("invalid message")
			continue
		}
		if err := s.handle(ctx, req); err != nil {
			s.sendError(err.Error())
		}
	}
}

func (s *liveSession) handle(ctx context.Context, req liveRequest) error {
	if req.Type == liveHydrate {
		return s.hydrate(ctx, req.Query)
	}

	s.mu.Lock()
	engine := s.engine
	s.mu.Unlock()
	if engine == nil {
		return errNotHydrated
	}

	switch req.Type {
	case liveSet:
		check := filter.Default()
		if !check.Set(req.Key, req.Value) {
			return errors.New("unknown key " + req.Key)
		}
		engine.Edit(func(c *filter.Criteria) { c.Set(req.Key, req.Value) })
	case liveToggle:
		if strings.Contains(req.Value, ",") {
			return errors.New("value must not contain a comma")
		}
		switch req.Key {
		case filter.KeyBrand:
			engine.Edit(func(c *filter.Criteria) { c.ToggleBrand(req.Value) })
		case filter.KeyFuel:
			engine.Edit(func(c *filter.Criteria) { c.ToggleFuel(req.Value) })
		default:
			return errors.New("key " + req.Key + " cannot be toggled")
		}
	case liveReset:
		engine.Edit(func(c *filter.Criteria) { c.Reset() })
	case liveNavigate:
		engine.Navigate(req.Query)
	default:
		return errors.New("unknown message type " + req.Type)
	}
	return nil
}

// hydrate loads the inventory fresh and starts a new engine from the
// page's query string. A second hydrate replaces the engine.
func (s *liveSession) hydrate(ctx context.Context, query string) error {
	ctx, cancel := context.WithTimeout(ctx, liveFetchTimeout)
	defer cancel()

	inventory, err := s.handler.inventory.Inventory(ctx)
	if err != nil {
		log.Error("Live inventory fetch failed", "session", s.id, "err", err)
		return errors.New("Fahrzeuge konnten nicht geladen werden.")
	}

	s.mu.Lock()
	if s.engine != nil {
		s.engine.Close()
	}
	s.options = filter.BuildOptions(inventory)
	s.mu.Unlock()

	engine := querysync.New(inventory, s, query,
		querysync.WithWindow(s.handler.window),
		querysync.WithOnChange(s.sendState),
	)

	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()
	return nil
}

// Replace implements querysync.Location
func (s *liveSession) Replace(query string) error {
	return s.write(replaceEvent{Type: "replace", Query: query})
}

func (s *liveSession) sendState(snap querysync.Snapshot) {
	s.mu.Lock()
	options := s.options
	s.mu.Unlock()

	vehicles := snap.Vehicles
	if vehicles == nil {
		vehicles = []*models.Vehicle{}
	}
	err := s.write(stateEvent{
		Type:     "state",
		Session:  s.id,
		State:    snap.State.String(),
		Query:    snap.Query,
		Criteria: snap.Criteria,
		Count:    len(vehicles),
		Vehicles: vehicles,
		Options:  options,
	})
	if err != nil {
		log.Debug("Live state not delivered", "session", s.id, "err", err)
	}
}

func (s *liveSession) sendError(msg string) {
	_ = s.write(errorEvent{Type: "error", Error: msg})
}

func (s *liveSession) write(v any) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
	return s.conn.WriteJSON(v)
}

func (s *liveSession) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.wmu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait))
			s.wmu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func (s *liveSession) close() {
	s.mu.Lock()
	if s.engine != nil {
		s.engine.Close()
	}
	s.mu.Unlock()
	_ = s.conn.Close()
}

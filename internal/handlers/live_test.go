package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type liveEvent struct {
	Type     string `json:"type"`
	State    string `json:"state"`
	Session  string `json:"session"`
	Query    string `json:"query"`
	Count    int    `json:"count"`
	Error    string `json:"error"`
	Vehicles []struct {
		ID string `json:"id"`
	} `json:"vehicles"`
	Options struct {
		Brands []struct {
			Value string `json:"value"`
		} `json:"brands"`
	} `json:"options"`
}

func startLiveServer(t *testing.T, ads *fakeAds, origins []string, window time.Duration) *httptest.Server {
	t.Helper()
	live := NewLiveHandler(NewVehicleHandler(ads, ""), origins, window)
	r := gin.New()
	r.GET("/api/live", live.Serve)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialLive(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) liveEvent {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev liveEvent
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return ev
}

func send(t *testing.T, conn *websocket.Conn, msg map[string]string) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestLiveSessionHydrateAndSync(t *testing.T) {
	srv := startLiveServer(t, newFakeAds(t), nil, 20*time.Millisecond)
	conn := dialLive(t, srv, nil)

	send(t, conn, map[string]string{"type": "hydrate", "query": "?q=golf"})
	ev := readEvent(t, conn)
	if ev.Type != "state" || ev.State != "idle" {
		t.Fatalf("expected idle state after hydrate, got %+v", ev)
	}
	if ev.Session == "" {
		t.Fatalf("expected a session id")
	}
	if ev.Count != 1 || ev.Vehicles[0].ID != "1002" {
		t.Fatalf("expected only the Golf, got %+v", ev.Vehicles)
	}
	if ev.Query != "?q=golf&sort=newest" {
		t.Fatalf("unexpected query %q", ev.Query)
	}
	if len(ev.Options.Brands) != 4 {
		t.Fatalf("expected options of the full inventory, got %d brands", len(ev.Options.Brands))
	}

	send(t, conn, map[string]string{"type": "set", "key": "q", "value": "opel"})
	ev = readEvent(t, conn)
	if ev.Type != "state" || ev.State != "editing" || ev.Count != 1 || ev.Vehicles[0].ID != "1003" {
		t.Fatalf("expected editing state with the Corsa, got %+v", ev)
	}

	ev = readEvent(t, conn)
	if ev.Type != "replace" || ev.Query != "?q=opel&sort=newest" {
		t.Fatalf("expected debounced replace, got %+v", ev)
	}

	ev = readEvent(t, conn)
	if ev.Type != "state" || ev.State != "idle" {
		t.Fatalf("expected idle after sync, got %+v", ev)
	}
}

func TestLiveSessionToggleResetNavigate(t *testing.T) {
	srv := startLiveServer(t, newFakeAds(t), nil, 100*time.Millisecond)
	conn := dialLive(t, srv, nil)

	send(t, conn, map[string]string{"type": "hydrate", "query": ""})
	if ev := readEvent(t, conn); ev.Count != 4 {
		t.Fatalf("expected the full inventory, got %d", ev.Count)
	}

	send(t, conn, map[string]string{"type": "toggle", "key": "fuel", "value": "DIESEL"})
	if ev := readEvent(t, conn); ev.Count != 1 || ev.Vehicles[0].ID != "1002" {
		t.Fatalf("expected only the diesel, got %+v", ev)
	}

	send(t, conn, map[string]string{"type": "reset"})
	if ev := readEvent(t, conn); ev.Count != 4 {
		t.Fatalf("expected reset to show everything, got %d", ev.Count)
	}

	send(t, conn, map[string]string{"type": "navigate", "query": "?brand=Opel,Skoda&sort=km"})
	ev := readEvent(t, conn)
	if ev.Type != "state" || ev.State != "idle" {
		t.Fatalf("expected navigate to land idle, got %+v", ev)
	}
	if ev.Count != 2 || ev.Vehicles[0].ID != "1003" || ev.Vehicles[1].ID != "1004" {
		t.Fatalf("expected Corsa then Fabia without mileage, got %+v", ev.Vehicles)
	}

	// Navigate cancelled the pending sync of the earlier edits.
	_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var extra liveEvent
	if err := conn.ReadJSON(&extra); err == nil {
		t.Fatalf("expected no further events, got %+v", extra)
	}
}

func TestLiveSessionErrors(t *testing.T) {
	srv := startLiveServer(t, newFakeAds(t), nil, 20*time.Millisecond)
	conn := dialLive(t, srv, nil)

	send(t, conn, map[string]string{"type": "set", "key": "q", "value": "golf"})
	if ev := readEvent(t, conn); ev.Type != "error" || ev.Error != errNotHydrated.Error() {
		t.Fatalf("expected not hydrated error, got %+v", ev)
	}

	send(t, conn, map[string]string{"type": "hydrate"})
	readEvent(t, conn)

	cases := []map[string]string{
		{"type": "set", "key": "colour", "value": "red"},
		{"type": "toggle", "key": "gearbox", "value": "MANUAL_GEAR"},
		{"type": "toggle", "key": "brand", "value": "Opel,Skoda"},
		{"type": "launch"},
	}
	for _, msg := range cases {
		send(t, conn, msg)
		if ev := readEvent(t, conn); ev.Type != "error" {
			t.Fatalf("expected error for %v, got %+v", msg, ev)
		}
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if ev := readEvent(t, conn); ev.Type != "error" || ev.Error != "invalid message" {
		t.Fatalf("expected invalid message error, got %+v", ev)
	}
}

func TestLiveSessionProviderFailure(t *testing.T) {
	ads := newFakeAds(t)
	ads.listErr = errors.New("mobile.de ads fetch failed: 503")
	srv := startLiveServer(t, ads, nil, 20*time.Millisecond)
	conn := dialLive(t, srv, nil)

	send(t, conn, map[string]string{"type": "hydrate", "query": "?q=golf"})
	ev := readEvent(t, conn)
	if ev.Type != "error" || ev.Error != "Fahrzeuge konnten nicht geladen werden." {
		t.Fatalf("expected provider error, got %+v", ev)
	}
}

func TestLiveOriginCheck(t *testing.T) {
	srv := startLiveServer(t, newFakeAds(t), []string{"https://autocenter-juelich.de"}, 20*time.Millisecond)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/live"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	if err == nil {
		t.Fatalf("expected foreign origin to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", resp)
	}

	dialLive(t, srv, http.Header{"Origin": {"https://autocenter-juelich.de"}})
}

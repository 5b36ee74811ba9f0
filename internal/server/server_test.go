package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/catalog"
	"github.com/muurk/wcagdemo/internal/logging"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logging.SetLogger(zap.NewNop())
	s := New(catalog.Default(), Config{}, zap.NewNop())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: status = %d, want %d (%s)", url, resp.StatusCode, wantStatus, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestListCases(t *testing.T) {
	s, ts := newTestServer(t)

	var all caseList
	getJSON(t, ts.URL+"/api/cases", http.StatusOK, &all)
	if all.Count != s.Catalog().Len() || len(all.Cases) != all.Count {
		t.Errorf("count = %d (%d cases), want %d", all.Count, len(all.Cases), s.Catalog().Len())
	}

	var operable caseList
	getJSON(t, ts.URL+"/api/cases?pillar=Operable", http.StatusOK, &operable)
	if operable.Count == 0 {
		t.Fatal("no operable cases")
	}
	for _, c := range operable.Cases {
		if c.Pillar != catalog.PillarOperable {
			t.Errorf("pillar filter returned %s (%s)", c.ID, c.Pillar)
		}
	}

	var found caseList
	getJSON(t, ts.URL+"/api/cases?q=keyboard+trap", http.StatusOK, &found)
	hit := false
	for _, c := range found.Cases {
		hit = hit || c.ID == "wcag-2-1-2"
	}
	if !hit {
		t.Errorf("search for keyboard trap missed wcag-2-1-2: %+v", found.Cases)
	}

	var none caseList
	getJSON(t, ts.URL+"/api/cases?pillar=robust&q=keyboard+trap", http.StatusOK, &none)
	for _, c := range none.Cases {
		if c.Pillar != catalog.PillarRobust {
			t.Errorf("search ignored the pillar filter: %s", c.ID)
		}
	}

	var bad errorResponse
	getJSON(t, ts.URL+"/api/cases?pillar=sturdy", http.StatusBadRequest, &bad)
	if bad.Status != http.StatusBadRequest || !strings.Contains(bad.Error, "sturdy") {
		t.Errorf("error body = %+v", bad)
	}
}

func TestGetCase(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		ref string
	}{
		{"wcag-2-1-2"},
		{"2.1.2"},
	}
	for _, tt := range tests {
		var c catalog.Case
		getJSON(t, ts.URL+"/api/cases/"+tt.ref, http.StatusOK, &c)
		if c.ID != "wcag-2-1-2" || c.Name != "No keyboard trap" {
			t.Errorf("GET %s = %s %q", tt.ref, c.ID, c.Name)
		}
		if c.Pillar != catalog.PillarOperable {
			t.Errorf("Pillar = %q, want operable", c.Pillar)
		}
	}

	var missing errorResponse
	getJSON(t, ts.URL+"/api/cases/nope", http.StatusNotFound, &missing)
	if !strings.Contains(missing.Error, "nope") {
		t.Errorf("error = %q", missing.Error)
	}
}

func TestFocusable(t *testing.T) {
	_, ts := newTestServer(t)

	var accessible focusableResponse
	getJSON(t, ts.URL+"/api/cases/wcag-2-1-2/focusable", http.StatusOK, &accessible)
	if accessible.Variant != catalog.VariantAccessible {
		t.Errorf("default variant = %q", accessible.Variant)
	}
	var ids []string
	for _, el := range accessible.Elements {
		ids = append(ids, el.ID)
	}
	if got := strings.Join(ids, ","); got != "dlg-name,dlg-save,dlg-close" {
		t.Errorf("focusable ids = %s", got)
	}

	var inaccessible focusableResponse
	getJSON(t, ts.URL+"/api/cases/wcag-2-1-2/focusable?variant=inaccessible", http.StatusOK, &inaccessible)
	if len(inaccessible.Elements) != 1 || inaccessible.Elements[0].Tag != "div" {
		t.Errorf("inaccessible elements = %+v, want the tabindex div", inaccessible.Elements)
	}

	getJSON(t, ts.URL+"/api/cases/wcag-2-1-2/focusable?variant=both", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/api/cases/nope/focusable", http.StatusNotFound, nil)
}

func TestHealthzAndMetrics(t *testing.T) {
	s, ts := newTestServer(t)

	var health healthResponse
	getJSON(t, ts.URL+"/healthz", http.StatusOK, &health)
	if health.Status != "ok" || health.Cases != s.Catalog().Len() || health.Version == "" {
		t.Errorf("healthz = %+v", health)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		`wcagdemo_http_requests_total{code="200",method="GET"} 1`,
		"wcagdemo_trap_sessions_active 0",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestSetCatalog(t *testing.T) {
	s, ts := newTestServer(t)

	cat, err := catalog.Parse([]byte("version: 1\ncases:\n  - {id: only, criterion: 2.1.2, name: Only, inaccessible: x, accessible: y}\n"))
	if err != nil {
		t.Fatal(err)
	}
	s.SetCatalog(cat)
	s.SetCatalog(nil)

	var list caseList
	getJSON(t, ts.URL+"/api/cases", http.StatusOK, &list)
	if list.Count != 1 || list.Cases[0].ID != "only" {
		t.Errorf("cases after SetCatalog = %+v", list.Cases)
	}
}

func dialTrap(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/trap"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg any) ServerMessage {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	var reply ServerMessage
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("read: %v", err)
	}
	return reply
}

func TestTrapSocket(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dialTrap(t, ts)

	var hello ServerMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatal(err)
	}
	if hello.Type != MsgState || hello.Session == "" || hello.State != "unconfigured" {
		t.Fatalf("first message = %+v", hello)
	}
	if s.ActiveSessions() != 1 {
		t.Errorf("ActiveSessions() = %d, want 1", s.ActiveSessions())
	}

	reply := roundTrip(t, conn, ClientMessage{Type: MsgLoad, HTML: sessionHTML, Boundary: "dialog"})
	if reply.Session != hello.Session || reply.State != "configured" || len(reply.Focusable) != 3 {
		t.Fatalf("load reply = %+v", reply)
	}

	roundTrip(t, conn, ClientMessage{Type: MsgFocus, ID: "close"})
	reply = roundTrip(t, conn, ClientMessage{Type: MsgKey, Key: "Tab"})
	if !reply.Handled || reply.Action != "wrapped" || reply.Focused != "name" {
		t.Errorf("Tab reply = %+v", reply)
	}

	reply = roundTrip(t, conn, ClientMessage{Type: "bogus"})
	if reply.Type != MsgError {
		t.Errorf("bogus reply = %+v", reply)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatal(err)
	}
	if reply.Type != MsgError || !strings.Contains(reply.Message, "invalid message") {
		t.Errorf("malformed frame reply = %+v", reply)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{
		`wcagdemo_trap_keys_total{action="wrapped"} 1`,
		"wcagdemo_trap_sessions_active 1",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	deadline := time.Now().Add(2 * time.Second)
	for s.ActiveSessions() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.ActiveSessions() != 0 {
		t.Errorf("ActiveSessions() = %d after close, want 0", s.ActiveSessions())
	}
}

func TestTrapSocketRequiresUpgrade(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/ws/trap")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a plain GET", resp.StatusCode)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	logging.SetLogger(zap.NewNop())
	s := New(catalog.Default(), Config{}, zap.NewNop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()
	resp, err := http.Get(base + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()

	url := "ws://" + ln.Addr().String() + "/ws/trap"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	var hello ServerMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatal(err)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("open session got %v, want a going-away close", err)
	}
}

func TestRunBadAddress(t *testing.T) {
	s := New(nil, Config{Addr: "256.0.0.1:bad"}, zap.NewNop())
	if err := s.Run(context.Background()); err == nil {
		t.Error("Run() with a bad address should fail")
	}
}

// Package server exposes the case catalog and remote focus trap sessions
// over HTTP.
//
// # Endpoints
//
//	GET /api/cases[?pillar=operable&q=focus]   list cases
//	GET /api/cases/{id}                         one case, by id or criterion
//	GET /api/cases/{id}/focusable?variant=      focusable elements of an example
//	GET /ws/trap                                websocket trap session
//	GET /healthz                                status, version and case count
//	GET /metrics                                Prometheus metrics
//
// # Trap Sessions
//
// A websocket connection on /ws/trap gets a fresh session with a random
// id. The client loads a document, points the trap at a boundary and then
// drives it with key events, one JSON message per frame:
//
//	{"type":"load","html":"<div id=\"dialog\">...</div>","boundary":"dialog","mode":"tab"}
//	{"type":"focus","id":"dlg-close"}
//	{"type":"key","key":"Tab"}
//	{"type":"insert","after":"dlg-name","html":"<button id=\"extra\">Extra</button>"}
//	{"type":"configure","boundary":"dialog","mode":"tab_and_arrow_keys"}
//	{"type":"state"}
//
// Every message gets one reply. A "state" reply lists the focused element,
// the trapped elements in order and, for key messages, what the trap did:
//
//	{"type":"state","session":"…","state":"configured","mode":"tab",
//	 "boundary":"dialog","focused":"dlg-name",
//	 "focusable":["dlg-name","dlg-save","dlg-close"],
//	 "handled":true,"action":"wrapped"}
//
// Failed requests get {"type":"error","message":"..."} and leave the
// session unchanged. A Tab the trap does not handle moves focus along the
// document's tab order.
//
// # Lifecycle
//
// Serve runs until its context is cancelled. Shutdown closes open sessions
// with a going-away frame, drains HTTP requests for up to ShutdownTimeout
// and withdraws the mDNS registration when Config.Advertise is set.
package server

package server

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/muurk/wcagdemo/internal/dom"
	"github.com/muurk/wcagdemo/internal/focustrap"
	"github.com/muurk/wcagdemo/internal/logging"
)

// Client message types.
const (
	MsgLoad      = "load"
	MsgConfigure = "configure"
	MsgFocus     = "focus"
	MsgKey       = "key"
	MsgInsert    = "insert"
	MsgState     = "state"
)

// MsgError is the type of a reply reporting a failed request.
const MsgError = "error"

// ErrNoDocument is returned for requests that need a loaded document.
var ErrNoDocument = errors.New("no document loaded")

// ClientMessage is a request on a trap session. Which fields apply
// depends on Type.
type ClientMessage struct {
	Type string `json:"type"`

	// load, insert
	HTML string `json:"html,omitempty"`
	// load, configure
	Boundary string `json:"boundary,omitempty"`
	Mode     string `json:"mode,omitempty"`
	// focus
	ID string `json:"id,omitempty"`
	// key
	Key   string `json:"key,omitempty"`
	Shift bool   `json:"shift,omitempty"`
	// insert
	After string `json:"after,omitempty"`
}

// ServerMessage is the reply to every client message. Elements are
// referenced by id, or by tag and label when they have none.
type ServerMessage struct {
	Type      string   `json:"type"`
	Session   string   `json:"session"`
	State     string   `json:"state,omitempty"`
	Mode      string   `json:"mode,omitempty"`
	Boundary  string   `json:"boundary,omitempty"`
	Focused   string   `json:"focused,omitempty"`
	Focusable []string `json:"focusable"`
	Handled   bool     `json:"handled"`
	Action    string   `json:"action,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// TrapSession is one remote document with a focus trap attached. It is
// not safe for concurrent use; the websocket handler owns it.
type TrapSession struct {
	id     string
	logger *zap.Logger

	doc  *dom.Document
	trap *focustrap.Trap

	// onKey observes the action taken for every key message.
	onKey func(focustrap.Action)
}

// NewTrapSession creates an empty session. Only load and state are valid
// until a document is loaded.
func NewTrapSession(id string, logger *zap.Logger) *TrapSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrapSession{id: id, logger: logger.With(zap.String("session", id))}
}

// ID returns the session id.
func (s *TrapSession) ID() string {
	return s.id
}

// Close detaches the trap.
func (s *TrapSession) Close() {
	if s.trap != nil {
		s.trap.Detach()
	}
}

// Handle applies msg and returns the reply.
func (s *TrapSession) Handle(msg ClientMessage) ServerMessage {
	var (
		res focustrap.Result
		err error
	)
	switch msg.Type {
	case MsgLoad:
		err = s.load(msg)
	case MsgConfigure:
		err = s.configure(msg)
	case MsgFocus:
		err = s.focus(msg.ID)
	case MsgKey:
		res, err = s.key(msg.Key, msg.Shift)
	case MsgInsert:
		err = s.insert(msg.After, msg.HTML)
	case MsgState:
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		s.logger.Debug("request failed", zap.String("type", msg.Type), zap.Error(err))
		return ServerMessage{Type: MsgError, Session: s.id, Focusable: []string{}, Message: err.Error()}
	}

	reply := s.State()
	reply.Handled = res.Handled
	if msg.Type == MsgKey {
		reply.Action = res.Action.String()
	}
	return reply
}

// State describes the session without changing it.
func (s *TrapSession) State() ServerMessage {
	msg := ServerMessage{
		Type:      MsgState,
		Session:   s.id,
		State:     focustrap.StateUnconfigured.String(),
		Focusable: []string{},
	}
	if s.doc == nil || s.trap == nil {
		return msg
	}
	msg.State = s.trap.State().String()
	msg.Mode = s.trap.Mode().String()
	msg.Boundary = s.trap.BoundaryID()
	msg.Focused = ref(s.doc.ActiveElement())
	for _, el := range s.trap.Focusable() {
		msg.Focusable = append(msg.Focusable, ref(dom.FromTrap(el)))
	}
	return msg
}

func (s *TrapSession) load(msg ClientMessage) error {
	mode, err := focustrap.ParseMode(msg.Mode)
	if err != nil {
		return err
	}
	doc, err := dom.ParseString(msg.HTML)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	s.Close()
	s.doc = doc
	s.trap = focustrap.New(dom.TrapHost(doc.Root()), doc.TrapDocument(),
		focustrap.WithLogger(s.logger),
	)
	s.trap.Configure(msg.Boundary, mode)
	s.logger.Debug("document loaded",
		zap.String("boundary", msg.Boundary),
		zap.Stringer("mode", mode),
		zap.Int("focusable", len(s.trap.Focusable())),
	)
	return nil
}

func (s *TrapSession) configure(msg ClientMessage) error {
	if s.trap == nil {
		return ErrNoDocument
	}
	mode, err := focustrap.ParseMode(msg.Mode)
	if err != nil {
		return err
	}
	s.trap.Configure(msg.Boundary, mode)
	return nil
}

// focus moves focus to the element with id. An empty id blurs.
func (s *TrapSession) focus(id string) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	if id == "" {
		s.doc.Blur()
		return nil
	}
	el := s.doc.ElementByID(id)
	if el == nil {
		return fmt.Errorf("no element with id %q", id)
	}
	s.doc.Focus(el)
	return nil
}

// key delivers a key to the trap. A Tab the trap lets through moves focus
// along the document's tab order, as the browser would.
func (s *TrapSession) key(key string, shift bool) (focustrap.Result, error) {
	if s.trap == nil {
		return focustrap.Result{}, ErrNoDocument
	}
	if key == "" {
		return focustrap.Result{}, errors.New("key is required")
	}

	from := ref(s.doc.ActiveElement())
	res := s.trap.HandleKeyDown(focustrap.KeyEvent{Key: key, Shift: shift})
	if !res.Handled && key == focustrap.KeyTab {
		if next := s.doc.NextTabStop(shift); next != nil {
			s.doc.Focus(next)
		}
	}

	logging.LogKeyEvent("session:"+s.id, key, shift, res.Action.String())
	if to := ref(s.doc.ActiveElement()); to != from {
		logging.LogFocusMove("session:"+s.id, from, to)
	}
	if s.onKey != nil {
		s.onKey(res.Action)
	}
	return res, nil
}

func (s *TrapSession) insert(after, fragment string) error {
	if s.trap == nil {
		return ErrNoDocument
	}
	refEl := s.doc.ElementByID(after)
	if refEl == nil {
		return fmt.Errorf("no element with id %q", after)
	}
	if _, err := s.doc.InsertAfter(refEl, fragment); err != nil {
		return err
	}
	// Rescan so the reply lists the new elements.
	s.trap.Configure(s.trap.BoundaryID(), s.trap.Mode())
	return nil
}

func ref(el *dom.Element) string {
	if el == nil {
		return ""
	}
	if id := el.ID(); id != "" {
		return id
	}
	return el.String()
}

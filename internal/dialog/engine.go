package dialog

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"github.com/avdeev87/fitcoach/internal/errs"
	"github.com/avdeev87/fitcoach/internal/model"
)

// ErrorReply is sent when a flow aborts on an internal fault.
const ErrorReply = "Something went wrong, please try again later."

// Reply is the engine's answer to one inbound event.
type Reply struct {
	// Messages are plain texts sent before any prompt.
	Messages []string
	// Prompt is the next step's prompt; nil when the flow has ended.
	Prompt *Prompt
	// Done reports that the flow completed or aborted.
	Done bool
}

// session holds one user's dialogue state. Menus pushed before a flow
// begins survive it; menus the flow's own prompts push are dropped when
// the flow ends or is cancelled, so back navigation only ever lands on
// menus the router can render.
type session struct {
	mu       sync.Mutex
	flow     FlowID
	state    StateID
	fc       Context
	menus    []MenuID
	menuBase int
}

func (s *session) resetFlow() {
	if s.flow != "" && s.menuBase <= len(s.menus) {
		s.menus = s.menus[:s.menuBase]
	}
	s.flow, s.state, s.fc = "", "", nil
}

// Engine drives one active flow per user. Events for the same user are
// serialized on the session lock; different users proceed concurrently.
type Engine struct {
	mu    sync.Mutex
	flows map[FlowID]*Flow
	users map[model.UserID]*session
	log   *zap.Logger
}

// NewEngine constructs an engine with no registered flows.
func NewEngine(log *zap.Logger) *Engine {
	return &Engine{
		flows: make(map[FlowID]*Flow),
		users: make(map[model.UserID]*session),
		log:   log,
	}
}

// Register adds a flow definition. Flow ids must be unique.
func (e *Engine) Register(f *Flow) error {
	if f.ID == "" || f.Entry == "" {
		return fmt.Errorf("dialog: flow %q: missing id or entry state", f.ID)
	}
	if _, ok := f.States[f.Entry]; !ok {
		return fmt.Errorf("dialog: flow %q: entry state %q not defined", f.ID, f.Entry)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.flows[f.ID]; ok {
		return fmt.Errorf("dialog: flow %q: %w", f.ID, errs.ErrAlreadyExists)
	}
	e.flows[f.ID] = f
	return nil
}

func (e *Engine) sessionFor(userID model.UserID) *session {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.users[userID]
	if !ok {
		s = &session{}
		e.users[userID] = s
	}
	return s
}

// Begin starts a flow for the user, silently discarding any flow
// already in progress, and returns the entry prompt.
func (e *Engine) Begin(userID model.UserID, flowID FlowID, initial Context) (Prompt, error) {
	e.mu.Lock()
	f, ok := e.flows[flowID]
	e.mu.Unlock()
	if !ok {
		return Prompt{}, fmt.Errorf("dialog: begin %q: %w", flowID, errs.ErrUnknownFlow)
	}

	s := e.sessionFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetFlow()
	s.menuBase = len(s.menus)
	s.flow = f.ID
	s.state = f.Entry
	if initial == nil {
		s.fc = Context{}
	} else {
		s.fc = initial.clone()
	}

	p := f.States[f.Entry].Prompt(s.fc)
	if p.Menu != "" {
		s.menus = append(s.menus, p.Menu)
	}
	return p, nil
}

// Active reports the user's current flow, if any.
func (e *Engine) Active(userID model.UserID) (FlowID, bool) {
	s := e.sessionFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow, s.flow != ""
}

// Cancel discards the user's flow state and context without touching
// persisted data. Menus shown before the flow began stay on the stack.
func (e *Engine) Cancel(userID model.UserID) {
	s := e.sessionFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetFlow()
}

// HandleInput advances the user's active flow with one event. On
// validation failure the state and context are left untouched and the
// same prompt is re-emitted with a corrective message. A handler panic
// aborts the flow to idle without affecting other users.
func (e *Engine) HandleInput(ctx context.Context, userID model.UserID, in Input) (reply Reply, err error) {
	s := e.sessionFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flow == "" {
		return Reply{}, errs.ErrNoActiveFlow
	}

	e.mu.Lock()
	f, ok := e.flows[s.flow]
	e.mu.Unlock()
	if !ok {
		s.resetFlow()
		return Reply{Messages: []string{ErrorReply}, Done: true}, fmt.Errorf("dialog: active flow %q: %w", s.flow, errs.ErrUnknownFlow)
	}
	st, ok := f.States[s.state]
	if !ok {
		flow, state := s.flow, s.state
		s.resetFlow()
		return Reply{Messages: []string{ErrorReply}, Done: true}, fmt.Errorf("dialog: flow %q has no state %q", flow, state)
	}

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("flow handler panic",
				zap.String("user", string(userID)),
				zap.String("flow", string(f.ID)),
				zap.String("state", string(s.state)),
				zap.Any("reason", r),
				zap.ByteString("stack", debug.Stack()),
			)
			s.resetFlow()
			reply = Reply{Messages: []string{ErrorReply}, Done: true}
			err = nil
		}
	}()

	res := st.Handle(ctx, s.fc.clone(), in)

	if res.Invalid != "" {
		p := st.Prompt(s.fc)
		return Reply{Messages: []string{res.Invalid}, Prompt: &p}, nil
	}

	for k, v := range res.Set {
		if s.fc == nil {
			s.fc = Context{}
		}
		s.fc[k] = v
	}

	if res.Done {
		s.resetFlow()
		var msgs []string
		if res.Reply != "" {
			msgs = append(msgs, res.Reply)
		}
		return Reply{Messages: msgs, Done: true}, nil
	}

	next, ok := f.States[res.Next]
	if !ok {
		flow := s.flow
		s.resetFlow()
		return Reply{Messages: []string{ErrorReply}, Done: true}, fmt.Errorf("dialog: flow %q transition to unknown state %q", flow, res.Next)
	}
	s.state = res.Next

	p := next.Prompt(s.fc)
	if p.Menu != "" {
		s.menus = append(s.menus, p.Menu)
	}
	var msgs []string
	if res.Reply != "" {
		msgs = append(msgs, res.Reply)
	}
	return Reply{Messages: msgs, Prompt: &p}, nil
}

// PushMenu records a rendered menu for back navigation. Re-showing the
// menu already on top does not deepen the stack.
func (e *Engine) PushMenu(userID model.UserID, m MenuID) {
	s := e.sessionFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.menus); n > 0 && s.menus[n-1] == m {
		return
	}
	s.menus = append(s.menus, m)
}

// CurrentMenu returns the menu on top of the stack without popping it.
func (e *Engine) CurrentMenu(userID model.UserID) (MenuID, bool) {
	s := e.sessionFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.menus) == 0 {
		return "", false
	}
	return s.menus[len(s.menus)-1], true
}

// PopMenu removes the most recent menu and returns the one to show
// now: the menu below it on the stack.
func (e *Engine) PopMenu(userID model.UserID) (MenuID, bool) {
	s := e.sessionFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.menus) == 0 {
		return "", false
	}
	s.menus = s.menus[:len(s.menus)-1]
	if len(s.menus) == 0 {
		return "", false
	}
	return s.menus[len(s.menus)-1], true
}

// ResetMenus clears the user's menu history, e.g. on jump to main menu.
func (e *Engine) ResetMenus(userID model.UserID) {
	s := e.sessionFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus = nil
}

// MenuDepth reports the current menu stack depth.
func (e *Engine) MenuDepth(userID model.UserID) int {
	s := e.sessionFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.menus)
}

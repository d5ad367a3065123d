package core

import (
	"errors"

	"github.com/leukipp/tylewm/store"
	"github.com/leukipp/tylewm/xconn"

	log "github.com/sirupsen/logrus"
)

// WindowManager owns the single event-loop thread: it establishes grabs,
// runs the startup hook, then reads and dispatches events until a handler
// returns ErrExit or the connection closes.
type WindowManager struct {
	State *State
	Conn  xconn.XConn
}

// NewWindowManager detects the current screens via conn and builds the
// initial StackSet from cfg.
func NewWindowManager(conn xconn.XConn, cfg *Config) (*WindowManager, error) {
	rects, err := conn.ScreenDetails()
	if err != nil {
		return nil, err
	}
	clientSet, err := store.NewStackSet(cfg.Tags, rects, cfg.NewLayouts, cfg.InvisibleTags)
	if err != nil {
		return nil, err
	}
	state := NewState(clientSet, cfg, conn.Root())
	return &WindowManager{State: state, Conn: conn}, nil
}

// Run grabs the configured bindings, runs the startup hook, adopts any
// windows that already exist, and blocks processing events until exit.
func (wm *WindowManager) Run() error {
	if err := wm.Conn.Grab(keyCodesOf(wm.State.Config.KeyBindings), mouseStatesOf(wm.State.Config.MouseBindings)); err != nil {
		return err
	}
	if err := wm.State.Config.StartupHook(wm.State, wm.Conn); err != nil {
		return err
	}
	if err := wm.adoptExistingClients(); err != nil {
		return err
	}
	log.WithFields(wm.State.Config.logFields()).Info("core: manager ready")

	for {
		ev, err := wm.Conn.NextEvent()
		if err != nil {
			return err
		}
		if err := wm.handle(ev); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
			log.WithFields(log.Fields{"event": ev}).WithError(err).Error("core: event handler failed")
		}
	}
}

func (wm *WindowManager) adoptExistingClients() error {
	ids, err := wm.Conn.ExistingClients()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := handleMapRequest(wm.State, wm.Conn, id); err != nil {
			return err
		}
	}
	return nil
}

func (wm *WindowManager) handle(ev xconn.XEvent) error {
	cont, err := wm.State.Config.EventHook(wm.State, wm.Conn, ev)
	if err != nil || !cont {
		return err
	}
	return dispatch(wm.State, wm.Conn, ev)
}

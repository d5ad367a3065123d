package core

import (
	"reflect"

	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/store"
)

// State is everything the event loop and its handlers operate on. It is
// owned by the single event-loop thread; nothing else may touch it.
type State struct {
	ClientSet *store.StackSet
	Config    *Config

	// Mapped tracks which clients are currently mapped on the X server.
	Mapped map[common.Xid]struct{}

	// PendingUnmap counts the UnmapNotify events the core expects to
	// ignore, one per unmap the core itself initiated (see refresh.go).
	PendingUnmap map[common.Xid]uint32

	Root common.Xid

	// Extensions holds interior-mutable per-extension state keyed by type,
	// so extensions never need a back-pointer into State.
	Extensions map[reflect.Type]interface{}

	// Diff holds the before/after snapshots of the most recent refresh,
	// for use by RefreshHook.
	Diff *store.Diff

	// lastPositions is the layout engine's output from the most recent
	// refresh, reused as the "before" snapshot's positions for the next one.
	lastPositions []store.Position

	// killedThisCycle collects clients explicitly destroyed during the
	// mutation passed to the refresh currently in flight.
	killedThisCycle []common.Xid
}

// RecordKill notes that id was explicitly destroyed as part of the current
// mutation, so the next Snapshot's Killed field reports it.
func (s *State) RecordKill(id common.Xid) {
	s.killedThisCycle = append(s.killedThisCycle, id)
}

// NewState builds a State around an already-constructed StackSet.
func NewState(clientSet *store.StackSet, cfg *Config, root common.Xid) *State {
	return &State{
		ClientSet:    clientSet,
		Config:       cfg,
		Mapped:       make(map[common.Xid]struct{}),
		PendingUnmap: make(map[common.Xid]uint32),
		Root:         root,
		Extensions:   make(map[reflect.Type]interface{}),
	}
}

// Extension fetches the extension state registered for type T, if any.
func Extension[T any](s *State) (T, bool) {
	var zero T
	v, ok := s.Extensions[reflect.TypeOf(zero)]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// SetExtension registers v as the extension state for its own type.
func SetExtension[T any](s *State, v T) {
	s.Extensions[reflect.TypeOf(v)] = v
}

// IsMapped reports whether id is currently mapped on the X server.
func (s *State) IsMapped(id common.Xid) bool {
	_, ok := s.Mapped[id]
	return ok
}

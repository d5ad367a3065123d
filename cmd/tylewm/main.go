// Command tylewm is the process entry point: it parses flags, builds a
// core.Config with a default key binding set, dials the X server and
// runs the window manager until exit.
package main

import (
	"fmt"
	"os"

	"github.com/leukipp/tylewm/bindings"
	"github.com/leukipp/tylewm/common"
	"github.com/leukipp/tylewm/core"
	"github.com/leukipp/tylewm/layout"
	"github.com/leukipp/tylewm/store"
	"github.com/leukipp/tylewm/xconn"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagTags     []string
	flagLogLevel string
	flagReplace  bool
	flagDisplay  string
)

func main() {
	root := &cobra.Command{
		Use:     common.Build.Name,
		Short:   "A tiling window manager core",
		Version: common.Build.Summary(),
		RunE:    run,
	}
	root.Flags().StringSliceVar(&flagTags, "tags", []string{"1", "2", "3", "4", "5"}, "workspace tags, in screen-assignment order")
	root.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	root.Flags().BoolVar(&flagReplace, "replace", false, "take over from a running window manager")
	root.Flags().StringVar(&flagDisplay, "display", "", "X display name, defaults to $DISPLAY")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	common.ConfigureLogging(flagLogLevel)

	conn, err := xconn.Dial(flagDisplay)
	if err != nil {
		return fmt.Errorf("tylewm: connect to X: %w", err)
	}

	cfg := core.NewConfig(flagTags, defaultLayouts)
	cfg.FocusFollowsMouse = true
	cfg.FloatingClasses = []string{"Pavucontrol", "Blueman-manager"}
	installDefaultBindings(cfg, conn)

	log.WithFields(log.Fields{"build": common.Build.Summary(), "tags": flagTags, "replace": flagReplace}).Info("tylewm: starting")

	wm, err := core.NewWindowManager(conn, cfg)
	if err != nil {
		return fmt.Errorf("tylewm: init window manager: %w", err)
	}
	return wm.Run()
}

func defaultLayouts() *layout.LayoutStack {
	return layout.NewLayoutStack(
		layout.MainAndStackSide(1, 0.55, 0.05, false),
		layout.NewCenteredMainHorizontal(0.55, 0.05),
		layout.Monocle{},
		layout.Tatami{},
	)
}

// X11 keycodes for a standard US layout, hardcoded rather than parsed from
// a key-spec string.
const (
	keyJ      uint8 = 44
	keyK      uint8 = 45
	keyH      uint8 = 43
	keyL      uint8 = 46
	keyQ      uint8 = 24
	keySpace  uint8 = 65
	keyReturn uint8 = 36
	keyDigit1 uint8 = 10
)

const (
	modSuper uint16 = 1 << 6
	modShift uint16 = 1 << 0
)

func installDefaultBindings(cfg *core.Config, conn xconn.XConn) {
	bind := func(code uint8, mask uint16, f func(*store.StackSet)) {
		cfg.KeyBindings[bindings.KeyCode{Mask: modSuper | mask, Code: code}] = func(s *core.State) error {
			return core.ModifyAndRefresh(s, conn, f)
		}
	}

	bind(keyJ, 0, func(ss *store.StackSet) { ss.FocusDown() })
	bind(keyK, 0, func(ss *store.StackSet) { ss.FocusUp() })
	bind(keyJ, modShift, func(ss *store.StackSet) {
		if s := ss.CurrentStack(); s != nil {
			s.SwapDown()
		}
	})
	bind(keyK, modShift, func(ss *store.StackSet) {
		if s := ss.CurrentStack(); s != nil {
			s.SwapUp()
		}
	})
	bind(keyH, 0, func(ss *store.StackSet) { ss.CurrentWorkspace().Layouts.HandleMessage(layout.ShrinkMain{}) })
	bind(keyL, 0, func(ss *store.StackSet) { ss.CurrentWorkspace().Layouts.HandleMessage(layout.ExpandMain{}) })
	bind(keyReturn, modShift, func(ss *store.StackSet) { ss.CurrentWorkspace().Layouts.HandleMessage(layout.IncMain(1)) })
	bind(keyReturn, modShift|modSuper, func(ss *store.StackSet) { ss.CurrentWorkspace().Layouts.HandleMessage(layout.IncMain(-1)) })
	bind(keySpace, 0, func(ss *store.StackSet) { ss.CurrentWorkspace().Layouts.NextLayout() })
	bind(keySpace, modShift, func(ss *store.StackSet) { ss.CurrentWorkspace().Layouts.PreviousLayout() })

	cfg.KeyBindings[bindings.KeyCode{Mask: modSuper, Code: keyQ}] = func(s *core.State) error {
		id, ok := s.ClientSet.CurrentClient()
		if !ok {
			return nil
		}
		if err := conn.Kill(id); err != nil {
			return err
		}
		s.RecordKill(id)
		return core.ModifyAndRefresh(s, conn, func(ss *store.StackSet) { ss.RemoveClient(id) })
	}

	for i, tag := range cfg.Tags {
		if i >= 9 {
			break
		}
		tag := tag
		code := keyDigit1 + uint8(i)
		cfg.KeyBindings[bindings.KeyCode{Mask: modSuper, Code: code}] = func(s *core.State) error {
			return core.ModifyAndRefresh(s, conn, func(ss *store.StackSet) { ss.FocusTag(tag) })
		}
		cfg.KeyBindings[bindings.KeyCode{Mask: modSuper | modShift, Code: code}] = func(s *core.State) error {
			id, ok := s.ClientSet.CurrentClient()
			if !ok {
				return nil
			}
			return core.ModifyAndRefresh(s, conn, func(ss *store.StackSet) { ss.MoveClientToTag(id, tag) })
		}
	}
}

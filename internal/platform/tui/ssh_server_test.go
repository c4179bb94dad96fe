package tui

import (
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionModelFlow(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
	m := NewSessionModel(store, cfg, log.New(io.Discard))

	if m.screen != screenMenu {
		t.Fatal("session should start in the menu")
	}

	// Pick the hard preset and start the first variant.
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected game", m.screen)
	}
	if got := m.game.GameState().Lives; got != 2 {
		t.Errorf("Lives = %d, expected hard preset", got)
	}

	// Launch, pause on the next tick, then go back.
	m = sessionUpdate(t, m, space)
	m = sessionUpdate(t, m, runes("p"))
	m = sessionUpdate(t, m, TickMsg{Gen: m.game.gen})
	if !m.game.GameState().Paused {
		t.Fatal("game should be paused")
	}
	m = sessionUpdate(t, m, runes("b"))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu after back", m.screen)
	}

	list, err := store.ListReplays("", 10)
	if err != nil {
		t.Fatalf("ListReplays: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("stored %d replays, expected the abandoned round", len(list))
	}

	// Tab opens the replay list, esc returns.
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenReplays {
		t.Fatalf("screen = %v, expected replays", m.screen)
	}
	if len(m.replays.replays) != 1 {
		t.Errorf("replay list shows %d rows, expected 1", len(m.replays.replays))
	}
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu", m.screen)
	}

	m = sessionUpdate(t, m, runes("q"))
	if !m.quitting || m.View() != "" {
		t.Error("q in the menu should end the session")
	}
}

func TestSessionModelWithoutStore(t *testing.T) {
	m := NewSessionModel(nil, core.DefaultConfig(), log.New(io.Discard))

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenMenu {
		t.Error("replay list needs a store")
	}
}

package tui

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// fakeGame records what the frame driver delivers. R restarts a finished
// run and Escape asks to exit, like the real game.
type fakeGame struct {
	resetErr error
	resets   int
	freed    int
	events   []core.KeyEvent
	clicks   []core.ClickEvent
	updates  []time.Duration
	state    core.GameState
	// finish, when set, ends the run with this score on the next Update.
	finish int
}

func (f *fakeGame) ID() string    { return "fake" }
func (f *fakeGame) Title() string { return "Fake" }
func (f *fakeGame) Free()         { f.freed++ }

func (f *fakeGame) Reset(core.RuntimeConfig) error {
	f.resets++
	return f.resetErr
}

func (f *fakeGame) HandleKey(ev core.KeyEvent) {
	f.events = append(f.events, ev)
	switch {
	case ev.Key == core.KeyEscape:
		f.state.Exit = true
	case ev.Key == core.KeyR && f.state.GameOver:
		f.state = core.GameState{}
	}
}

func (f *fakeGame) HandleClick(ev core.ClickEvent) { f.clicks = append(f.clicks, ev) }

func (f *fakeGame) Update(dt time.Duration) core.StepResult {
	f.updates = append(f.updates, dt)
	if f.finish > 0 {
		f.state = core.GameState{Score: f.finish, GameOver: true}
		f.finish = 0
	}
	return core.StepResult{State: f.state}
}

func (f *fakeGame) Render(dst *core.Screen) {
	dst.DrawTextCentered(0, "FAKE")
}

func (f *fakeGame) State() core.GameState { return f.state }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return gm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewGameModelResetError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewGameModel(&fakeGame{resetErr: boom}, nil, testConfig())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
}

func TestGameModelKeyTranslation(t *testing.T) {
	g := &fakeGame{}
	m, err := NewGameModel(g, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	m, _ = send(t, m, runes("d"))
	m, _ = send(t, m, runes("d"))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = send(t, m, runes("x"))

	want := []core.KeyEvent{
		core.Press(core.KeyD),
		{Key: core.KeyD, Action: core.KeyRepeat},
		core.Release(core.KeyD),
		core.Press(core.KeyLeft),
		core.Press(core.KeySpace),
	}
	if !reflect.DeepEqual(g.events, want) {
		t.Fatalf("events = %v\nwant %v", g.events, want)
	}

	// Repeats stopped long ago: the next tick releases the held key.
	g.events = nil
	m, _ = send(t, m, TickMsg(time.Now().Add(time.Second)))
	if want := []core.KeyEvent{core.Release(core.KeyLeft)}; !reflect.DeepEqual(g.events, want) {
		t.Errorf("tick events = %v, want %v", g.events, want)
	}
	if len(g.updates) != 1 {
		t.Errorf("updates = %d, want 1", len(g.updates))
	}
}

func TestGameModelFrameDeltaIsMeasured(t *testing.T) {
	g := &fakeGame{}
	m, err := NewGameModel(g, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	t0 := time.Unix(100, 0)
	m, _ = send(t, m, TickMsg(t0))
	m, _ = send(t, m, TickMsg(t0.Add(25*time.Millisecond)))
	_, cmd := send(t, m, TickMsg(t0.Add(5*time.Second)))

	want := []time.Duration{time.Second / 60, 25 * time.Millisecond, maxFrame}
	if !reflect.DeepEqual(g.updates, want) {
		t.Errorf("updates = %v, want %v", g.updates, want)
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestFrameDelta(t *testing.T) {
	t0 := time.Unix(100, 0)
	tests := []struct {
		name      string
		prev, now time.Time
		rate      int
		want      time.Duration
	}{
		{"first frame", time.Time{}, t0, 50, 20 * time.Millisecond},
		{"first frame default rate", time.Time{}, t0, 0, time.Second / 60},
		{"measured", t0, t0.Add(17 * time.Millisecond), 60, 17 * time.Millisecond},
		{"clamped", t0, t0.Add(time.Minute), 60, maxFrame},
		{"clock went back", t0, t0.Add(-time.Second), 60, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameDelta(tt.prev, tt.now, tt.rate); got != tt.want {
				t.Errorf("frameDelta = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGameModelSavesScoreOncePerRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &fakeGame{finish: 30}
	m, err := NewGameModel(g, store, testConfig(), WithPlayer("alice"))
	if err != nil {
		t.Fatal(err)
	}
	firstRun := m.RunID()

	t0 := time.Unix(100, 0)
	for i := 0; i < 3; i++ {
		m, _ = send(t, m, TickMsg(t0.Add(time.Duration(i)*time.Second)))
	}

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores after one run, want 1", len(scores))
	}
	if s := scores[0]; s.Score != 30 || s.Player != "alice" || s.RunID != firstRun {
		t.Errorf("saved %+v", s)
	}

	// Restart begins a new run with its own id.
	m, _ = send(t, m, runes("r"))
	if m.State().GameOver {
		t.Fatal("restart did not clear game over")
	}
	if m.RunID() == firstRun {
		t.Fatal("restart kept the run id")
	}
	g.finish = 50
	m, _ = send(t, m, TickMsg(t0.Add(10*time.Second)))

	scores, err = store.TopScores("fake", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 || scores[0].Score != 50 || scores[0].RunID != m.RunID() {
		t.Errorf("scores after second run = %+v", scores)
	}
}

func TestGameModelExit(t *testing.T) {
	t.Run("standalone quits", func(t *testing.T) {
		m, err := NewGameModel(&fakeGame{}, nil, testConfig())
		if err != nil {
			t.Fatal(err)
		}
		m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if !m.IsQuitting() || cmd == nil {
			t.Errorf("quitting = %v, cmd = %v", m.IsQuitting(), cmd)
		}
		if m.View() != "" {
			t.Error("view should be empty after quitting")
		}
	})

	t.Run("embedded returns to menu", func(t *testing.T) {
		m, err := NewGameModel(&fakeGame{}, nil, testConfig(), embedded())
		if err != nil {
			t.Fatal(err)
		}
		m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if !m.BackToMenu() || m.IsQuitting() || cmd != nil {
			t.Errorf("back = %v, quitting = %v, cmd = %v", m.BackToMenu(), m.IsQuitting(), cmd)
		}
	})

	t.Run("back only when finished or paused", func(t *testing.T) {
		g := &fakeGame{}
		m, err := NewGameModel(g, nil, testConfig(), embedded())
		if err != nil {
			t.Fatal(err)
		}
		m, _ = send(t, m, runes("b"))
		if m.BackToMenu() {
			t.Fatal("back while playing")
		}
		g.state.Paused = true
		m, _ = send(t, m, TickMsg(time.Unix(1, 0)))
		m, _ = send(t, m, runes("b"))
		if !m.BackToMenu() {
			t.Error("back while paused should return to menu")
		}
	})
}

func TestGameModelMouseAndResize(t *testing.T) {
	g := &fakeGame{}
	m, err := NewGameModel(g, nil, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = send(t, m, tea.MouseMsg{X: 5, Y: 5, Action: tea.MouseActionMotion})
	if want := []core.ClickEvent{{X: 3, Y: 4}}; !reflect.DeepEqual(g.clicks, want) {
		t.Errorf("clicks = %v, want %v", g.clicks, want)
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if g.resets != 1 {
		t.Errorf("resize reset the game: %d resets", g.resets)
	}
	if m.screen.Width() != 60 || m.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, want 60x19", m.screen.Width(), m.screen.Height())
	}

	m.Close()
	if g.freed != 1 {
		t.Errorf("freed = %d, want 1", g.freed)
	}
}

func TestGameModelView(t *testing.T) {
	m, err := NewGameModel(&fakeGame{}, nil, testConfig(), WithHelp(false))
	if err != nil {
		t.Fatal(err)
	}
	view := m.View()
	if !strings.Contains(view, "FAKE") {
		t.Errorf("view missing game output:\n%s", view)
	}
	if got := strings.Count(view, "\n") + 1; got != 12 {
		t.Errorf("view has %d lines, want 12", got)
	}
}

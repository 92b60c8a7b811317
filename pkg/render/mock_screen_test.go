package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

type cell struct {
	ch    rune
	style tcell.Style
}

// MockScreen is a minimal tcell.Screen that records drawn cells
type MockScreen struct {
	tcell.Screen
	width, height int

	mu      sync.Mutex
	cells   map[[2]int]cell
	shows   int
	syncs   int
	mouse   bool
	events  chan tcell.Event
	cleared int
}

func newMockScreen(width, height int) *MockScreen {
	return &MockScreen{
		width:  width,
		height: height,
		cells:  make(map[[2]int]cell),
		events: make(chan tcell.Event, 16),
	}
}

func (m *MockScreen) Size() (int, int) { return m.width, m.height }
func (m *MockScreen) Init() error      { return nil }
func (m *MockScreen) Fini()            { close(m.events) }

func (m *MockScreen) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells = make(map[[2]int]cell)
	m.cleared++
}

func (m *MockScreen) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shows++
}

func (m *MockScreen) Sync() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncs++
}

func (m *MockScreen) EnableMouse(...tcell.MouseFlags) { m.mouse = true }

func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cells[[2]int{x, y}] = cell{ch: mainc, style: style}
}

func (m *MockScreen) PollEvent() tcell.Event {
	ev, ok := <-m.events
	if !ok {
		return nil
	}
	return ev
}

func (m *MockScreen) cellAt(x, y int) (cell, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cells[[2]int{x, y}]
	return c, ok
}

func (m *MockScreen) row(y int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]rune, 0, m.width)
	for x := 0; x < m.width; x++ {
		c, ok := m.cells[[2]int{x, y}]
		if !ok {
			out = append(out, ' ')
			continue
		}
		out = append(out, c.ch)
	}
	return string(out)
}

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"RRGView/internal/collector"
	"RRGView/internal/model"
	"RRGView/internal/rrg"
)

const (
	sidePanelWidth = 26
	curveSamples   = 3 // interpolated points per tail segment
	mouseHitRadius = 2 // cells
)

var (
	quadrantStyles = map[model.Quadrant]lipgloss.Style{
		model.Leading:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		model.Weakening: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		model.Lagging:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		model.Improving: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	}

	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
)

// headPos is the screen position of one tail head, used for mouse hit testing.
type headPos struct {
	x, y int
	tail int // index into result.Tails
}

// Model is the interactive chart state. All UI toggles live here, not in
// package globals; the handlers mutate the model and nothing else.
type Model struct {
	result    *collector.Result
	timeframe string

	width  int
	height int

	showLabels bool
	curved     bool
	showHelp   bool
	highlight  int // index into result.Tails, -1 for none
}

// New builds the chart model, seeding toggles from the saved session state.
func New(res *collector.Result, timeframe string, state *model.SessionState) Model {
	m := Model{
		result:    res,
		timeframe: timeframe,
		highlight: -1,
	}
	if state != nil {
		m.showLabels = state.ShowLabels
		m.curved = state.CurvedTails
	}
	return m
}

// Toggles reports the current sticky toggles for session persistence.
func (m Model) Toggles() (showLabels, curved bool) {
	return m.showLabels, m.curved
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right":
			m.highlight = (m.highlight + 1) % len(m.result.Tails)
		case "shift+tab", "left":
			m.highlight--
			if m.highlight < -1 {
				m.highlight = len(m.result.Tails) - 1
			}
		case "esc":
			m.highlight = -1
		case "a":
			m.showLabels = !m.showLabels
		case "c":
			m.curved = !m.curved
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.highlight = m.hitTest(msg.X, msg.Y)
		}
		return m, nil
	}
	return m, nil
}

// hitTest returns the index of the tail whose head is nearest the click, or
// -1 when nothing is within the hit radius. Head positions are recomputed
// from the current bounds rather than cached, since View runs on a copy of
// the model.
func (m Model) hitTest(x, y int) int {
	best := -1
	bestDist := mouseHitRadius*mouseHitRadius + 1
	for _, h := range m.headPositions() {
		dx, dy := h.x-x, h.y-y
		d := dx*dx + dy*dy
		if d < bestDist {
			bestDist = d
			best = h.tail
		}
	}
	return best
}

// headPositions projects every tail head onto the current plot area.
func (m Model) headPositions() []headPos {
	w := m.width - sidePanelWidth
	h := m.height - 1
	if w < 1 || h < 1 {
		return nil
	}
	bounds := BoundsFor(m.result.Tails)
	out := make([]headPos, 0, len(m.result.Tails))
	for i, t := range m.result.Tails {
		head := t.Head()
		out = append(out, headPos{
			x:    bounds.ProjectX(head.RSRatio, w),
			y:    bounds.ProjectY(head.RSMomentum, h),
			tail: i,
		})
	}
	return out
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	plotW := m.width - sidePanelWidth
	plotH := m.height - 1
	if plotW < 20 || plotH < 10 {
		return "terminal too small for the chart"
	}

	plot := m.renderPlot(plotW, plotH)
	panel := m.renderPanel(plotH)
	body := lipgloss.JoinHorizontal(lipgloss.Top, plot, panel)
	return body + "\n" + m.renderStatusBar()
}

// cell is one plot character plus its style.
type cell struct {
	ch    rune
	style lipgloss.Style
}

func (m Model) renderPlot(w, h int) string {
	bounds := BoundsFor(m.result.Tails)

	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}

	cx := bounds.ProjectX(100, w)
	cy := bounds.ProjectY(100, h)
	for y := 0; y < h; y++ {
		grid[y][cx] = cell{ch: '│', style: axisStyle}
	}
	for x := 0; x < w; x++ {
		grid[cy][x] = cell{ch: '─', style: axisStyle}
	}
	grid[cy][cx] = cell{ch: '┼', style: axisStyle}

	writeText(grid, 1, 0, "Improving", quadrantStyles[model.Improving])
	writeText(grid, w-len("Leading")-1, 0, "Leading", quadrantStyles[model.Leading])
	writeText(grid, 1, h-1, "Lagging", quadrantStyles[model.Lagging])
	writeText(grid, w-len("Weakening")-1, h-1, "Weakening", quadrantStyles[model.Weakening])

	for i, t := range m.result.Tails {
		m.drawTail(grid, bounds, w, h, i, t)
	}

	var b strings.Builder
	for y, row := range grid {
		for _, c := range row {
			b.WriteString(c.style.Render(string(c.ch)))
		}
		if y < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) drawTail(grid [][]cell, bounds Bounds, w, h, idx int, t model.Tail) {
	dimmed := m.highlight >= 0 && m.highlight != idx
	style := quadrantStyles[model.QuadrantOf(t.Head())]
	if dimmed {
		style = dimStyle
	}

	points := t.Points
	if m.curved && len(points) >= rrg.MinCurvedTail {
		points = rrg.Interpolate(points, curveSamples)
	}

	for _, p := range points[:len(points)-1] {
		x := bounds.ProjectX(p.RSRatio, w)
		y := bounds.ProjectY(p.RSMomentum, h)
		grid[y][x] = cell{ch: '·', style: style}
	}

	head := t.Head()
	hx := bounds.ProjectX(head.RSRatio, w)
	hy := bounds.ProjectY(head.RSMomentum, h)
	headStyle := style
	if m.highlight == idx {
		headStyle = style.Bold(true)
	}
	grid[hy][hx] = cell{ch: '◆', style: headStyle}

	if m.showLabels || m.highlight == idx {
		label := strings.ToUpper(t.Symbol)
		lx := hx + 1
		if lx+len(label) > w {
			lx = hx - len(label) - 1
		}
		writeText(grid, lx, hy, label, labelStyle)
	}
}

func writeText(grid [][]cell, x, y int, text string, style lipgloss.Style) {
	if y < 0 || y >= len(grid) {
		return
	}
	for i, r := range text {
		if x+i < 0 || x+i >= len(grid[y]) {
			continue
		}
		grid[y][x+i] = cell{ch: r, style: style}
	}
}

func (m Model) renderPanel(h int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("RRG vs %s", strings.ToUpper(m.result.Benchmark))))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.timeframe))
	b.WriteString("\n\n")

	for i, t := range m.result.Tails {
		head := t.Head()
		q := model.QuadrantOf(head)
		marker := "  "
		if i == m.highlight {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s %s", marker, quadrantStyles[q].Render("●"), strings.ToUpper(t.Symbol))
		if i == m.highlight {
			line = titleStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.highlight >= 0 && m.highlight < len(m.result.Tails) {
		t := m.result.Tails[m.highlight]
		head := t.Head()
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s\n", strings.ToUpper(t.Symbol))))
		b.WriteString(statusStyle.Render(fmt.Sprintf("ratio    %.2f\n", head.RSRatio)))
		b.WriteString(statusStyle.Render(fmt.Sprintf("momentum %.2f\n", head.RSMomentum)))
		b.WriteString(statusStyle.Render(fmt.Sprintf("quadrant %s\n", model.QuadrantOf(head))))
		b.WriteString(statusStyle.Render(fmt.Sprintf("as of    %s\n", head.Date.Format("2006-01-02"))))
	}

	if len(m.result.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(quadrantStyles[model.Weakening].Render(fmt.Sprintf("%d skipped", len(m.result.Warnings))))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString("\n")
		for _, line := range []string{
			"tab/←/→  cycle symbol",
			"click    highlight",
			"a        labels",
			"c        curved tails",
			"esc      clear",
			"q        quit",
		} {
			b.WriteString(statusStyle.Render(line))
			b.WriteString("\n")
		}
	}

	return panelStyle.Width(sidePanelWidth - 2).Height(h - 2).Render(b.String())
}

// hasCurvableTail reports whether any tail is long enough to render curved.
func (m Model) hasCurvableTail() bool {
	for _, t := range m.result.Tails {
		if len(t.Points) >= rrg.MinCurvedTail {
			return true
		}
	}
	return false
}

func (m Model) renderStatusBar() string {
	curve := "off"
	if m.curved {
		// The toggle is sticky, but short tails always render straight.
		curve = "on"
		if !m.hasCurvableTail() {
			curve = "n/a"
		}
	}
	labels := "off"
	if m.showLabels {
		labels = "on"
	}
	return statusStyle.Render(fmt.Sprintf(
		" %d symbols | labels %s | curves %s | ? help | q quit",
		len(m.result.Tails), labels, curve))
}

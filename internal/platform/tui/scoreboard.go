package tui

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// scoreRow is one variant's line in the score table.
type scoreRow struct {
	title   string
	best    int // 0 when nothing is stored
	reached time.Time
}

func (r scoreRow) cells() table.Row {
	best, reached := "-", "-"
	if r.best > 0 {
		best = strconv.Itoa(r.best)
	}
	if !r.reached.IsZero() {
		reached = r.reached.Format("Jan 02 15:04")
	}
	return table.Row{r.title, best, reached}
}

// ScoreboardModel shows the best tile per variant.
type ScoreboardModel struct {
	scores    []scoreRow
	byBest    bool // Sort order: best tile first instead of by title
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel loads one row per registered variant. A nil store shows
// every variant without a score.
func NewScoreboardModel(store *storage.Store, logger *log.Logger, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		scores: loadScores(store, logger, registry.List()),
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(m.height)
	m.refresh()
	return m
}

func loadScores(store *storage.Store, logger *log.Logger, games []registry.GameInfo) []scoreRow {
	rows := make([]scoreRow, 0, len(games))
	for _, g := range games {
		row := scoreRow{title: g.Title}
		if store != nil {
			entry, err := store.Entry(g.ID)
			if err != nil && logger != nil {
				logger.Warn("cannot load high score", "game", g.ID, "err", err)
			}
			if entry != nil {
				row.best = entry.Value
				row.reached = entry.UpdatedAt
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Variant", Width: 18},
			{Title: "Best", Width: 8},
			{Title: "Reached", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-8, 3)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)
	return t
}

// refresh sorts the scores and pushes them into the table.
func (m *ScoreboardModel) refresh() {
	slices.SortStableFunc(m.scores, func(a, b scoreRow) int {
		if m.byBest && a.best != b.best {
			return cmp.Compare(b.best, a.best)
		}
		return strings.Compare(a.title, b.title)
	})

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = s.cells()
	}
	m.table.SetRows(rows)
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles keys and resizes; everything else goes to the table.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Sort):
			m.byBest = !m.byBest
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(m.height-8, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var scoreFrameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	order := "by variant"
	if m.byBest {
		order = "by best tile"
	}
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		center(menuTitleStyle.Render("BEST TILES")),
		center(helpStyle.Render(order)),
		"",
		center(scoreFrameStyle.Render(m.table.View())),
		"",
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen. goBack is true when the user
// returned to the menu rather than quitting.
func RunScoreboard(store *storage.Store, logger *log.Logger, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, logger, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}

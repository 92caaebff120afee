// Package tui provides the interactive terminal UI for Plank.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"plank/internal/app"
	"plank/internal/input"
	"plank/internal/models"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1).
			Margin(0, 1)

	focusedColumnStyle = columnStyle.Copy().
				BorderForeground(primaryColor)

	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedCardStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(fgColor).
				Bold(true).
				Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

const (
	modeBoard    = "board"
	modeNewCard  = "new_card"
	modeNewBoard = "new_board"
)

// App is the main TUI application model. It renders read-only
// snapshots of the shared state; every board mutation and every IO
// request goes back through *app.App.
type App struct {
	state    *app.App
	tickRate time.Duration

	boards    []models.Board
	lifecycle models.Lifecycle
	boardIdx  int
	cardIdx   int

	mode      string
	input     textinput.Model
	lastMouse input.Mouse
	message   string

	width  int
	height int
}

type tickMsg time.Time

// New creates a new TUI application bound to the shared state.
func New(state *app.App, tickRate time.Duration) *App {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40

	return &App{
		state:    state,
		tickRate: tickRate,
		mode:     modeBoard,
		input:    ti,
	}
}

// Run starts the TUI. Raw mode, the alt screen and mouse capture are
// acquired and restored by the program itself on every exit path,
// including panics.
func Run(state *app.App, tickRate time.Duration) error {
	p := tea.NewProgram(New(state, tickRate), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.tick())
}

// tick drives the periodic widget refresh loop.
func (a *App) tick() tea.Cmd {
	return tea.Tick(a.tickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-reads a consistent snapshot of the shared state and
// clamps the cursor to it.
func (a *App) refresh() {
	a.boards = a.state.Boards()
	a.lifecycle = a.state.State()

	if a.boardIdx >= len(a.boards) {
		a.boardIdx = len(a.boards) - 1
	}
	if a.boardIdx < 0 {
		a.boardIdx = 0
	}
	a.cardIdx = clampCard(a.boards, a.boardIdx, a.cardIdx)
}

func clampCard(boards []models.Board, boardIdx, cardIdx int) int {
	if boardIdx >= len(boards) {
		return 0
	}
	if max := len(boards[boardIdx].Cards) - 1; cardIdx > max {
		cardIdx = max
	}
	if cardIdx < 0 {
		cardIdx = 0
	}
	return cardIdx
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.mode != modeBoard {
			return a.updateEntry(msg)
		}
		return a.updateBoard(msg)

	case tea.MouseMsg:
		a.handleMouse(input.FromTea(msg))

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 6

	case tickMsg:
		a.refresh()
		return a, a.tick()
	}

	return a, nil
}

// updateBoard handles keys in the normal board view.
func (a *App) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit

	case "left", "h":
		if a.boardIdx > 0 {
			a.boardIdx--
			a.cardIdx = clampCard(a.boards, a.boardIdx, a.cardIdx)
		}

	case "right", "l":
		if a.boardIdx < len(a.boards)-1 {
			a.boardIdx++
			a.cardIdx = clampCard(a.boards, a.boardIdx, a.cardIdx)
		}

	case "up", "k":
		if a.cardIdx > 0 {
			a.cardIdx--
		}

	case "down", "j":
		a.cardIdx = clampCard(a.boards, a.boardIdx, a.cardIdx+1)

	case "n":
		if len(a.boards) > 0 {
			a.mode = modeNewCard
			a.input.Placeholder = "Card title"
			a.input.SetValue("")
			a.input.Focus()
		}

	case "N":
		a.mode = modeNewBoard
		a.input.Placeholder = "Board name"
		a.input.SetValue("")
		a.input.Focus()

	case "d":
		if a.boardIdx < len(a.boards) && len(a.boards[a.boardIdx].Cards) > 0 {
			a.state.RemoveCard(a.boardIdx, a.cardIdx)
			a.refresh()
		}

	case "s":
		a.message = "saving..."
		a.state.Dispatch(models.CommandSaveLocalData)

	case "R":
		a.message = "reloading..."
		a.state.Dispatch(models.CommandGetLocalData)
	}

	return a, nil
}

// updateEntry handles keys while the new-card / new-board input is open.
func (a *App) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeBoard
		a.input.Blur()
		return a, nil

	case "enter":
		value := strings.TrimSpace(a.input.Value())
		if value != "" {
			switch a.mode {
			case modeNewCard:
				a.state.AddCard(a.boardIdx, models.NewCard(value, ""))
			case modeNewBoard:
				a.state.AddBoard(models.NewBoard(value))
			}
			a.refresh()
		}
		a.mode = modeBoard
		a.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleMouse applies a normalized mouse event. Plain scrolling moves
// the card cursor; control-modified scrolling moves board focus on
// the horizontal axis.
func (a *App) handleMouse(ev input.Mouse) {
	a.lastMouse = ev

	switch ev.Kind {
	case input.ScrollUp:
		if a.cardIdx > 0 {
			a.cardIdx--
		}
	case input.ScrollDown:
		a.cardIdx = clampCard(a.boards, a.boardIdx, a.cardIdx+1)
	case input.ScrollLeft:
		if a.boardIdx > 0 {
			a.boardIdx--
			a.cardIdx = clampCard(a.boards, a.boardIdx, a.cardIdx)
		}
	case input.ScrollRight:
		if a.boardIdx < len(a.boards)-1 {
			a.boardIdx++
			a.cardIdx = clampCard(a.boards, a.boardIdx, a.cardIdx)
		}
	}
}

// View implements tea.Model
func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Plank"))
	b.WriteString("\n\n")

	if len(a.boards) == 0 {
		b.WriteString(helpStyle.Render("  no boards yet - press N to create one"))
		b.WriteString("\n")
	} else {
		b.WriteString(a.renderColumns())
		b.WriteString("\n")
	}

	if a.mode != modeBoard {
		b.WriteString(inputBoxStyle.Render(a.input.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  h/l boards · j/k cards · n new card · N new board · d delete · s save · R reload · q quit"))

	return b.String()
}

// renderColumns draws one bordered column per board.
func (a *App) renderColumns() string {
	cols := make([]string, 0, len(a.boards))
	for i, board := range a.boards {
		var col strings.Builder
		col.WriteString(boardTitleStyle.Render(board.Name))
		col.WriteString("\n")

		if len(board.Cards) == 0 {
			col.WriteString(helpStyle.Render("(empty)"))
		}
		for j, card := range board.Cards {
			style := cardStyle
			if i == a.boardIdx && j == a.cardIdx {
				style = selectedCardStyle
			}
			col.WriteString(style.Render(card.Title))
			col.WriteString("\n")
		}

		style := columnStyle
		if i == a.boardIdx {
			style = focusedColumnStyle
		}
		cols = append(cols, style.Render(col.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a *App) renderStatusBar() string {
	parts := []string{fmt.Sprintf("state: %s", a.lifecycle)}
	if a.message != "" {
		parts = append(parts, a.message)
	}
	if a.lastMouse.Kind != input.Unknown {
		parts = append(parts, a.lastMouse.String())
	}
	return statusBarStyle.Render(strings.Join(parts, " | "))
}

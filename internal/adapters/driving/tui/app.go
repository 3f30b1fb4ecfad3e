package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/messages"
	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/styles"
	"github.com/halcyon-labs/restitch/internal/adapters/driving/tui/views/replace"
	"github.com/halcyon-labs/restitch/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// replaceView is the find and replace view component.
	replaceView *replace.View

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application searching under dir.
func NewApp(ports *Ports, dir string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if dir == "" {
		dir = "."
	}

	s := styles.DefaultStyles()
	replaceView := replace.NewView(s, nil, ports.Search, ports.Replace, dir)

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		replaceView: replaceView,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.replaceView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("restitch - Find and Replace"),
		a.replaceView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.replaceView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.replaceView, cmd = a.replaceView.Update(msg)
		a.err = a.replaceView.Err()
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.replaceView, cmd = a.replaceView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages, including completion events from
	// service commands, to the view.
	a.replaceView, cmd = a.replaceView.Update(msg)
	a.err = a.replaceView.Err()
	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.replaceView.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Term returns the current search term.
func (a *App) Term() string {
	return a.replaceView.Term()
}

// Replacement returns the current replacement text.
func (a *App) Replacement() string {
	return a.replaceView.Replacement()
}

// Occurrences returns the listed occurrences.
func (a *App) Occurrences() []domain.Occurrence {
	return a.replaceView.Occurrences()
}

// SelectedIndex returns the currently selected occurrence index.
func (a *App) SelectedIndex() int {
	return a.replaceView.SelectedIndex()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.replaceView.SetDimensions(width, height)
}

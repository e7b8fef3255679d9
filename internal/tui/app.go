package tui

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/teamdraft/teamdraft/internal/config"
	"github.com/teamdraft/teamdraft/internal/event"
	"github.com/teamdraft/teamdraft/internal/logging"
	"github.com/teamdraft/teamdraft/internal/persist"
	"github.com/teamdraft/teamdraft/internal/sched"
)

// App wraps the Bubbletea program
type App struct {
	program atomic.Pointer[tea.Program]
	model   Model
	log     *logging.Logger
}

// New creates a new TUI application from the loaded configuration.
func New(cfg *config.Config, log *logging.Logger) *App {
	a := &App{log: log.WithComponent("app")}

	bus := event.NewBus()

	// The scheduler's wake-up signal becomes a program message; until the
	// program is running the flush simply waits for the next signal.
	scheduler := sched.New(func() {
		if p := a.program.Load(); p != nil {
			p.Send(flushMsg{})
		}
	}, sched.WithLogger(log))

	var saver Saver
	if cfg.Save.Endpoint != "" {
		saver = persist.NewClient(cfg.Save.Endpoint,
			persist.WithLogger(log),
			persist.WithTimeout(cfg.Save.SaveTimeout()),
		)
	}

	a.model = NewModel(cfg, bus, scheduler, saver, log)
	return a
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	program := tea.NewProgram(a.model, tea.WithAltScreen())
	a.program.Store(program)

	// Terminate cleanly on signals so the terminal is restored.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		program.Send(tea.Quit())
	}()

	_, err := program.Run()
	return err
}

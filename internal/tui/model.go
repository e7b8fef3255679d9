// Package tui is the bubbletea front end: a staged flow that asks for the
// roster size and team count, collects names, and shows the final draw.
package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/teamdraft/teamdraft/internal/config"
	"github.com/teamdraft/teamdraft/internal/event"
	"github.com/teamdraft/teamdraft/internal/gate"
	"github.com/teamdraft/teamdraft/internal/logging"
	"github.com/teamdraft/teamdraft/internal/persist"
	"github.com/teamdraft/teamdraft/internal/roster"
	"github.com/teamdraft/teamdraft/internal/sched"
	"github.com/teamdraft/teamdraft/internal/split"
	"github.com/teamdraft/teamdraft/internal/store"
	"github.com/teamdraft/teamdraft/internal/tui/view"
	"github.com/teamdraft/teamdraft/internal/util"
	"github.com/teamdraft/teamdraft/internal/validate"
)

// stage is the model's position in the draft flow.
type stage int

const (
	stageTotal stage = iota
	stageTeamCount
	stageNames
	stageDone
)

// refocusDelay gives in-flight key events from the previous stage time to
// drain before the input grabs focus again.
const refocusDelay = 50 * time.Millisecond

// Saver posts a finished draw somewhere. persist.Client satisfies this.
type Saver interface {
	SaveTeamData(ctx context.Context, teams []split.Team) (*persist.SaveResult, error)
}

// Model is the bubbletea model for the draft flow.
//
// Ownership is split: the session store holds the numeric setup answers and
// their confirmations, while the roster controller owns the member list once
// the names stage begins.
type Model struct {
	cfg   *config.Config
	bus   *event.Bus
	store *store.Store
	ctl   *roster.Controller
	sched *sched.Scheduler
	saver Saver
	log   *logging.Logger

	stage      stage
	input      textinput.Model
	errMsg     string
	teams      []split.Team
	saveStatus string
	saveFailed bool
	quitting   bool
	width      int
	seed       func() int64
}

// NewModel wires the session pieces together. saver may be nil when no save
// endpoint is configured.
func NewModel(cfg *config.Config, bus *event.Bus, scheduler *sched.Scheduler, saver Saver, log *logging.Logger) Model {
	input := textinput.New()
	input.Placeholder = "number of people"
	input.CharLimit = 64
	input.Focus()

	sessionStore := store.New(store.NewState(), store.Reduce, store.WithLogger(log))

	rosterModel := roster.NewModel(bus, roster.WithModelLogger(log))
	memo := view.NewRosterList()
	ctl := roster.NewController(rosterModel, bus, cadenceFor(cfg, scheduler),
		roster.WithControllerLogger(log),
		roster.WithListRenderer(memo.Render),
	)
	ctl.Start()

	m := Model{
		cfg:   cfg,
		bus:   bus,
		store: sessionStore,
		ctl:   ctl,
		sched: scheduler,
		saver: saver,
		log:   log.WithComponent("tui"),
		stage: stageTotal,
		input: input,
		seed:  func() int64 { return time.Now().UnixNano() },
	}

	// Store changes only need to trigger a redraw; the scheduler collapses
	// bursts into one flush.
	sessionStore.OnChange(func() {
		scheduler.Enqueue("session", func() {})
	})

	return m
}

// cadenceFor maps the configured cadence name to a gate cadence.
func cadenceFor(cfg *config.Config, scheduler *sched.Scheduler) gate.Cadence {
	switch cfg.UI.Cadence {
	case "immediate":
		return gate.Immediate()
	case "rate_limited":
		return gate.RateLimited(cfg.UI.RenderInterval())
	default:
		return gate.Deferred(scheduler, "roster")
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case flushMsg:
		m.sched.Flush()
		return m, nil

	case refocusMsg:
		m.input.Focus()
		return m, textinput.Blink

	case saveResultMsg:
		return m.onSaveResult(msg), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		m.ctl.Stop()
		return m, tea.Quit

	case tea.KeyEsc:
		if m.stage == stageNames && m.ctl.Model().EditingIndex() >= 0 {
			m.ctl.CancelEdit()
			m.input.Placeholder = "name (or :e N, :d N, :q)"
			m.errMsg = ""
			return m, nil
		}
		m.quitting = true
		m.ctl.Stop()
		return m, tea.Quit

	case tea.KeyEnter:
		return m.onSubmit()
	}

	if msg.Paste && m.stage == stageNames {
		return m.onPaste(string(msg.Runes))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// onSubmit handles Enter for whichever stage is active.
func (m Model) onSubmit() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	m.input.SetValue("")
	m.errMsg = ""

	switch m.stage {
	case stageTotal:
		return m.submitTotal(value)
	case stageTeamCount:
		return m.submitTeamCount(value)
	case stageNames:
		return m.submitName(value)
	default:
		return m, nil
	}
}

func (m Model) submitTotal(value string) (tea.Model, tea.Cmd) {
	n, err := validate.ParseNumber(value)
	if err == nil {
		err = validate.Total(n, m.cfg.Roster.MaxTotal)
	}
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	if dErr := m.store.Dispatch(store.SetTotal(n)); dErr != nil {
		m.errMsg = dErr.Error()
		return m, nil
	}
	if dErr := m.store.Dispatch(store.ConfirmTotal()); dErr != nil {
		m.errMsg = dErr.Error()
		return m, nil
	}

	m.stage = stageTeamCount
	m.input.Placeholder = "number of teams"
	m.input.Blur()
	return m, tea.Tick(refocusDelay, func(time.Time) tea.Msg { return refocusMsg{} })
}

func (m Model) submitTeamCount(value string) (tea.Model, tea.Cmd) {
	total := m.store.GetState().TotalMembers

	n, err := validate.ParseNumber(value)
	if err == nil {
		err = validate.TeamCount(n, total)
	}
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	if dErr := m.store.Dispatch(store.SetTeamCount(n)); dErr != nil {
		m.errMsg = dErr.Error()
		return m, nil
	}
	if dErr := m.store.Dispatch(store.ConfirmTeamCount()); dErr != nil {
		m.errMsg = dErr.Error()
		return m, nil
	}

	// The roster takes over capacity tracking for the names stage.
	m.ctl.Model().SetCapacity(total)
	m.ctl.Model().ConfirmCapacity()

	m.stage = stageNames
	m.input.Placeholder = "name (or :e N, :d N, :q)"
	m.input.Blur()
	return m, tea.Tick(refocusDelay, func(time.Time) tea.Msg { return refocusMsg{} })
}

func (m Model) submitName(value string) (tea.Model, tea.Cmd) {
	trimmed := strings.TrimSpace(value)

	if editing := m.ctl.Model().EditingIndex(); editing >= 0 {
		if m.ctl.CommitEdit(editing, trimmed) {
			m.input.Placeholder = "name (or :e N, :d N, :q)"
		} else {
			m.errMsg = "that qualifier is taken"
		}
		return m, nil
	}

	if strings.HasPrefix(trimmed, ":") {
		return m.onCommand(trimmed)
	}

	if trimmed == "" {
		return m, nil
	}
	if !m.ctl.SubmitName(trimmed) {
		m.errMsg = "could not add that name"
		return m, nil
	}
	return m.maybeFinish()
}

// onCommand handles the names stage command mode.
func (m Model) onCommand(cmd string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":q", ":quit":
		m.quitting = true
		m.ctl.Stop()
		return m, tea.Quit

	case ":d", ":delete":
		if len(fields) != 2 {
			m.errMsg = "usage: :d N"
			return m, nil
		}
		row, err := strconv.Atoi(fields[1])
		if err != nil || !m.ctl.Delete(row-1) {
			m.errMsg = "no such row"
		}
		return m, nil

	case ":e", ":edit":
		if len(fields) != 2 {
			m.errMsg = "usage: :e N"
			return m, nil
		}
		row, err := strconv.Atoi(fields[1])
		if err != nil || !m.ctl.BeginEdit(row-1) {
			m.errMsg = "no such row"
			return m, nil
		}
		m.input.Placeholder = "new qualifier (blank to drop)"
		return m, nil

	default:
		m.errMsg = "unknown command: " + fields[0]
		return m, nil
	}
}

// onPaste treats a multi-line paste as a composition: complete lines become
// submits once the paste has been applied, the trailing fragment stays in
// the input.
func (m Model) onPaste(text string) (tea.Model, tea.Cmd) {
	m.ctl.BeginComposition()
	combined := m.input.Value() + strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(combined, "\n")
	m.input.SetValue(lines[len(lines)-1])
	m.ctl.EndComposition()

	for _, line := range lines[:len(lines)-1] {
		if name := strings.TrimSpace(line); name != "" {
			m.ctl.SubmitName(name)
		}
	}
	return m.maybeFinish()
}

// maybeFinish splits the roster once the confirmed capacity is reached.
func (m Model) maybeFinish() (tea.Model, tea.Cmd) {
	if !m.ctl.Model().IsFull() {
		return m, nil
	}

	st := m.store.GetState()
	teams, err := split.Split(m.ctl.Model().Members(), st.TeamCount, m.seed())
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.teams = teams
	m.stage = stageDone
	m.input.Blur()
	m.log.Info("roster split", "members", m.ctl.Model().Len(), "teams", len(teams))
	return m, m.saveCmd(teams)
}

// saveCmd posts the draw in the background.
func (m Model) saveCmd(teams []split.Team) tea.Cmd {
	if m.saver == nil {
		return func() tea.Msg { return saveResultMsg{skipped: true} }
	}
	timeout := m.cfg.Save.SaveTimeout()
	saver := m.saver
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := saver.SaveTeamData(ctx, teams)
		if err != nil {
			return saveResultMsg{success: false, message: err.Error()}
		}
		msg := result.Message
		if msg == "" {
			msg = "saved"
		}
		return saveResultMsg{success: true, message: msg}
	}
}

func (m Model) onSaveResult(msg saveResultMsg) Model {
	switch {
	case msg.skipped:
		m.saveStatus = "not saved (no endpoint configured)"
		m.saveFailed = false
	case msg.success:
		m.saveStatus = "saved: " + msg.message
		m.saveFailed = false
	default:
		m.saveStatus = "save failed: " + msg.message
		m.saveFailed = true
	}
	m.bus.Publish(event.NewSaveCompletedEvent(msg.success && !msg.skipped, msg.message))
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	switch m.stage {
	case stageTotal:
		b.WriteString(view.RenderSetup(view.SetupState{
			Question: "How many people are drafting?",
			Input:    m.input.View(),
			ErrMsg:   m.errMsg,
		}))
	case stageTeamCount:
		b.WriteString(view.RenderSetup(view.SetupState{
			Question: "How many teams?",
			Input:    m.input.View(),
			ErrMsg:   m.errMsg,
		}))
	case stageNames:
		b.WriteString(m.ctl.Output())
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		if m.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(m.errMsg)
		}
	case stageDone:
		b.WriteString(view.RenderTeams(view.TeamsState{
			Teams:      m.teams,
			SaveStatus: m.saveStatus,
			SaveFailed: m.saveFailed,
		}))
	}

	footer := view.RenderFooter(m.hints())
	if m.width > 0 {
		footer = util.TruncateANSI(footer, m.width)
	}
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

func (m Model) hints() []view.Hint {
	switch m.stage {
	case stageNames:
		if m.ctl.Model().EditingIndex() >= 0 {
			return []view.Hint{
				{Key: "enter", Desc: "apply qualifier"},
				{Key: "esc", Desc: "cancel edit"},
			}
		}
		return []view.Hint{
			{Key: "enter", Desc: "add name"},
			{Key: ":e N", Desc: "edit row"},
			{Key: ":d N", Desc: "delete row"},
			{Key: "esc", Desc: "quit"},
		}
	case stageDone:
		return []view.Hint{{Key: "esc", Desc: "quit"}}
	default:
		return []view.Hint{
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "quit"},
		}
	}
}

package tui

import (
	"context"
	"strings"

	"datemate/intake"
	"datemate/questionnaire"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

const Confirmation = "You're in. We'll reach out soon with your matches."

type row uint8

const (
	rowDatingIntent row = iota
	rowGesture
	rowPassion
	rowThreeWords
	rowLoveLanguage
	rowSubmit
	rowCount
)

// SettledMsg carries the outcome of a submission attempt back to the update loop
type SettledMsg struct {
	State intake.State
}

// Model is the bubbletea model for the intake form
type Model struct {
	l          logrus.FieldLogger
	ctx        context.Context
	controller *intake.Controller
	focus      row
	intent     int
	language   int
	inputs     map[row]textinput.Model
	state      intake.State
	quitting   bool
}

// New creates the form model around a controller
func New(ctx context.Context, l logrus.FieldLogger, controller *intake.Controller) Model {
	draft := controller.Form().Snapshot()

	inputs := map[row]textinput.Model{
		rowGesture:    newInput("e.g. Bring coffee to their desk", draft.Gesture),
		rowPassion:    newInput("e.g. Astronomy", draft.Passion),
		rowThreeWords: newInput("e.g. curious, warm, driven", draft.ThreeWords),
	}

	return Model{
		l:          l,
		ctx:        ctx,
		controller: controller,
		focus:      rowDatingIntent,
		intent:     int(draft.DatingIntent),
		language:   int(draft.LoveLanguage),
		inputs:     inputs,
		state:      controller.State(),
	}
}

func newInput(placeholder string, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 500
	ti.Width = 60
	ti.SetValue(value)
	return ti
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State is the last submission state observed by the model
func (m Model) State() intake.State {
	return m.state
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SettledMsg:
		m.state = msg.State
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		return m.moveFocus(1), nil
	case tea.KeyShiftTab, tea.KeyUp:
		return m.moveFocus(-1), nil
	case tea.KeyCtrlS:
		return m.submit()
	case tea.KeyEnter:
		if m.focus == rowSubmit {
			return m.submit()
		}
		return m.moveFocus(1), nil
	}

	if m.state.IsSucceeded() {
		return m, nil
	}

	switch m.focus {
	case rowDatingIntent:
		m.intent = cycle(m.intent, len(questionnaire.DatingIntents()), msg.Type)
		m.controller.Form().SetDatingIntent(questionnaire.DatingIntents()[m.intent])
		return m, nil
	case rowLoveLanguage:
		m.language = cycle(m.language, len(questionnaire.LoveLanguages()), msg.Type)
		m.controller.Form().SetLoveLanguage(questionnaire.LoveLanguages()[m.language])
		return m, nil
	case rowGesture, rowPassion, rowThreeWords:
		ti, cmd := m.inputs[m.focus].Update(msg)
		m.inputs = m.withInput(m.focus, ti)
		m.syncText(m.focus, ti.Value())
		return m, cmd
	}
	return m, nil
}

func (m Model) withInput(r row, ti textinput.Model) map[row]textinput.Model {
	inputs := make(map[row]textinput.Model, len(m.inputs))
	for k, v := range m.inputs {
		inputs[k] = v
	}
	inputs[r] = ti
	return inputs
}

func (m Model) syncText(r row, value string) {
	f := m.controller.Form()
	switch r {
	case rowGesture:
		f.SetGesture(value)
	case rowPassion:
		f.SetPassion(value)
	case rowThreeWords:
		f.SetThreeWords(value)
	}
}

func cycle(current int, size int, key tea.KeyType) int {
	switch key {
	case tea.KeyRight, tea.KeySpace:
		return (current + 1) % size
	case tea.KeyLeft:
		return (current - 1 + size) % size
	}
	return current
}

func (m Model) moveFocus(delta int) Model {
	next := (int(m.focus) + delta + int(rowCount)) % int(rowCount)
	inputs := make(map[row]textinput.Model, len(m.inputs))
	for k, v := range m.inputs {
		if k == row(next) {
			v.Focus()
		} else {
			v.Blur()
		}
		inputs[k] = v
	}
	m.inputs = inputs
	m.focus = row(next)
	return m
}

// submit starts an attempt. The request runs outside the update loop and reports back with SettledMsg.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.state.CanSubmit() {
		return m, nil
	}
	a, s := m.controller.Begin()
	m.state = s
	if a == nil {
		m.l.WithField("state", s.Phase().String()).Debug("Submit did not start an attempt.")
		return m, nil
	}
	ctx := m.ctx
	return m, func() tea.Msg {
		return SettledMsg{State: a.Run(ctx)}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Datemate"))
	b.WriteString("\n")
	b.WriteString(styleSubtitle.Render("Tell us a little about yourself and we'll find your matches."))
	b.WriteString("\n\n")

	b.WriteString(m.renderSelector(rowDatingIntent, "What are you looking for?", questionnaire.DatingIntentLabels(), m.intent))
	b.WriteString(m.renderInput(rowGesture, "What's a small gesture that makes your day?"))
	b.WriteString(m.renderInput(rowPassion, "What are you passionate about?"))
	b.WriteString(m.renderInput(rowThreeWords, "Describe yourself in three words"))
	b.WriteString(m.renderSelector(rowLoveLanguage, "What's your love language?", questionnaire.LoveLanguageLabels(), m.language))

	b.WriteString(m.renderButton())
	b.WriteString("\n\n")

	switch {
	case m.state.IsFailed():
		b.WriteString(styleError.Render(m.state.Message()))
		b.WriteString("\n")
	case m.state.IsSucceeded():
		b.WriteString(styleSuccess.Render(Confirmation))
		b.WriteString("\n")
	}

	b.WriteString(styleHelp.Render("tab/↑/↓ move • ←/→ choose • enter/ctrl+s submit • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderLabel(r row, text string) string {
	if m.focus == r {
		return styleFocused.Render("▸ "+text) + "\n"
	}
	return styleLabel.Render("  "+text) + "\n"
}

func (m Model) renderSelector(r row, question string, labels []string, selected int) string {
	return m.renderLabel(r, question) + "  " + styleOption.Render("‹ "+labels[selected]+" ›") + "\n\n"
}

func (m Model) renderInput(r row, question string) string {
	return m.renderLabel(r, question) + "  " + m.inputs[r].View() + "\n\n"
}

func (m Model) renderButton() string {
	switch {
	case m.state.IsPending():
		return styleButtonDim.Render("Submitting...")
	case m.state.IsSucceeded():
		return styleButtonDim.Render("Submitted")
	case m.focus == rowSubmit:
		return styleButtonFocused.Render("Submit")
	default:
		return styleButton.Render("Submit")
	}
}

// Run starts the program and blocks until the user quits
func Run(ctx context.Context, l logrus.FieldLogger, controller *intake.Controller) (intake.State, error) {
	p := tea.NewProgram(New(ctx, l, controller), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		l.WithError(err).Error("Form exited with an error.")
		return controller.State(), err
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return controller.State(), nil
}

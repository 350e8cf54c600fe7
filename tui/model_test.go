package tui

import (
	"context"
	"sync"
	"testing"

	"datemate/intake"
	"datemate/questionnaire"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *MockSender) Send(_ context.Context, _ questionnaire.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.err
}

func (m *MockSender) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testModel(sender intake.Sender) (Model, *intake.Controller) {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	c := intake.NewController(l, intake.NewForm(), sender)
	return New(context.Background(), l, c), c
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func fillForm(t *testing.T, m Model) Model {
	m, _ = press(t, m,
		key(tea.KeyTab), typed("Bring coffee"),
		key(tea.KeyTab), typed("Astronomy"),
		key(tea.KeyTab), typed("curious, warm, driven"),
	)
	return m
}

func TestModel_TypingUpdatesForm(t *testing.T) {
	m, c := testModel(&MockSender{})

	m = fillForm(t, m)

	d := c.Form().Snapshot()
	assert.Equal(t, "Bring coffee", d.Gesture)
	assert.Equal(t, "Astronomy", d.Passion)
	assert.Equal(t, "curious, warm, driven", d.ThreeWords)
	assert.True(t, c.Form().IsSubmittable())
	assert.Contains(t, m.View(), "Astronomy")
}

func TestModel_SelectorsCycle(t *testing.T) {
	m, c := testModel(&MockSender{})

	m, _ = press(t, m, key(tea.KeyRight), key(tea.KeyRight))
	assert.Equal(t, questionnaire.IntentCasual, c.Form().Snapshot().DatingIntent)

	m, _ = press(t, m, key(tea.KeyLeft), key(tea.KeyLeft), key(tea.KeyLeft))
	assert.Equal(t, questionnaire.IntentFiguringItOut, c.Form().Snapshot().DatingIntent)

	m, _ = press(t, m, key(tea.KeyShiftTab), key(tea.KeyShiftTab), key(tea.KeyLeft))
	assert.Equal(t, questionnaire.LanguageGifts, c.Form().Snapshot().LoveLanguage)
	assert.Contains(t, m.View(), "Giving or receiving gifts")
}

func TestModel_IncompleteSubmitShowsMessage(t *testing.T) {
	sender := &MockSender{}
	m, _ := testModel(sender)

	m, cmd := press(t, m, key(tea.KeyCtrlS))

	assert.Nil(t, cmd)
	assert.True(t, m.State().IsFailed())
	assert.Contains(t, m.View(), intake.MessageIncomplete)
	assert.Equal(t, 0, sender.Calls())
}

func TestModel_SubmitLifecycle(t *testing.T) {
	sender := &MockSender{}
	m, _ := testModel(sender)
	m = fillForm(t, m)

	m, cmd := press(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.True(t, m.State().IsPending())
	assert.Contains(t, m.View(), "Submitting...")

	m, again := press(t, m, key(tea.KeyCtrlS))
	assert.Nil(t, again, "submit is ignored while pending")

	msg := cmd()
	settled, ok := msg.(SettledMsg)
	require.True(t, ok)
	assert.True(t, settled.State.IsSucceeded())

	next, _ := m.Update(msg)
	m = next.(Model)
	assert.True(t, m.State().IsSucceeded())
	assert.Contains(t, m.View(), Confirmation)
	assert.Equal(t, 1, sender.Calls())

	m, cmd = press(t, m, key(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, sender.Calls())
}

func TestModel_EditsIgnoredAfterSuccess(t *testing.T) {
	m, c := testModel(&MockSender{})
	m = fillForm(t, m)

	m, cmd := press(t, m, key(tea.KeyCtrlS))
	next, _ := m.Update(cmd())
	m = next.(Model)
	require.True(t, m.State().IsSucceeded())

	m, _ = press(t, m, typed(" and more"))
	assert.Equal(t, "curious, warm, driven", c.Form().Snapshot().ThreeWords)
	assert.Contains(t, m.View(), Confirmation)
}

func TestModel_FailureAllowsRetry(t *testing.T) {
	sender := &MockSender{err: &intake.ServerRejection{StatusCode: 500, Body: "bad data"}}
	m, _ := testModel(sender)
	m = fillForm(t, m)

	m, cmd := press(t, m, key(tea.KeyCtrlS))
	next, _ := m.Update(cmd())
	m = next.(Model)
	assert.True(t, m.State().IsFailed())
	assert.Contains(t, m.View(), "bad data")

	sender.mu.Lock()
	sender.err = nil
	sender.mu.Unlock()

	m, cmd = press(t, m, key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyEnter))
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.True(t, m.State().IsSucceeded())
	assert.Equal(t, 2, sender.Calls())
}

func TestModel_Quit(t *testing.T) {
	m, _ := testModel(&MockSender{})

	m, cmd := press(t, m, key(tea.KeyEsc))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

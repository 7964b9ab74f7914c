package display

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(inputCh chan string) model {
	return newModel(func() Status { return Status{} }, inputCh, make(chan struct{}), func(string) {})
}

func typeLine(t *testing.T, m model, line string) model {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	return next.(model)
}

func TestSubmitSendsInput(t *testing.T) {
	ch := make(chan string, 4)
	m := typeLine(t, testModel(ch), "search pizza")

	assert.Equal(t, "search pizza", <-ch)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, []string{"search pizza"}, m.history)
}

func TestSubmitIgnoresBlankLines(t *testing.T) {
	ch := make(chan string, 1)
	m := testModel(ch)
	m.input.SetValue("   ")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Empty(t, next.(model).history)
	assert.Len(t, ch, 0)
}

func TestHistoryBrowse(t *testing.T) {
	ch := make(chan string, 4)
	m := testModel(ch)
	m = typeLine(t, m, "search pizza")
	m = typeLine(t, m, "2")

	m = m.browse(-1)
	assert.Equal(t, "2", m.input.Value())
	m = m.browse(-1)
	assert.Equal(t, "search pizza", m.input.Value())
	m = m.browse(-1) // stays on the oldest
	assert.Equal(t, "search pizza", m.input.Value())
	m = m.browse(1)
	m = m.browse(1)
	assert.Empty(t, m.input.Value())
}

func TestHistoryLimit(t *testing.T) {
	ch := make(chan string, historyLimit+5)
	m := testModel(ch)
	for i := 0; i < historyLimit+5; i++ {
		m = typeLine(t, m, "more")
	}
	assert.Len(t, m.history, historyLimit)
}

func TestBusyMessageStartsSpinner(t *testing.T) {
	m := testModel(make(chan string, 1))
	next, cmd := m.Update(busyMsg("searching"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "searching", next.(model).busy)

	next, cmd = next.(model).Update(busyMsg(""))
	assert.Nil(t, cmd)
	assert.Empty(t, next.(model).busy)
}

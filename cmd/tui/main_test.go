package main

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

type memorySlot struct {
	payload []byte
}

func (m *memorySlot) Read(context.Context) ([]byte, error) {
	if m.payload == nil {
		return nil, ledger.ErrSlotEmpty
	}

	return m.payload, nil
}

func (m *memorySlot) Write(_ context.Context, payload []byte) error {
	m.payload = append([]byte(nil), payload...)
	return nil
}

func newTestModel(t *testing.T, dirty bool) (model, *memorySlot) {
	t.Helper()

	slot := &memorySlot{}
	store := ledger.NewStore(slot)
	require.NoError(t, store.Load(context.Background()))

	if dirty {
		require.NoError(t, store.AddEmployee(context.Background(), "Noa"))
	}

	return model{store: store, currentView: ViewMenu, month: period.NewMonth(time.January, 2025)}, slot
}

func key(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}

	_, ok := cmd().(tea.QuitMsg)

	return ok
}

func TestQuit_CleanStoreQuitsImmediately(t *testing.T) {
	m, _ := newTestModel(t, false)

	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(cmd))
}

func TestQuit_DirtyStoreAsksFirst(t *testing.T) {
	type testCase struct {
		name      string
		answer    string
		wantQuit  bool
		wantSaved bool
	}

	tests := []testCase{
		{name: "Stay", answer: "esc"},
		{name: "Discard", answer: "q", wantQuit: true},
		{name: "SaveAndQuit", answer: "s", wantQuit: true, wantSaved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, slot := newTestModel(t, true)

			next, cmd := m.Update(key("ctrl+c"))
			require.Nil(t, cmd)
			require.True(t, next.(model).confirmQuit)

			next, cmd = next.Update(key(tt.answer))

			if tt.wantSaved {
				require.NotNil(t, cmd)
				saved := cmd()
				require.IsType(t, savedMsg{}, saved)

				_, cmd = next.Update(saved)
			}

			assert.Equal(t, tt.wantQuit, isQuit(cmd))
			assert.Equal(t, tt.wantSaved, slot.payload != nil)
		})
	}
}

func TestMenu_SaveClearsDirtyFlag(t *testing.T) {
	m, slot := newTestModel(t, true)

	next, cmd := m.Update(key("s"))
	require.NotNil(t, cmd)

	next, _ = next.Update(cmd())

	assert.False(t, next.(model).store.Dirty())
	assert.NotNil(t, slot.payload)
	assert.Equal(t, "Saved.", next.(model).status)
}

func TestMenu_OpensScreens(t *testing.T) {
	m, _ := newTestModel(t, false)

	next, _ := m.Update(key("2"))
	assert.Equal(t, ViewRecords, next.(model).currentView)
	assert.Equal(t, "Income", next.(model).recordsView.Title())

	next, cmd := next.Update(key("esc"))
	require.NotNil(t, cmd)

	next, _ = next.Update(cmd())
	assert.Equal(t, ViewMenu, next.(model).currentView)
}

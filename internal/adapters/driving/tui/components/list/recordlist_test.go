package list

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

func testRecords() []domain.EvidenceRecord {
	return []domain.EvidenceRecord{
		{ID: 1, Author: "alice", Content: "first post", HasContent: true,
			CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{ID: 2, Author: "bob", Content: "second\npost", HasContent: true},
		{ID: 3},
	}
}

func TestRecordList_Empty(t *testing.T) {
	l := NewRecordList(nil)

	assert.Contains(t, l.View(), "No archived evidence")
	assert.Nil(t, l.SelectedRecord())
	assert.Nil(t, l.Init())
}

func TestRecordList_View(t *testing.T) {
	l := NewRecordList(nil)
	l.SetDimensions(80, 20)
	l.SetRecords(testRecords())

	view := l.View()
	assert.Contains(t, view, "Archive (3)")
	assert.Contains(t, view, "#1  @alice  2024-05-01")
	assert.Contains(t, view, "second post")
	assert.Contains(t, view, "(no content)")
}

func TestRecordList_Navigation(t *testing.T) {
	l := NewRecordList(nil)
	l.SetRecords(testRecords())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	require.NotNil(t, l.SelectedRecord())
	assert.Equal(t, uint64(2), l.SelectedRecord().ID)
}

func TestRecordList_SetRecordsResetsSelection(t *testing.T) {
	l := NewRecordList(nil)
	l.SetRecords(testRecords())
	l.MoveDown()

	l.SetRecords(testRecords()[:1])

	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, 1, l.Count())
}

func TestRecordList_ScrollsToSelection(t *testing.T) {
	l := NewRecordList(nil)
	l.SetDimensions(80, 6)
	l.SetRecords(testRecords())
	l.MoveDown()
	l.MoveDown()

	view := l.View()
	assert.Contains(t, view, "#3")
	assert.NotContains(t, view, "#1 ")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("é", 30)
	got := truncate(long, 20)
	assert.Equal(t, 20, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}

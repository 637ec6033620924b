package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennisclub/court-admin/internal/models"
)

func loadedState() *State {
	s := NewState()
	s.SetBlocks([]models.Block{
		{ID: 1, BatchID: "a"},
		{ID: 2, BatchID: "a"},
		{ID: 3, BatchID: "b"},
	}, time.Now())
	return s
}

func TestSetBlocksClearsSelection(t *testing.T) {
	s := loadedState()
	s.SetSelectedBlocks(models.Selection{{ID: 1, BatchID: "a"}})
	require.Len(t, s.SelectedBlocks(), 1)

	s.SetBlocks(nil, time.Now())
	assert.Empty(t, s.SelectedBlocks())
}

func TestFilterLoadedDropsUnknownAndTrustsLoadedBatch(t *testing.T) {
	s := loadedState()
	sel := s.FilterLoaded(models.Selection{
		{ID: 1, BatchID: "forged"},
		{ID: 1, BatchID: "a"},
		{ID: 99, BatchID: "x"},
		{ID: 3},
	})
	assert.Equal(t, models.Selection{{ID: 1, BatchID: "a"}, {ID: 3, BatchID: "b"}}, sel)
}

func TestSelectAll(t *testing.T) {
	s := loadedState()
	sel := s.SelectAll()
	assert.Len(t, sel, 3)
	assert.Equal(t, []string{"a", "b"}, s.SelectedBlocks().BatchIDs())
}

func TestSelectionIsCopied(t *testing.T) {
	s := loadedState()
	in := models.Selection{{ID: 1, BatchID: "a"}}
	s.SetSelectedBlocks(in)
	in[0].ID = 42
	assert.Equal(t, 1, s.SelectedBlocks()[0].ID)
}

func TestTemplateLookup(t *testing.T) {
	s := NewState()
	s.SetTemplates([]models.Template{{ID: 4, Name: "Training"}})
	tpl, ok := s.Template(4)
	require.True(t, ok)
	assert.Equal(t, "Training", tpl.Name)
	_, ok = s.Template(5)
	assert.False(t, ok)
}

func TestSessionsGetAndSweep(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(time.Hour)
	sessions.now = func() time.Time { return now }

	id, state := sessions.Get("", "admin-1")
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	sameID, same := sessions.Get(id, "admin-1")
	assert.Equal(t, id, sameID)
	assert.Same(t, state, same)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, sessions.Sweep())
	assert.Equal(t, 0, sessions.Len())
}

func TestSessionsRefuseForeignOwner(t *testing.T) {
	sessions := NewSessions(time.Hour)
	id, state := sessions.Get("", "admin-1")
	state.SetSelectedBlocks(nil)

	otherID, other := sessions.Get(id, "teamster-2")
	assert.NotEqual(t, id, otherID)
	assert.NotSame(t, state, other)

	ownID, own := sessions.Get(id, "admin-1")
	assert.Equal(t, id, ownID)
	assert.Same(t, state, own)
	assert.Equal(t, 2, sessions.Len())
}

package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/forkify/internal/domain"
	"github.com/hammamikhairi/forkify/internal/logger"
)

func newTestList() *List {
	return NewList(logger.New(logger.LevelOff, nil))
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	l := newTestList()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		e := l.Add(domain.Amount(float64(i)), "g", "flour")
		require.NotEmpty(t, e.ID)
		require.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
	assert.Equal(t, 100, l.Len())
}

func TestItemsKeepInsertionOrder(t *testing.T) {
	l := newTestList()
	a := l.Add(domain.Amount(2), "cup", "flour")
	b := l.Add(domain.Quantity{}, "", "salt")
	c := l.Add(domain.Amount(3), "", "eggs")

	items := l.Items()
	require.Len(t, items, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.False(t, items[1].Quantity.Valid)
}

func TestDelete(t *testing.T) {
	l := newTestList()
	a := l.Add(domain.Amount(2), "cup", "flour")
	b := l.Add(domain.Amount(1), "tsp", "salt")

	require.NoError(t, l.Delete(a.ID))
	assert.Equal(t, []domain.ListEntry{b}, l.Items())

	_, err := l.Get(a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteUnknownLeavesListUnchanged(t *testing.T) {
	l := newTestList()
	a := l.Add(domain.Amount(2), "cup", "flour")
	before := l.Items()

	err := l.Delete("no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, before, l.Items())

	require.NoError(t, l.Delete(a.ID))
	assert.ErrorIs(t, l.Delete(a.ID), domain.ErrNotFound)
	assert.Zero(t, l.Len())
}

func TestUpdateCount(t *testing.T) {
	l := newTestList()
	a := l.Add(domain.Amount(2), "cup", "flour")

	require.NoError(t, l.UpdateCount(a.ID, domain.Amount(3.5)))
	got, err := l.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(3.5), got.Quantity)
	assert.Equal(t, "flour", got.Name)

	assert.ErrorIs(t, l.UpdateCount("missing", domain.Amount(1)), domain.ErrNotFound)
}

func TestItemsReturnsCopy(t *testing.T) {
	l := newTestList()
	l.Add(domain.Amount(2), "cup", "flour")

	items := l.Items()
	items[0].Name = "sugar"
	assert.Equal(t, "flour", l.Items()[0].Name)
}

package gallery

import (
	"testing"

	"github.com/balqony-sitraalu/studio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workItems() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: 1, Title: "AD", Category: "Corporate"},
		{ID: 2, Title: "BTC - Behind The Card", Category: "Documentary"},
		{ID: 3, Title: "Ee Sannivesham", Category: "Music Video"},
		{ID: 4, Title: "Podcasts", Category: "Social Media"},
		{ID: 5, Title: "Enchanted Land", Category: "Documentary"},
		{ID: 6, Title: "Akshabhyasam", Category: "Short Film"},
	}
}

func ids(items []models.CatalogItem) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestVisibleItems(t *testing.T) {
	items := workItems()

	tests := []struct {
		name     string
		category models.Category
		expected []int
	}{
		{name: "all keeps order", category: models.CategoryAll, expected: []int{1, 2, 3, 4, 5, 6}},
		{name: "documentary subsequence", category: "Documentary", expected: []int{2, 5}},
		{name: "single match", category: "Short Film", expected: []int{6}},
		{name: "known category without items", category: "Commercial", expected: []int{}},
		{name: "unknown category", category: "Wedding", expected: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := VisibleItems(items, tt.category)
			assert.Equal(t, tt.expected, ids(visible))

			again := VisibleItems(visible, tt.category)
			assert.Equal(t, ids(visible), ids(again), "filtering is idempotent")
		})
	}
}

func TestVisibleItemsAllReturnsCatalog(t *testing.T) {
	items := workItems()
	visible := VisibleItems(items, models.CategoryAll)
	require.Len(t, visible, len(items))
	assert.Same(t, &items[0], &visible[0])
}

func TestParseCategory(t *testing.T) {
	catalog := &models.Catalog{Categories: []models.Category{"Documentary", "Music Video"}}

	assert.Equal(t, models.Category("Documentary"), ParseCategory(catalog, "documentary"))
	assert.Equal(t, models.Category("Music Video"), ParseCategory(catalog, " Music Video "))
	assert.Equal(t, models.CategoryAll, ParseCategory(catalog, ""))
	assert.Equal(t, models.CategoryAll, ParseCategory(catalog, "Wedding"))
	assert.Equal(t, []models.Category{models.CategoryAll, "Documentary", "Music Video"}, FilterOptions(catalog))
}

type countingListener struct {
	attached []int
	detached []CloseTrigger
}

func (c *countingListener) Attach(id int)               { c.attached = append(c.attached, id) }
func (c *countingListener) Detach(trigger CloseTrigger) { c.detached = append(c.detached, trigger) }

func TestViewerOpenRequiresVisibleItem(t *testing.T) {
	items := workItems()
	viewer := NewViewer(items)

	err := viewer.Open(1, VisibleItems(items, "Documentary"))
	require.ErrorIs(t, err, ErrNotVisible)
	assert.False(t, viewer.IsOpen())

	require.NoError(t, viewer.Open(2, VisibleItems(items, "Documentary")))
	selected, ok := viewer.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, selected.ID)
}

func TestViewerCyclicClosure(t *testing.T) {
	items := workItems()
	n := len(items)

	for start := range items {
		viewer := NewViewer(items)
		require.NoError(t, viewer.Open(items[start].ID, items))

		for range n {
			require.NoError(t, viewer.Next())
		}
		selected, _ := viewer.Selected()
		assert.Equal(t, items[start].ID, selected.ID, "next x%d from %d", n, start)

		for range n {
			require.NoError(t, viewer.Previous())
		}
		selected, _ = viewer.Selected()
		assert.Equal(t, items[start].ID, selected.ID, "previous x%d from %d", n, start)
	}
}

func TestViewerWrapsAround(t *testing.T) {
	items := workItems()
	viewer := NewViewer(items)
	require.NoError(t, viewer.Open(6, items))

	prev, next, ok := viewer.Neighbors()
	require.True(t, ok)
	assert.Equal(t, 5, prev)
	assert.Equal(t, 1, next)

	require.NoError(t, viewer.Next())
	selected, _ := viewer.Selected()
	assert.Equal(t, 1, selected.ID)

	require.NoError(t, viewer.Previous())
	require.NoError(t, viewer.Previous())
	selected, _ = viewer.Selected()
	assert.Equal(t, 5, selected.ID)
}

func TestViewerNextWalksFullCatalog(t *testing.T) {
	items := workItems()
	visible := VisibleItems(items, "Documentary")
	viewer := NewViewer(items)

	require.NoError(t, viewer.Open(visible[0].ID, visible))
	require.NoError(t, viewer.Next())

	selected, _ := viewer.Selected()
	assert.Equal(t, 3, selected.ID, "next follows the unfiltered catalog")
}

func TestViewerCloseTriggers(t *testing.T) {
	for _, trigger := range []CloseTrigger{CloseButton, Escape, Backdrop} {
		t.Run(string(trigger), func(t *testing.T) {
			items := workItems()
			viewer := NewViewer(items)
			require.NoError(t, viewer.Open(3, items))

			viewer.Close(trigger)
			assert.False(t, viewer.IsOpen())
			_, ok := viewer.Selected()
			assert.False(t, ok)
			assert.ErrorIs(t, viewer.Next(), ErrClosed)
		})
	}
}

func TestViewerListenerLifecycle(t *testing.T) {
	items := workItems()
	listener := &countingListener{}
	viewer := NewViewer(items, listener)

	for cycle := range 3 {
		require.NoError(t, viewer.Open(items[cycle].ID, items))
		require.NoError(t, viewer.Next())
		require.NoError(t, viewer.Previous())
		viewer.Close(Escape)
	}
	viewer.Close(Backdrop)

	assert.Equal(t, []int{1, 2, 3}, listener.attached)
	assert.Equal(t, []CloseTrigger{Escape, Escape, Escape}, listener.detached)
}

func TestViewerReopenWhileOpenDoesNotAttachAgain(t *testing.T) {
	items := workItems()
	listener := &countingListener{}
	viewer := NewViewer(items, listener)

	require.NoError(t, viewer.Open(1, items))
	require.NoError(t, viewer.Open(4, items))
	assert.Equal(t, []int{1}, listener.attached)

	pos, total := viewer.Position()
	assert.Equal(t, 4, pos)
	assert.Equal(t, 6, total)
}

func TestParseCloseTrigger(t *testing.T) {
	assert.Equal(t, Escape, ParseCloseTrigger("escape"))
	assert.Equal(t, Backdrop, ParseCloseTrigger("backdrop"))
	assert.Equal(t, CloseButton, ParseCloseTrigger(""))
	assert.Equal(t, CloseButton, ParseCloseTrigger("swipe"))
}

func TestHoverLastEventWins(t *testing.T) {
	hover := NewHoverState()
	hover.Enter(1)
	hover.Enter(2)
	hover.Leave(1)

	assert.False(t, hover.IsHovered(1))
	assert.True(t, hover.IsHovered(2))

	hover.Leave(2)
	hover.Enter(2)
	assert.True(t, hover.IsHovered(2))
}

func TestRevealSet(t *testing.T) {
	set := NewRevealSet(0)
	assert.Equal(t, DefaultRevealThreshold, set.Threshold())

	revealed, done := set.Observe(3, 0.2)
	assert.False(t, revealed)
	assert.False(t, done)

	revealed, done = set.Observe(3, 0.35)
	assert.True(t, revealed)
	assert.True(t, done)

	revealed, done = set.Observe(3, 0.9)
	assert.False(t, revealed, "second reveal is a no-op")
	assert.True(t, done)

	assert.True(t, set.Reveal(1))
	assert.False(t, set.Reveal(1))
	assert.Equal(t, []int{1, 3}, set.IDs())
	assert.True(t, set.IsRevealed(3))
}

func TestExpansionToggle(t *testing.T) {
	var expansion Expansion

	expansion.Toggle(1)
	assert.True(t, expansion.IsExpanded(1))

	expansion.Toggle(2)
	assert.False(t, expansion.IsExpanded(1))
	assert.True(t, expansion.IsExpanded(2))

	expansion.Toggle(2)
	_, open := expansion.Expanded()
	assert.False(t, open)
}

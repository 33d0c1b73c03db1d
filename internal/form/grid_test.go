package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/clinic-booking-form/internal/schedule"
)

func TestBuildGridCoversCatalogInOrder(t *testing.T) {
	catalog := schedule.Catalog()
	cells := BuildGrid(catalog, map[string]bool{"08:00": true, "16:30": true}, "")

	require.Len(t, cells, len(catalog))
	for i, c := range cells {
		assert.Equal(t, catalog[i], c.Label)
		assert.False(t, c.Selected)
	}
	assert.True(t, cells[0].Enabled)
	assert.False(t, cells[1].Enabled)
	assert.True(t, cells[len(cells)-1].Enabled)
}

func TestBuildGridMarksSelection(t *testing.T) {
	cells := BuildGrid([]string{"08:00", "08:30", "09:00"}, map[string]bool{"08:30": true, "09:00": true}, "09:00")

	assert.False(t, cells[1].Selected)
	assert.True(t, cells[2].Selected)
	assert.True(t, cells[2].Enabled)
}

func TestBuildGridSelectedSlotStaysEnabled(t *testing.T) {
	// A held slot that is the current selection renders enabled anyway; it
	// belongs to the appointment being edited.
	cells := BuildGrid([]string{"11:00", "11:30"}, map[string]bool{"11:00": true}, "11:30")

	assert.True(t, cells[1].Enabled)
	assert.True(t, cells[1].Selected)
	assert.False(t, cells[0].Selected)
}

func TestBuildGridNilAvailability(t *testing.T) {
	cells := BuildGrid([]string{"08:00", "08:30"}, nil, "")

	for _, c := range cells {
		assert.False(t, c.Enabled)
	}
}

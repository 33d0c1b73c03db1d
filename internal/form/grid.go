package form

// BuildGrid produces one cell per catalog entry, in catalog order. A cell is
// disabled unless its label is in available, except that the selected label is
// always enabled: during edit the appointment's own slot is held by the
// record being edited and the server no longer reports it as free.
func BuildGrid(catalog []string, available map[string]bool, selected string) []SlotCell {
	cells := make([]SlotCell, 0, len(catalog))
	for _, label := range catalog {
		cells = append(cells, SlotCell{
			Label:    label,
			Enabled:  available[label] || (selected != "" && label == selected),
			Selected: selected != "" && label == selected,
		})
	}
	return cells
}

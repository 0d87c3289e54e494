// Package layout tracks which table of the overview screen is expanded.
package layout

// Overview allows at most one expanded table at a time.
type Overview struct {
	order    []string
	known    map[string]bool
	expanded string
}

// NewOverview registers tables in display order. Nothing starts expanded.
func NewOverview(tableIDs ...string) *Overview {
	o := &Overview{known: map[string]bool{}}
	for _, id := range tableIDs {
		o.Register(id)
	}
	return o
}

// Register adds a table. Registering twice is a no-op.
func (o *Overview) Register(tableID string) {
	if tableID == "" || o.known[tableID] {
		return
	}
	o.known[tableID] = true
	o.order = append(o.order, tableID)
}

// Tables returns the registered tables in display order.
func (o *Overview) Tables() []string {
	return append([]string(nil), o.order...)
}

// Toggle collapses tableID when it is expanded and otherwise expands it,
// collapsing any other table. Unregistered tables are rejected.
func (o *Overview) Toggle(tableID string) bool {
	if !o.known[tableID] {
		return false
	}
	if o.expanded == tableID {
		o.expanded = ""
	} else {
		o.expanded = tableID
	}
	return true
}

// Collapse returns to the none-expanded state.
func (o *Overview) Collapse() { o.expanded = "" }

// Expanded returns the expanded table, if any.
func (o *Overview) Expanded() (string, bool) {
	return o.expanded, o.expanded != ""
}

// IsExpanded reports whether tableID is the expanded table.
func (o *Overview) IsExpanded(tableID string) bool {
	return o.expanded != "" && o.expanded == tableID
}

// Visible returns the tables to draw: only the expanded one when a table is
// expanded, every table otherwise.
func (o *Overview) Visible() []string {
	if o.expanded != "" {
		return []string{o.expanded}
	}
	return o.Tables()
}

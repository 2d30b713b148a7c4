package shopping

import "strings"

// Filter keeps the entries whose ingredient name contains query, ignoring case. Categories
// left empty are dropped. An empty query returns a copy of groups. Totals are never touched.
func Filter(groups []CategoryGroup, query string) []CategoryGroup {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]CategoryGroup, 0, len(groups))
	for _, g := range groups {
		var entries []Entry
		for _, e := range g.Entries {
			if q == "" || strings.Contains(strings.ToLower(e.IngredientName), q) {
				entries = append(entries, cloneEntry(e))
			}
		}
		if len(entries) == 0 {
			continue
		}
		out = append(out, CategoryGroup{Category: g.Category, Label: g.Label, Entries: entries})
	}
	return out
}

// MarkChecked returns a copy of groups with each entry's Checked flag taken from checked.
func MarkChecked(groups []CategoryGroup, checked map[string]bool) []CategoryGroup {
	out := make([]CategoryGroup, 0, len(groups))
	for _, g := range groups {
		entries := make([]Entry, 0, len(g.Entries))
		for _, e := range g.Entries {
			c := cloneEntry(e)
			c.Checked = checked[e.Key]
			entries = append(entries, c)
		}
		out = append(out, CategoryGroup{Category: g.Category, Label: g.Label, Entries: entries})
	}
	return out
}

func cloneEntry(e Entry) Entry {
	if e.Unit != nil {
		u := *e.Unit
		e.Unit = &u
	}
	e.Contributions = append([]Contribution(nil), e.Contributions...)
	return e
}

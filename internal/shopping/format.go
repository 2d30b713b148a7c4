package shopping

import (
	"math"
	"strconv"
	"strings"
)

// FormatQuantity rounds v to two decimals. Whole numbers print without decimals, anything
// else with exactly two.
func FormatQuantity(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	if r == math.Trunc(r) {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}

// FormatEntry renders an entry as "name: 400 g", "name: 2" or just "name".
func FormatEntry(e Entry) string {
	var sb strings.Builder
	sb.WriteString(e.IngredientName)
	if q := e.DisplayQuantity(); q != "" {
		sb.WriteString(": ")
		sb.WriteString(q)
		if u := e.UnitLabel(); u != "" {
			sb.WriteString(" ")
			sb.WriteString(u)
		}
	}
	return sb.String()
}

// Render writes groups as plain text: one heading per category followed by its entries.
// Checked entries are marked with [x].
func Render(groups []CategoryGroup) string {
	var sb strings.Builder
	for i, g := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(g.Label)
		sb.WriteString("\n")
		for _, e := range g.Entries {
			if e.Checked {
				sb.WriteString("[x] ")
			} else {
				sb.WriteString("[ ] ")
			}
			sb.WriteString(FormatEntry(e))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

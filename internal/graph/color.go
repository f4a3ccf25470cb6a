package graph

import "fmt"

// palette is the fixed set of display colors handed to new graphs, scanned
// greedily for the first unused entry. Cosmetic only.
var palette = []string{
	"#3b82f6", "#ef4444", "#22c55e", "#f59e0b", "#8b5cf6",
	"#ec4899", "#06b6d4", "#f97316", "#14b8a6", "#eab308",
}

// nextColorLocked picks the first palette color not currently in use, or a
// deterministic overflow color once the palette is exhausted. Caller holds
// m.mu.
func (m *Manager) nextColorLocked() string {
	used := make(map[string]bool, len(m.graphs))
	for _, g := range m.graphs {
		used[g.Color] = true
	}
	for _, c := range palette {
		if !used[c] {
			return c
		}
	}
	return fmt.Sprintf("#%06x", (uint32(m.nextID)*2654435761)&0xffffff)
}

package overlay

import "github.com/selah-content-api/internal/models"

// Code-level static image defaults, the layer between the remote mapping
// and the generated placeholder. These ship with the binary and change
// only on deploy; operators needing faster turnaround use the remote
// mapping file instead. Coverage is partial: topics without an entry
// fall through to the generated query.
var codeDefaults = models.MappingSet{
	Topics: map[string]string{
		"ethics":    "https://images.unsplash.com/photo-1504198453319-5ce911bafcde?w=1600&q=80",
		"theology":  "https://images.unsplash.com/photo-1473177104440-ffee2f376098?w=1600&q=80",
		"scripture": "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=1600&q=80",
		"prayer":    "https://images.unsplash.com/photo-1445964047600-cdbdb873673d?w=1600&q=80",
		"gratitude": "https://images.unsplash.com/photo-1470549638415-0a0755be0619?w=1600&q=80",
	},
	Articles: map[string]string{
		"ethics-primer":    "https://images.unsplash.com/photo-1505664194779-8beaceb93744?w=1600&q=80",
		"prayer-primer":    "https://images.unsplash.com/photo-1507692049790-de58290a4334?w=1600&q=80",
		"scripture-primer": "https://images.unsplash.com/photo-1504052434569-70ad5836ab65?w=1600&q=80",
	},
}

// CodeDefaults returns a copy of the built-in default tables.
func CodeDefaults() models.MappingSet {
	return codeDefaults.Clone()
}

package core

import "unicode/utf16"

// palette is the fixed ordered set of display colors. Index selection
// depends on the order, so entries must never be reordered or removed.
var palette = [8]string{
	"#ef4444", // red-500
	"#3b82f6", // blue-500
	"#10b981", // emerald-500
	"#f59e0b", // amber-500
	"#84cc16", // lime-500
	"#6366f1", // indigo-500
	"#d946ef", // fuchsia-500
	"#64748b", // slate-500
}

// ColorFor maps a category id to a stable display color. The same id
// always yields the same color regardless of insertion order or restarts.
//
// The hash accumulates h = h*31 + codeUnit over the id's UTF-16 code
// units with 32-bit signed wraparound, so any UI re-implementing the
// scheme from the same id picks the identical palette entry.
func ColorFor(categoryID string) string {
	var hash int32
	for _, unit := range utf16.Encode([]rune(categoryID)) {
		hash = hash*31 + int32(unit)
	}
	// Widen before taking the absolute value: -abs(MinInt32) overflows int32.
	idx := int64(hash)
	if idx < 0 {
		idx = -idx
	}
	return palette[idx%int64(len(palette))]
}

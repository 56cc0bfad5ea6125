package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending, Active string
	BoxUnchecked, BoxChecked                              string
	CornerTL, CornerTR, CornerBL, CornerBR                string
	H, V                                                  string
	SymDone, SymUnchecked                                 string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title: bold, Muted: fgGray, Accent: fgBlue, Active: bold + fgWhite,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymUnchecked: "•",
	}
}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m",
			Muted: fgGray, Accent: "\033[96m", Active: "\033[95m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymUnchecked: "•",
		}
	case "mono":
		disableColor = true
		current = Theme{
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymUnchecked: "-",
		}
	default:
		current = classic()
	}
}

func Current() Theme { return current }

// Tabs renders the two mode names, the active one highlighted and
// wrapped in brackets so it reads without color too.
func Tabs(names []string, active int) string {
	t := Current()
	parts := make([]string, len(names))
	for i, n := range names {
		if i == active {
			parts[i] = C(t.Active, "["+n+"]")
		} else {
			parts[i] = C(t.Muted, " "+n+" ")
		}
	}
	return strings.Join(parts, "  ")
}

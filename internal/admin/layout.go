package admin

// Breakpoint is the viewport width below which the navigation stacks.
const Breakpoint = 768

type Axis string

const (
	Row    Axis = "row"
	Column Axis = "column"
)

// NavAxis returns the navigation flex direction for a viewport width.
// An unknown width (0) lays out as a row.
func NavAxis(width int) Axis {
	if width > 0 && width < Breakpoint {
		return Column
	}
	return Row
}

// Shortcut is a key chord intercepted in the admin panel. The behaviour
// script compares keys case-insensitively.
type Shortcut struct {
	Ctrl bool
	Key  string
}

// SaveShortcut is the chord that triggers the save acknowledgment.
var SaveShortcut = Shortcut{Ctrl: true, Key: "s"}

type NavLink struct {
	Anchor string
	Label  string
}

var defaultLinks = []NavLink{
	{Anchor: "dashboard", Label: "داشبورد"},
	{Anchor: "users", Label: "کاربران"},
	{Anchor: "settings", Label: "تنظیمات"},
	{Anchor: "reports", Label: "گزارشات"},
}

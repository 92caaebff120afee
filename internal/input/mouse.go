// Package input normalizes raw terminal input events into the small
// set of semantic events the rest of the application understands.
package input

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Kind enumerates the semantic mouse event variants.
type Kind int

const (
	Unknown Kind = iota
	LeftPress
	RightPress
	MiddlePress
	ScrollUp
	ScrollDown
	ScrollLeft
	ScrollRight
	Move
)

// Mouse is a normalized mouse event. It is comparable, so it can be
// used directly as a map key for keybinding-style lookups. X and Y are
// only meaningful for Move.
type Mouse struct {
	Kind Kind
	X    int
	Y    int
}

// FromTea maps a raw Bubble Tea mouse event to its semantic form. It
// is total: any event shape not covered below comes back as Unknown.
//
// Scrolling with the control modifier held is remapped to the
// horizontal axis (ScrollDown becomes ScrollLeft, ScrollUp becomes
// ScrollRight). The remap is intentional and must not be "fixed".
func FromTea(msg tea.MouseMsg) Mouse {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return Mouse{Kind: LeftPress}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		return Mouse{Kind: RightPress}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonMiddle:
		return Mouse{Kind: MiddlePress}
	case msg.Button == tea.MouseButtonWheelDown && msg.Ctrl:
		return Mouse{Kind: ScrollLeft}
	case msg.Button == tea.MouseButtonWheelUp && msg.Ctrl:
		return Mouse{Kind: ScrollRight}
	case msg.Button == tea.MouseButtonWheelUp:
		return Mouse{Kind: ScrollUp}
	case msg.Button == tea.MouseButtonWheelDown:
		return Mouse{Kind: ScrollDown}
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonNone:
		return Mouse{Kind: Move, X: msg.X, Y: msg.Y}
	default:
		return Mouse{Kind: Unknown}
	}
}

// String returns the canonical label for the event.
func (m Mouse) String() string {
	switch m.Kind {
	case LeftPress:
		return "<Mouse::Left>"
	case RightPress:
		return "<Mouse::Right>"
	case MiddlePress:
		return "<Mouse::Middle>"
	case ScrollUp:
		return "<Mouse::ScrollUp>"
	case ScrollDown:
		return "<Mouse::ScrollDown>"
	case ScrollLeft:
		return "<Mouse::Ctrl + ScrollUp>"
	case ScrollRight:
		return "<Mouse::Ctrl + ScrollDown>"
	case Move:
		return fmt.Sprintf("<Mouse::Move(%d, %d)>", m.X, m.Y)
	default:
		return "<Mouse::Unknown>"
	}
}

package player

import "strings"

// Key is a keyboard shortcut understood by the Shell.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyFullscreen
	KeyMute
	KeyEscape
)

var keyNames = map[string]Key{
	" ":          KeySpace,
	"space":      KeySpace,
	"arrowleft":  KeyArrowLeft,
	"left":       KeyArrowLeft,
	"arrowright": KeyArrowRight,
	"right":      KeyArrowRight,
	"arrowup":    KeyArrowUp,
	"up":         KeyArrowUp,
	"arrowdown":  KeyArrowDown,
	"down":       KeyArrowDown,
	"f":          KeyFullscreen,
	"m":          KeyMute,
	"escape":     KeyEscape,
	"esc":        KeyEscape,
}

// ParseKey maps a DOM-style key name ("ArrowLeft", " ", "f", "Escape") to a
// Key. Names are case-insensitive; anything else is KeyUnknown.
func ParseKey(name string) Key {
	if name == " " {
		return KeySpace
	}
	if k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k
	}
	return KeyUnknown
}

func (k Key) String() string {
	switch k {
	case KeySpace:
		return "Space"
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	case KeyArrowUp:
		return "ArrowUp"
	case KeyArrowDown:
		return "ArrowDown"
	case KeyFullscreen:
		return "f"
	case KeyMute:
		return "m"
	case KeyEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

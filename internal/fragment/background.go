package fragment

import (
	"fmt"
	"image/color"
	"strings"
)

type Background int

const (
	White Background = iota
	Black
	Transparent
)

func ParseBackground(s string) (Background, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "white":
		return White, nil
	case "black":
		return Black, nil
	case "transparent":
		return Transparent, nil
	}
	return White, fmt.Errorf("%w: unknown background %q", ErrInvalidConfiguration, s)
}

func (b Background) String() string {
	switch b {
	case Black:
		return "black"
	case Transparent:
		return "transparent"
	default:
		return "white"
	}
}

// Color is the fill used for pixels outside a piece's fragments.
func (b Background) Color() color.NRGBA {
	switch b {
	case Black:
		return color.NRGBA{0, 0, 0, 255}
	case Transparent:
		return color.NRGBA{0, 0, 0, 0}
	default:
		return color.NRGBA{255, 255, 255, 255}
	}
}

// Ext is the file extension pieces with this background are saved under.
func (b Background) Ext() string {
	if b == Transparent {
		return "png"
	}
	return "jpg"
}

func (b Background) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Background) UnmarshalText(text []byte) error {
	parsed, err := ParseBackground(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

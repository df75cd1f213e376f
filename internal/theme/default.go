package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/duel/internal/game"
)

type DefaultTheme struct {
	Skin game.Skin
}

func New(skin game.Skin) *DefaultTheme {
	return &DefaultTheme{Skin: skin}
}

func (t *DefaultTheme) RenderNote(dir game.Direction, owner game.Owner) string {
	c := t.LaneColor(dir)
	if owner == game.Opponent {
		return fmt.Sprintf("\033[2;38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, t.symbol(dir))
	}
	return fmt.Sprintf("\033[1;38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, t.symbol(dir))
}

func (t *DefaultTheme) RenderHitField(dir game.Direction, held bool) string {
	if held {
		c := t.LaneColor(dir)
		return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, t.symbol(dir))
	}
	return fmt.Sprintf("\033[38;5;240m%v\033[0m", t.symbol(dir))
}

func (t *DefaultTheme) symbol(dir game.Direction) string {
	syms, ok := skinSyms[t.Skin]
	if !ok {
		syms = skinSyms[game.SkinNormal]
	}
	if int(dir) >= len(syms) {
		return "?"
	}
	return syms[dir]
}

func (t *DefaultTheme) LaneColor(dir game.Direction) color.RGBA {
	if int(dir) >= len(laneColors) {
		return white
	}
	return laneColors[dir]
}

func (t *DefaultTheme) JudgementColor(name string) color.RGBA {
	col, ok := judgementColors[name]
	if !ok {
		return white
	}
	return col
}

var (
	white = color.RGBA{255, 255, 255, 255}

	skinSyms = map[game.Skin][4]string{
		game.SkinNormal:     {"←", "↓", "↑", "→"},
		game.SkinCircle:     {"⬤", "⬤", "⬤", "⬤"},
		game.SkinFuturistic: {"◀", "▼", "▲", "▶"},
		game.SkinCrystal:    {"◆", "◆", "◆", "◆"},
	}

	// left purple, down cyan, up green, right red
	laneColors = [...]color.RGBA{
		{147, 51, 234, 255},
		{6, 182, 212, 255},
		{34, 197, 94, 255},
		{220, 38, 38, 255},
	}

	judgementColors = map[string]color.RGBA{
		"sick":  {0, 236, 128, 255},
		"good":  {0, 118, 236, 255},
		"bad":   {236, 195, 0, 255},
		"miss":  {236, 30, 0, 255},
		"ghost": {106, 106, 106, 255},
	}
)

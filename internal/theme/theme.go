package theme

import (
	"image/color"

	"git.lost.host/meutraa/duel/internal/game"
)

type Theme interface {
	RenderNote(dir game.Direction, owner game.Owner) string
	RenderHitField(dir game.Direction, held bool) string
	LaneColor(dir game.Direction) color.RGBA
	JudgementColor(name string) color.RGBA
}

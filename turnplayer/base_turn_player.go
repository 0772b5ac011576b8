package turnplayer

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/domino14/connect4/bitboard"
	"github.com/domino14/connect4/board"
	"github.com/domino14/connect4/game"
	"github.com/domino14/connect4/move"
)

// BaseTurnPlayer adapts a game of a fixed word count to TurnPlayer.
type BaseTurnPlayer[W bitboard.Words] struct {
	*game.Game[W]
}

func newBase[W bitboard.Words](width, height int) TurnPlayer {
	return &BaseTurnPlayer[W]{game.New[W](width, height)}
}

func (p *BaseTurnPlayer[W]) LegalActionIndices() []int {
	return lo.Map(p.LegalMoves(), func(m move.Move, _ int) int {
		return game.EncodeMove(m)
	})
}

func (p *BaseTurnPlayer[W]) DecodeAction(action int) (move.Move, bool) {
	return game.DecodeMove(action, p.Game)
}

func (p *BaseTurnPlayer[W]) ApplyAction(action int) bool {
	m, ok := p.DecodeAction(action)
	if !ok {
		return false
	}
	return p.MakeMove(m)
}

func (p *BaseTurnPlayer[W]) ActionSize() int {
	return p.Width()
}

func (p *BaseTurnPlayer[W]) BoardShape() (int, int) {
	return p.Height(), p.Width()
}

func (p *BaseTurnPlayer[W]) InputPlaneCount() int {
	return game.TotalInputPlanes
}

func (p *BaseTurnPlayer[W]) RewardAbsolute() float32 {
	return p.Outcome().EncodeWinnerAbsolute()
}

func (p *BaseTurnPlayer[W]) RewardFromPerspective(pl board.Player) float32 {
	return p.Outcome().EncodeWinnerFromPerspective(pl)
}

func (p *BaseTurnPlayer[W]) EncodeGamePlanes() game.Planes {
	return game.EncodeGamePlanes(p.Game)
}

func (p *BaseTurnPlayer[W]) EncodeGamePlanesInto(dst []float32) {
	game.EncodeGamePlanesInto(p.Game, dst)
}

func (p *BaseTurnPlayer[W]) Name() string {
	return fmt.Sprintf("connect4_%dx%d", p.Width(), p.Height())
}

func (p *BaseTurnPlayer[W]) Copy() TurnPlayer {
	return &BaseTurnPlayer[W]{p.Game.Copy()}
}

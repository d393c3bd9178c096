package manager

import (
	"math-snake/game/entity"
	"math-snake/game/types"
)

// CollisionType classifies what the head ran into after a move.
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
	CorrectAnswerCollision
	WrongAnswerCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	case CorrectAnswerCollision:
		return "correct answer"
	case WrongAnswerCollision:
		return "wrong answer"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision evaluates the rules in order: wall, own body, answer blocks.
// The returned index is the first block under the head, or -1.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake, blocks []entity.AnswerBlock) (CollisionType, int) {
	head := snake.GetHead()
	if cm.isWallCollision(head) {
		return WallCollision, -1
	}
	if snake.CheckSelfCollision() {
		return SelfCollision, -1
	}
	if i := cm.CheckAnswerCollision(head, blocks); i >= 0 {
		if blocks[i].IsCorrect {
			return CorrectAnswerCollision, i
		}
		return WrongAnswerCollision, i
	}
	return NoCollision, -1
}

func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

// CheckAnswerCollision returns the index of the first block at pos, or -1.
func (cm *CollisionManager) CheckAnswerCollision(pos types.Point, blocks []entity.AnswerBlock) int {
	for i, b := range blocks {
		if b.Position == pos {
			return i
		}
	}
	return -1
}

// IsDanger reports whether moving the head onto p would end the run.
func (cm *CollisionManager) IsDanger(p types.Point, snake *entity.Snake, blocks []entity.AnswerBlock) bool {
	if cm.isWallCollision(p) {
		return true
	}
	// The tail cell is vacated on a non-growing move.
	body := snake.Body
	if snake.GrowthPending == 0 && len(body) > 1 {
		body = body[:len(body)-1]
	}
	for _, part := range body {
		if part == p {
			return true
		}
	}
	if i := cm.CheckAnswerCollision(p, blocks); i >= 0 && !blocks[i].IsCorrect {
		return true
	}
	return false
}

package manager

import (
	"testing"

	"math-snake/game/entity"
	"math-snake/game/types"
)

func TestCheckCollisionOrder(t *testing.T) {
	grid := types.Grid{Width: 10, Height: 10}
	cm := NewCollisionManager(grid)
	blocks := []entity.AnswerBlock{
		{Position: types.Point{X: 3, Y: 3}, Value: 4, IsCorrect: false},
		{Position: types.Point{X: 4, Y: 4}, Value: 5, IsCorrect: true},
	}
	tests := []struct {
		name  string
		body  []types.Point
		want  CollisionType
		index int
	}{
		{name: "free", body: []types.Point{{X: 1, Y: 1}}, want: NoCollision, index: -1},
		{name: "wall right", body: []types.Point{{X: 10, Y: 1}}, want: WallCollision, index: -1},
		{name: "wall top", body: []types.Point{{X: 1, Y: -1}}, want: WallCollision, index: -1},
		{name: "self", body: []types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}, {X: 5, Y: 5}}, want: SelfCollision, index: -1},
		{name: "wrong", body: []types.Point{{X: 3, Y: 3}}, want: WrongAnswerCollision, index: 0},
		{name: "correct", body: []types.Point{{X: 4, Y: 4}}, want: CorrectAnswerCollision, index: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, idx := cm.CheckCollision(&entity.Snake{Body: tc.body}, blocks)
			if got != tc.want || idx != tc.index {
				t.Fatalf("CheckCollision = %v,%d want %v,%d", got, idx, tc.want, tc.index)
			}
		})
	}
}

func TestIsDanger(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 5, Height: 5})
	s := &entity.Snake{Body: []types.Point{{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 3}}}
	blocks := []entity.AnswerBlock{
		{Position: types.Point{X: 3, Y: 2}, IsCorrect: false},
		{Position: types.Point{X: 2, Y: 1}, IsCorrect: true},
	}
	if !cm.IsDanger(types.Point{X: 3, Y: 2}, s, blocks) {
		t.Fatalf("wrong block is dangerous")
	}
	if cm.IsDanger(types.Point{X: 2, Y: 1}, s, blocks) {
		t.Fatalf("correct block is safe")
	}
	if !cm.IsDanger(types.Point{X: 1, Y: 2}, s, blocks) {
		t.Fatalf("neck is dangerous")
	}
	if cm.IsDanger(types.Point{X: 1, Y: 3}, s, blocks) {
		t.Fatalf("tail moves away without growth")
	}
	s.GrowthPending = 1
	if !cm.IsDanger(types.Point{X: 1, Y: 3}, s, blocks) {
		t.Fatalf("tail stays while growing")
	}
	if !cm.IsDanger(types.Point{X: -1, Y: 0}, s, blocks) {
		t.Fatalf("outside the grid is dangerous")
	}
}

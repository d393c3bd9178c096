package entity

import "math-snake/game/types"

// Snake owns the body geometry and heading. Body[0] is the head.
type Snake struct {
	Body             []types.Point
	Direction        types.Direction // applied on the last move
	PendingDirection types.Direction // applied on the next move
	GrowthPending    int
}

func NewSnake(startPos types.Point) *Snake {
	return &Snake{
		Body:             []types.Point{startPos},
		Direction:        types.Right, // Start moving right
		PendingDirection: types.Right,
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Move advances the snake one cell along PendingDirection. The tail is kept
// while growth is pending.
func (s *Snake) Move() {
	s.Direction = s.PendingDirection
	newHead := s.GetHead().Add(s.Direction.ToPoint())

	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead

	if s.GrowthPending > 0 {
		s.GrowthPending--
		return
	}
	s.RemoveTail()
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// SetDirection queues dir for the next move. A reversal of the applied
// direction is ignored and reported as false.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if !dir.Valid() || dir == s.Direction.Opposite() {
		return false
	}
	s.PendingDirection = dir
	return true
}

func (s *Snake) Grow() {
	s.GrowthPending++
}

// CheckSelfCollision reports whether the head shares a cell with any other segment.
func (s *Snake) CheckSelfCollision() bool {
	head := s.GetHead()
	for _, part := range s.Body[1:] {
		if part == head {
			return true
		}
	}
	return false
}

// Occupies reports whether any segment lies on p.
func (s *Snake) Occupies(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

// Segments returns a copy of the body safe to hand to readers.
func (s *Snake) Segments() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}

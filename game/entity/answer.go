package entity

import "math-snake/game/types"

// Operator is the arithmetic operation of a Question.
type Operator int

const (
	Addition Operator = iota
	Subtraction
)

func (o Operator) Symbol() string {
	if o == Subtraction {
		return "-"
	}
	return "+"
}

// Question is one arithmetic prompt.
type Question struct {
	Text     string
	Answer   int
	Left     int
	Right    int
	Operator Operator
}

// AnswerBlock is a grid cell bearing a candidate answer.
type AnswerBlock struct {
	Position  types.Point
	Value     int
	IsCorrect bool
}

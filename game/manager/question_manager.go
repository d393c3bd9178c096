package manager

import (
	"fmt"

	"math-snake/game/entity"
	"math-snake/game/types"

	"github.com/pkg/errors"
)

// ErrTooManyOptions is returned when more distinct wrong answers are requested
// than the numeric domain holds once the correct answer is excluded.
var ErrTooManyOptions = errors.New("too many wrong options requested")

type QuestionManager struct {
	rng types.Rand
}

func NewQuestionManager(rng types.Rand) *QuestionManager {
	return &QuestionManager{rng: rng}
}

// GenerateAddition draws a in [0,20] and b in [0,20-a], so a+b never exceeds 20.
func (qm *QuestionManager) GenerateAddition() entity.Question {
	a := qm.rng.Intn(types.MaxValue + 1)
	b := qm.rng.Intn(types.MaxValue + 1 - a)
	return newQuestion(a, b, entity.Addition, a+b)
}

// GenerateSubtraction draws a in [0,20] and b in [0,a], so a-b is never negative.
func (qm *QuestionManager) GenerateSubtraction() entity.Question {
	a := qm.rng.Intn(types.MaxValue + 1)
	b := qm.rng.Intn(a + 1)
	return newQuestion(a, b, entity.Subtraction, a-b)
}

func (qm *QuestionManager) GenerateRandomQuestion() entity.Question {
	if qm.rng.Intn(2) == 0 {
		return qm.GenerateAddition()
	}
	return qm.GenerateSubtraction()
}

// GenerateWrongOptions returns count distinct values in [0,20], none equal to
// correct. Callers must keep count <= 20; larger requests fail instead of spinning.
func (qm *QuestionManager) GenerateWrongOptions(correct, count int) ([]int, error) {
	if count > types.MaxValue {
		return nil, errors.Wrapf(ErrTooManyOptions, "requested %d, domain allows %d", count, types.MaxValue)
	}
	options := make([]int, 0, count)
	chosen := make(map[int]bool, count)
	for len(options) < count {
		wrong := qm.rng.Intn(types.MaxValue + 1)
		if wrong == correct || chosen[wrong] {
			continue
		}
		chosen[wrong] = true
		options = append(options, wrong)
	}
	return options, nil
}

// Shuffle permutes values in place (Fisher-Yates).
func (qm *QuestionManager) Shuffle(values []int) {
	for i := len(values) - 1; i > 0; i-- {
		j := qm.rng.Intn(i + 1)
		values[i], values[j] = values[j], values[i]
	}
}

func newQuestion(a, b int, op entity.Operator, answer int) entity.Question {
	return entity.Question{
		Text:     fmt.Sprintf("%d %s %d = ?", a, op.Symbol(), b),
		Answer:   answer,
		Left:     a,
		Right:    b,
		Operator: op,
	}
}

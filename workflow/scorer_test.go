package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func quizModule(key []int, required int) Module {
	m := Module{ID: 1, Title: "Site safety", RequiredScorePercent: required, IsActive: true}
	for _, k := range key {
		m.Questions = append(m.Questions, Question{
			Question:           "q",
			Options:            []string{"a", "b", "c", "d"},
			CorrectOptionIndex: k,
		})
	}
	return m
}

func TestScore_RoundedPercentOfCorrectAnswers(t *testing.T) {
	for n := 1; n <= 12; n++ {
		key := make([]int, n)
		for k := 0; k <= n; k++ {
			answers := make(map[int]int, n)
			for i := 0; i < n; i++ {
				if i < k {
					answers[i] = 0
				} else {
					answers[i] = 1
				}
			}
			want := (200*k + n) / (2 * n)
			assert.Equal(t, want, Score(quizModule(key, 0), answers), "k=%d n=%d", k, n)
		}
	}
}

func TestScore_RoundsHalfUp(t *testing.T) {
	m := quizModule(make([]int, 8), 0)
	assert.Equal(t, 13, Score(m, map[int]int{0: 0}))
	assert.Equal(t, 63, Score(m, map[int]int{0: 0, 1: 0, 2: 0, 3: 0, 4: 0}))

	m = quizModule(make([]int, 3), 0)
	assert.Equal(t, 33, Score(m, map[int]int{0: 0}))
	assert.Equal(t, 67, Score(m, map[int]int{0: 0, 1: 0}))
}

func TestScore_UnansweredCountsAsWrong(t *testing.T) {
	m := quizModule([]int{1, 0, 2, 3}, 70)
	assert.Equal(t, 50, Score(m, map[int]int{0: 1, 1: 0}))
	assert.Equal(t, 0, Score(m, nil))
}

func TestScore_ZeroQuestionsScoresFull(t *testing.T) {
	m := Module{RequiredScorePercent: 100}
	assert.Equal(t, 100, Score(m, nil))
	assert.True(t, Passes(m, Score(m, nil)))
}

func TestScore_ExampleKey(t *testing.T) {
	m := quizModule([]int{1, 0, 2, 3}, 70)
	score := Score(m, map[int]int{0: 1, 1: 0, 2: 0, 3: 3})
	assert.Equal(t, 75, score)
	assert.True(t, Passes(m, score))

	m.RequiredScorePercent = 80
	assert.False(t, Passes(m, score))
	assert.True(t, Passes(m, 80), "threshold is inclusive")
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   int
	}{
		{"none", nil, 0},
		{"single", []int{75}, 75},
		{"exact mean", []int{100, 50}, 75},
		{"rounds half up", []int{75, 100}, 88},
		{"rounds down", []int{100, 100, 75}, 92},
		{"thirds", []int{100, 100, 80}, 93},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.scores))
		})
	}
}

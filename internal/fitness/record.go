package fitness

import (
	"errors"
	"fmt"
	"strings"
)

// DaysInWeek is the fixed size of a tracked week.
const DaysInWeek = 7

// OnTrackMinDays is how many good days a week needs to count as on track.
const OnTrackMinDays = 5

var ErrInvalidInput = errors.New("invalid input")

// Record holds one user's week of steps and calories together with their goals.
// It is immutable after NewRecord returns.
type Record struct {
	name        string
	steps       []int
	calories    []int
	stepGoal    int
	calorieGoal int
}

// NewRecord validates and copies one user's week. It fails with ErrInvalidInput
// when the name is blank, either series is nil or not exactly 7 days long,
// any daily value is negative, or either goal is negative. Zero goals are valid.
func NewRecord(name string, steps, calories []int, stepGoal, calorieGoal int) (*Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if steps == nil || calories == nil {
		return nil, fmt.Errorf("%w: steps and calories data cannot be nil", ErrInvalidInput)
	}
	if len(steps) != DaysInWeek || len(calories) != DaysInWeek {
		return nil, fmt.Errorf("%w: must provide exactly %d days of data", ErrInvalidInput, DaysInWeek)
	}
	if hasNegative(steps) || hasNegative(calories) {
		return nil, fmt.Errorf("%w: values cannot be negative", ErrInvalidInput)
	}
	if stepGoal < 0 || calorieGoal < 0 {
		return nil, fmt.Errorf("%w: goals cannot be negative", ErrInvalidInput)
	}

	return &Record{
		name:        name,
		steps:       append([]int(nil), steps...),
		calories:    append([]int(nil), calories...),
		stepGoal:    stepGoal,
		calorieGoal: calorieGoal,
	}, nil
}

func (r *Record) Name() string     { return r.name }
func (r *Record) StepGoal() int    { return r.stepGoal }
func (r *Record) CalorieGoal() int { return r.calorieGoal }

// Steps returns a copy of the daily steps, day 1 first.
func (r *Record) Steps() []int {
	return append([]int(nil), r.steps...)
}

// Calories returns a copy of the daily calories, day 1 first.
func (r *Record) Calories() []int {
	return append([]int(nil), r.calories...)
}

// Average returns the mean daily steps and calories over the week.
func (r *Record) Average() (steps float64, calories float64) {
	var stepsSum, caloriesSum int
	for i := 0; i < DaysInWeek; i++ {
		stepsSum += r.steps[i]
		caloriesSum += r.calories[i]
	}
	return float64(stepsSum) / DaysInWeek, float64(caloriesSum) / DaysInWeek
}

// BestDay returns the 1-based day with the highest combined goal achievement ratio.
// The earliest day wins a tie.
func (r *Record) BestDay() int {
	bestDay := 0
	bestScore := 0.0
	for i := 0; i < DaysInWeek; i++ {
		score := achievement(r.steps[i], r.stepGoal) + achievement(r.calories[i], r.calorieGoal)
		if score > bestScore {
			bestScore = score
			bestDay = i
		}
	}
	return bestDay + 1
}

// GoodDays counts the days where both the step and the calorie goal were met.
func (r *Record) GoodDays() int {
	good := 0
	for i := 0; i < DaysInWeek; i++ {
		if r.stepsMet(i) && r.caloriesMet(i) {
			good++
		}
	}
	return good
}

func (r *Record) OnTrack() bool {
	return r.GoodDays() >= OnTrackMinDays
}

func (r *Record) stepsMet(day int) bool {
	return r.steps[day] >= r.stepGoal
}

func (r *Record) caloriesMet(day int) bool {
	return r.calories[day] >= r.calorieGoal
}

// achievement is value/goal; a zero goal counts as exactly met.
func achievement(value, goal int) float64 {
	if goal == 0 {
		return 1.0
	}
	return float64(value) / float64(goal)
}

func hasNegative(values []int) bool {
	for _, v := range values {
		if v < 0 {
			return true
		}
	}
	return false
}

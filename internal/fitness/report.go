package fitness

import (
	"fmt"
	"math"
	"strings"
)

const (
	markMet    = "[✓]"
	markMissed = "[✗]"
)

type DayBreakdown struct {
	Day         int  `json:"day"`
	Steps       int  `json:"steps"`
	StepsMet    bool `json:"stepsMet"`
	Calories    int  `json:"calories"`
	CaloriesMet bool `json:"caloriesMet"`
}

// Report is the weekly summary of a Record. It carries the exact values
// produced by Average, BestDay and OnTrack; only String rounds.
type Report struct {
	Name        string         `json:"name"`
	StepGoal    int            `json:"stepGoal"`
	CalorieGoal int            `json:"calorieGoal"`
	Days        []DayBreakdown `json:"days"`
	AvgSteps    float64        `json:"avgSteps"`
	AvgCalories float64        `json:"avgCalories"`
	BestDay     int            `json:"bestDay"`
	GoodDays    int            `json:"goodDays"`
	OnTrack     bool           `json:"onTrack"`
}

func (r *Record) BuildReport() Report {
	avgSteps, avgCalories := r.Average()
	report := Report{
		Name:        r.name,
		StepGoal:    r.stepGoal,
		CalorieGoal: r.calorieGoal,
		Days:        make([]DayBreakdown, 0, DaysInWeek),
		AvgSteps:    avgSteps,
		AvgCalories: avgCalories,
		BestDay:     r.BestDay(),
		GoodDays:    r.GoodDays(),
		OnTrack:     r.OnTrack(),
	}
	for i := 0; i < DaysInWeek; i++ {
		report.Days = append(report.Days, DayBreakdown{
			Day:         i + 1,
			Steps:       r.steps[i],
			StepsMet:    r.stepsMet(i),
			Calories:    r.calories[i],
			CaloriesMet: r.caloriesMet(i),
		})
	}
	return report
}

// String renders the report as plain text, averages rounded half away from zero.
func (rep Report) String() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "FITNESS REPORT FOR %s\n", strings.ToUpper(rep.Name))
	fmt.Fprintf(sb, "Step Goal: %d | Calorie Goal: %d\n", rep.StepGoal, rep.CalorieGoal)
	sb.WriteString("\nDaily Breakdown:\n")
	for _, d := range rep.Days {
		fmt.Fprintf(sb, "Day %d: Steps: %d%s | Calories: %d%s\n",
			d.Day, d.Steps, mark(d.StepsMet), d.Calories, mark(d.CaloriesMet))
	}
	fmt.Fprintf(sb, "\n7-Day Averages: Steps: %d, Calories: %d\n",
		int64(math.Round(rep.AvgSteps)), int64(math.Round(rep.AvgCalories)))
	fmt.Fprintf(sb, "Best Performance Day: Day %d\n", rep.BestDay)
	fmt.Fprintf(sb, "On Track (≥%d good days): %s\n", OnTrackMinDays, yesNo(rep.OnTrack))
	return sb.String()
}

func mark(met bool) string {
	if met {
		return markMet
	}
	return markMissed
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

package dataset

import (
	"fmt"
	"strconv"

	"depscreen/internal/models"
)

// LabelColumn is the name of the binary depression label after recoding.
const LabelColumn = "depression"

// RecodeError reports a category value outside a field's declared vocabulary.
type RecodeError struct {
	Field string
	Value string
}

func (e *RecodeError) Error() string {
	return fmt.Sprintf("recode: unrecognized value %q for field %q", e.Value, e.Field)
}

// Declared vocabularies, in rank order. Recoding is strict: anything outside
// these lists fails instead of coercing to a missing value.
var (
	genderLevels  = []string{"Female", "Male"}
	sleepLevels   = []string{"Less than 5 hours", "5-6 hours", "7-8 hours", "More than 8 hours"}
	dietaryLevels = []string{"Healthy", "Moderate", "Unhealthy"}
)

// recodedColumns is the output schema, in column order.
var recodedColumns = []Column{
	{Name: "gender_female", Kind: KindIndicator},
	{Name: "gender_male", Kind: KindIndicator},
	{Name: "age", Kind: KindContinuous},
	{Name: "academic_pressure", Kind: KindOrdinal},
	{Name: "study_satisfaction", Kind: KindOrdinal},
	{Name: "sleep_duration", Kind: KindOrdinal},
	{Name: "dietary_habits", Kind: KindOrdinal},
	{Name: "suicidal_thoughts", Kind: KindIndicator},
	{Name: "study_hours", Kind: KindContinuous},
	{Name: "financial_stress", Kind: KindOrdinal},
	{Name: "history_mental_illness", Kind: KindIndicator},
	{Name: LabelColumn, Kind: KindLabel},
}

// Recode maps raw records onto a fully numeric table: Yes/No fields to {1,0},
// ordinal text fields to their 1-based rank in the declared vocabulary, and
// gender to mutually exclusive indicator columns.
func Recode(records []models.Record) (*Table, error) {
	rows := make([][]float64, 0, len(records))

	for _, rec := range records {
		female, male, err := genderIndicators(rec.Gender)
		if err != nil {
			return nil, err
		}
		sleep, err := ordinalRank("Sleep Duration", rec.SleepDuration, sleepLevels)
		if err != nil {
			return nil, err
		}
		diet, err := ordinalRank("Dietary Habits", rec.DietaryHabits, dietaryLevels)
		if err != nil {
			return nil, err
		}
		suicidal, err := yesNo("Have you ever had suicidal thoughts?", rec.SuicidalThoughts)
		if err != nil {
			return nil, err
		}
		history, err := yesNo("Family History of Mental Illness", rec.FamilyHistory)
		if err != nil {
			return nil, err
		}
		label, err := yesNo("Depression", rec.Depression)
		if err != nil {
			return nil, err
		}
		if err := checkScale("Academic Pressure", rec.AcademicPressure); err != nil {
			return nil, err
		}
		if err := checkScale("Study Satisfaction", rec.StudySatisfaction); err != nil {
			return nil, err
		}
		if err := checkScale("Financial Stress", rec.FinancialStress); err != nil {
			return nil, err
		}

		rows = append(rows, []float64{
			female,
			male,
			float64(rec.Age),
			float64(rec.AcademicPressure),
			float64(rec.StudySatisfaction),
			sleep,
			diet,
			suicidal,
			rec.StudyHours,
			float64(rec.FinancialStress),
			history,
			label,
		})
	}

	return NewTable(recodedColumns, rows)
}

func genderIndicators(value string) (female, male float64, err error) {
	switch value {
	case genderLevels[0]:
		return 1, 0, nil
	case genderLevels[1]:
		return 0, 1, nil
	default:
		return 0, 0, &RecodeError{Field: "Gender", Value: value}
	}
}

func ordinalRank(field, value string, levels []string) (float64, error) {
	for i, level := range levels {
		if value == level {
			return float64(i + 1), nil
		}
	}
	return 0, &RecodeError{Field: field, Value: value}
}

func yesNo(field, value string) (float64, error) {
	switch value {
	case "Yes":
		return 1, nil
	case "No":
		return 0, nil
	default:
		return 0, &RecodeError{Field: field, Value: value}
	}
}

// checkScale validates the 1-5 Likert fields that arrive as numbers.
func checkScale(field string, value int) error {
	if value < 1 || value > 5 {
		return &RecodeError{Field: field, Value: strconv.Itoa(value)}
	}
	return nil
}

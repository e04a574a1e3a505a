package models

// Record represents a single survey respondent as read from the source CSV,
// before any recoding. Categorical fields keep their literal text values.
type Record struct {
	Gender            string  `json:"gender"`
	Age               int     `json:"age"`
	AcademicPressure  int     `json:"academic_pressure"`  // 1-5
	StudySatisfaction int     `json:"study_satisfaction"` // 1-5
	SleepDuration     string  `json:"sleep_duration"`     // bucketed range string
	DietaryHabits     string  `json:"dietary_habits"`
	SuicidalThoughts  string  `json:"suicidal_thoughts"` // "Yes"/"No"
	StudyHours        float64 `json:"study_hours"`
	FinancialStress   int     `json:"financial_stress"` // 1-5
	FamilyHistory     string  `json:"family_history"`   // "Yes"/"No"
	Depression        string  `json:"depression"`       // "Yes"/"No", the label
}

// CSVHeader is the exact header row the loader expects, in column order.
var CSVHeader = []string{
	"Gender",
	"Age",
	"Academic Pressure",
	"Study Satisfaction",
	"Sleep Duration",
	"Dietary Habits",
	"Have you ever had suicidal thoughts?",
	"Study Hours",
	"Financial Stress",
	"Family History of Mental Illness",
	"Depression",
}

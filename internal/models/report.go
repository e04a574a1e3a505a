package models

import "time"

// ROCPoint is one point of the ROC curve in rate space.
type ROCPoint struct {
	FPR float64 `json:"fpr"`
	TPR float64 `json:"tpr"`
}

// ImportanceEntry is one row of the feature-importance ranking.
type ImportanceEntry struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// EvaluationReport summarizes model quality on the held-out test set.
//
// Metric naming follows the source study rather than the textbook convention:
// Sensitivity is the true rate for the "No" class (TN/(TN+FP)) and
// Specificity the true rate for the "Yes" class (TP/(TP+FN)).
type EvaluationReport struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`

	Accuracy    float64 `json:"accuracy"`
	Sensitivity float64 `json:"sensitivity"`
	Specificity float64 `json:"specificity"`
	AUC         float64 `json:"auc"`

	Threshold float64 `json:"threshold"`

	ROC        []ROCPoint        `json:"roc"`
	Importance []ImportanceEntry `json:"importance"`
}

// Total returns the number of scored test records.
func (r *EvaluationReport) Total() int {
	return r.TP + r.FP + r.TN + r.FN
}

// Run represents one persisted pipeline execution.
type Run struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	DatasetPath string `json:"dataset_path" db:"dataset_path"`
	Rows        int    `json:"rows" db:"rows"`
	TrainRows   int    `json:"train_rows" db:"train_rows"`
	TestRows    int    `json:"test_rows" db:"test_rows"`

	SplitSeed   int64 `json:"split_seed" db:"split_seed"`
	BalanceSeed int64 `json:"balance_seed" db:"balance_seed"`
	ForestSeed  int64 `json:"forest_seed" db:"forest_seed"`
	Trees       int   `json:"trees" db:"trees"`

	TP int `json:"tp" db:"tp"`
	FP int `json:"fp" db:"fp"`
	TN int `json:"tn" db:"tn"`
	FN int `json:"fn" db:"fn"`

	Accuracy    float64 `json:"accuracy" db:"accuracy"`
	Sensitivity float64 `json:"sensitivity" db:"sensitivity"`
	Specificity float64 `json:"specificity" db:"specificity"`
	AUC         float64 `json:"auc" db:"auc"`
	Threshold   float64 `json:"threshold" db:"threshold"`

	ReportText     string `json:"report_text,omitempty" db:"report_text"`
	ROCSVG         string `json:"roc_svg,omitempty" db:"roc_svg"`
	ImportanceJSON string `json:"importance_json,omitempty" db:"importance_json"`
	ModelJSON      string `json:"model_json,omitempty" db:"model_json"`
}

// RunSummary is the listing view of a Run, without the heavy payload columns.
type RunSummary struct {
	ID          string    `json:"id" db:"id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	DatasetPath string    `json:"dataset_path" db:"dataset_path"`
	Rows        int       `json:"rows" db:"rows"`
	Accuracy    float64   `json:"accuracy" db:"accuracy"`
	AUC         float64   `json:"auc" db:"auc"`
}

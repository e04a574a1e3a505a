package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"depscreen/internal/models"
)

func sampleReport() *models.EvaluationReport {
	return &models.EvaluationReport{
		TP: 70, FP: 6, TN: 64, FN: 11,
		Accuracy:    0.8874,
		Sensitivity: 0.9143,
		Specificity: 0.8642,
		AUC:         0.9321,
		Threshold:   0.5,
		ROC: []models.ROCPoint{
			{FPR: 0, TPR: 0},
			{FPR: 0.1, TPR: 0.7},
			{FPR: 0.3, TPR: 0.9},
			{FPR: 1, TPR: 1},
		},
		Importance: []models.ImportanceEntry{
			{Feature: "suicidal_thoughts", Importance: 0.41},
			{Feature: "academic_pressure", Importance: 0.22},
		},
	}
}

func TestRenderText(t *testing.T) {
	text := RenderText(sampleReport())

	assert.Contains(t, text, "Confusion matrix")
	assert.Contains(t, text, "70")
	assert.Contains(t, text, "64")
	assert.Contains(t, text, "Accuracy:      88.74%")
	assert.Contains(t, text, "Sensitivity:   91.43%")
	assert.Contains(t, text, "Specificity:   86.42%")
	assert.Contains(t, text, "AUC:          0.9321")
	assert.Contains(t, text, "suicidal_thoughts")
	assert.True(t, strings.Index(text, "suicidal_thoughts") < strings.Index(text, "academic_pressure"),
		"importance ranking order lost")
}

func TestRenderROCSVG(t *testing.T) {
	r := sampleReport()
	svg := RenderROCSVG(r.ROC, r.AUC)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(svg), "</svg>"))
	assert.Contains(t, svg, "AUC = 0.9321")
	assert.Contains(t, svg, "<path")
	assert.Contains(t, svg, "False positive rate")
}

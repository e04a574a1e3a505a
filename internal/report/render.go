// Package report renders evaluation results as text and as an SVG ROC curve.
package report

import (
	"fmt"
	"strings"

	"depscreen/internal/models"
)

// RenderText formats the evaluation report for the terminal: confusion
// matrix, percentage metrics, AUC and the feature-importance ranking.
func RenderText(r *models.EvaluationReport) string {
	var b strings.Builder

	b.WriteString("Depression screening — evaluation report\n")
	b.WriteString("========================================\n\n")

	b.WriteString("Confusion matrix (threshold ")
	fmt.Fprintf(&b, "%.2f):\n", r.Threshold)
	fmt.Fprintf(&b, "                 actual Yes   actual No\n")
	fmt.Fprintf(&b, "  predicted Yes  %9d   %9d\n", r.TP, r.FP)
	fmt.Fprintf(&b, "  predicted No   %9d   %9d\n\n", r.FN, r.TN)

	fmt.Fprintf(&b, "Accuracy:     %6.2f%%\n", r.Accuracy*100)
	// Sensitivity/specificity follow the source study's direction:
	// sensitivity is the "No" class rate, specificity the "Yes" class rate.
	fmt.Fprintf(&b, "Sensitivity:  %6.2f%%  (correctly identified \"No\")\n", r.Sensitivity*100)
	fmt.Fprintf(&b, "Specificity:  %6.2f%%  (correctly identified \"Yes\")\n", r.Specificity*100)
	fmt.Fprintf(&b, "AUC:          %.4f\n\n", r.AUC)

	if len(r.Importance) > 0 {
		b.WriteString("Feature importance (mean decrease in Gini):\n")
		for i, entry := range r.Importance {
			fmt.Fprintf(&b, "  %2d. %-24s %.4f\n", i+1, entry.Feature, entry.Importance)
		}
	}

	return b.String()
}

const (
	svgSize   = 480
	svgMargin = 48
)

// RenderROCSVG draws the ROC curve as a standalone SVG document.
func RenderROCSVG(points []models.ROCPoint, auc float64) string {
	plot := float64(svgSize - 2*svgMargin)
	x := func(fpr float64) float64 { return svgMargin + fpr*plot }
	y := func(tpr float64) float64 { return float64(svgSize-svgMargin) - tpr*plot }

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		svgSize, svgSize, svgSize, svgSize)
	b.WriteString("\n")
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="white"/>`, svgSize, svgSize)
	b.WriteString("\n")

	// axes
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`,
		x(0), y(0), x(1), y(0))
	b.WriteString("\n")
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`,
		x(0), y(0), x(0), y(1))
	b.WriteString("\n")

	// chance diagonal
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="gray" stroke-dasharray="4 4"/>`,
		x(0), y(0), x(1), y(1))
	b.WriteString("\n")

	var path strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&path, "%s%.1f %.1f ", cmd, x(p.FPR), y(p.TPR))
	}
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="steelblue" stroke-width="2"/>`,
		strings.TrimSpace(path.String()))
	b.WriteString("\n")

	fmt.Fprintf(&b, `<text x="%.1f" y="%d" text-anchor="middle" font-family="sans-serif" font-size="13">False positive rate</text>`,
		x(0.5), svgSize-12)
	b.WriteString("\n")
	fmt.Fprintf(&b, `<text x="14" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="13" transform="rotate(-90 14 %.1f)">True positive rate</text>`,
		y(0.5), y(0.5))
	b.WriteString("\n")
	fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="13">AUC = %.4f</text>`,
		x(0.55), y(0.1), auc)
	b.WriteString("\n</svg>\n")

	return b.String()
}

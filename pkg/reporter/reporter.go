package reporter

import (
	"fmt"
	"io"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

// Report is the render-ready bundle of a full analysis pass.
type Report struct {
	Analyses []models.ClusterAnalysis
	Summary  models.OptimizationSummary
}

// NewReport pairs cluster analyses with their fleet summary.
func NewReport(analyses []models.ClusterAnalysis, summary models.OptimizationSummary) *Report {
	return &Report{Analyses: analyses, Summary: summary}
}

// WriteText renders the report for the terminal.
func (r *Report) WriteText(w io.Writer) {
	fmt.Fprintln(w, "CLUSTER COST ADVISOR REPORT")
	fmt.Fprintln(w, "===========================")
	fmt.Fprintln(w)

	if r.Summary.InsufficientData {
		fmt.Fprintf(w, "Insufficient data: %s\n", r.Summary.Message)
		return
	}

	fmt.Fprintf(w, "Clusters analyzed:       %d\n", r.Summary.TotalClustersAnalyzed)
	fmt.Fprintf(w, "Oversized clusters:      %d\n", r.Summary.OversizedClusters)
	fmt.Fprintf(w, "Underutilized clusters:  %d\n", r.Summary.UnderutilizedClusters)
	fmt.Fprintf(w, "Recommendations:         %d\n", r.Summary.RecommendationsCount)
	fmt.Fprintf(w, "Potential monthly saving: $%.2f\n", r.Summary.TotalPotentialMonthlySavings)
	fmt.Fprintln(w)

	for _, analysis := range r.Analyses {
		if len(analysis.Findings) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%s) - potential savings %.1f%%\n", analysis.ClusterName, analysis.ClusterID, analysis.TotalPotentialSavingsPercent)
		for _, f := range analysis.Findings {
			fmt.Fprintf(w, "  [%s] %s: %s\n", f.Severity, f.Issue, f.Reason)
			fmt.Fprintf(w, "      current:     %s\n", f.CurrentState)
			fmt.Fprintf(w, "      recommended: %s (est. %.0f%%)\n", f.RecommendedState, f.EstimatedSavingsPercent)
		}
		fmt.Fprintln(w)
	}
}

package reporter

import (
	"fmt"
	"io"
	"strings"
)

// GenerateMarkdown writes the report as Markdown for wikis and PRs.
func GenerateMarkdown(report *Report, w io.Writer) error {
	var b strings.Builder

	b.WriteString("# Cluster Cost Advisor Report\n\n")

	if report.Summary.InsufficientData {
		fmt.Fprintf(&b, "> Insufficient data: %s\n", report.Summary.Message)
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Clusters analyzed | %d |\n", report.Summary.TotalClustersAnalyzed)
	fmt.Fprintf(&b, "| Oversized clusters | %d |\n", report.Summary.OversizedClusters)
	fmt.Fprintf(&b, "| Underutilized clusters | %d |\n", report.Summary.UnderutilizedClusters)
	fmt.Fprintf(&b, "| Recommendations | %d |\n", report.Summary.RecommendationsCount)
	fmt.Fprintf(&b, "| Potential monthly savings | $%.2f |\n\n", report.Summary.TotalPotentialMonthlySavings)

	for _, analysis := range report.Analyses {
		if len(analysis.Findings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", analysis.ClusterName)
		fmt.Fprintf(&b, "Potential savings: **%.1f%%**\n\n", analysis.TotalPotentialSavingsPercent)
		b.WriteString("| Severity | Issue | Current | Recommended | Savings |\n")
		b.WriteString("|----------|-------|---------|-------------|--------|\n")
		for _, f := range analysis.Findings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %.0f%% |\n",
				f.Severity, f.Issue, f.CurrentState, f.RecommendedState, f.EstimatedSavingsPercent)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

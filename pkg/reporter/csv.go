package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

// GenerateCSV creates a CSV report
func GenerateCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	header := []string{
		"Cluster ID",
		"Cluster Name",
		"Category",
		"Issue",
		"Severity",
		"Current State",
		"Recommended State",
		"Estimated Savings (%)",
		"Reason",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, analysis := range report.Analyses {
		for _, f := range analysis.Findings {
			row := []string{
				analysis.ClusterID,
				analysis.ClusterName,
				string(f.Category),
				string(f.Issue),
				string(f.Severity),
				f.CurrentState,
				f.RecommendedState,
				fmt.Sprintf("%.1f", f.EstimatedSavingsPercent),
				f.Reason,
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	// Summary rows
	w.Write([]string{})
	w.Write([]string{"SUMMARY"})
	w.Write([]string{"Clusters Analyzed", fmt.Sprintf("%d", report.Summary.TotalClustersAnalyzed)})
	w.Write([]string{"Oversized Clusters", fmt.Sprintf("%d", report.Summary.OversizedClusters)})
	w.Write([]string{"Underutilized Clusters", fmt.Sprintf("%d", report.Summary.UnderutilizedClusters)})
	w.Write([]string{"Recommendations", fmt.Sprintf("%d", report.Summary.RecommendationsCount)})
	w.Write([]string{"Potential Monthly Savings", fmt.Sprintf("$%.2f", report.Summary.TotalPotentialMonthlySavings)})

	return nil
}

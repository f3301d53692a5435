package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opscart/cluster-cost-advisor/pkg/models"
)

func sampleReport() *Report {
	return NewReport(
		[]models.ClusterAnalysis{
			{
				ClusterID:   "c-1",
				ClusterName: "reporting-prod",
				Findings: []models.Finding{
					{
						Category:                models.OptimizationSizing,
						Issue:                   models.IssueOversizedCluster,
						Severity:                models.SeverityHigh,
						CurrentState:            "25 fixed workers at 22.0% average efficiency",
						RecommendedState:        "Reduce to 6 workers or enable autoscaling",
						EstimatedSavingsPercent: 76,
						Reason:                  "Cluster runs 25 workers but average efficiency over the window is 22.0%",
					},
				},
				TotalPotentialSavingsPercent: 76,
			},
			{ClusterID: "c-2", ClusterName: "lean"},
		},
		models.OptimizationSummary{
			TotalClustersAnalyzed:        2,
			OversizedClusters:            1,
			UnderutilizedClusters:        1,
			RecommendationsCount:         1,
			TotalPotentialMonthlySavings: 1234.56,
		},
	)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().WriteText(&buf)
	out := buf.String()

	for _, want := range []string{"reporting-prod", "OVERSIZED_CLUSTER", "$1234.56", "high"} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q", want)
		}
	}
	if strings.Contains(out, "lean") {
		t.Error("clusters without findings should be omitted from the detail section")
	}
}

func TestGenerateCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateCSV(sampleReport(), &buf); err != nil {
		t.Fatalf("GenerateCSV failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Cluster ID,Cluster Name") {
		t.Error("CSV missing header row")
	}
	if !strings.Contains(out, "c-1,reporting-prod,SIZING,OVERSIZED_CLUSTER,high") {
		t.Errorf("CSV missing finding row, got:\n%s", out)
	}
	if !strings.Contains(out, "SUMMARY") {
		t.Error("CSV missing summary section")
	}
}

func TestGenerateMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateMarkdown(sampleReport(), &buf); err != nil {
		t.Fatalf("GenerateMarkdown failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "# Cluster Cost Advisor Report") {
		t.Error("markdown missing title")
	}
	if !strings.Contains(out, "| Clusters analyzed | 2 |") {
		t.Error("markdown missing summary table")
	}
	if !strings.Contains(out, "## reporting-prod") {
		t.Error("markdown missing cluster section")
	}
}

func TestMarkdownInsufficientData(t *testing.T) {
	report := NewReport(nil, models.OptimizationSummary{
		InsufficientData: true,
		Message:          "no clusters available to summarize",
	})

	var buf bytes.Buffer
	if err := GenerateMarkdown(report, &buf); err != nil {
		t.Fatalf("GenerateMarkdown failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Insufficient data") {
		t.Error("markdown must surface the insufficient-data message")
	}
}

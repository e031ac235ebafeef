package main

import (
	"testing"

	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
)

func TestHistorySummary(t *testing.T) {
	records := []*analysis.Record{
		{OverallScore: 90},
		{OverallScore: 70},
		{OverallScore: 81},
	}

	got := historySummary(records)
	want := "3 analyses, average overall score 80.3"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHistorySummaryEmpty(t *testing.T) {
	if got := historySummary(nil); got != "No analyses yet." {
		t.Fatalf("got %q", got)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexthire/resume-analyzer/internal/client"
	"github.com/nexthire/resume-analyzer/internal/domain/analysis"
	"github.com/nexthire/resume-analyzer/internal/infra/ai/prompt"
)

const app = "nexthire"

var (
	serverURL    string
	analysisType string
	textInput    string
	urlInput     string
	fileInput    string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "nexthire is a cli for scoring resume content against the Next Hire API",
	}

	analyzeCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Submit text, a URL, or a document for scoring",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd.Context())
		},
	}

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List past analyses, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := client.New(serverURL, 2*time.Minute)
			records, err := c.History(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(historySummary(records))
			return printJSON(records)
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:4000", "base URL of the scoring API")

	analyzeCmd.Flags().StringVar(&analysisType, "type", prompt.TypeQuality, "analysis type (quality|sentiment|clarity|professionalism|creativity|technical)")
	analyzeCmd.Flags().StringVar(&textInput, "text", "", "resume text to score")
	analyzeCmd.Flags().StringVar(&urlInput, "url", "", "URL to reference in the analysis")
	analyzeCmd.Flags().StringVar(&fileInput, "file", "", "path to a document or image to score")

	rootCmd.AddCommand(analyzeCmd, historyCmd)
}

func runAnalyze(ctx context.Context) error {
	flow := &client.Flow{Client: client.New(serverURL, 2*time.Minute)}

	var in client.Input
	switch {
	case textInput != "":
		in = client.Input{Kind: client.KindText, Content: textInput, AnalysisType: analysisType}
	case urlInput != "":
		in = client.Input{Kind: client.KindURL, Content: urlInput, AnalysisType: analysisType}
	case fileInput != "":
		data, err := os.ReadFile(fileInput)
		if err != nil {
			return err
		}
		in = client.Input{
			Kind:         client.KindDocument,
			AnalysisType: analysisType,
			Filename:     filepath.Base(fileInput),
			ContentType:  mime.TypeByExtension(filepath.Ext(fileInput)),
			Data:         data,
		}
	default:
		return fmt.Errorf("one of --text, --url or --file is required")
	}

	rec, err := flow.Analyze(ctx, in)
	if err != nil {
		return err
	}
	return printJSON(rec)
}

// historySummary condenses the history the way the web History page does:
// total count and average overall score.
func historySummary(records []*analysis.Record) string {
	if len(records) == 0 {
		return "No analyses yet."
	}
	total := 0
	for _, r := range records {
		total += r.OverallScore
	}
	avg := float64(total) / float64(len(records))
	return fmt.Sprintf("%d analyses, average overall score %.1f", len(records), avg)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/cv-analyzer/internal/criteria"
	"alfredoptarigan/cv-analyzer/internal/extractor"
	"alfredoptarigan/cv-analyzer/internal/scoring"
	"alfredoptarigan/cv-analyzer/internal/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE...",
	Short: "Score one or more resumes",
	Long:  "Extracts, parses and scores every given resume. With --job the resume is also matched against that role's keywords.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

var (
	analyzeJob       string
	analyzeMinYears  int
	analyzeEducation string
	analyzeSkills    string
	analyzeJSON      bool
	analyzeParallel  int
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Job title to match keywords against")
	analyzeCmd.Flags().IntVar(&analyzeMinYears, "min-years", -1, "Minimum years of experience")
	analyzeCmd.Flags().StringVar(&analyzeEducation, "education", "", "Required education level (e.g. bachelor, master)")
	analyzeCmd.Flags().StringVar(&analyzeSkills, "skills", "", "Comma separated list of required skills")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print results as JSON")
	analyzeCmd.Flags().IntVarP(&analyzeParallel, "parallel", "p", 4, "Number of files analyzed at once")

	rootCmd.AddCommand(analyzeCmd)
}

// fileReport is the outcome for one input file. Exactly one of Result and
// Error is set.
type fileReport struct {
	File   string                   `json:"file"`
	Result *services.AnalysisResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if edu := strings.TrimSpace(analyzeEducation); edu != "" && !criteria.IsEducationLevel(edu) {
		return fmt.Errorf("unknown education level %q: use high school, diploma, bachelors, masters or phd", edu)
	}

	analyzer, log, err := newAnalyzer()
	if err != nil {
		return err
	}

	req := services.AnalysisRequest{
		JobName:           strings.TrimSpace(analyzeJob),
		RequiredEducation: strings.TrimSpace(analyzeEducation),
		RequiredSkills:    criteria.ParseSkillList(analyzeSkills),
	}
	if analyzeMinYears >= 0 {
		years := analyzeMinYears
		req.RequiredYears = &years
	}

	reports, err := analyzeFiles(cmd.Context(), analyzer, args, req.Options(), analyzeParallel, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	writeReports(out, reports)
	return nil
}

// analyzeFiles keeps the input order. A file that cannot be read is reported
// and does not stop the others; only cancellation aborts the run.
func analyzeFiles(ctx context.Context, analyzer services.Analyzer, paths []string, opts services.AnalyzeOptions, parallel int, log *zap.Logger) ([]fileReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if parallel < 1 {
		parallel = 1
	}

	reports := make([]fileReport, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, path := range paths {
		g.Go(func() error {
			reports[i] = fileReport{File: path}

			data, err := os.ReadFile(path)
			if err != nil {
				reports[i].Error = fmt.Sprintf("failed to read file: %v", err)
				return nil
			}

			result, err := analyzer.Analyze(ctx, extractor.RawDocument{
				Data:      data,
				Extension: filepath.Ext(path),
			}, opts)
			if err != nil {
				return fmt.Errorf("failed to analyze %s: %w", path, err)
			}

			log.Debug("analyzed resume", zap.String("file", path), zap.Float64("score", result.Scores.OverallScore))
			reports[i].Result = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func writeReports(w io.Writer, reports []fileReport) {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s\n", r.File)
		if r.Error != "" {
			fmt.Fprintf(w, "error: %s\n", r.Error)
			continue
		}

		res := r.Result
		if res.ExtractionFailed() {
			fmt.Fprintf(w, "warning: %s\n", res.Parsed.RawText.Text)
		}
		fmt.Fprintf(w, "Overall score: %.1f\n", res.Scores.OverallScore)
		for _, d := range scoring.Dimensions {
			fmt.Fprintf(w, "  %-11s %5.1f\n", d.Title(), res.Scores.SectionScores.Get(d))
		}

		if jm := res.JobMatch; jm != nil {
			title := "no matching role"
			if jm.MatchedTitle != nil {
				title = *jm.MatchedTitle
			}
			fmt.Fprintf(w, "Job match (%s): %.1f%%\n", title, jm.MatchPercentage)
			if len(jm.MissingKeywords) > 0 {
				fmt.Fprintf(w, "  missing: %s\n", strings.Join(jm.MissingKeywords, ", "))
			}
		}

		if cm := res.CriteriaMatch; cm != nil {
			fmt.Fprintf(w, "Criteria score: %.1f\n", cm.Score)
			for _, d := range cm.Details {
				fmt.Fprintf(w, "  %s\n", d)
			}
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.TrimSpace(res.SuggestionsReport))
	}
}

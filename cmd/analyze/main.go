package main

// Batch causality analysis over local files:
//   go run ./cmd/analyze -out ./results file1.pdf file2.docx notes.txt
//
// Each input is extracted, scored, and written out as a JSON summary plus a
// causality report. A failing file is reported and skipped; the batch
// continues.

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"causality-backend/internal/analyses"
	"causality-backend/internal/classifier"
	"causality-backend/internal/classifier/infer"
	"causality-backend/internal/extract"
	"causality-backend/internal/reports"
	"causality-backend/internal/scoring"
	"causality-backend/internal/shared/config"
)

type fileOutcome struct {
	File    string `json:"file"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Related bool   `json:"related"`

	TotalSentences int     `json:"totalSentences"`
	RelatedCount   int     `json:"relatedCount"`
	Confidence     float64 `json:"documentConfidence"`
}

type batchSummary struct {
	StartedAt   time.Time     `json:"startedAt"`
	CompletedAt time.Time     `json:"completedAt"`
	Total       int           `json:"total"`
	Succeeded   int           `json:"succeeded"`
	Failed      int           `json:"failed"`
	Files       []fileOutcome `json:"files"`
}

func main() {
	outDir := flag.String("out", "./results", "output directory")
	format := flag.String("format", "causality", "report format: summary, causality, or pbrer")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyze [-out dir] [-format summary|causality|pbrer] <file>...")
		os.Exit(2)
	}

	cfg := config.Load()
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	var clf classifier.Client
	if cfg.ClassifierURL != "" {
		client, err := infer.NewClient(cfg.ClassifierURL, cfg.ClassifierTimeout)
		if err != nil {
			log.Printf("classifier client unavailable, using lexical fallback: %v", err)
			clf = classifier.Fallback{}
		} else {
			clf = client
		}
	} else {
		log.Printf("CLASSIFIER_URL not set, using lexical fallback")
		clf = classifier.Fallback{}
	}

	svc := &analyses.Service{
		Classifier: clf,
		Config: scoring.Config{
			Threshold:   cfg.ClassifyThreshold,
			MarkerBoost: cfg.MarkerBoost,
			Preprocess:  cfg.Preprocess,
		},
	}

	ctx := context.Background()
	summary := batchSummary{StartedAt: time.Now().UTC(), Total: len(files)}

	for _, file := range files {
		outcome := analyzeFile(ctx, svc, file, *outDir, *format)
		if outcome.OK {
			summary.Succeeded++
		} else {
			summary.Failed++
			log.Printf("%s: %s", file, outcome.Error)
		}
		summary.Files = append(summary.Files, outcome)
	}
	summary.CompletedAt = time.Now().UTC()

	summaryPath := filepath.Join(*outDir, "batch_summary.json")
	if err := writeJSON(summaryPath, summary); err != nil {
		log.Fatalf("write batch summary: %v", err)
	}
	log.Printf("batch complete: %d/%d succeeded, summary at %s", summary.Succeeded, summary.Total, summaryPath)

	if summary.Succeeded == 0 {
		os.Exit(1)
	}
}

func analyzeFile(ctx context.Context, svc *analyses.Service, file, outDir, format string) fileOutcome {
	outcome := fileOutcome{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		outcome.Error = fmt.Sprintf("read: %v", err)
		return outcome
	}

	text, err := extract.FromBytes(ctx, data, "", filepath.Base(file))
	if err != nil {
		outcome.Error = fmt.Sprintf("extract: %v", err)
		return outcome
	}

	result, err := svc.AnalyzeText(ctx, text, scoring.Config{})
	if err != nil {
		outcome.Error = fmt.Sprintf("analyze: %v", err)
		return outcome
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if err := writeJSON(filepath.Join(outDir, base+"_summary.json"), analyses.Summarize(result)); err != nil {
		outcome.Error = fmt.Sprintf("write summary: %v", err)
		return outcome
	}

	drugCase, _ := analyses.DrugCaseFor(result, "", filepath.Base(file), time.Now().UTC())
	var rendered string
	switch format {
	case "summary":
		rendered = reports.Summary(drugCase)
	case "pbrer":
		rendered = reports.PBRERSection11(drugCase)
	default:
		rendered = reports.Causality(drugCase)
	}
	if err := os.WriteFile(filepath.Join(outDir, base+"_report.txt"), []byte(rendered), 0o644); err != nil {
		outcome.Error = fmt.Sprintf("write report: %v", err)
		return outcome
	}

	outcome.OK = true
	outcome.Related = result.Related
	outcome.TotalSentences = result.TotalSentences
	outcome.RelatedCount = result.RelatedCount
	outcome.Confidence = result.DocumentConfidence
	return outcome
}

func writeJSON(path string, payload any) error {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0o644)
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"inquest/internal/extract"
	"inquest/internal/llm"
	"inquest/internal/logging"
)

var extractFlags struct {
	rerun string
	runID string
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Score clustered transcripts with the configured model",
	Long: "Extract builds one prompt per cluster, invokes the model, parses\n" +
		"a score from the raw output, and writes per-respondent JSONL under\n" +
		"<raw-scores>/<run-id>/<model>/.",
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringVarP(&extractFlags.rerun, "rerun", "r", "never", "Policy for existing output files (never, missing, overwrite)")
	f.StringVar(&extractFlags.runID, "run-id", "", "Run identifier (overrides config)")
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New("extract")

	policy, err := extract.ParseRerunPolicy(extractFlags.rerun)
	if err != nil {
		return err
	}
	runID := extractFlags.runID
	if runID == "" {
		runID = cfg.Extract.RunID
	}
	if runID == "" {
		return fmt.Errorf("run id is required (set extract.run_id or --run-id)")
	}

	client, err := llm.New(cfg.Extract)
	if err != nil {
		return err
	}

	inDir := cfg.Paths.ClusteredDir()
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("read clustered dir: %w", err)
	}
	var jobs []extract.Job
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		jobs = append(jobs, extract.Job{
			RespondentID:   strings.TrimSuffix(e.Name(), ".json"),
			TranscriptPath: filepath.Join(inDir, e.Name()),
		})
	}

	outDir := filepath.Join(cfg.Paths.RawScoresDir(), runID, client.Name())
	runner := extract.NewRunner(
		extract.NewExtractor(extract.NewPromptBuilder(cfg.Clusters), client),
		policy,
		cfg.Extract.Workers,
	)
	log.Info("starting extraction",
		"run_id", runID,
		"model", client.Name(),
		"respondents", len(jobs),
		"workers", cfg.Extract.Workers,
	)
	if err := runner.Run(cmd.Context(), jobs, outDir); err != nil {
		return err
	}
	fmt.Printf("Scores: %s\n", outDir)
	return nil
}

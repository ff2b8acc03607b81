package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"inquest/internal/consolidate"
	"inquest/internal/format"
	"inquest/internal/logging"
)

var consolidateFlags struct {
	out      string
	markdown bool
	quiet    bool
}

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Merge per-run scores into one row per respondent",
	Long: "Consolidate walks the raw-scores tree, keeps the newest usable\n" +
		"score per respondent per cluster, writes the consolidated CSV, and\n" +
		"prints a table preview.",
	RunE: runConsolidate,
}

func init() {
	f := consolidateCmd.Flags()
	f.StringVarP(&consolidateFlags.out, "out", "o", "", "Output CSV path (default from config)")
	f.BoolVar(&consolidateFlags.markdown, "markdown", false, "Render the preview as a Markdown table")
	f.BoolVarP(&consolidateFlags.quiet, "quiet", "q", false, "Skip the table preview")
}

func runConsolidate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New("consolidate")

	c := consolidate.New(cfg.Consolidate, cfg.Clusters.Names())
	byRespondent, respondents, err := c.Collect(cfg.Paths.RawScoresDir())
	if err != nil {
		return err
	}
	rows := c.Consolidate(byRespondent, respondents)
	log.Info("consolidated results", "respondents", len(rows), "clusters", len(cfg.Clusters.Names()))

	outPath := consolidateFlags.out
	if outPath == "" {
		outPath = cfg.Paths.ConsolidatedFile()
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	if err := c.WriteCSV(f, rows); err != nil {
		return err
	}

	if !consolidateFlags.quiet {
		fmt.Println(previewTable(c, rows, consolidateFlags.markdown))
	}
	fmt.Printf("Consolidated: %s\n", outPath)
	return nil
}

func previewTable(c *consolidate.Consolidator, rows []consolidate.Row, markdown bool) string {
	mode := format.ASCII
	if markdown {
		mode = format.Markdown
	}
	t := format.NewTable(mode)

	header := append([]string{"respondent", "model"}, c.ClusterOrder()...)
	t.Header(header...)

	var cols []format.ColumnConfig
	for i := range c.ClusterOrder() {
		cols = append(cols, format.ColumnConfig{Number: i + 3, Right: true})
	}
	t.Columns(cols...)

	for _, row := range rows {
		vals := []any{row.RespondentID, format.Truncate(row.Model, 24)}
		for _, name := range c.ClusterOrder() {
			if v := row.PerCluster[name]; v != nil {
				vals = append(vals, consolidate.FmtScore(v))
			} else {
				vals = append(vals, format.Missing)
			}
		}
		t.Row(vals...)
	}
	return t.String()
}

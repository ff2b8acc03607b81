package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"inquest/internal/logging"
	"inquest/internal/segment"
)

var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Segment transcripts into per-cluster text",
	Long: "Segment tags every transcript line with the question(s) it\n" +
		"answers, resolves each question to a contiguous line span, and\n" +
		"writes one clustered transcript JSON per respondent.",
	RunE: runSegment,
}

func runSegment(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New("segment")

	tagger, err := segment.NewTagger(cfg.Tags)
	if err != nil {
		return err
	}
	segmenter := segment.NewSegmenter(cfg.Clusters)

	inDir := cfg.Paths.TranscriptsDir()
	outDir := cfg.Paths.ClusteredDir()
	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("read transcript dir: %w", err)
	}

	segmented := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		lines, err := segment.LoadLines(filepath.Join(inDir, e.Name()))
		if err != nil {
			return err
		}
		t, err := segmenter.Build(lines, tagger.Tag(lines))
		if err != nil {
			return err
		}
		if err := segment.SaveTranscript(filepath.Join(outDir, e.Name()), t); err != nil {
			return err
		}
		segmented++
	}
	log.Info("segmented transcripts", "count", segmented, "out", outDir)
	return nil
}

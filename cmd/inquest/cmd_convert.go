package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"inquest/internal/logging"
	"inquest/internal/segment"
)

var convertFlags struct {
	in string
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert plain-text transcripts to JSON line arrays",
	Long: "Convert reads already-extracted plain-text transcripts (one\n" +
		"utterance per line) and writes one JSON line-array file per\n" +
		"respondent. The respondent id is the filename up to the first '_'.",
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertFlags.in, "in", "", "Directory of .txt transcripts (default <root>/resources/transcripts/text)")
}

func runConvert(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New("convert")

	inDir := convertFlags.in
	if inDir == "" {
		inDir = filepath.Join(cfg.Paths.Root, "resources", "transcripts", "text")
	}
	outDir := cfg.Paths.TranscriptsDir()

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("read transcript dir: %w", err)
	}
	converted := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		lines, err := readTextLines(filepath.Join(inDir, e.Name()))
		if err != nil {
			return err
		}
		id := respondentID(e.Name())
		if err := segment.SaveLines(filepath.Join(outDir, id+".json"), lines); err != nil {
			return err
		}
		converted++
	}
	log.Info("converted transcripts", "count", converted, "out", outDir)
	return nil
}

// readTextLines loads non-empty trimmed lines, matching what document
// extraction produces upstream.
func readTextLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// respondentID derives the respondent id from a transcript filename:
// everything before the first underscore, without the extension.
func respondentID(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if i := strings.IndexByte(base, '_'); i > 0 {
		return base[:i]
	}
	return base
}

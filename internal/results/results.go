// Package results defines the per-run score records written by extraction
// and read back by consolidation, stored as JSONL under
// <raw-scores>/<run-id>/<model>/<respondent-id>.jsonl.
package results

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ClusterScore is one scored cluster for one respondent in one run. A nil
// Score with a non-empty ErrorMessage means the model ran but produced
// nothing usable; a nil Score with "no cluster data" means the transcript
// had no lines for the cluster.
type ClusterScore struct {
	ClusterName  string   `json:"cluster_name"`
	Score        *float64 `json:"score"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// SaveJSONL writes one record per line, creating parent directories.
func SaveJSONL(path string, recs []ClusterScore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("results: create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("results: create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("results: encode record: %w", err)
		}
	}
	return nil
}

// LoadJSONL reads records back, one JSON object per line. Blank lines are
// skipped.
func LoadJSONL(path string) ([]ClusterScore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("results: open %s: %w", path, err)
	}
	defer f.Close()

	var recs []ClusterScore
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var r ClusterScore
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("results: parse %s: %w", path, err)
		}
		recs = append(recs, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("results: read %s: %w", path, err)
	}
	return recs, nil
}

// FileInfo locates one per-respondent result file within a run tree.
type FileInfo struct {
	RespondentID string
	RunID        string
	Model        string
	Path         string
}

// Walk visits every .jsonl file under root, deriving the run id from the
// first path segment, the model from the remaining directories, and the
// respondent id from the file stem. Files that sit too shallow in the tree
// to carry a run id and model are skipped.
func Walk(root string) ([]FileInfo, error) {
	var infos []FileInfo
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < 3 {
			return nil
		}
		infos = append(infos, FileInfo{
			RespondentID: strings.TrimSuffix(d.Name(), ".jsonl"),
			RunID:        parts[0],
			Model:        strings.Join(parts[1:len(parts)-1], "/"),
			Path:         path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("results: walk %s: %w", root, err)
	}
	return infos, nil
}

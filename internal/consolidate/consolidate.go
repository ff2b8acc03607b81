// Package consolidate merges per-run, per-model score records into one row
// per respondent, keeping for each cluster the value from the most recent
// run that produced a usable score.
package consolidate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"inquest/internal/results"
)

// Config controls which records are collected and how rows are labelled.
type Config struct {
	RespondentColumn string   `yaml:"respondent_column" json:"respondent_column"`
	ModelColumn      string   `yaml:"model_column" json:"model_column"`
	OrderedRunIDs    []string `yaml:"ordered_run_ids" json:"ordered_run_ids"`
	Models           []string `yaml:"models" json:"models"`
	Blacklist        []string `yaml:"blacklist" json:"blacklist"`
}

// Intermediary is the loaded result of one run for one respondent.
type Intermediary struct {
	RunID string
	Model string
	Data  map[string]*float64
}

// Row is the consolidated output for one respondent. PerCluster carries an
// explicit nil for clusters no run ever scored; columns are never omitted.
type Row struct {
	RespondentID string
	Model        string
	PerCluster   map[string]*float64
}

// Consolidator applies the latest-run-wins policy over collected results.
type Consolidator struct {
	cfg          Config
	clusterOrder []string
	reversedRuns []string
	blacklist    map[string]bool
	runAllowed   map[string]bool
	modelAllowed map[string]bool
}

// New builds a Consolidator. clusterOrder is the cluster column order,
// taken from the cluster configuration's declared order.
func New(cfg Config, clusterOrder []string) *Consolidator {
	c := &Consolidator{
		cfg:          cfg,
		clusterOrder: clusterOrder,
		blacklist:    make(map[string]bool, len(cfg.Blacklist)),
		runAllowed:   make(map[string]bool, len(cfg.OrderedRunIDs)),
		modelAllowed: make(map[string]bool, len(cfg.Models)),
	}
	for i := len(cfg.OrderedRunIDs) - 1; i >= 0; i-- {
		c.reversedRuns = append(c.reversedRuns, cfg.OrderedRunIDs[i])
	}
	for _, id := range cfg.Blacklist {
		c.blacklist[id] = true
	}
	for _, id := range cfg.OrderedRunIDs {
		c.runAllowed[id] = true
	}
	for _, m := range cfg.Models {
		c.modelAllowed[m] = true
	}
	return c
}

// Collect walks a raw-scores tree and loads every admissible result file.
// Blacklisted respondents are dropped entirely; runs and models outside the
// configured allow-lists are silently ignored. The returned slice preserves
// respondent discovery order.
func (c *Consolidator) Collect(root string) (map[string]map[string]Intermediary, []string, error) {
	infos, err := results.Walk(root)
	if err != nil {
		return nil, nil, err
	}

	byRespondent := make(map[string]map[string]Intermediary)
	var order []string
	for _, fi := range infos {
		if c.blacklist[fi.RespondentID] {
			continue
		}
		if !c.runAllowed[fi.RunID] || !c.modelAllowed[fi.Model] {
			continue
		}
		recs, err := results.LoadJSONL(fi.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("consolidate: %w", err)
		}
		data := make(map[string]*float64, len(recs))
		for _, r := range recs {
			data[r.ClusterName] = r.Score
		}
		if _, seen := byRespondent[fi.RespondentID]; !seen {
			byRespondent[fi.RespondentID] = make(map[string]Intermediary)
			order = append(order, fi.RespondentID)
		}
		byRespondent[fi.RespondentID][fi.RunID] = Intermediary{
			RunID: fi.RunID,
			Model: fi.Model,
			Data:  data,
		}
	}
	return byRespondent, order, nil
}

// Consolidate produces one row per respondent, in the given discovery order.
// Per cluster (in configured column order) the newest run with a non-nil
// value wins; a run whose record for the cluster is nil is skipped in favor
// of older runs. The row model is taken from an arbitrary contributing run;
// all runs for one respondent are expected to share one model.
func (c *Consolidator) Consolidate(byRespondent map[string]map[string]Intermediary, respondents []string) []Row {
	rows := make([]Row, 0, len(respondents))
	for _, rid := range respondents {
		runs := byRespondent[rid]
		row := Row{
			RespondentID: rid,
			PerCluster:   make(map[string]*float64, len(c.clusterOrder)),
		}
		for _, name := range c.clusterOrder {
			var latest *float64
			for _, runID := range c.reversedRuns {
				ir, ok := runs[runID]
				if !ok {
					continue
				}
				if v, ok := ir.Data[name]; ok && v != nil {
					latest = v
					break
				}
			}
			row.PerCluster[name] = latest
		}
		for _, runID := range c.cfg.OrderedRunIDs {
			if ir, ok := runs[runID]; ok {
				row.Model = ir.Model
				break
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV serializes rows as delimited text: respondent id, model, then one
// column per cluster in configured order. Missing scores become empty cells.
func (c *Consolidator) WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	header := []string{c.cfg.RespondentColumn, c.cfg.ModelColumn}
	header = append(header, c.clusterOrder...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("consolidate: write header: %w", err)
	}

	for _, row := range rows {
		rec := []string{row.RespondentID, row.Model}
		for _, name := range c.clusterOrder {
			rec = append(rec, FmtScore(row.PerCluster[name]))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("consolidate: write row %s: %w", row.RespondentID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("consolidate: flush: %w", err)
	}
	return nil
}

// ClusterOrder returns the configured cluster column order.
func (c *Consolidator) ClusterOrder() []string { return c.clusterOrder }

// FmtScore renders a nullable score; nil becomes the empty string.
func FmtScore(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

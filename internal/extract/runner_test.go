package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"inquest/internal/results"
	"inquest/internal/segment"
)

func writeTranscript(t *testing.T, dir, rid string, lines []string) Job {
	t.Helper()
	path := filepath.Join(dir, rid+".json")
	if err := segment.SaveTranscript(path, transcript(lines, nil)); err != nil {
		t.Fatalf("SaveTranscript: %v", err)
	}
	return Job{RespondentID: rid, TranscriptPath: path}
}

func newTestRunner(client *fakeClient, policy RerunPolicy) *Runner {
	e := NewExtractor(NewPromptBuilder(testClusterConfig()), client)
	return NewRunner(e, policy, 2)
}

func TestRunner_WritesOneFilePerRespondent(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	jobs := []Job{
		writeTranscript(t, dir, "A001", []string{"fine"}),
		writeTranscript(t, dir, "A002", []string{"great"}),
	}

	r := newTestRunner(&fakeClient{reply: "0.5"}, RerunNever)
	if err := r.Run(context.Background(), jobs, outDir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, rid := range []string{"A001", "A002"} {
		recs, err := results.LoadJSONL(filepath.Join(outDir, rid+".jsonl"))
		if err != nil {
			t.Fatalf("load %s: %v", rid, err)
		}
		if len(recs) != 2 {
			t.Errorf("%s: got %d records, want one per cluster", rid, len(recs))
		}
	}
}

func TestRunner_NeverPolicyFailsBeforeAnyModelCall(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	jobs := []Job{
		writeTranscript(t, dir, "A001", []string{"fine"}),
		writeTranscript(t, dir, "A002", []string{"great"}),
	}
	if err := results.SaveJSONL(filepath.Join(outDir, "A002.jsonl"), nil); err != nil {
		t.Fatal(err)
	}

	client := &fakeClient{reply: "0.5"}
	r := newTestRunner(client, RerunNever)
	if err := r.Run(context.Background(), jobs, outDir); err == nil {
		t.Fatal("Run succeeded with existing output under never policy")
	}
	if n := client.calls.Load(); n != 0 {
		t.Errorf("model invoked %d times before policy check failed, want 0", n)
	}
}

func TestRunner_MissingPolicySkipsExisting(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	jobs := []Job{
		writeTranscript(t, dir, "A001", []string{"fine"}),
		writeTranscript(t, dir, "A002", []string{"great"}),
	}
	existing := filepath.Join(outDir, "A001.jsonl")
	if err := results.SaveJSONL(existing, []results.ClusterScore{{ClusterName: "sentinel"}}); err != nil {
		t.Fatal(err)
	}

	r := newTestRunner(&fakeClient{reply: "0.5"}, RerunMissing)
	if err := r.Run(context.Background(), jobs, outDir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	recs, err := results.LoadJSONL(existing)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ClusterName != "sentinel" {
		t.Errorf("existing output was rewritten under missing policy: %+v", recs)
	}
	if _, err := os.Stat(filepath.Join(outDir, "A002.jsonl")); err != nil {
		t.Errorf("missing respondent was not scored: %v", err)
	}
}

func TestRunner_OverwritePolicyReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	jobs := []Job{writeTranscript(t, dir, "A001", []string{"fine"})}
	existing := filepath.Join(outDir, "A001.jsonl")
	if err := results.SaveJSONL(existing, []results.ClusterScore{{ClusterName: "sentinel"}}); err != nil {
		t.Fatal(err)
	}

	r := newTestRunner(&fakeClient{reply: "0.5"}, RerunOverwrite)
	if err := r.Run(context.Background(), jobs, outDir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	recs, err := results.LoadJSONL(existing)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Errorf("got %d records, want existing output replaced with fresh scores", len(recs))
	}
}

func TestRunner_MissingTranscriptFailsRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	jobs := []Job{{RespondentID: "A001", TranscriptPath: "/nonexistent/A001.json"}}

	r := newTestRunner(&fakeClient{reply: "0.5"}, RerunNever)
	if err := r.Run(context.Background(), jobs, outDir); err == nil {
		t.Error("Run succeeded with unreadable transcript, want error")
	}
}

package segment

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTranscript_RoundTrip(t *testing.T) {
	cfg := testClusters()
	want := &Transcript{
		Order: []string{"wellbeing", "health"},
		Clusters: map[string]*Cluster{
			"wellbeing": {Def: cfg.Clusters[0], Lines: []string{"I sleep well."}},
			"health":    {Def: cfg.Clusters[1], Lines: nil},
		},
	}
	path := filepath.Join(t.TempDir(), "clustered", "A001.json")
	if err := SaveTranscript(path, want); err != nil {
		t.Fatalf("SaveTranscript: %v", err)
	}

	got, err := LoadTranscript(path)
	if err != nil {
		t.Fatalf("LoadTranscript: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestLines_RoundTrip(t *testing.T) {
	want := []string{"Question 1.. I sleep well.", "Mostly happy."}
	path := filepath.Join(t.TempDir(), "json", "A001.json")
	if err := SaveLines(path, want); err != nil {
		t.Fatalf("SaveLines: %v", err)
	}

	got, err := LoadLines(path)
	if err != nil {
		t.Fatalf("LoadLines: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLines_NotAnArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := SaveTranscript(path, &Transcript{}); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLines(path); err == nil {
		t.Error("LoadLines accepted a non-array document")
	}
}

package fixture

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"epsync/internal/index"
	"epsync/internal/reconcile"
)

func TestBuildCreatesBothTrees(t *testing.T) {
	base := filepath.Join(t.TempDir(), "fake_scenario")
	sourceDir, destDir, err := Build(base)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range sourceFiles {
		if _, err := os.Stat(filepath.Join(sourceDir, f.path)); err != nil {
			t.Errorf("missing source fixture file %s: %v", f.path, err)
		}
	}
	for _, f := range destFiles {
		if _, err := os.Stat(filepath.Join(destDir, f.path)); err != nil {
			t.Errorf("missing destination fixture file %s: %v", f.path, err)
		}
	}
}

func TestBuildReplacesPreviousFixture(t *testing.T) {
	base := filepath.Join(t.TempDir(), "fake_scenario")
	if _, _, err := Build(base); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(base, SourceDirName, "stale - S09E09.file")
	if err := os.WriteFile(stale, []byte("leftover"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Build(base); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("rebuild should remove leftovers from the previous fixture")
	}
}

// Reconciling the fixture end to end: every expected_move file relocates,
// every expected_stay file is blocked by its destination counterpart.
func TestFixtureReconciles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "fake_scenario")
	sourceDir, destDir, err := Build(base)
	if err != nil {
		t.Fatal(err)
	}

	srcIdx, err := index.Build(sourceDir, nil, index.Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	dstIdx, err := index.Build(destDir, nil, index.Options{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	r := reconcile.New(sourceDir, destDir, dstIdx, reconcile.Options{Output: &out})
	if _, err := r.Run(context.Background(), srcIdx); err != nil {
		t.Fatal(err)
	}

	for _, f := range sourceFiles {
		srcPath := filepath.Join(sourceDir, f.path)
		dstPath := filepath.Join(destDir, f.path)
		switch {
		case strings.Contains(f.path, "expected_move"):
			if _, err := os.Stat(dstPath); err != nil {
				t.Errorf("%s should have moved to the destination: %v", f.path, err)
			}
			if _, err := os.Stat(srcPath); !os.IsNotExist(err) {
				t.Errorf("%s should no longer be in the source", f.path)
			}
		case strings.Contains(f.path, "expected_stay"):
			if _, err := os.Stat(srcPath); err != nil {
				t.Errorf("%s should have stayed in the source: %v", f.path, err)
			}
		}
	}
}

// Package fixture materializes a canned two-tree scenario for exercising the
// reconciler by hand. File names state the expected outcome: expected_move
// files have no counterpart in the destination, expected_stay files are
// blocked by a destination_has file sharing their identity.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
)

// SourceDirName and DestDirName are the tree roots created under the fixture
// base directory.
const (
	SourceDirName = "shows"
	DestDirName   = "shows2"
)

type fixtureFile struct {
	path    string
	content string
}

var sourceFiles = []fixtureFile{
	{"show_a/season_01/expected_stay - S01E01.file", "Video content A S01E01 (blocked by target's S01E01 video)"},
	{"show_a/season_01/expected_move - S01E01.sub", "Subtitle content A S01E01 [1080p]"},
	{"show_a/season_01/expected_move - S01E02.file", "Video content A S01E02 [4k]"},
	{"show_a/season_01/expected_move - S01E100.file", "Video content A S01E100 [4k]"},
	{"show_a/season_01/expected_move - S01E1000.file", "Video content A S01E1000 [1080p]"},
	{"show_a/season_02/expected_move - S01E04.file", "Extra video content A S01E04 [720p]"},
	{"show_b/season_01/expected_stay - S01E05.file", "Video B S01E05 (blocked by target S01E05)"},
	{"show_b/season_02/expected_stay - S02E01.file", "Video B S02E01 (blocked by target S02E01)"},
	{"show_b/season_02/expected_move - S02E02.sub", "Subtitle B S02E02 [1080p]"},
	{"show_c/season_01/expected_move - S01E01.file", "Unique video content C S01E01 [4k]"},
	{"show_x/season_01/expected_stay - S01E01.file", "X S01E01 video (blocked by target S01E01) [720p]"},
	{"show_y/season_01/expected_move - S01E01.file", "Y S01E01 video [1080p]"},
}

var destFiles = []fixtureFile{
	{"show_a/season_01/destination_has - S01E01.file", "Video A S01E01 blocking source S01E01"},
	{"show_b/season_01/destination_has - S01E05.file", "Video B S01E05 blocking source S01E05"},
	{"show_b/season_02/destination_has - S02E01.file", "Video B S02E01 blocking source S02E01"},
	{"show_d/season_01/uniqueD - S01E01.file", "Unique video D S01E01"},
	{"show_x/season_01/destination_has - S01E01.file", "X S01E01 existing in target"},
}

// Build creates the scenario under baseDir, replacing any previous fixture,
// and returns the source and destination tree roots.
func Build(baseDir string) (string, string, error) {
	if err := os.RemoveAll(baseDir); err != nil {
		return "", "", fmt.Errorf("clear fixture directory: %w", err)
	}

	sourceDir := filepath.Join(baseDir, SourceDirName)
	destDir := filepath.Join(baseDir, DestDirName)

	for _, f := range sourceFiles {
		if err := writeFile(filepath.Join(sourceDir, f.path), f.content); err != nil {
			return "", "", err
		}
	}
	for _, f := range destFiles {
		if err := writeFile(filepath.Join(destDir, f.path), f.content); err != nil {
			return "", "", err
		}
	}
	return sourceDir, destDir, nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create fixture directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write fixture file: %w", err)
	}
	return nil
}

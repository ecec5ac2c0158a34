package scoring

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type rulesFile struct {
	Tags []Rule `toml:"tags"`
}

// LoadRules reads tag rules from a TOML document with a top-level [[tags]]
// array of match/score pairs. A missing file is not an error: it degrades to
// an empty rule set so every file scores 0. A malformed file returns an error
// alongside the empty set; callers log the diagnostic and continue.
func LoadRules(path string) ([]Rule, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open tags config: %w", err)
	}
	defer file.Close()

	var parsed rulesFile
	if err := toml.NewDecoder(file).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse tags config: %w", err)
	}
	return parsed.Tags, nil
}

// Package identity derives the composite episode identity used to match files
// across trees: the top-level show folder, the SxxEyy episode code, and the
// content type inferred from the file extension.
package identity

import (
	"path/filepath"
	"regexp"
	"strings"
)

// NoTopLevel is the show sentinel for files sitting directly at a tree root.
const NoTopLevel = "NO_TOP_LEVEL"

// codePattern matches the literal letter S, exactly two digits, the literal
// letter E, and two to four digits. Only the first match in a name counts.
var codePattern = regexp.MustCompile(`(?i)S\d{2}E\d{2,4}`)

// ContentType classifies a file as video or subtitle.
type ContentType string

const (
	Video    ContentType = "video"
	Subtitle ContentType = "subtitle"
)

var subtitleExtensions = map[string]struct{}{
	".sub": {},
	".srt": {},
	".ass": {},
	".ssa": {},
}

// Identity is the composite key two files must share to be considered
// interchangeable representations of the same episode asset.
type Identity struct {
	Show string
	Code string
	Type ContentType
}

// String renders the identity as show/code/type for logging and sorting.
func (id Identity) String() string {
	return id.Show + "/" + id.Code + "/" + string(id.Type)
}

// Compare orders identities lexicographically by show, code, then type. The
// ordering exists so reconcile runs iterate deterministically.
func (id Identity) Compare(other Identity) int {
	if c := strings.Compare(id.Show, other.Show); c != 0 {
		return c
	}
	if c := strings.Compare(id.Code, other.Code); c != 0 {
		return c
	}
	return strings.Compare(string(id.Type), string(other.Type))
}

// ExtractCode returns the first episode code found in name, uppercased.
// A false return means the file carries no identity at all and must be
// excluded from indexing.
func ExtractCode(name string) (string, bool) {
	match := codePattern.FindString(name)
	if match == "" {
		return "", false
	}
	return strings.ToUpper(match), true
}

// Classify maps a filename to its content type by extension alone. Anything
// outside the fixed subtitle set is video, unknown extensions included.
func Classify(name string) ContentType {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := subtitleExtensions[ext]; ok {
		return Subtitle
	}
	return Video
}

// DeriveShow returns the first path segment of path relative to root, or the
// NoTopLevel sentinel when the file sits directly at the root.
func DeriveShow(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return NoTopLevel
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) > 1 {
		return parts[0]
	}
	return NoTopLevel
}

// FromFile assembles the identity for a file at path under root, returning
// false when the filename has no episode code.
func FromFile(path, root string) (Identity, bool) {
	name := filepath.Base(path)
	code, ok := ExtractCode(name)
	if !ok {
		return Identity{}, false
	}
	return Identity{
		Show: DeriveShow(path, root),
		Code: code,
		Type: Classify(name),
	}, true
}

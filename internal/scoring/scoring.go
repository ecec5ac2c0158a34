// Package scoring computes the integer preference score of a filename from a
// configurable list of tag rules. Higher scores win when two files share an
// episode identity.
package scoring

import "strings"

// Rule adds Score to a filename's total when Match occurs in it
// (case-insensitive substring containment).
type Rule struct {
	Match string `toml:"match"`
	Score int    `toml:"score"`
}

// Score sums the weights of every rule whose match string is contained in
// name. Rules with an empty match string never fire. Pure and
// order-independent over the rule set; no matches yield 0.
func Score(name string, rules []Rule) int {
	lower := strings.ToLower(name)
	total := 0
	for _, rule := range rules {
		match := strings.ToLower(rule.Match)
		if match != "" && strings.Contains(lower, match) {
			total += rule.Score
		}
	}
	return total
}

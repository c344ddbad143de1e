package transfer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Matcher reports whether value matches needle. Needles are never empty
// when a Matcher is called through FieldPredicate.
type Matcher func(value, needle string) bool

// Match modes accepted by MatcherFor.
const (
	MatchSubstring = "substring"
	MatchFold      = "fold"
	MatchFuzzy     = "fuzzy"
)

// Contains is case-sensitive substring containment.
func Contains(value, needle string) bool {
	return strings.Contains(value, needle)
}

// ContainsFold is case-insensitive substring containment.
func ContainsFold(value, needle string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

// fzf's character class table is empty until Init runs.
var initFuzzy sync.Once

// Fuzzy matches needle as an fzf-style subsequence of value, ignoring case.
func Fuzzy(value, needle string) bool {
	if needle == "" {
		return true
	}
	initFuzzy.Do(func() { algo.Init("default") })
	pattern := []rune(strings.ToLower(needle))
	chars := util.ToChars([]byte(value))
	result, _ := algo.FuzzyMatchV2(false, false, true, &chars, pattern, false, nil)
	return result.Start >= 0
}

// MatcherFor maps a configured match mode to its Matcher. The empty mode
// selects case-sensitive substring matching.
func MatcherFor(mode string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", MatchSubstring:
		return Contains, nil
	case MatchFold:
		return ContainsFold, nil
	case MatchFuzzy:
		return Fuzzy, nil
	default:
		return nil, fmt.Errorf("unknown match mode %q", mode)
	}
}

// Package classify turns a phase's raw Bash output and any invocation
// error into an ErrorKind, following the ordered precedence chain from
// spec.md §4.6: timeout > rate-limit > network > compilation >
// unexpected-pass > test-failure > unknown. The chain is an explicit
// switch, not a single regex, so behavior stays stable as individual
// patterns are added.
package classify

import (
	"regexp"
	"strings"

	"github.com/ntolman/tddorc/internal/model"
)

var (
	compilationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\[ERROR\].*\.java:\d+`),
		regexp.MustCompile(`cannot find symbol`),
		regexp.MustCompile(`COMPILATION ERROR`),
		regexp.MustCompile(`error TS\d+`),
		regexp.MustCompile(`SyntaxError`),
		regexp.MustCompile(`IndentationError`),
		regexp.MustCompile(`ImportError`),
		regexp.MustCompile(`ModuleNotFoundError`),
		regexp.MustCompile(`(?i)compilation failed`),
		regexp.MustCompile(`(?i)syntax error`),
		regexp.MustCompile(`(?i)parse error`),
		regexp.MustCompile(`(?i)compile error`),
	}

	testFailurePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Tests run: \d+, Failures: [1-9]`),
		regexp.MustCompile(`Tests run: \d+, .*Errors: [1-9]`),
		regexp.MustCompile(`BUILD FAILED`),
		regexp.MustCompile(`FAILURES!!!`),
		regexp.MustCompile(`\d+ failing`),
		regexp.MustCompile(`FAILED\s`),
		regexp.MustCompile(`(?m)^FAILED `),
		regexp.MustCompile(`AssertionError`),
	}

	allTestsPassedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`Tests run: \d+, Failures: 0, Errors: 0`),
		regexp.MustCompile(`BUILD SUCCESSFUL`),
		regexp.MustCompile(`0 failing`),
		regexp.MustCompile(`(?m)^\d+ passed(,?\s*\d* failed)?\s*$`),
		regexp.MustCompile(`passed`),
	}

	rateLimitPattern = regexp.MustCompile(`(?i)rate limit|\b429\b`)
	networkPattern    = regexp.MustCompile(`(?i)network|connection`)
	timeoutPattern    = regexp.MustCompile(`(?i)timed out`)
)

// Classify applies the ordered rules in spec.md §4.6 to the most recent
// Bash output and any exception surfaced from agent invocation.
func Classify(output string, invokeErr error, phase model.Phase) model.ErrorKind {
	if invokeErr != nil {
		msg := invokeErr.Error()
		if timeoutPattern.MatchString(msg) || strings.Contains(msg, "context deadline exceeded") {
			return model.ErrTimeout
		}
		if rateLimitPattern.MatchString(msg) {
			return model.ErrRateLimit
		}
		if networkPattern.MatchString(msg) {
			return model.ErrNetwork
		}
	}

	if timeoutPattern.MatchString(output) {
		return model.ErrTimeout
	}
	if rateLimitPattern.MatchString(output) {
		return model.ErrRateLimit
	}
	if networkPattern.MatchString(output) {
		return model.ErrNetwork
	}
	if matchesAny(compilationPatterns, output) {
		return model.ErrCompilation
	}
	if phase == model.PhaseRed && allTestsPassed(output) {
		return model.ErrUnexpectedPass
	}
	if matchesAny(testFailurePatterns, output) {
		return model.ErrTestFailure
	}
	return model.ErrUnknown
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// allTestsPassed reports a clean all-tests-passed signal with no failure
// or compilation indicators present, per spec.md §4.6 rule 5.
func allTestsPassed(output string) bool {
	if matchesAny(compilationPatterns, output) || matchesAny(testFailurePatterns, output) {
		return false
	}
	return matchesAny(allTestsPassedPatterns, output)
}

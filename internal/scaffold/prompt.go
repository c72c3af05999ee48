package scaffold

import "github.com/ntolman/tddorc/internal/docs"

// buildInitPrompt constructs the full prompt for AI-powered init. The
// projectContext string is the rendered output of contextgather.Render().
func buildInitPrompt(projectContext string) string {
	return initPromptPrefix + docs.SchemaReference() + initPromptMiddle + projectContext + initPromptSuffix
}

const initPromptPrefix = `You are generating the starting files for tddorc, a tool that drives a
project through an automated PLAN/RED/GREEN/REFACTOR TDD cycle one test
at a time. Your job: analyze the project context below and produce a
tailored test-list.md and tdd.properties.

## tddorc Reference

`

const initPromptMiddle = `

## Example test-list.md

` + "```" + `markdown file=test-list.md
- [ ] rejects a negative deposit amount
- [ ] accepts a zero deposit amount
- [ ] adds a positive deposit amount to the balance
- [ ] rejects a withdrawal larger than the balance
- [ ] subtracts a valid withdrawal from the balance
` + "```" + `

## Example tdd.properties

` + "```" + `properties file=tdd.properties
bash.timeout=120
test.command=mvn test
` + "```" + `

## Project Context

`

const initPromptSuffix = `

## Instructions

Based on the project context above, produce:

1. A ` + "`test-list.md`" + ` with one checkbox line per test case
   ("- [ ] <description>"), ordered so earlier tests are simpler building
   blocks for later ones. Derive the list from the project's existing
   behavior and any obviously missing coverage — not from a single
   feature request, since none was given at init time. 5-15 entries is
   typical; do not pad the list to hit a count.
2. A ` + "`tdd.properties`" + ` with bash.timeout (seconds) and, if you can
   confidently detect the project's test command from the project files
   (pom.xml, build.gradle, package.json, pytest.ini/pyproject.toml), a
   test.command line. Omit test.command if you are not confident —
   tddorc auto-detects common project layouts on its own.

## Output Format

Produce ONLY fenced code blocks with ` + "`file=`" + ` annotations. No explanation or
text outside the code blocks. Each block specifies its path relative to
the project root:

` + "```" + `markdown file=test-list.md
<content>
` + "```" + `

` + "```" + `properties file=tdd.properties
<content>
` + "```" + `

Both file paths MUST be exactly ` + "`test-list.md`" + ` and ` + "`tdd.properties`" + `, at the
project root (no ` + "`.tddorc/`" + ` prefix).
`

const retryFeedback = `

IMPORTANT: Your previous attempt failed with this error: %v

Try again. Output ONLY fenced code blocks with file= annotations: one
for test-list.md and, optionally, one for tdd.properties.`

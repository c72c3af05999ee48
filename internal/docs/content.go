package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with tddorc",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Environment variables, tdd.properties, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "phases",
		Title:   "PLAN/RED/GREEN/REFACTOR Cycle",
		Summary: "What each phase does and when it commits",
		Content: topicPhases,
	},
	{
		Name:    "notes",
		Title:   "Handoff Notes",
		Summary: "The git-notes format used to hand state between phases",
		Content: topicNotes,
	},
	{
		Name:    "errors",
		Title:   "Error Classification & Recovery",
		Summary: "How failures are classified and what each recovery action does",
		Content: topicErrors,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    cd your-project
    tddorc init

   This creates test-list.md and tdd.properties at the project root,
   plus an empty .tddorc/ directory.

2. Set an API key:

    export ANTHROPIC_API_KEY=sk-ant-...

3. Start a workflow:

    tddorc run "add a function that adds two numbers"

4. Check progress at any time:

    tddorc status

5. If a run is interrupted (Ctrl+C, a crash, a closed terminal):

    tddorc resume

CLI Commands
------------

  tddorc run <feature request>    Start a new workflow (cycle 1, phase PLAN)
  tddorc resume                   Continue from the last handoff note
  tddorc status                   Show current cycle/phase/test-list summary
  tddorc history [-n N]           List the last N handoff notes, newest first
  tddorc rollback <commit> --force  Hard reset to a prior commit
  tddorc doctor                   Diagnose the last failed phase
  tddorc init                     Scaffold test-list.md and tdd.properties
  tddorc docs                     List documentation topics
  tddorc docs <topic>             Show a documentation topic

Global flag: -p/--project to point at a project root other than the
current directory.
`

const topicConfig = `Configuration Reference
=======================

tddorc reads configuration from environment variables and an optional
tdd.properties file at the project root.

Environment Variables
----------------------

  ANTHROPIC_API_KEY   string   Required. No default; missing key is a
                                config error (exit code 2).
  TDD_PROJECT_ROOT    string   Overrides the project root otherwise
                                taken from -p/--project or the current
                                directory.
  TDD_MAX_RETRIES     int      Default 3. Maximum retries per phase
                                before the workflow aborts.
  TDD_MODEL           string   Default is a fixed built-in model
                                identifier. If set to an unavailable
                                model there is no fallback — the agent
                                invocation fails and the phase is
                                classified like any other failure.

tdd.properties
--------------

Plain key=value lines at the project root, one assignment per line,
blank lines and lines starting with # ignored.

  bash.timeout     int      Seconds. Default 120. Passed to every Bash
                             tool invocation as its per-command timeout.
  test.command     string   Overrides auto-detection of the project's
                             test command (see 'tddorc docs phases').

Example tdd.properties
-----------------------

  bash.timeout=180
  test.command=./gradlew test --tests AdderTest

Precedence: tdd.properties values override built-in defaults;
environment variables are read independently and are not overridden by
the properties file.
`

const topicPhases = `PLAN/RED/GREEN/REFACTOR Cycle
==============================

tddorc drives a fixed four-phase cycle per test, looping back to PLAN
until the planner reports no remaining test and test-list.md has no
unchecked items left.

PLAN
----

Reads test-list.md and the current HandoffState, asks the planning
agent to pick the next test (or report none left). The agent's reply is
parsed tolerantly for a JSON object of the form:

  {"currentTest": {"description": "...", "testFile": "...", "implFile": "..."}}

or {"currentTest": null} when nothing remains. PLAN may or may not
commit (e.g. to update test-list.md); if it does, that commit is
recorded like any other phase's.

RED
---

Writes a single failing test for the selected case and commits it. The
commit is required — a RED phase that makes no commit is treated as a
failure regardless of what its output looks like. The test is expected
to fail; a test that unexpectedly passes is classified UNEXPECTED_PASS
and retried.

GREEN
-----

Writes the minimal implementation to make the new test (and all prior
tests) pass, and commits. A GREEN phase that breaks a previously
passing test is classified TEST_FAILURE and triggers rollback.

REFACTOR
--------

Improves the implementation without changing behavior, and commits. A
REFACTOR commit that breaks a test is treated the same as a broken
GREEN commit.

Test Command Auto-Detection
----------------------------

Unless test.command is set in tdd.properties, the first matching
project marker wins:

  pom.xml (with a JUnit dependency) -> mvn test
  build.gradle or build.gradle.kts  -> gradlew test (or gradle test),
                                        .bat suffix on Windows
  package.json with a "test" script -> npm test
  pytest.ini / pyproject.toml / setup.py -> pytest

No marker matched and no test.command set is a configuration error
(exit code 2) — tddorc will not guess.
`

const topicNotes = `Handoff Notes
=============

State is handed between phases as git notes, one note per commit, under
a dedicated notes ref rather than in an untracked file. This keeps the
full HandoffState history attached to the commit graph itself: 'tddorc
resume' and 'tddorc history' both read the notes store directly, and a
cloned or rebased repository carries the same history as long as the
notes ref is fetched alongside it.

Each note is the JSON encoding of a HandoffState:

  phase            current phase (PLAN/RED/GREEN/REFACTOR/COMPLETE)
  nextPhase        phase to run next
  cycleNumber      increments by 1 on every REFACTOR -> PLAN transition
  currentTest      the test selected by the most recent PLAN, or null
  completedTests   descriptions of tests whose cycle finished
  pendingTests     descriptions of tests not yet started
  testResult       PASS or FAIL, if known
  error            last human-readable error summary, if any
  errorDetails     {type, message} — type mirrors an ErrorKind, or an
                   ABORT_-prefixed variant once retries are exhausted
  retryCount       attempts made against the current phase since its
                   last success

'tddorc resume' reads the latest note (the one attached to the current
HEAD's ancestry) and continues the cycle from its nextPhase. 'tddorc
history' walks the notes store from HEAD backwards and prints one row
per (commit, note) pair.
`

const topicErrors = `Error Classification & Recovery
================================

Every phase's Bash output (and any agent-invocation error) is classified
into exactly one kind, checked in this order:

  1. TIMEOUT        command exceeded its timeout, or the invocation
                     itself timed out
  2. RATE_LIMIT      a 429 or rate-limit message from the LLM transport
  3. NETWORK         a connection-level failure
  4. COMPILATION     a compiler/parser error from the project's
                     toolchain (language-specific patterns)
  5. UNEXPECTED_PASS RED only: the new test passed when it was expected
                     to fail
  6. TEST_FAILURE    a recognized test-runner failure pattern
  7. UNKNOWN         none of the above matched

UNKNOWN and a TEST_FAILURE classification during RED are not treated as
problems — RED is supposed to fail, and UNKNOWN carries no positive
evidence that anything is actually wrong. Every other combination is a
problem and is handed to the recovery table:

  Kind            Action
  ------          ------
  TIMEOUT         WAIT_AND_RETRY (exponential backoff: 1s, 2s, 4s,
                  clamped at the last value)
  RATE_LIMIT      WAIT_AND_RETRY
  NETWORK         WAIT_AND_RETRY
  COMPILATION     RETRY_WITH_CONTEXT (the compiler error is included in
                  the next prompt)
  UNEXPECTED_PASS RETRY_WITH_CONTEXT
  TEST_FAILURE    ROLLBACK_AND_RETRY outside RED (hard reset to the
                  phase's pre-attempt commit, then retry); CONTINUE
                  inside RED
  UNKNOWN         RETRY_WITH_CONTEXT, only reached when a phase is
                  already known to be broken for another reason (e.g.
                  it produced no commit at all)

Regardless of kind or phase, once a phase's retry count reaches the
configured maximum (TDD_MAX_RETRIES, default 3) the
action is forced to ABORT and the workflow stops with a non-zero exit
code.
`

// SchemaReference returns the combined config and phase-cycle
// documentation, suitable for embedding in the init scaffolding prompt.
func SchemaReference() string {
	return topicConfig + "\n\n" + topicPhases
}

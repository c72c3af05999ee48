// Package scaffold implements tddorc's init command: AI-assisted
// generation of a starting test-list.md and tdd.properties, adapted
// from the teacher's internal/scaffold (which generates a whole
// .orc/config.yaml workflow via the claude CLI). Here the generation
// call goes through the same invoker.Invoker used for phase agents
// rather than shelling out, and the generated artifact is a test list
// instead of a phase pipeline.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ntolman/tddorc/internal/contextgather"
	"github.com/ntolman/tddorc/internal/fileblocks"
	"github.com/ntolman/tddorc/internal/invoker"
	"github.com/ntolman/tddorc/internal/model"
	"github.com/ntolman/tddorc/internal/tools"
	"github.com/ntolman/tddorc/internal/ux"
)

const scaffoldModel = "claude-opus-4-1"

// Init creates test-list.md and tdd.properties for targetDir, using inv
// to generate a tailored test list from the project's existing contents.
// inv may be nil, in which case Init goes straight to the static
// fallback template (e.g. no ANTHROPIC_API_KEY configured yet).
func Init(ctx context.Context, targetDir string, inv *invoker.Invoker) error {
	marker := filepath.Join(targetDir, ".tddorc")
	if _, err := os.Stat(marker); err == nil {
		return fmt.Errorf(".tddorc already exists in %s", targetDir)
	}
	if _, err := os.Stat(filepath.Join(targetDir, "test-list.md")); err == nil {
		return fmt.Errorf("test-list.md already exists in %s", targetDir)
	}

	if inv == nil {
		return writeFallbackFiles(targetDir)
	}
	return initWithAI(ctx, targetDir, inv)
}

// initWithAI gathers project context, asks the model, and writes the
// generated files. Falls back to the static template if all attempts
// fail.
func initWithAI(ctx context.Context, targetDir string, inv *invoker.Invoker) error {
	fmt.Printf("\n  %sAnalyzing project...%s\n", ux.Dim, ux.Reset)

	pc, err := contextgather.Gather(targetDir)
	if err != nil {
		return fmt.Errorf("gathering context: %w", err)
	}

	prompt := buildInitPrompt(pc.Render())

	const maxAttempts = 3
	var blocks []fileblocks.FileBlock
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt == 1 {
			fmt.Printf("  %sGenerating test list...%s\n", ux.Dim, ux.Reset)
		} else {
			fmt.Printf("  %s↺ Retrying (%d/%d): %v%s\n", ux.Yellow, attempt, maxAttempts, lastErr, ux.Reset)
		}

		currentPrompt := prompt
		if attempt > 1 {
			currentPrompt = prompt + fmt.Sprintf(retryFeedback, lastErr)
		}

		blocks, lastErr = generateFiles(ctx, inv, targetDir, currentPrompt)
		if lastErr == nil {
			break
		}
	}

	if lastErr != nil {
		fmt.Printf("\n  %s⚠ AI generation failed after %d attempts: %v%s\n",
			ux.Yellow, maxAttempts, lastErr, ux.Reset)
		fmt.Printf("  %sUsing default template...%s\n", ux.Dim, ux.Reset)
		return writeFallbackFiles(targetDir)
	}

	written := writeBlocks(targetDir, blocks)
	if err := os.MkdirAll(filepath.Join(targetDir, ".tddorc"), 0755); err != nil {
		return fmt.Errorf("creating .tddorc: %w", err)
	}

	printSuccess("AI-generated", written)
	fmt.Printf("\n  Next: %stddorc run \"<feature request>\"%s\n\n", ux.Cyan, ux.Reset)
	return nil
}

// generateFiles asks inv for the file blocks and validates that a
// test-list.md with at least one checkbox was produced.
func generateFiles(ctx context.Context, inv *invoker.Invoker, targetDir, prompt string) ([]fileblocks.FileBlock, error) {
	cfg := model.AgentConfig{
		Name:         "scaffold",
		SystemPrompt: "You generate starting project files for a TDD automation tool. Output only fenced code blocks with file= annotations.",
		Model:        scaffoldModel,
	}
	dispatch := tools.New(targetDir, 0)
	reply, _, err := inv.Run(ctx, cfg, prompt, dispatch)
	if err != nil {
		return nil, err
	}

	blocks := fileblocks.Parse(reply)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no file blocks in output")
	}

	hasTestList := false
	for _, b := range blocks {
		if b.Path == "test-list.md" {
			hasTestList = strings.Contains(b.Content, "- [ ]") || strings.Contains(b.Content, "- [x]")
		}
	}
	if !hasTestList {
		return nil, fmt.Errorf("output missing a valid test-list.md")
	}

	return blocks, nil
}

// writeBlocks writes the generated file blocks to targetDir, restricted
// to the two files init ever produces.
func writeBlocks(targetDir string, blocks []fileblocks.FileBlock) []string {
	var written []string
	for _, b := range blocks {
		if b.Path != "test-list.md" && b.Path != "tdd.properties" {
			continue
		}
		fullPath := filepath.Join(targetDir, b.Path)
		writeFileAtomic(fullPath, []byte(b.Content), 0644)
		written = append(written, b.Path)
	}
	return written
}

// printSuccess prints the initialization success message and file list.
func printSuccess(source string, written []string) {
	fmt.Printf("\n%s%s  ✓ Initialized tddorc project (%s)%s\n\n", ux.Bold, ux.Green, source, ux.Reset)
	fmt.Printf("  Created:\n")
	for _, path := range written {
		fmt.Printf("    %s%s%s\n", ux.Cyan, path, ux.Reset)
	}
}

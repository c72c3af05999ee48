package properties

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_ParsesKeyValueLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tdd.properties")
	content := "# a comment\nbash.timeout=45\ntest.command = mvn test\n\nempty.value=\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	props, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if props.Int("bash.timeout", -1) != 45 {
		t.Fatalf("bash.timeout = %d", props.Int("bash.timeout", -1))
	}
	if props.String("test.command", "") != "mvn test" {
		t.Fatalf("test.command = %q", props.String("test.command", ""))
	}
	if props.String("empty.value", "default") != "" {
		t.Fatalf("empty.value = %q, want empty string not default", props.String("empty.value", "default"))
	}
}

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	props, err := Load(filepath.Join(t.TempDir(), "missing.properties"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(props) != 0 {
		t.Fatalf("expected empty Properties, got %+v", props)
	}
}

func TestProperties_Defaults(t *testing.T) {
	props := Properties{}
	if props.String("x", "fallback") != "fallback" {
		t.Fatal("expected fallback string")
	}
	if props.Int("y", 7) != 7 {
		t.Fatal("expected fallback int")
	}
}

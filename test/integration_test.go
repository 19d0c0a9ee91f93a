// ABOUTME: Integration tests for the longevity CLI.
// ABOUTME: Builds the binary and runs a full log/dashboard/export workflow.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(projectRoot, "longevity")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/longevity")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(binary)

	// Isolated data and config dirs
	dataDir := t.TempDir()
	configDir := t.TempDir()

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = append(os.Environ(),
			"XDG_DATA_HOME="+dataDir,
			"XDG_CONFIG_HOME="+configDir,
			"NO_COLOR=1",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Log raw values; BMI should derive from weight and height
	output, err := run("log", "sleep=7.5", "weight=80", "height=180")
	if err != nil {
		t.Fatalf("Failed to log: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Logged 3 value(s)") {
		t.Errorf("Expected 'Logged 3 value(s)' in output, got: %s", output)
	}

	// Entries should show the derived bmi marked with an asterisk
	output, err = run("entries")
	if err != nil {
		t.Fatalf("Failed to list entries: %v\n%s", err, output)
	}
	if !strings.Contains(output, "bmi=24.69*") {
		t.Errorf("Expected derived 'bmi=24.69*' in entries output, got: %s", output)
	}

	// Dashboard shows status for logged metrics
	output, err = run("dashboard")
	if err != nil {
		t.Fatalf("Failed to show dashboard: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Sleep") {
		t.Errorf("Expected 'Sleep' in dashboard output, got: %s", output)
	}
	if !strings.Contains(output, "[GOOD]") {
		t.Errorf("Expected a GOOD status in dashboard output, got: %s", output)
	}

	// Feedback produces a ranked message for sleep
	output, err = run("feedback")
	if err != nil {
		t.Fatalf("Failed to show feedback: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Sleep") {
		t.Errorf("Expected 'Sleep' in feedback output, got: %s", output)
	}

	// Dismissals persist and hide the metric
	if output, err = run("feedback", "dismiss", "sleep"); err != nil {
		t.Fatalf("Failed to dismiss: %v\n%s", err, output)
	}
	output, err = run("feedback")
	if err != nil {
		t.Fatalf("Failed to show feedback: %v\n%s", err, output)
	}
	if strings.Contains(output, "Sleep") {
		t.Errorf("Dismissed metric still in feedback output: %s", output)
	}

	// Coach lists unlogged daily metrics
	output, err = run("coach")
	if err != nil {
		t.Fatalf("Failed to show coach: %v\n%s", err, output)
	}
	if !strings.Contains(output, "rhr") {
		t.Errorf("Expected unlogged 'rhr' in coach output, got: %s", output)
	}

	// Export, wipe, and import round trip
	backup := filepath.Join(t.TempDir(), "backup.json")
	if output, err = run("export", "json", "-o", backup); err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}

	output, err = run("entries", "-n", "1")
	if err != nil {
		t.Fatalf("Failed to list entries: %v\n%s", err, output)
	}
	id := strings.Fields(output)[0]
	if output, err = run("delete", id); err != nil {
		t.Fatalf("Failed to delete: %v\n%s", err, output)
	}

	if output, err = run("import", backup); err != nil {
		t.Fatalf("Failed to import: %v\n%s", err, output)
	}
	output, err = run("entries")
	if err != nil {
		t.Fatalf("Failed to list entries: %v\n%s", err, output)
	}
	if !strings.Contains(output, "sleep=7.5") {
		t.Errorf("Expected restored entry in output, got: %s", output)
	}
}

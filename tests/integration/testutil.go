// Package integration provides binary-level integration tests for insurebook.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// insurebookBin is the path to the built insurebook binary.
	insurebookBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv provides an isolated test environment with its own config and data directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment using backend.
func NewTestEnv(t *testing.T, backend string) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build insurebook: %v", buildErr)
	}
	if insurebookBin == "" {
		t.Fatal("insurebook binary not built (insurebookBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: " + backend + "\ndata_dir: " + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// CmdResult holds the result of an insurebook command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the insurebook CLI with the given arguments. The data
// directory comes from the environment's config.yaml.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config}, args...)
	cmd := exec.Command(insurebookBin, allArgs...)
	cmd.Env = append(os.Environ(), "INSUREBOOK_DATA_DIR=", "INSUREBOOK_CONFIG_DIR=")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run insurebook: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes the insurebook CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("insurebook %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// ReadJSONFile reads and parses a JSON file.
func ReadJSONFile[T any](t *testing.T, path string) T {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return ParseJSON[T](t, string(data))
}

// Contact mirrors the CLI's JSON output for a contact.
type Contact struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	NRIC      string   `json:"nric"`
	Email     string   `json:"email"`
	Address   string   `json:"address"`
	Tags      []string `json:"tags"`
	Contracts []string `json:"contracts"`
}

// Policy mirrors the CLI's JSON output for a policy.
type Policy struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Details   string   `json:"details"`
	Contracts []string `json:"contracts"`
}

// Contract mirrors the CLI's JSON output for a contract.
type Contract struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	NRIC    string `json:"nric"`
	Policy  string `json:"policy"`
	Signed  string `json:"signed"`
	Expiry  string `json:"expiry"`
	Premium string `json:"premium"`
}

// Appointment mirrors the CLI's JSON output for an appointment.
type Appointment struct {
	ID      string `json:"id"`
	NRIC    string `json:"nric"`
	Date    string `json:"date"`
	Details string `json:"details"`
}

// StoredContract mirrors a persisted contract, whose premium is a number.
type StoredContract struct {
	ID      string      `json:"id"`
	NRIC    string      `json:"nric"`
	Policy  string      `json:"policy"`
	Premium json.Number `json:"premium"`
}

// Document mirrors the persisted JSON book.
type Document struct {
	Contacts     []Contact        `json:"contacts"`
	Policies     []Policy         `json:"policies"`
	Contracts    []StoredContract `json:"contracts"`
	Appointments []Appointment    `json:"appointments"`
}

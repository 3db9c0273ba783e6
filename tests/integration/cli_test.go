package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the insurebook binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "insurebook-test-*")
	if err != nil {
		buildErr = err
		os.Exit(1)
	}
	insurebookBin = filepath.Join(tmpDir, "insurebook")

	cmd := exec.Command("go", "build", "-o", insurebookBin, "./cmd/insurebook")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

var backends = []string{"json", "sqlite"}

// seed adds Alice, a life policy and a contract between them, returning
// the contract ID.
func seed(t *testing.T, env *TestEnv) string {
	t.Helper()
	env.MustRun("init")
	env.MustRun("contact", "add", "--name", "Alice Pauline", "--phone", "94351253",
		"--nric", "S0123456A", "--email", "alice@example.com",
		"--address", "123, Jurong West Ave 6, #08-111", "--tag", "friends")
	env.MustRun("policy", "add", "--name", "Life Plan", "--details", "Covers death", "--id", "LIF001")
	result := env.MustRun("--json", "contract", "add", "--contact", "Alice Pauline", "--policy", "LIF001",
		"--signed", "2024-01-01", "--expiry", "2034-01-01", "--premium", "1200.50")
	return ParseJSON[Contract](t, result.Stdout).ID
}

func TestInitReportsDirectories(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			env := NewTestEnv(t, backend)
			result := env.MustRun("init")
			if !strings.Contains(result.Stdout, env.DataDir) {
				t.Errorf("init output %q does not name data dir %s", result.Stdout, env.DataDir)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	env := NewTestEnv(t, "json")
	result := env.MustRun("version")
	if !strings.HasPrefix(result.Stdout, "insurebook v") {
		t.Errorf("unexpected version output %q", result.Stdout)
	}
}

func TestWorkflowPersistsAcrossInvocations(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			env := NewTestEnv(t, backend)
			contractID := seed(t, env)

			contacts := ParseJSON[[]Contact](t, env.MustRun("--json", "contact", "list").Stdout)
			if len(contacts) != 1 || len(contacts[0].Contracts) != 1 || contacts[0].Contracts[0] != contractID {
				t.Fatalf("contact back-reference missing: %+v", contacts)
			}
			policies := ParseJSON[[]Policy](t, env.MustRun("--json", "policy", "list").Stdout)
			if len(policies) != 1 || len(policies[0].Contracts) != 1 || policies[0].Contracts[0] != contractID {
				t.Fatalf("policy back-reference missing: %+v", policies)
			}

			env.MustRun("contract", "delete", contractID)

			contacts = ParseJSON[[]Contact](t, env.MustRun("--json", "contact", "list").Stdout)
			if len(contacts[0].Contracts) != 0 {
				t.Errorf("contact still references %v", contacts[0].Contracts)
			}
			policies = ParseJSON[[]Policy](t, env.MustRun("--json", "policy", "list").Stdout)
			if len(policies[0].Contracts) != 0 {
				t.Errorf("policy still references %v", policies[0].Contracts)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	env := NewTestEnv(t, "json")
	seed(t, env)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"duplicate contact", []string{"contact", "add", "--name", "Alice Pauline", "--phone", "999",
			"--nric", "T7654321B", "--email", "a@b.co", "--address", "x"}, 1},
		{"missing policy", []string{"contract", "add", "--contact", "Alice Pauline", "--policy", "ZZZ999",
			"--signed", "2024-01-01", "--expiry", "2025-01-01", "--premium", "1"}, 1},
		{"delete contact holding contract", []string{"contact", "delete", "Alice Pauline"}, 1},
		{"bad filter", []string{"contract", "list", "--where", "premium >"}, 1},
		{"unknown command", []string{"policies", "list"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := env.Run(tt.args...)
			if result.ExitCode != tt.want {
				t.Errorf("exit code = %d, want %d (stderr: %s)", result.ExitCode, tt.want, result.Stderr)
			}
			if result.Stderr == "" {
				t.Error("expected an error message on stderr")
			}
		})
	}
}

func TestCorruptFileIsSystemError(t *testing.T) {
	env := NewTestEnv(t, "json")
	env.MustRun("init")
	if err := os.WriteFile(filepath.Join(env.DataDir, "insurebook.json"), []byte("[oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := env.Run("contact", "list"); result.ExitCode != 2 {
		t.Errorf("exit code = %d, want 2", result.ExitCode)
	}
}

func TestJSONFileLayout(t *testing.T) {
	env := NewTestEnv(t, "json")
	contractID := seed(t, env)

	doc := ReadJSONFile[Document](t, filepath.Join(env.DataDir, "insurebook.json"))
	if len(doc.Contacts) != 1 || doc.Contacts[0].NRIC != "S0123456A" {
		t.Errorf("unexpected contacts %+v", doc.Contacts)
	}
	if len(doc.Policies) != 1 || doc.Policies[0].ID != "LIF001" {
		t.Errorf("unexpected policies %+v", doc.Policies)
	}
	if len(doc.Contracts) != 1 || doc.Contracts[0].ID != contractID || doc.Contracts[0].Premium.String() != "1200.50" {
		t.Errorf("unexpected contracts %+v", doc.Contracts)
	}
	if doc.Appointments == nil {
		t.Error("appointments should be an empty array, not null")
	}
}

func TestBackupAndClear(t *testing.T) {
	env := NewTestEnv(t, "json")
	seed(t, env)

	env.MustRun("backup", "create")
	env.MustRun("clear")

	contacts := ParseJSON[[]Contact](t, env.MustRun("--json", "contact", "list").Stdout)
	if len(contacts) != 0 {
		t.Errorf("expected empty book after clear, got %+v", contacts)
	}

	entries, err := os.ReadDir(filepath.Join(env.DataDir, "backups"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one backup, got %d", len(entries))
	}
	doc := ReadJSONFile[Document](t, filepath.Join(env.DataDir, "backups", entries[0].Name()))
	if len(doc.Contacts) != 1 {
		t.Errorf("backup should hold the pre-clear book, got %+v", doc.Contacts)
	}
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/vvka-141/pgfix/internal/config"
)

const userTestManifest = `groups:
  - id: com.example.UserTest
    annotations:
      - kind: cleanup-script
        values: [scripts/class-level.sql]
    cases:
      - name: shouldPass
      - name: shouldUseOwn
        annotations:
          - kind: cleanup-script
            values: [method-level.sql]
      - name: shouldUseDefault
        annotations:
          - kind: cleanup-script
`

func userTestProject(t *testing.T) string {
	t.Helper()
	return createTestProject(t, map[string]string{
		"pgfix-tests.yaml":         userTestManifest,
		"scripts/class-level.sql":  "DELETE FROM users;",
		"scripts/method-level.sql": "DELETE FROM orders;",
		"cleanup-com.example.UserTest#shouldUseDefault.sql": "DELETE FROM audit;",
	})
}

func createTestProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}
	return dir
}

// resetFlags resets command flags to their zero values.
// This is necessary because flags are package-level globals that persist across tests.
func resetFlags() {
	resolveFlags = resolveOptions{}
	validateFlags = validateOptions{}
}

// executeCommand runs the root command with args and returns what it wrote
// to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Setenv(config.EnvLocations, "")
	t.Setenv(config.EnvStrict, "")

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

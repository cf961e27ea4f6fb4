package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgfix/pkg/pgfix"
)

func TestValidateCmd_ArgsValidation(t *testing.T) {
	err := validateCmd.Args(validateCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
}

func TestValidate_ValidProject(t *testing.T) {
	dir := userTestProject(t)

	out, err := executeCommand(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Groups: 1")
	assert.Contains(t, out, "Cases: 3")
	assert.Contains(t, out, "All resources resolved")
}

const brokenManifest = `groups:
  - id: com.example.Broken
    annotations:
      - kind: cleanup-script
        values: [missing-group.sql]
    cases:
      - name: first
      - name: second
      - name: twice
        annotations:
          - kind: dataset
            values: [a.yml]
          - kind: dataset
            values: [b.yml]
      - name: noDefault
        annotations:
          - kind: script-before
`

func TestValidate_ReportsEveryFailure(t *testing.T) {
	dir := createTestProject(t, map[string]string{
		"pgfix-tests.yaml": brokenManifest,
		"a.yml":            "",
		"b.yml":            "",
	})

	out, err := executeCommand(t, "validate", dir, "--json")
	require.Error(t, err)
	assert.Equal(t, pgfix.ExitInvalidLocation, pgfix.ExitCodeForError(err), "first failure decides the exit code")

	var report validationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.ValidationPassed)
	assert.Equal(t, 1, report.Groups)
	assert.Equal(t, 4, report.Cases)

	type key struct{ kind, subject string }
	var got []key
	for _, f := range report.Failures {
		got = append(got, key{f.Kind, f.Subject})
	}
	assert.ElementsMatch(t, []key{
		{"cleanup-script", "com.example.Broken"},
		{"dataset", "com.example.Broken#twice"},
	}, got, "inherited group failure is reported once, lenient defaults pass")
}

func TestValidate_StrictReportsMissingDefaults(t *testing.T) {
	dir := createTestProject(t, map[string]string{
		"pgfix-tests.yaml": brokenManifest,
	})

	out, err := executeCommand(t, "validate", dir, "--strict", "--json")
	require.Error(t, err)

	var report validationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Strict)

	var subjects []string
	for _, f := range report.Failures {
		if f.Kind == string(pgfix.KindScriptBefore) {
			subjects = append(subjects, f.Subject)
		}
	}
	assert.Equal(t, []string{"com.example.Broken#noDefault"}, subjects)
}

func TestValidate_TextOutputListsFailures(t *testing.T) {
	dir := createTestProject(t, map[string]string{
		"pgfix-tests.yaml": brokenManifest,
		"a.yml":            "",
		"b.yml":            "",
	})

	out, err := executeCommand(t, "validate", dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgfix.ErrInvalidLocation))
	assert.Contains(t, out, "resolution(s) failed")
	assert.Contains(t, out, "missing-group.sql")
	assert.Contains(t, out, "ambiguous metadata")
}

func TestValidate_InvalidConfig(t *testing.T) {
	dir := createTestProject(t, map[string]string{
		"pgfix.yaml":       "kinds:\n  seed:\n    prefix: seed-\n",
		"pgfix-tests.yaml": "groups: []\n",
	})

	_, err := executeCommand(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, pgfix.ExitConfigError, pgfix.ExitCodeForError(err))
}

func TestValidate_InvalidManifest(t *testing.T) {
	dir := createTestProject(t, map[string]string{
		"pgfix-tests.yaml": "groups:\n  - id: Foo\n  - id: Foo\n",
	})

	_, err := executeCommand(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, pgfix.ExitManifestError, pgfix.ExitCodeForError(err))
}

func TestValidate_Unused(t *testing.T) {
	dir := createTestProject(t, map[string]string{
		"pgfix-tests.yaml":         userTestManifest,
		"scripts/class-level.sql":  "",
		"scripts/method-level.sql": "",
		"cleanup-com.example.UserTest#shouldUseDefault.sql": "",
		"scripts/forgotten.sql":   "",
		"datasets/orphan.yml":     "",
		"scripts/nested/deep.sql": "",
		"README.md":               "",
	})

	out, err := executeCommand(t, "validate", dir, "--unused", "--json")
	require.NoError(t, err, "unused resources are reported, not failed")

	var report validationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.ValidationPassed)
	assert.Equal(t, []string{"datasets/orphan.yml", "scripts/forgotten.sql"}, report.Unused)

	out, err = executeCommand(t, "validate", dir, "--unused")
	require.NoError(t, err)
	assert.Contains(t, out, "2 unused resource(s)")
	assert.Contains(t, out, "scripts/forgotten.sql")
}

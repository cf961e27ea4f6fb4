package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgfix/internal/files/filesystem"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

const sampleManifest = `groups:
  - id: com.example.UserTest
    annotations:
      - kind: cleanup-script
        values: [scripts/class-level.sql]
    cases:
      - name: shouldPass
      - name: shouldUseDefault
        annotations:
          - kind: cleanup-script
      - name: shouldSeed
        annotations:
          - kind: dataset
            attributes:
              files: users.yml,orders.yml
  - id: com.example.OrderTest
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	require.Len(t, m.Groups, 2)

	g := m.Groups[0]
	assert.Equal(t, "com.example.UserTest", g.ID)
	assert.Equal(t, 2, g.line)
	require.Len(t, g.Cases, 3)
	assert.Equal(t, "shouldUseDefault", g.Cases[1].Name)
	assert.Equal(t, "users.yml,orders.yml", g.Cases[2].Annotations[0].Attributes["files"])

	assert.Equal(t, []pgfix.Kind{pgfix.KindCleanupScript, pgfix.KindDataSet}, m.Kinds())
}

func TestParse_Empty(t *testing.T) {
	m, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, m.Groups)
	assert.Empty(t, m.Registry().Groups())
}

func TestManifest_Registry(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	r := m.Registry()
	assert.Equal(t, []pgfix.GroupID{"com.example.UserTest", "com.example.OrderTest"}, r.Groups())
	assert.Equal(t, []pgfix.CaseID{
		pgfix.NewCaseID("com.example.UserTest", "shouldPass"),
		pgfix.NewCaseID("com.example.UserTest", "shouldUseDefault"),
		pgfix.NewCaseID("com.example.UserTest", "shouldSeed"),
	}, r.Cases("com.example.UserTest"))

	groupItems := r.GroupItems(pgfix.KindCleanupScript, "com.example.UserTest")
	require.Len(t, groupItems, 1)
	assert.Equal(t, []string{"scripts/class-level.sql"}, groupItems[0].Values)

	caseItems := r.CaseItems(pgfix.KindCleanupScript, pgfix.NewCaseID("com.example.UserTest", "shouldUseDefault"))
	require.Len(t, caseItems, 1)
	assert.Empty(t, caseItems[0].Values)

	assert.Empty(t, r.CaseItems(pgfix.KindCleanupScript, pgfix.NewCaseID("com.example.UserTest", "shouldPass")))
}

func TestManifest_DuplicateAnnotationsSurvive(t *testing.T) {
	m, err := Parse([]byte(`groups:
  - id: Foo
    annotations:
      - kind: cleanup-script
        values: [a.sql]
      - kind: cleanup-script
        values: [b.sql]
`))
	require.NoError(t, err)
	assert.Len(t, m.Registry().GroupItems(pgfix.KindCleanupScript, "Foo"), 2)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		message string
		line    int
	}{
		{
			name:    "group without id",
			yaml:    "groups:\n  - cases: []\n",
			message: "group without id",
			line:    2,
		},
		{
			name:    "group id with case separator",
			yaml:    "groups:\n  - id: Foo#bar\n",
			message: "group id contains",
			line:    2,
		},
		{
			name:    "duplicate group",
			yaml:    "groups:\n  - id: Foo\n  - id: Foo\n",
			message: "duplicate group",
			line:    3,
		},
		{
			name:    "case without name",
			yaml:    "groups:\n  - id: Foo\n    cases:\n      - annotations: []\n",
			message: "case without name",
			line:    4,
		},
		{
			name:    "duplicate case",
			yaml:    "groups:\n  - id: Foo\n    cases:\n      - name: bar\n      - name: bar\n",
			message: "duplicate case",
			line:    5,
		},
		{
			name:    "annotation without kind",
			yaml:    "groups:\n  - id: Foo\n    annotations:\n      - values: [a.sql]\n",
			message: "annotation without kind",
			line:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, pgfix.ErrManifestInvalid))
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), "Hint:")

			var mErr *Error
			require.True(t, errors.As(err, &mErr))
			assert.Equal(t, tt.line, mErr.Line)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("groups: [\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgfix.ErrManifestInvalid))

	_, err = Parse([]byte("groups:\n  - id: Foo\n    cases: nope\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgfix.ErrManifestInvalid))
}

func TestLoadFile(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/project")
	fs.AddFile(pgfix.ManifestFileName, sampleManifest)

	m, err := LoadFile(fs, pgfix.ManifestFileName)
	require.NoError(t, err)
	assert.Len(t, m.Groups, 2)
}

func TestLoadFile_ErrorsCarryPath(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/project")
	fs.AddFile("broken.yaml", "groups:\n  - id: \"\"\n")

	_, err := LoadFile(fs, "broken.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml (line 2)")

	_, err = LoadFile(fs, "missing.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgfix.ErrManifestInvalid))
	assert.Contains(t, err.Error(), "file not found")
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgfix/internal/logging"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <project_path>",
	Short: "Print the resources that apply to groups and cases",
	Long: `Resolve prints which scripts and datasets apply, per kind.

Without --case the group-level resources are printed for each group.
With --case the resources of that case are printed, after applying the
case > group > default precedence. --suite prints everything used anywhere
in each group.

Arguments:
  project_path    Directory holding pgfix-tests.yaml and the test resources

Examples:
  # Group-level resources of every group, every kind
  pgfix resolve ./src/test/resources

  # Cleanup scripts of one case
  pgfix resolve ./src/test/resources --kind cleanup-script \
      --group com.example.UserTest --case shouldDeleteUser

  # Same, addressing the case by its id
  pgfix resolve ./src/test/resources --case 'com.example.UserTest#shouldDeleteUser'

  # Every dataset a group uses, as JSON
  pgfix resolve ./src/test/resources --kind dataset --suite --json

  # Content checksums, to tell when a fixture changed
  pgfix resolve ./src/test/resources --suite --checksums`,
	Args: RequireProjectPath,
	RunE: runResolve,
}

type resolveOptions struct {
	manifest  string
	kind      string
	group     string
	caseName  string
	suite     bool
	strict    bool
	json      bool
	checksums bool
}

var resolveFlags resolveOptions

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveFlags.manifest, "manifest", "", "Test manifest, relative to the project (default: "+pgfix.ManifestFileName+")")
	resolveCmd.Flags().StringVarP(&resolveFlags.kind, "kind", "k", "", "Resolve only this kind (default: every configured kind)")
	resolveCmd.Flags().StringVarP(&resolveFlags.group, "group", "g", "", "Resolve only this group (default: every group)")
	resolveCmd.Flags().StringVarP(&resolveFlags.caseName, "case", "c", "", "Resolve one case, by name within --group or as <group>#<case>")
	resolveCmd.Flags().BoolVar(&resolveFlags.suite, "suite", false, "Print every resource used anywhere in the group")
	resolveCmd.Flags().BoolVar(&resolveFlags.strict, "strict", false, "Fail when a generated default resource does not exist")
	resolveCmd.Flags().BoolVar(&resolveFlags.json, "json", false, "Output as JSON")
	resolveCmd.Flags().BoolVar(&resolveFlags.checksums, "checksums", false, "Show a content checksum for each resource (SQL is normalized first)")
}

func runResolve(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), verbose)
	opts := resolveFlags

	if opts.suite && opts.caseName != "" {
		return fmt.Errorf("invalid argument: --suite and --case are mutually exclusive")
	}

	p, err := loadProject(args[0], opts.manifest, opts.strict, logger)
	if err != nil {
		return err
	}

	kinds := p.kinds()
	if opts.kind != "" {
		kinds = []pgfix.Kind{pgfix.Kind(opts.kind)}
	}

	var resolutions []resolution
	if opts.caseName != "" {
		id, err := caseIDFromFlags(opts.group, opts.caseName)
		if err != nil {
			return err
		}
		for _, kind := range kinds {
			descriptors, err := p.engine.ResolveForCase(kind, id, nil, p.options())
			if err != nil {
				return err
			}
			resolutions = append(resolutions, newResolution(kind, pgfix.ScopeCase.String(), id.String(), descriptors))
		}
	} else {
		groups := p.source.Groups()
		if opts.group != "" {
			groups = []pgfix.GroupID{pgfix.GroupID(opts.group)}
		}
		for _, group := range groups {
			for _, kind := range kinds {
				var set *pgfix.DescriptorSet
				scope := pgfix.ScopeGroup.String()
				if opts.suite {
					scope = "suite"
					set, err = p.engine.ResolveSuite(kind, group, nil, p.options())
				} else {
					set, err = p.engine.ResolveForGroup(kind, group, nil)
				}
				if err != nil {
					return err
				}
				resolutions = append(resolutions, newResolution(kind, scope, string(group), set.Slice()))
			}
		}
	}

	logger.Verbose("Resolved %d kind/subject pair(s)", len(resolutions))

	if opts.checksums {
		if err := addChecksums(p, resolutions); err != nil {
			return err
		}
	}

	if opts.json {
		return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
			"strict":      p.strict,
			"resolutions": resolutions,
		})
	}
	writeResolutions(cmd.OutOrStdout(), resolutions)
	return nil
}

// caseIDFromFlags accepts "--group G --case name" or "--case G#name".
// With --group set, a value not prefixed by "G#" is a bare case name, even
// when it contains "#".
func caseIDFromFlags(group, caseName string) (pgfix.CaseID, error) {
	if group != "" {
		if name, ok := strings.CutPrefix(caseName, group+pgfix.CaseSeparator); ok && name != "" {
			caseName = name
		}
		return pgfix.NewCaseID(pgfix.GroupID(group), caseName), nil
	}
	if !strings.Contains(caseName, pgfix.CaseSeparator) {
		return pgfix.CaseID{}, fmt.Errorf("invalid argument: --case %s needs --group, or pass it as <group>%s<case>", caseName, pgfix.CaseSeparator)
	}
	id, err := pgfix.ParseCaseID(caseName)
	if err != nil {
		return pgfix.CaseID{}, fmt.Errorf("invalid argument: %w", err)
	}
	return id, nil
}

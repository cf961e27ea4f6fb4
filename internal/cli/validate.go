package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgfix/internal/logging"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project_path>",
	Short: "Check that every declared and default resource resolves",
	Long: `Validate resolves every kind for every group and every case in the test
manifest and reports all failures, not just the first one.

Failures:
  - a declared file exists in no search location
  - the same kind is declared twice on one group or case
  - a default name is needed for a kind without a naming convention
  - with --strict, a generated default file does not exist

Arguments:
  project_path    Directory holding pgfix-tests.yaml and the test resources

With --unused, resource files in the search locations that no group or
case resolves to are listed as well. They are reported, not failed.

Examples:
  pgfix validate ./src/test/resources
  pgfix validate ./src/test/resources --strict --json
  pgfix validate ./src/test/resources --unused`,
	Args: RequireProjectPath,
	RunE: runValidate,
}

type validateOptions struct {
	manifest string
	strict   bool
	json     bool
	unused   bool
}

var validateFlags validateOptions

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.manifest, "manifest", "", "Test manifest, relative to the project (default: "+pgfix.ManifestFileName+")")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "Fail when a generated default resource does not exist")
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false, "Output validation results as JSON")
	validateCmd.Flags().BoolVar(&validateFlags.unused, "unused", false, "Also list resource files nothing resolves to")
}

// validationFailure is one failed resolution.
type validationFailure struct {
	Kind    string `json:"kind"`
	Scope   string `json:"scope"`
	Subject string `json:"subject"`
	Error   string `json:"error"`

	err error
}

type validationReport struct {
	Groups           int                 `json:"groups"`
	Cases            int                 `json:"cases"`
	Kinds            []string            `json:"kinds"`
	Checked          int                 `json:"checked"`
	Strict           bool                `json:"strict"`
	Failures         []validationFailure `json:"failures"`
	Unused           []string            `json:"unused,omitempty"`
	ValidationPassed bool                `json:"validation_passed"`

	used map[string]bool
}

func runValidate(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLoggerTo(cmd.ErrOrStderr(), verbose)
	opts := validateFlags

	p, err := loadProject(args[0], opts.manifest, opts.strict, logger)
	if err != nil {
		return err
	}

	report := validateProject(p)
	if opts.unused {
		unused, err := unusedResources(p, report.used)
		if err != nil {
			return err
		}
		report.Unused = unused
	}

	if opts.json {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		writeValidationReport(cmd, report)
	}

	if report.ValidationPassed {
		return nil
	}
	first := report.Failures[0].err
	return fmt.Errorf("validation failed with %d error(s): %w", len(report.Failures), first)
}

// validateProject resolves every kind for every group and case, collecting
// failures instead of stopping at the first one.
func validateProject(p *project) validationReport {
	report := validationReport{Strict: p.strict, Failures: []validationFailure{}, used: make(map[string]bool)}
	kinds := p.kinds()
	for _, kind := range kinds {
		report.Kinds = append(report.Kinds, string(kind))
	}

	record := func(kind pgfix.Kind, scope pgfix.Scope, subject string, err error) {
		report.Checked++
		if err == nil {
			return
		}
		report.Failures = append(report.Failures, validationFailure{
			Kind:    string(kind),
			Scope:   scope.String(),
			Subject: subject,
			Error:   err.Error(),
			err:     err,
		})
	}

	for _, group := range p.source.Groups() {
		report.Groups++
		cases := p.source.Cases(group)
		report.Cases += len(cases)

		for _, kind := range kinds {
			set, err := p.engine.ResolveForGroup(kind, group, nil)
			record(kind, pgfix.ScopeGroup, string(group), err)
			if err == nil {
				markUsed(report.used, set.Slice())
			}

			for _, id := range cases {
				descriptors, err := p.engine.ResolveForCase(kind, id, nil, p.options())
				if err != nil && sameFailure(report.Failures, kind, err) {
					// inherited group failure already reported
					report.Checked++
					continue
				}
				record(kind, pgfix.ScopeCase, id.String(), err)
				markUsed(report.used, descriptors)
			}
		}
	}

	report.ValidationPassed = len(report.Failures) == 0
	return report
}

func markUsed(used map[string]bool, descriptors []pgfix.Descriptor) {
	for _, d := range descriptors {
		used[d.Name()] = true
	}
}

// unusedResources lists the resource files in the search locations that
// no resolution returned.
func unusedResources(p *project, used map[string]bool) ([]string, error) {
	resources, err := p.scanner.Scan(p.config.Locations, p.suffixes())
	if err != nil {
		return nil, err
	}
	unused := []string{}
	for _, r := range resources {
		if !used[r.Name] {
			unused = append(unused, r.Name)
		}
	}
	return unused, nil
}

// sameFailure reports whether err repeats a failure already recorded for
// kind, which happens when cases inherit a broken group declaration.
func sameFailure(failures []validationFailure, kind pgfix.Kind, err error) bool {
	var resErr *pgfix.ResolutionError
	if !errors.As(err, &resErr) || resErr.Scope != pgfix.ScopeGroup {
		return false
	}
	for _, f := range failures {
		if f.Kind == string(kind) && f.Error == err.Error() {
			return true
		}
	}
	return false
}

func writeValidationReport(cmd *cobra.Command, report validationReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validation Summary:\n")
	fmt.Fprintf(out, "  Groups: %d\n", report.Groups)
	fmt.Fprintf(out, "  Cases: %d\n", report.Cases)
	fmt.Fprintf(out, "  Kinds: %d\n", len(report.Kinds))
	fmt.Fprintf(out, "  Resolutions checked: %d\n", report.Checked)
	if report.Strict {
		fmt.Fprintf(out, "  Strict: defaults must exist\n")
	}
	fmt.Fprintln(out)

	if len(report.Unused) > 0 {
		fmt.Fprintf(out, "%d unused resource(s):\n", len(report.Unused))
		for _, name := range report.Unused {
			fmt.Fprintf(out, "  %s\n", faintColor.Sprint(name))
		}
		fmt.Fprintln(out)
	}

	if report.ValidationPassed {
		fmt.Fprintln(out, okColor.Sprint("✓ All resources resolved"))
		return
	}

	fmt.Fprintln(out, failColor.Sprintf("✗ %d resolution(s) failed:", len(report.Failures)))
	for i, f := range report.Failures {
		fmt.Fprintf(out, "\n%d. %s %s %s\n", i+1, headerColor.Sprint(f.Kind), f.Scope, f.Subject)
		fmt.Fprintf(out, "   %s\n", f.Error)
	}
	fmt.Fprintln(out)
}

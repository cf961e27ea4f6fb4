package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vvka-141/pgfix/internal/files/filesystem"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

// resourceEntry is one resolved descriptor in JSON output.
type resourceEntry struct {
	Name     string `json:"name"`
	ID       string `json:"id"`
	Checksum string `json:"checksum,omitempty"`
}

// resolution is the outcome of resolving one kind for one subject.
type resolution struct {
	Kind      string          `json:"kind"`
	Scope     string          `json:"scope"`
	Subject   string          `json:"subject"`
	Resources []resourceEntry `json:"resources"`
}

func newResolution(kind pgfix.Kind, scope, subject string, descriptors []pgfix.Descriptor) resolution {
	entries := make([]resourceEntry, 0, len(descriptors))
	for _, d := range descriptors {
		entries = append(entries, resourceEntry{Name: d.Name(), ID: d.ID().String()})
	}
	return resolution{Kind: string(kind), Scope: scope, Subject: subject, Resources: entries}
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	failColor   = color.New(color.FgRed)
	faintColor  = color.New(color.Faint)
)

// addChecksums fingerprints every resource that exists. Default names
// returned without being found are left without a checksum.
func addChecksums(p *project, resolutions []resolution) error {
	for i := range resolutions {
		for j := range resolutions[i].Resources {
			res := &resolutions[i].Resources[j]
			sum, err := p.scanner.Checksum(res.Name)
			if err != nil {
				if filesystem.IsNotExist(err) {
					continue
				}
				return fmt.Errorf("failed to fingerprint %s: %w", res.Name, err)
			}
			res.Checksum = sum
		}
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}

func writeResolutions(w io.Writer, resolutions []resolution) {
	for _, r := range resolutions {
		fmt.Fprintf(w, "%s %s %s\n", headerColor.Sprint(r.Kind), r.Scope, r.Subject)
		if len(r.Resources) == 0 {
			fmt.Fprintf(w, "  %s\n", faintColor.Sprint("(none)"))
			continue
		}
		for _, res := range r.Resources {
			if res.Checksum != "" {
				fmt.Fprintf(w, "  %s %s\n", res.Name, faintColor.Sprint(res.Checksum[:12]))
				continue
			}
			fmt.Fprintf(w, "  %s\n", res.Name)
		}
	}
}

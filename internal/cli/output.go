package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tmulin/wire/internal/domain"
)

type candidatesJSON struct {
	Profile string              `json:"profile"`
	Total   int                 `json:"total"`
	Roots   []candidateRootJSON `json:"roots"`
}

type candidateRootJSON struct {
	Root  string   `json:"root"`
	Paths []string `json:"paths"`
}

type profileJSON struct {
	Profile     string            `json:"profile"`
	SchemaFiles int               `json:"schema_files"`
	Files       []profileFileJSON `json:"files"`
}

type profileFileJSON struct {
	Root        string           `json:"root"`
	Path        string           `json:"path"`
	Syntax      string           `json:"syntax,omitempty"`
	Package     string           `json:"package,omitempty"`
	Imports     []string         `json:"imports,omitempty"`
	TypeConfigs []typeConfigJSON `json:"types,omitempty"`
}

type typeConfigJSON struct {
	Type    string            `json:"type"`
	Line    int               `json:"line"`
	Doc     string            `json:"doc,omitempty"`
	Target  string            `json:"target,omitempty"`
	Adapter string            `json:"adapter,omitempty"`
	With    map[string]string `json:"with,omitempty"`
}

func printCandidates(w io.Writer, profile string, set *domain.CandidateSet, format string) error {
	switch format {
	case "json":
		out := candidatesJSON{Profile: profile, Total: set.Len(), Roots: []candidateRootJSON{}}
		for _, r := range set.Roots() {
			out.Roots = append(out.Roots, candidateRootJSON{Root: r, Paths: set.Paths(r)})
		}
		return encodeJSON(w, out)
	case "pretty", "":
		printPrettyCandidates(w, profile, set)
		return nil
	default:
		return unsupportedFormat(format)
	}
}

func printPrettyCandidates(w io.Writer, profile string, set *domain.CandidateSet) {
	th := newTheme(w)

	fmt.Fprintf(w, "%s %s\n", th.Title.Render("Profile:"), profile)
	fmt.Fprintf(w, "%s %d\n\n", th.Title.Render("Candidates:"), set.Len())

	if set.Len() == 0 {
		fmt.Fprintln(w, th.Faint.Render("(no schema files found)"))
		return
	}

	for _, r := range set.Roots() {
		paths := set.Paths(r)
		fmt.Fprintf(w, "%s %s\n", th.Label.Render(r), th.Faint.Render(fmt.Sprintf("(%d)", len(paths))))
		for _, p := range paths {
			fmt.Fprintf(w, "  - %s\n", p)
		}
		fmt.Fprintln(w)
	}
}

func printProfile(w io.Writer, profile string, schemaFiles int, p domain.Profile, format string) error {
	switch format {
	case "json":
		out := profileJSON{Profile: profile, SchemaFiles: schemaFiles, Files: []profileFileJSON{}}
		for _, f := range p.Files {
			out.Files = append(out.Files, toFileJSON(f))
		}
		return encodeJSON(w, out)
	case "pretty", "":
		printPrettyProfile(w, profile, schemaFiles, p)
		return nil
	default:
		return unsupportedFormat(format)
	}
}

func printPrettyProfile(w io.Writer, profile string, schemaFiles int, p domain.Profile) {
	th := newTheme(w)

	fmt.Fprintf(w, "%s %s\n", th.Title.Render("Profile:"), profile)
	fmt.Fprintf(w, "%s %d\n", th.Title.Render("Schema:"), schemaFiles)
	fmt.Fprintf(w, "%s %d\n\n", th.Title.Render("Files:"), p.Len())

	if p.Empty() {
		fmt.Fprintln(w, th.Missing.Render(fmt.Sprintf("(no %s files found)", domain.ProfileFileName(profile))))
		return
	}

	for i, f := range p.Files {
		fmt.Fprintf(w, "[%d] %s\n", i+1, th.Label.Render(f.Location.String()))
		if f.PackageName != "" {
			fmt.Fprintf(w, "  package: %s\n", f.PackageName)
		}
		if len(f.Imports) > 0 {
			fmt.Fprintf(w, "  imports: %s\n", strings.Join(f.Imports, ", "))
		}
		for _, tc := range f.TypeConfigs {
			line := "  - " + tc.Type
			if tc.Target != "" {
				line += " -> " + tc.Target
			}
			if tc.Adapter != "" {
				line += " using " + tc.Adapter
			}
			fmt.Fprintln(w, line)
			for _, o := range tc.With {
				fmt.Fprintf(w, "      with %s = %s\n", o.Name, o.Value)
			}
		}
		fmt.Fprintln(w)
	}
}

func toFileJSON(f domain.ProfileFile) profileFileJSON {
	out := profileFileJSON{
		Root:    f.Location.Base,
		Path:    f.Location.Path,
		Syntax:  f.Syntax,
		Package: f.PackageName,
		Imports: f.Imports,
	}
	for _, tc := range f.TypeConfigs {
		tj := typeConfigJSON{
			Type:    tc.Type,
			Line:    tc.Location.Line,
			Doc:     tc.Documentation,
			Target:  tc.Target,
			Adapter: tc.Adapter,
		}
		if len(tc.With) > 0 {
			tj.With = make(map[string]string, len(tc.With))
			for _, o := range tc.With {
				tj.With[o.Name] = o.Value
			}
		}
		out.TypeConfigs = append(out.TypeConfigs, tj)
	}
	return out
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func unsupportedFormat(format string) error {
	return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
}

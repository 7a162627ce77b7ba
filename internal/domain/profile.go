package domain

// ProfileFile is one parsed .wire file.
type ProfileFile struct {
	Location    Location
	Syntax      string
	PackageName string
	Imports     []string
	TypeConfigs []TypeConfig
}

// TypeConfig customizes code generation for one schema type.
type TypeConfig struct {
	Location      Location
	Documentation string
	Type          string
	Target        string
	Adapter       string
	With          []Option
}

// Option is a name/value pair attached to a type config with "with".
type Option struct {
	Location Location
	Name     string
	Value    string
}

// Profile is the aggregate of every profile file discovered for a schema, in discovery
// order. Conflicting entries are kept as-is; consumers decide precedence.
type Profile struct {
	Files []ProfileFile
}

func (p Profile) Len() int {
	return len(p.Files)
}

func (p Profile) Empty() bool {
	return len(p.Files) == 0
}

// TypeConfigsFor returns every config for typeName across all files, in discovery order.
func (p Profile) TypeConfigsFor(typeName string) []TypeConfig {
	var out []TypeConfig
	for _, f := range p.Files {
		for _, tc := range f.TypeConfigs {
			if tc.Type == typeName {
				out = append(out, tc)
			}
		}
	}
	return out
}

package domain

// ProtoFile is a schema source file known to the schema model.
type ProtoFile struct {
	Location Location
}

// Schema is the set of schema files a profile is loaded for.
type Schema struct {
	Files []ProtoFile
}

// ProtoLocations returns the location of every file, in order.
func (s Schema) ProtoLocations() []Location {
	out := make([]Location, 0, len(s.Files))
	for _, f := range s.Files {
		out = append(out, f.Location)
	}
	return out
}

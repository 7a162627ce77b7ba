package ports

// RootOpener resolves a root identifier (a directory or an archive) to a navigable Root.
type RootOpener interface {
	OpenRoot(root string) (Root, error)
}

// Root is a navigable filesystem rooted at a directory or a mounted archive.
// Paths are slash-separated and relative to the root.
type Root interface {
	// Exists reports whether an entry exists at path. A missing entry is not an error.
	Exists(path string) (bool, error)
	ReadFile(path string) ([]byte, error)
	// Resolve returns a human-readable form of path resolved against the root.
	Resolve(path string) string
	Close() error
}

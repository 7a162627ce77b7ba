package domain

// WorkspaceSpec describes where a workspace should be initialized.
type WorkspaceSpec struct {
	Root    string
	Profile string
}

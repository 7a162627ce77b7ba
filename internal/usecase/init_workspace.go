package usecase

import (
	"github.com/tmulin/wire/internal/domain"
	"github.com/tmulin/wire/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root, profile string, force bool) error {
	if profile != "" {
		if err := domain.ValidateProfileName(profile); err != nil {
			return &domain.OpError{
				Op:   "usecase.init_workspace",
				Kind: domain.KindInvalidConfig,
				Err:  err,
			}
		}
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root, Profile: profile}, force)
}

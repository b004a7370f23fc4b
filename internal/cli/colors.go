package cli

import (
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/ui"
)

// CLIColorProvider feeds the active ui theme to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

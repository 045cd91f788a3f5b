package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
	"github.com/xcom-modding/xcom-devtools/internal/sdk"
)

// Copier copies a template tree to a new project directory. Copy returns
// once the copy can be considered complete.
type Copier interface {
	Copy(ctx context.Context, src, dst string) error
}

// DirectCopier copies in-process, so no completion heuristic is needed.
type DirectCopier struct{}

func (DirectCopier) Copy(_ context.Context, src, dst string) error {
	return sdk.CopyDir(src, dst)
}

// ToolCopier hands the copy to an external tool, such as
// `robocopy {src} {dst} /MIR`, and infers completion from the destination
// going quiet. {src} and {dst} are replaced with quoted paths.
type ToolCopier struct {
	Terminal sdk.Terminal
	Command  string
	Options  QuiesceOptions
}

func (c *ToolCopier) Copy(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return sdkerrors.IO("copy template", err)
	}
	dw, err := WatchDir(dst, c.Options.Interval)
	if err != nil {
		return err
	}
	defer dw.Close()

	line := strings.NewReplacer("{src}", sdk.Quote(src), "{dst}", sdk.Quote(dst)).Replace(c.Command)
	if err := c.Terminal.Send(ctx, sdk.ShellCommand(filepath.Dir(dst), line)); err != nil {
		return err
	}
	return WaitQuiescent(ctx, dw.Changes(), c.Options)
}

package sdk

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/gookit/color"

	sdkerrors "github.com/xcom-modding/xcom-devtools/internal/errors"
)

// Command is one executable invocation in a working directory.
type Command struct {
	Dir  string
	Path string
	Args []string
}

// Commandlet runs XComGame.com from the SDK binaries directory.
func (l Layout) Commandlet(args ...string) Command {
	return Command{
		Dir:  l.BinariesDir(),
		Path: NormalizePath(l.BinariesDir() + "/" + CommandletExecutable),
		Args: args,
	}
}

// ShellCommand runs line through the platform shell in dir.
func ShellCommand(dir, line string) Command {
	if runtime.GOOS == "windows" {
		return Command{Dir: dir, Path: "cmd", Args: []string{"/C", line}}
	}
	return Command{Dir: dir, Path: "sh", Args: []string{"-c", line}}
}

func (c Command) String() string {
	parts := []string{c.Path}
	for _, a := range c.Args {
		if strings.ContainsAny(a, " \t") {
			a = Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Terminal sends commands to be run on the user's behalf.
type Terminal interface {
	Send(ctx context.Context, c Command) error
}

// Launcher starts SDK executables with their output attached to the console.
// It never waits for or interprets exit codes: the outcome of a build is read
// from the SDK's log, not from the process.
type Launcher struct {
	Stdout io.Writer
	Stderr io.Writer
}

func NewLauncher() *Launcher {
	return &Launcher{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Send starts c and returns once the process is running. ctx only gates the
// start: the game, editor or commandlet keeps running after ctx is
// cancelled and after xsdk exits.
func (l *Launcher) Send(ctx context.Context, c Command) error {
	if err := ctx.Err(); err != nil {
		return sdkerrors.Cancelled("launch", c.Path+" was not started")
	}
	color.Printf("Running cmd <grey>%s</>\n", c.String())
	startTime := time.Now()
	cmd := exec.Command(c.Path, c.Args...) // #nosec G204
	cmd.Dir = c.Dir
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	if err := cmd.Start(); err != nil {
		return sdkerrors.IOf("launch", err, "%s", c.Path)
	}
	go func() {
		err := cmd.Wait()
		slog.Debug("command exited", "cmd", c.String(), "elapsed", time.Since(startTime), "err", err)
	}()
	return nil
}

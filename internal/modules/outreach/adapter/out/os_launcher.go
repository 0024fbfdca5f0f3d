package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	outreachout "microhub/internal/modules/outreach/port/out"
)

// OSLauncher opens links in the desktop's default handler.
type OSLauncher struct{}

func NewOSLauncher() outreachout.Launcher {
	return &OSLauncher{}
}

func (l *OSLauncher) Open(ctx context.Context, target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", target)
	case "linux", "freebsd", "openbsd":
		cmd = exec.CommandContext(ctx, "xdg-open", target)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("opening links is not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open link: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

package out

import (
	"context"
	"fmt"
	"io"

	outreachout "microhub/internal/modules/outreach/port/out"
)

// WriterLauncher prints the link for the user to open by hand.
type WriterLauncher struct {
	w io.Writer
}

func NewWriterLauncher(w io.Writer) outreachout.Launcher {
	if w == nil {
		w = io.Discard
	}
	return &WriterLauncher{w: w}
}

func (l *WriterLauncher) Open(_ context.Context, target string) error {
	if _, err := fmt.Fprintf(l.w, "Open in WhatsApp: %s\n", target); err != nil {
		return fmt.Errorf("print link: %w", err)
	}
	return nil
}

package out_test

import (
	"bytes"
	"context"
	"testing"

	outreachout "microhub/internal/modules/outreach/adapter/out"
)

func TestWriterLauncherPrintsLink(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	if err := outreachout.NewWriterLauncher(buf).Open(context.Background(), "https://wa.me/254710654707?text=hi"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if buf.String() != "Open in WhatsApp: https://wa.me/254710654707?text=hi\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if err := outreachout.NewWriterLauncher(nil).Open(context.Background(), "x"); err != nil {
		t.Fatalf("nil writer should discard: %v", err)
	}
}

package out

import "context"

// Launcher hands a link to whatever can open it.
type Launcher interface {
	Open(ctx context.Context, target string) error
}

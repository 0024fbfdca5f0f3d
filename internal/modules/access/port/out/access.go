package out

import "context"

type ProgressPort interface {
	HasAccess(ctx context.Context, courseID string, isFree bool) (bool, error)
	Grant(ctx context.Context, courseID string, isFree bool, code string) (warning string, err error)
}

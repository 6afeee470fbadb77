package ports

import "context"

type HostResolver interface {
	Resolve(ctx context.Context, host string) (string, error)
}

package sql

import "context"

type Database interface {
	Open(ctx context.Context) error
	Close()
	Command(ctx context.Context, sql string, args ...any) error
	Up(ctx context.Context, replacements map[string]string) error
}

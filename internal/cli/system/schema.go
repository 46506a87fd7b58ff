package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/mealtrack/internal/cli"
	"github.com/julianstephens/mealtrack/internal/migration"
)

// schemaProvider is implemented by the SQL backends.
type schemaProvider interface {
	Migrator() (*migration.Runner, error)
	Verify(ctx context.Context) error
}

func schemaOf(ctx *cli.Context) (schemaProvider, error) {
	sp, ok := ctx.Store.Provider().(schemaProvider)
	if !ok {
		return nil, fmt.Errorf("storage backend does not support migrations")
	}
	return sp, nil
}

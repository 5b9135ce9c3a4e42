//go:build unit

package bootstrap_test

import (
	"testing"

	"cabinstay/cmd/bootstrap"
	"cabinstay/cmd/bootstrap/components"
	"cabinstay/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestDependencyGraph(t *testing.T) {
	t.Run("production modules resolve", func(t *testing.T) {
		err := fx.ValidateApp(
			bootstrap.Module,
			fx.Provide(func() *gin.Engine { return gin.New() }),
			fx.NopLogger,
		)
		require.NoError(t, err)
	})

	t.Run("resolves with the pool and config swapped for test ones", func(t *testing.T) {
		err := fx.ValidateApp(
			fx.Provide(
				func() *pgxpool.Pool { return nil },
				func() config.Config { return config.NewTestConfig() },
				func() *gin.Engine { return gin.New() },
			),
			bootstrap.LoggerModule,
			components.RepositoryModule,
			components.UseCaseModule,
			components.HandlerModule,
			fx.NopLogger,
		)
		require.NoError(t, err)
	})
}

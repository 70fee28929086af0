package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

var grantAdminUserID int64

// grantAdminCmd promotes an existing user to ADMIN. The user must have made
// first contact already so the directory row exists.
var grantAdminCmd = &cobra.Command{
	Use:   "grant-admin",
	Short: "Grant the ADMIN role to an existing user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if grantAdminUserID == 0 {
			return errors.New("--user-id is required")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err := observability.NewLogger(cfg.Logger)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		ctx := context.Background()
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pg.Close()
		if pg.PoolHandle() == nil {
			return errors.New("POSTGRES_DSN must be set")
		}

		users := repository.NewUserRepository(pg.PoolHandle())
		user, err := users.UpdateRole(ctx, grantAdminUserID, domain.RoleAdmin)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("user %d not found; the user must contact the helpdesk once before promotion", grantAdminUserID)
			}
			return fmt.Errorf("update role: %w", err)
		}

		fmt.Printf("user %d (%s) is now %s\n", user.ID, user.DisplayName(), user.Role)
		return nil
	},
}

func init() {
	grantAdminCmd.Flags().Int64Var(&grantAdminUserID, "user-id", 0, "platform user id to promote")
}

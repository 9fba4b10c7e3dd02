package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flotilla/battleship-go/internal/factory"
	"github.com/flotilla/battleship-go/internal/model"
)

// Admin commands mutate player records directly in the configured store.
// Role changes never flow through the player-facing web surfaces.
func newAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Operator actions on player accounts",
	}

	adminCmd.AddCommand(newPromoteCmd())
	adminCmd.AddCommand(newDemoteCmd())
	adminCmd.AddCommand(newSetPasswordCmd())

	return adminCmd
}

func newPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <username>",
		Short: "Grant a player the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAdminRole(args[0], true)
		},
	}
}

func newDemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demote <username>",
		Short: "Revoke a player's admin role",
		Long: `Revoke a player's admin role.

Sessions snapshot the role at login, so an already logged-in admin keeps
admin access until their session ends.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAdminRole(args[0], false)
		},
	}
}

func newSetPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <username> <password>",
		Short: "Replace a player's password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := adminApp()
			if err != nil {
				return err
			}

			if err := app.AuthService.SetPassword(context.Background(), args[0], args[1]); err != nil {
				if errors.Is(err, model.ErrPlayerNotFound) {
					return fmt.Errorf("no player named %q", args[0])
				}
				return err
			}

			fmt.Printf("Password updated for %s\n", args[0])
			return nil
		},
	}
}

func setAdminRole(username string, isAdmin bool) error {
	app, err := adminApp()
	if err != nil {
		return err
	}

	if err := app.Storage.SetAdmin(context.Background(), username, isAdmin); err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return fmt.Errorf("no player named %q", username)
		}
		return err
	}

	if isAdmin {
		fmt.Printf("%s is now an admin\n", username)
	} else {
		fmt.Printf("%s is no longer an admin\n", username)
	}
	return nil
}

// adminApp wires the application for a one-shot operator action. Memory
// storage is process-local, so mutations there would be lost on exit.
func adminApp() (*factory.App, error) {
	cfg := ConfigFromEnv()
	if cfg.StorageType != factory.StorageTypeRedis {
		return nil, errors.New("admin commands require STORAGE_TYPE=redis; memory storage does not persist between processes")
	}
	return buildApp(cfg, newLogger())
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"provider-directory/config"
	"provider-directory/internal/delivery/http/middleware"
	"provider-directory/internal/infrastructure/cache"
	"provider-directory/pkg/jwt"

	"github.com/spf13/cobra"
)

func loginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a bearer token for later requests",
		Long:  "Store a bearer token for later requests. Without --token the token is read from stdin.",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			token, _ := cmd.Flags().GetString("token")
			if token == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no token given")
				}
				token = line
			}

			if err := a.tokens.Save(strings.TrimSpace(token)); err != nil {
				return err
			}
			a.println("Sesión iniciada")
			return nil
		}),
	}
	cmd.Flags().String("token", "", "Bearer token")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored bearer token",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			if err := a.tokens.Clear(); err != nil {
				return err
			}
			a.println("Sesión cerrada")
			return nil
		}),
	}
}

func tokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and revoke resource server tokens",
	}

	mintCmd := &cobra.Command{
		Use:   "mint",
		Short: "Sign a token with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			save, _ := cmd.Flags().GetBool("save")

			token, tokenID, err := jwt.NewJWTService(a.cfg.JWT).GenerateAccessToken(subject)
			if err != nil {
				return err
			}

			if save {
				if err := a.tokens.Save(token); err != nil {
					return err
				}
			}

			a.log.Debugf("Minted token %s for %s", tokenID, subject)
			a.println(token)
			fmt.Fprintln(cmd.ErrOrStderr(), "token id:", tokenID)
			return nil
		}),
	}
	mintCmd.Flags().String("subject", "directoryctl", "Subject recorded as the audit actor")
	mintCmd.Flags().Bool("save", false, "Store the token as the current session")

	revokeCmd := &cobra.Command{
		Use:   "revoke <tokenId>",
		Short: "Mark a token ID as revoked in the server's Redis",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ttl, _ := cmd.Flags().GetDuration("ttl")

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			client, err := cache.NewRedisClient(cfg.Redis)
			if err != nil {
				return err
			}
			if client == nil {
				return errors.New("REDIS_HOST is not configured")
			}
			defer client.Close()

			if ttl <= 0 {
				ttl = cfg.JWT.AccessExpiry
			}
			if err := client.Set(cmd.Context(), middleware.RevokedTokenKey(args[0]), "1", ttl).Err(); err != nil {
				return fmt.Errorf("failed to revoke token: %w", err)
			}
			a.println("Token revocado")
			return nil
		}),
	}
	revokeCmd.Flags().Duration("ttl", 0, "How long to keep the revocation, defaults to JWT_ACCESS_EXPIRY")

	cmd.AddCommand(mintCmd)
	cmd.AddCommand(revokeCmd)
	return cmd
}

package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/revenue_split_app/internal/platform/config"
	"github.com/SscSPs/revenue_split_app/internal/utils"
	"github.com/spf13/cobra"
)

type tokenCmd struct {
	cfg     *config.Config
	subject string
	ttl     time.Duration
}

// NewRootCmd builds the token command around the loaded server config.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	c := &tokenCmd{cfg: cfg}
	cmd := &cobra.Command{
		Use:           "revsplit_token",
		Short:         "Mint a bearer token for the revenue split API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}
	cmd.Flags().StringVar(&c.subject, "sub", "", "token subject (user ID)")
	cmd.Flags().DurationVar(&c.ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}

func (c *tokenCmd) run(cmd *cobra.Command, _ []string) error {
	token, err := utils.GenerateJWT(c.subject, c.cfg.JWTSecret, c.ttl, c.cfg.JWTIssuer)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}

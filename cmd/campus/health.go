package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check the health of the portal API",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := portal.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("checking health: %w", err)
		}

		if jsonOutput {
			if err := printJSON(os.Stdout, map[string]string{"status": status, "api": cfg.BaseURL()}); err != nil {
				return err
			}
		} else {
			fmt.Printf("Health: %s (%s)\n", status, cfg.BaseURL())
		}

		if status != "ok" && status != "UP" {
			return fmt.Errorf("unhealthy: %s", status)
		}
		return nil
	},
}

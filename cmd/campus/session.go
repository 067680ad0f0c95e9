package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/campus/internal/dashboard"
	"github.com/alfredjeanlab/campus/internal/model"
	"github.com/alfredjeanlab/campus/internal/ui"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Short:   "Manage the saved sign-in token and selections",
	GroupID: "session",
}

var sessionLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save a bearer token for later commands",
	Long: `Save a bearer token for later commands. The token is taken from --token,
then CAMPUS_TOKEN, then read from the terminal without echo.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")
		user, _ := cmd.Flags().GetString("user")
		roleFlag, _ := cmd.Flags().GetString("role")

		role, err := parseRole(roleFlag)
		if err != nil {
			return err
		}
		if token == "" {
			token = cfg.Token
		}
		if token == "" {
			token, err = ui.ReadSecret(os.Stdin, os.Stderr, "Token: ")
			if err != nil {
				return err
			}
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return fmt.Errorf("no token given")
		}

		sess.AccessToken = token
		sess.User = user
		sess.Role = role
		if cmd.Flags().Changed("api-url") {
			sess.APIURL = apiURL
		}
		if err := sessions.Save(sess); err != nil {
			return err
		}
		notifier.Success(fmt.Sprintf("Signed in%s; session saved to %s", asUser(sess.User), sessions.Path()))
		return nil
	},
}

var sessionLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved token and selections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessions.Clear(); err != nil {
			return err
		}
		notifier.Success("Signed out")
		return nil
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printJSON(os.Stdout, map[string]any{
				"path":          sessions.Path(),
				"logged_in":     sess.LoggedIn(),
				"user":          sess.User,
				"role":          sess.Role,
				"api_url":       cfg.APIURL,
				"last_selected": sess.LastSelected,
			})
		}
		fmt.Printf("File:      %s\n", sessions.Path())
		fmt.Printf("Signed in: %t\n", sess.LoggedIn())
		if sess.User != "" {
			fmt.Printf("User:      %s\n", sess.User)
		}
		if sess.Role != "" {
			fmt.Printf("Role:      %s\n", sess.Role)
		}
		fmt.Printf("API:       %s\n", cfg.BaseURL())
		if len(sess.LastSelected) > 0 {
			fmt.Println("Selected:")
			views := make([]string, 0, len(sess.LastSelected))
			for v := range sess.LastSelected {
				views = append(views, v)
			}
			slices.Sort(views)
			for _, v := range views {
				fmt.Printf("  %-22s %s\n", v, sess.LastSelected[v])
			}
		}
		return nil
	},
}

var sessionSelectCmd = &cobra.Command{
	Use:   "select <view> [id]",
	Short: "Set or clear the selected record in a view",
	Long: `Set the selected record in a view. Commands that take an id use the
selection when the id is omitted. Without an id the selection is cleared.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		view := args[0]
		if !slices.Contains(dashboard.Names, view) {
			return fmt.Errorf("unknown view %q (one of %s)", view, strings.Join(dashboard.Names, ", "))
		}
		id := ""
		if len(args) == 2 {
			id = args[1]
		}
		sess.Select(view, id)
		return sessions.Save(sess)
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Print the signed-in user and role",
	GroupID: "session",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sess.LoggedIn() && cfg.Token == "" {
			return fmt.Errorf("not signed in (run: campus session login)")
		}
		if jsonOutput {
			return printJSON(os.Stdout, map[string]string{"user": sess.User, "role": sess.Role.String()})
		}
		user := sess.User
		if user == "" {
			user = "(unknown user)"
		}
		if sess.Role != "" {
			fmt.Printf("%s (%s)\n", user, sess.Role)
		} else {
			fmt.Println(user)
		}
		return nil
	},
}

// parseRole accepts role names as printed and the short forms hr, officer
// and student. Empty input is allowed.
func parseRole(s string) (model.Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "hr":
		return model.RoleHR, nil
	case "officer", "placement_officer", "placement-officer":
		return model.RoleOfficer, nil
	case "student":
		return model.RoleStudent, nil
	}
	return "", fmt.Errorf("unknown role %q (hr, officer or student)", s)
}

func asUser(user string) string {
	if user == "" {
		return ""
	}
	return " as " + user
}

func init() {
	sessionLoginCmd.Flags().String("token", "", "bearer token")
	sessionLoginCmd.Flags().String("user", "", "display name to remember")
	sessionLoginCmd.Flags().String("role", "", "dashboard role: hr, officer or student")

	sessionCmd.AddCommand(sessionLoginCmd, sessionLogoutCmd, sessionShowCmd, sessionSelectCmd)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sift/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in to remote integrations",
	Long: `Sign in to GitHub, Slack, Discord, Notion and Google Drive.

Signing in opens the provider's consent page in your browser and waits for
the redirect on a local callback server. Client IDs are read from
integrations.<service>.client_id in the config file.

Examples:
  sift auth login github
  sift auth status
  sift auth files notion`,
}

var authLoginCmd = &cobra.Command{
	Use:       "login <service>",
	Short:     "Sign in to an integration",
	Args:      cobra.ExactArgs(1),
	ValidArgs: integrationNames(),
	RunE:      runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sign-in state for every integration",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

var authFilesCmd = &cobra.Command{
	Use:       "files <service>",
	Short:     "List files on a signed-in integration",
	Args:      cobra.ExactArgs(1),
	ValidArgs: integrationNames(),
	RunE:      runAuthFiles,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authFilesCmd)
	rootCmd.AddCommand(authCmd)
}

func integrationNames() []string {
	all := domain.AllIntegrations()
	names := make([]string, len(all))
	for i, in := range all {
		names[i] = in.String()
	}
	return names
}

func parseService(arg string) (domain.Integration, error) {
	service, err := domain.ParseIntegration(strings.ToLower(arg))
	if err != nil {
		return "", fmt.Errorf("%w (choose one of: %s)", err, strings.Join(integrationNames(), ", "))
	}
	return service, nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	service, err := parseService(args[0])
	if err != nil {
		return err
	}
	if integrationService == nil {
		return errNotConfigured("integration")
	}

	cmd.Printf("Signing in to %s. Complete the flow in your browser...\n", service.Description())
	cred := integrationService.StartOAuth(cmd.Context(), service)
	if !cred.Authenticated() {
		return fmt.Errorf("%w: %s: %s", domain.ErrAuthFailure, service.Description(), cred.Err)
	}

	cmd.Printf("Connected to %s\n", service.Description())
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if integrationService == nil {
		return errNotConfigured("integration")
	}

	for _, cred := range integrationService.Credentials() {
		cmd.Printf("  %-14s %s\n", cred.Service.Description(), cred.Status())
	}
	return nil
}

func runAuthFiles(cmd *cobra.Command, args []string) error {
	service, err := parseService(args[0])
	if err != nil {
		return err
	}
	if integrationService == nil {
		return errNotConfigured("integration")
	}

	files, err := integrationService.ListFiles(cmd.Context(), service)
	if err != nil {
		return fmt.Errorf("listing %s files: %w", service.Description(), err)
	}
	if len(files) == 0 {
		cmd.Println("No files found.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		if f.URL != "" {
			fmt.Fprintf(out, "%s\t%s\n", f.Path, f.URL)
			continue
		}
		fmt.Fprintln(out, f.Path)
	}
	return nil
}

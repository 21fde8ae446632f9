package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sift/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in the config file.

Run without a subcommand to show the current settings.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting.

Keys:
  search.base_url        Vector search service address
  search.limit           Results per query
  search.debounce_ms     Quiet period before a query fires
  search.timeout_ms      Search and summary timeout
  search.empty_query     clear | keep
  search.cache_size      Cached responses (0 disables)
  selection.policy       reset | preserve
  llm.provider           ollama | openai | anthropic | groq
  llm.model              Model name
  llm.base_url           Provider endpoint override
  bridge.callback_port   First port tried for OAuth callbacks
  integrations.<service>.client_id
  integrations.<service>.client_secret`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Set the API key for the configured LLM provider",
	Long:  `Prompt for the LLM API key without echoing it.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigSetKey,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configLLMCmd = &cobra.Command{
	Use:   "llm [provider] [model]",
	Short: "Configure the LLM provider",
	Long: `Configure the LLM provider used for suggestions, summaries and highlighting.

Without arguments an interactive prompt lists the providers.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfigLLM,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configLLMCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Base URL: %s\n", settings.Search.BaseURL)
	cmd.Printf("  Limit: %d\n", settings.Search.Limit)
	cmd.Printf("  Debounce: %s\n", settings.Search.Debounce)
	cmd.Printf("  Timeout: %s\n", settings.Search.Timeout)
	cmd.Printf("  Empty query: %s\n", settings.Search.EmptyQuery)
	cmd.Printf("  Cache size: %d\n", settings.Search.CacheSize)
	cmd.Println()

	cmd.Println("[Selection]")
	cmd.Printf("  Policy: %s\n", settings.Selection.Policy)
	cmd.Println()

	cmd.Println("[LLM]")
	if settings.LLM.Provider == "" {
		cmd.Println("  Provider: (not set)")
	} else {
		cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
		if settings.LLM.BaseURL != "" {
			cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
		}
		if settings.LLM.Provider.RequiresAPIKey() {
			if settings.LLM.APIKey != "" {
				cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
			} else {
				cmd.Printf("  API Key: (not set)\n")
			}
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Bridge]")
	cmd.Printf("  Callback port: %d\n", settings.Bridge.CallbackPort)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'sift config set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	value, ok := settingsService.Value(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, args[0])
	}
	if strings.HasSuffix(args[0], "api_key") || strings.HasSuffix(args[0], ".token") ||
		strings.HasSuffix(args[0], "client_secret") {
		value = maskAPIKey(value)
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s\n", args[0])

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runConfigSetKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	provider := settings.LLM.Provider
	if !provider.IsValid() {
		return errors.New("no LLM provider configured; run 'sift config llm' first")
	}
	if !provider.RequiresAPIKey() {
		return fmt.Errorf("%s does not use an API key", provider.Description())
	}

	cmd.Printf("Enter API key for %s: ", provider.Description())
	apiKey := readPassword(cmd.InOrStdin())
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key is required for this provider")
	}

	if err := settingsService.SetLLMProvider(provider, settings.LLM.Model, apiKey); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	cmd.Printf("API key saved: %s\n", maskAPIKey(apiKey))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}
	fmt.Fprintln(cmd.OutOrStdout(), settingsService.Path())
	return nil
}

func runConfigLLM(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	if len(args) == 0 {
		return configureLLMProvider(cmd, reader)
	}

	provider := domain.AIProvider(strings.ToLower(args[0]))
	if !provider.IsValid() {
		return fmt.Errorf("%w: unknown LLM provider %q", domain.ErrInvalidInput, args[0])
	}
	var model string
	if len(args) == 2 {
		model = args[1]
	}
	return applyLLMProvider(cmd, provider, model)
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readSecret(cmd.InOrStdin(), reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	return saveLLMProvider(cmd, selectedProvider, model, apiKey)
}

// applyLLMProvider switches provider, keeping a stored API key when the
// provider needs one and prompting for it otherwise.
func applyLLMProvider(cmd *cobra.Command, provider domain.AIProvider, model string) error {
	var apiKey string
	if provider.RequiresAPIKey() {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if settings.LLM.Provider == provider {
			apiKey = settings.LLM.APIKey
		}
		if apiKey == "" {
			cmd.Printf("Enter API key for %s: ", provider.Description())
			apiKey = readPassword(cmd.InOrStdin())
			cmd.Println()
			if apiKey == "" {
				return errors.New("API key is required for this provider")
			}
		}
	}
	return saveLLMProvider(cmd, provider, model, apiKey)
}

func saveLLMProvider(cmd *cobra.Command, provider domain.AIProvider, model, apiKey string) error {
	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	settings, err := settingsService.Get()
	if err == nil {
		model = settings.LLM.Model
	}
	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func readPassword(in io.Reader) string {
	return readSecret(in, bufio.NewReader(in))
}

// readSecret reads a line without echo when in is a terminal, falling
// back to reader otherwise.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

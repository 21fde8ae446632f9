package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sift/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/core/services"
)

// stubSearch returns fixed results for every query.
type stubSearch struct {
	results   []domain.SearchResult
	err       error
	lastQuery string
	lastLimit int
}

func (s *stubSearch) Search(_ context.Context, query string, limit int) ([]domain.SearchResult, error) {
	s.lastQuery = query
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

// Query lets the stub back a ResultStore too.
func (s *stubSearch) Query(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	return s.Search(ctx, query, limit)
}

// stubIntegrations signs in to GitHub and fails everything else.
type stubIntegrations struct {
	creds map[domain.Integration]domain.IntegrationCredential
	files []domain.RemoteFile
	quits int
}

func newStubIntegrations() *stubIntegrations {
	return &stubIntegrations{creds: make(map[domain.Integration]domain.IntegrationCredential)}
}

func (s *stubIntegrations) StartOAuth(_ context.Context, service domain.Integration) domain.IntegrationCredential {
	cred := domain.IntegrationCredential{Service: service, Token: "gho_token"}
	if service != domain.IntegrationGitHub {
		cred = domain.IntegrationCredential{Service: service, Err: "access_denied"}
	}
	s.creds[service] = cred
	return cred
}

func (s *stubIntegrations) Credential(service domain.Integration) (domain.IntegrationCredential, bool) {
	cred, ok := s.creds[service]
	return cred, ok
}

func (s *stubIntegrations) Credentials() []domain.IntegrationCredential {
	all := domain.AllIntegrations()
	out := make([]domain.IntegrationCredential, len(all))
	for i, in := range all {
		cred, ok := s.creds[in]
		if !ok {
			cred = domain.IntegrationCredential{Service: in}
		}
		out[i] = cred
	}
	return out
}

func (s *stubIntegrations) ListFiles(_ context.Context, service domain.Integration) ([]domain.RemoteFile, error) {
	if cred := s.creds[service]; !cred.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	return s.files, nil
}

func (s *stubIntegrations) Quit() {
	s.quits++
}

type testServices struct {
	search       *stubSearch
	history      *services.HistoryService
	integrations *stubIntegrations
	settings     *services.SettingsService
}

var active *testServices

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{ID: "1", Document: "q3 budget notes", FilePath: "/docs/budget.txt", Location: domain.LocationLocal, Distance: 0.12},
		{ID: "2", Document: "quarterly report", FilePath: "/docs/budget report.pdf", Location: "github", Distance: 0.31},
	}
}

// setupTestServices installs stub and in-memory services and returns a
// cleanup func that removes them and resets command state.
func setupTestServices() func() {
	active = &testServices{
		search:       &stubSearch{results: testResults()},
		history:      services.NewHistoryService(memory.NewHistoryStore()),
		integrations: newStubIntegrations(),
		settings:     services.NewSettingsService(memory.NewConfigStore(), nil),
	}
	SetServices(&Services{
		Search:       active.search,
		History:      active.history,
		Integrations: active.integrations,
		Settings:     active.settings,
	})

	return func() {
		SetServices(nil)
		active = nil
		resetFlags()
	}
}

func resetFlags() {
	searchLimit = domain.DefaultSearchLimit
	searchJSON = false
	historyLimit = 20
	mcpHTTPAddr = ""
	versionShort = false
	verbose = false
	configDir = ""
	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	rootCmd.SetIn(strings.NewReader(input))
	defer rootCmd.SetIn(nil)
	return execute(t, args...)
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "sift", rootCmd.Use)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"search", "tui", "auth", "config", "history", "mcp", "version"} {
		assert.True(t, names[want], "%s command should be registered", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	v := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, v)
	assert.Equal(t, "v", v.Shorthand)

	dir := rootCmd.PersistentFlags().Lookup("config-dir")
	require.NotNil(t, dir)
	assert.Equal(t, "", dir.DefValue)
}

func TestSetServices_Nil(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	SetServices(nil)

	assert.Nil(t, searchService)
	assert.Nil(t, settingsService)
	assert.Nil(t, exitSignal)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")

	assert.Equal(t, "1.2.3", version)
}

func TestBootstrap_RunsWithConfigDir(t *testing.T) {
	defer resetFlags()
	defer SetServices(nil)

	var gotDir string
	released := false
	SetBootstrap(func(_ context.Context, dir string) (*Services, func(), error) {
		gotDir = dir
		return &Services{Search: &stubSearch{}}, func() { released = true }, nil
	})
	defer SetBootstrap(nil)

	_, err := execute(t, "--config-dir", "/tmp/sift-test", "search", "budget")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/sift-test", gotDir)
	assert.True(t, released, "cleanup should run after the command")
}

func TestBootstrap_Error(t *testing.T) {
	defer resetFlags()

	SetBootstrap(func(context.Context, string) (*Services, func(), error) {
		return nil, nil, errors.New("config unreadable")
	})
	defer SetBootstrap(nil)

	_, err := execute(t, "search", "budget")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config unreadable")
}

func TestBootstrap_SkippedForVersion(t *testing.T) {
	defer resetFlags()

	called := false
	SetBootstrap(func(context.Context, string) (*Services, func(), error) {
		called = true
		return &Services{}, nil, nil
	})
	defer SetBootstrap(nil)

	_, err := execute(t, "version")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestErrNotConfigured(t *testing.T) {
	assert.EqualError(t, errNotConfigured("search"), "search service not configured")
}

func TestCommands_FailWithoutServices(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"search", "budget"}, "search service not configured"},
		{[]string{"history"}, "history service not configured"},
		{[]string{"auth", "status"}, "integration service not configured"},
		{[]string{"config", "path"}, "settings service not configured"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			defer resetFlags()

			_, err := execute(t, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// findCommand looks up a subcommand by path.
func findCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := rootCmd.Find(args)
	require.NoError(t, err)
	return cmd
}

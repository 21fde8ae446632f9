package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/sift/internal/adapters/driven/ai"
	"github.com/custodia-labs/sift/internal/adapters/driven/bridge"
	"github.com/custodia-labs/sift/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/sift/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sift/internal/adapters/driven/imageinfo"
	"github.com/custodia-labs/sift/internal/adapters/driven/pdftext"
	"github.com/custodia-labs/sift/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sift/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sift/internal/adapters/driven/vectorsearch"
	"github.com/custodia-labs/sift/internal/adapters/driving/cli"
	"github.com/custodia-labs/sift/internal/core/ports/driven"
	"github.com/custodia-labs/sift/internal/core/services"
	"github.com/custodia-labs/sift/internal/logger"
)

const logFileName = "sift.log"

// bootstrap wires the driven adapters into the core services.
func bootstrap(ctx context.Context, dir string) (*cli.Services, func(), error) {
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		dir = d
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	prompts, err := file.NewPromptStore(filepath.Join(dir, "prompts"))
	if err != nil {
		return nil, nil, fmt.Errorf("loading prompts: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}
	if err := settingsService.Validate(); err != nil {
		logger.Warn("settings: %v", err)
	}

	searchClient := vectorsearch.NewClient(vectorsearch.Config{
		BaseURL: settings.Search.BaseURL,
		Timeout: settings.Search.Timeout,
	})
	results := services.NewResultStore(searchClient, settings.Search)
	selection := services.NewSelectionController(settings.Selection.Policy)

	nativeBridge := bridge.New(bridge.Config{
		CallbackPort: settings.Bridge.CallbackPort,
		Config:       configStore,
	})
	if !clipboard.Available() {
		logger.Warn("no clipboard utility found; copy actions will fail")
	}
	actions := services.NewActionDispatcher(clipboard.New(), nativeBridge, "")
	closers = append(closers, func() {
		if err := actions.Cleanup(); err != nil {
			logger.Warn("temp copies: %v", err)
		}
	})

	if err := pdftext.CheckAvailable(); err != nil {
		logger.Debug("pdf previews disabled: %v (%s)", err, pdftext.InstallInstructions())
	}
	preview := services.NewPreviewService(nativeBridge, pdftext.New(), imageinfo.New())

	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("AI assistance off: %v", err)
	}
	if llm != nil {
		closers = append(closers, func() { _ = llm.Close() })
	}
	assist := services.NewAssistService(llm, prompts, settings.Search.Timeout)

	history := services.NewHistoryService(openHistoryStore(filepath.Join(dir, "data"), &closers))
	integrations := services.NewIntegrationService(nativeBridge, configStore)

	notices := make(chan string, 4)
	watcher, err := file.NewWatcher(configStore, prompts, 0)
	if err != nil {
		logger.Warn("config watcher disabled: %v", err)
	} else {
		closers = append(closers, func() { _ = watcher.Close() })
		reload := func() {
			fresh, err := settingsService.Get()
			if err != nil {
				logger.Warn("settings: %v", err)
				return
			}
			searchClient.Reconfigure(vectorsearch.Config{
				BaseURL: fresh.Search.BaseURL,
				Timeout: fresh.Search.Timeout,
			})
			results.Reconfigure(fresh.Search)
		}
		go relayChanges(ctx, watcher.Changes(), reload, notices)
	}

	logger.Debug("config %s, search %s", configStore.Path(), settings.Search.BaseURL)

	return &cli.Services{
		Results:      results,
		Search:       results,
		Selection:    selection,
		Actions:      actions,
		Preview:      preview,
		Assist:       assist,
		History:      history,
		Integrations: integrations,
		Settings:     settingsService,
		Exit:         nativeBridge.Done(),
		Notices:      notices,
		LogPath:      filepath.Join(dir, logFileName),
	}, cleanup, nil
}

// openHistoryStore opens the sqlite history, falling back to memory when
// the database cannot be opened.
func openHistoryStore(dataDir string, closers *[]func()) driven.HistoryStore {
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Warn("history kept in memory only: %v", err)
		return memory.NewHistoryStore()
	}
	*closers = append(*closers, func() { _ = store.Close() })
	return store
}

// relayChanges turns config reloads into status bar notices. On a config
// change reload re-applies the search settings, which also drops cached
// responses.
func relayChanges(ctx context.Context, changes <-chan file.Change, reload func(), notices chan<- string) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			var text string
			switch change {
			case file.ChangeConfig:
				if reload != nil {
					reload()
				}
				text = "Settings reloaded"
			case file.ChangePrompts:
				text = "Prompts reloaded"
			default:
				continue
			}
			select {
			case notices <- text:
			default:
				logger.Debug("notice dropped: %s", text)
			}
		}
	}
}

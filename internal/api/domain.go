package api

import (
	"promptvault/internal/config"
	"promptvault/internal/drafts"
	"promptvault/internal/favorites"
	"promptvault/internal/prompts"
	"promptvault/internal/settings"
	"promptvault/internal/trash"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts   prompts.System
	Favorites favorites.System
	Trash     trash.System
	Settings  settings.System
	Drafts    drafts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	favoritesSystem := favorites.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	trashSystem := trash.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	settingsSystem := settings.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	draftsSystem := drafts.New(
		draftProviders(cfg, runtime),
		cfg.LLM.DefaultProvider,
		cfg.LLM.TimeoutDuration(),
		cfg.API.MaxUploadSizeBytes(),
		settingsSystem,
		runtime.Logger,
	)

	return &Domain{
		Prompts:   promptsSystem,
		Favorites: favoritesSystem,
		Trash:     trashSystem,
		Settings:  settingsSystem,
		Drafts:    draftsSystem,
	}
}

// draftProviders constructs every configured LLM provider. Providers
// with no API key are still registered so that calls fail loudly at the
// provider rather than silently disappearing from comparison output.
func draftProviders(cfg *config.Config, runtime *Runtime) []drafts.Provider {
	openaiKey := cfg.LLM.OpenAIAPIKey()
	if openaiKey == "" {
		runtime.Logger.Warn("openai api key not set, provider calls will fail")
	}

	geminiKey := cfg.LLM.GeminiAPIKey()
	if geminiKey == "" {
		runtime.Logger.Warn("gemini api key not set, provider calls will fail")
	}

	return []drafts.Provider{
		drafts.NewOpenAIProvider(openaiKey, cfg.LLM.OpenAIModel),
		drafts.NewGeminiProvider(geminiKey, cfg.LLM.GeminiModel),
	}
}

package generation_fx

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"

	"voyago/internal/services"
	mem "voyago/pkg/memcache"
	"voyago/pkg/utils"
)

var Module = fx.Provide(
	ProvideGenerationClient,
	ProvideGenerationService)

// GenerationConfig holds configuration for generation clients
type GenerationConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideGenerationClient creates a generation client based on environment variables
func ProvideGenerationClient() (utils.GenerationClientInterface, error) {
	config := getGenerationConfig()

	log.Printf("Initializing %s generation client", config.Provider)

	switch strings.ToLower(config.Provider) {
	case "remote":
		return utils.NewRemoteGenerationClient(), nil
	case "openai":
		return utils.NewOpenAIGenerationClient(config.APIKey, config.Model), nil
	case "gemini":
		client, err := utils.NewGeminiGenerationClient(config.APIKey, config.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'remote', 'openai' or 'gemini'", config.Provider)
	}
}

func ProvideGenerationService(
	catalogService services.CatalogServiceInterface,
	promptService services.PromptServiceInterface,
	client utils.GenerationClientInterface,
	sessions mem.SessionStore,
) services.GenerationServiceInterface {
	return services.NewGenerationService(
		catalogService,
		promptService,
		client,
		sessions,
		debounceWindow(),
	)
}

func debounceWindow() time.Duration {
	raw := os.Getenv("GENERATION_DEBOUNCE_MS")
	if raw == "" {
		return time.Second
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

// getGenerationConfig reads configuration from environment variables
func getGenerationConfig() GenerationConfig {
	provider := getEnvWithDefault("GENERATION_PROVIDER", "remote")

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return GenerationConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

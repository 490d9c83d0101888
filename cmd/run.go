package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"github.com/talentscout/hiring-assistant/internal/ai/gemini"
	"github.com/talentscout/hiring-assistant/internal/ai/openai"
	"github.com/talentscout/hiring-assistant/internal/interview"
	"github.com/talentscout/hiring-assistant/internal/logger"
	"github.com/talentscout/hiring-assistant/internal/prompt"
	"github.com/talentscout/hiring-assistant/internal/recorder"
	"github.com/talentscout/hiring-assistant/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	providerGemini = "gemini"
	providerOpenAI = "openai"
	providerNone   = "none"

	backendJSON   = "json"
	backendSQLite = "sqlite"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive screening interview",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("questions", "q", 0, "number of technical questions to ask (default 5)")
	runCmd.Flags().StringP("storage-backend", "s", "", "session store backend: json or sqlite (default json)")

	viper.BindPFlag("questions.count", runCmd.Flags().Lookup("questions"))
	viper.BindPFlag("storage.backend", runCmd.Flags().Lookup("storage-backend"))
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	appLogger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		appLogger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	appLogger.Info("starting talentscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	appLogger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	responder, generator := buildCollaborators(ctx, config.AI, appLogger)

	rec, cleanup := buildRecorder(config.Storage, appLogger)
	if cleanup != nil {
		defer cleanup()
	}

	machine := interview.NewMachine(generator, rec, questionCount(config), appLogger)
	composer := prompt.NewComposer()
	session := interview.NewSession()

	appLogger.Debug("session started", zap.String("session_id", session.ID.String()))

	say(interview.InitialGreeting)
	session.Append(interview.SpeakerAssistant, interview.InitialGreeting)

	input := promptui.Prompt{Label: string(interview.SpeakerCandidate)}

	for {
		text, err := input.Run()
		if err != nil {
			// Ctrl-C or closed stdin ends the interview gracefully.
			if !session.Ended() {
				say(machine.EndConversation(ctx, session))
			}
			return
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		reply := processTurn(ctx, machine, composer, responder, session, text, appLogger)
		say(reply)

		if session.Ended() {
			return
		}
	}
}

// processTurn runs the full pipeline for one candidate message and returns
// the assistant reply. The session transcript is updated for both sides.
func processTurn(ctx context.Context, machine *interview.Machine, composer *prompt.Composer, responder ai.Responder, session *interview.Session, text string, appLogger *zap.Logger) string {
	if session.Ended() {
		return interview.SessionEndedNotice
	}

	session.Append(interview.SpeakerCandidate, text)

	if interview.HasExitKeyword(text) {
		reply := machine.EndConversation(ctx, session)
		session.Append(interview.SpeakerAssistant, reply)
		return reply
	}

	session.Profile = interview.ExtractProfile(text, session.Profile, session.Stage)

	modelResponse, err := responder.Respond(ctx, composer.Compose(session, text), ai.DefaultParams())
	if err != nil {
		// The fallback responder already degraded to scripted replies, so
		// an error here means even those failed for this stage.
		appLogger.Warn("composing a response failed", zap.Error(err))
	}

	reply := machine.Advance(ctx, session, text, modelResponse)
	session.Append(interview.SpeakerAssistant, reply)

	appLogger.Debug("turn completed",
		zap.String("stage", string(session.Stage)),
		zap.String("candidate", logger.TruncateForLog(text, 80)),
		zap.String("assistant", logger.TruncateForLog(reply, 80)),
	)

	return reply
}

// buildCollaborators wires the response and question collaborators for the
// configured provider. Any construction failure degrades to the scripted
// collaborators instead of aborting the interview.
func buildCollaborators(ctx context.Context, cfg *AIConfig, appLogger *zap.Logger) (ai.Responder, ai.QuestionGenerator) {
	live, err := buildProvider(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Warn("running without a model provider, responses are scripted", zap.Error(err))
	}

	var responder ai.Responder
	var generator ai.QuestionGenerator
	if live != nil {
		responder = live
		generator = live
	}

	return ai.NewFallbackResponder(responder, appLogger), ai.NewFallbackGenerator(generator, appLogger)
}

// liveProvider is satisfied by both provider clients.
type liveProvider interface {
	ai.Responder
	ai.QuestionGenerator
	Model() string
}

func buildProvider(ctx context.Context, cfg *AIConfig, appLogger *zap.Logger) (liveProvider, error) {
	if cfg == nil {
		cfg = &AIConfig{}
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case providerNone:
		return nil, nil

	case "", providerGemini:
		geminiCfg := cfg.Gemini
		if geminiCfg == nil {
			geminiCfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: firstNonEmpty(geminiCfg.APIKeyFile, viper.GetString("ai.gemini.api-key-file")),
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		client, err := gemini.New(ctx, apiKey, geminiCfg.Model, appLogger)
		if err != nil {
			return nil, err
		}

		appLogger.Info("model provider ready", logger.CommonFields(providerGemini, client.Model())...)
		return client, nil

	case providerOpenAI:
		openaiCfg := cfg.OpenAI
		if openaiCfg == nil {
			openaiCfg = &OpenAIConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: firstNonEmpty(openaiCfg.APIKeyFile, viper.GetString("ai.openai.api-key-file")),
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY_FILE)", err)
		}

		client, err := openai.New(apiKey, openaiCfg.Model, appLogger)
		if err != nil {
			return nil, err
		}

		appLogger.Info("model provider ready", logger.CommonFields(providerOpenAI, client.Model())...)
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// buildRecorder selects the session store. A broken sqlite configuration
// degrades to the json store rather than losing the interview.
func buildRecorder(cfg *StorageConfig, appLogger *zap.Logger) (recorder.Recorder, func()) {
	if cfg == nil {
		cfg = &StorageConfig{}
	}

	backend := strings.TrimSpace(strings.ToLower(cfg.Backend))
	if backend == "" {
		backend = backendJSON
	}

	switch backend {
	case backendSQLite:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			path = app + ".db"
		}

		rec, err := recorder.NewSQLiteRecorder(path, appLogger)
		if err != nil {
			appLogger.Warn("opening sqlite store failed, falling back to json records",
				zap.String("path", path),
				zap.Error(err),
			)
			return recorder.NewFileRecorder(cfg.Dir, appLogger), nil
		}

		closeRec := func() {
			if err := rec.Close(); err != nil {
				appLogger.Warn("closing sqlite store", zap.Error(err))
			}
		}
		return rec, closeRec

	case backendJSON:
		return recorder.NewFileRecorder(cfg.Dir, appLogger), nil

	default:
		appLogger.Warn("unknown storage backend, using json records", zap.String("backend", cfg.Backend))
		return recorder.NewFileRecorder(cfg.Dir, appLogger), nil
	}
}

func questionCount(config *Config) int {
	if config.Questions == nil {
		return 0
	}
	return config.Questions.Count
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// say prints an assistant message to the conversation stream.
func say(text string) {
	fmt.Printf("\nTalentScout: %s\n\n", text)
}

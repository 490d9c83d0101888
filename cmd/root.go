package cmd

import (
	"errors"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talentscout"
)

type Config struct {
	AI        *AIConfig        `mapstructure:"ai"`
	Storage   *StorageConfig   `mapstructure:"storage"`
	Questions *QuestionsConfig `mapstructure:"questions"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
	OpenAI   *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type StorageConfig struct {
	// Backend selects the session store: "json" (default) or "sqlite".
	Backend string `mapstructure:"backend"`
	// Dir is the directory for json records.
	Dir string `mapstructure:"dir"`
	// Path is the sqlite database file.
	Path string `mapstructure:"path"`
}

type QuestionsConfig struct {
	Count int `mapstructure:"count"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentscout is an interactive hiring assistant that screens tech candidates in the terminal",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	if err := viper.BindEnv("ai.openai.api-key-file", "OPENAI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding OPENAI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A .env file may carry the key file locations. Missing is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The assistant runs fully offline without a config file, so only a
	// malformed file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"expediente/config"
	"expediente/internal/api"
	"expediente/internal/game"
	"expediente/internal/logger"
	"expediente/internal/portrait"
	"expediente/internal/tts"
	"expediente/internal/ui"
	"expediente/internal/web"
)

var (
	cfgFile string
	cfg     *config.Config
	log     = logger.New()
)

var rootCmd = &cobra.Command{
	Use:   "expediente",
	Short: "AI murder mystery interrogation game",
	Long:  "A detective game: interrogate AI-played suspects and the narrator to solve a generated murder case before your accusation attempts run out.",
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a case in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		voice := narratorVoice(ctx)
		term := ui.New(voice, cfg.Tts.Voice)
		term.Bind(newSession(term))

		return term.Run(ctx)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game to a browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := web.New(cfg)
		srv.Bind(newSession(srv))

		return srv.Listen(context.Background())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Current Configuration:\n")
		fmt.Printf("  API Base URL: %s\n", cfg.API.BaseURL)
		fmt.Printf("  API Timeout: %d seconds\n", cfg.API.Timeout)
		fmt.Printf("  Attempts: %d\n", cfg.Game.Attempts)
		fmt.Printf("  TTS Enabled: %v\n", cfg.Tts.Enabled)
		fmt.Printf("  Web Addr: %s\n", cfg.Web.Addr)
	},
}

func newSession(p game.Presenter) *game.Session {
	client := api.NewClient(cfg.API.BaseURL, time.Duration(cfg.API.Timeout)*time.Second)
	return game.NewSession(cfg, client, portrait.NewResolver(client), p)
}

func narratorVoice(ctx context.Context) tts.Tts {
	if !cfg.Tts.Enabled {
		return nil
	}

	v, err := tts.NewGoogleTTS(ctx)
	if err != nil {
		log.WithError(err).Error("failed to create tts client, narration stays silent")
		return tts.NewDummyTts()
	}
	return v
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}
}

func main() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("Command execution failed")
		os.Exit(1)
	}
}

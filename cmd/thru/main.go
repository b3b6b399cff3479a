// Lane service: runs the microphone-to-speaker ordering loop for one
// drive-thru lane and relays confirmed orders to the kitchen display.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/spf13/pflag"

	"github.com/Erunixz/thru.ai/internal/config"
	"github.com/Erunixz/thru.ai/internal/log"
	"github.com/Erunixz/thru.ai/pkg/audioio"
	"github.com/Erunixz/thru.ai/pkg/brain"
	"github.com/Erunixz/thru.ai/pkg/inference"
	"github.com/Erunixz/thru.ai/pkg/menu"
	"github.com/Erunixz/thru.ai/pkg/relay"
	"github.com/Erunixz/thru.ai/pkg/session"
	"github.com/Erunixz/thru.ai/pkg/stt"
	"github.com/Erunixz/thru.ai/pkg/tts"
)

func main() {
	envFile := cli.StringP("env", "e", ".env", "env file path")
	menuPath := cli.StringP("menu", "m", "", "menu catalog path (overrides MENU_PATH)")
	logLevel := cli.StringP("log", "l", "", "log level: debug, info, warn, error")
	cli.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Init("info")
		log.Error("configuration failed", "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *menuPath != "" {
		cfg.MenuPath = *menuPath
	}
	log.Init(cfg.LogLevel)
	logger := log.L()

	if err := cfg.ValidateLane(); err != nil {
		logger.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	catalog, err := menu.Load(cfg.MenuPath)
	if err != nil {
		logger.Error("menu load failed", "path", cfg.MenuPath, "error", err)
		os.Exit(1)
	}
	logger.Info("menu loaded", "path", cfg.MenuPath, "items", catalog.Items())

	provider, err := inference.NewClient(
		inference.WithBaseURL(cfg.ChatBaseURL),
		inference.WithAPIKey(cfg.OpenAIKey),
		inference.WithModel(cfg.ChatModel),
		inference.WithMaxTokens(cfg.ChatTokens),
		inference.WithTemperature(cfg.ChatTemp),
		inference.WithLogger(logger),
	)
	if err != nil {
		logger.Error("inference client failed", "error", err)
		os.Exit(1)
	}
	defer provider.Close()

	transcriber, err := stt.NewWhisper(
		stt.WithAPIKey(cfg.OpenAIKey),
		stt.WithModel(cfg.STTModel),
		stt.WithLanguage(cfg.STTLanguage),
		stt.WithLogger(logger),
	)
	if err != nil {
		logger.Error("transcriber failed", "error", err)
		os.Exit(1)
	}
	defer transcriber.Close()

	speaker, err := tts.NewElevenLabs(
		tts.WithAPIKey(cfg.ElevenLabsKey),
		tts.WithVoice(cfg.VoiceID),
		tts.WithModel(cfg.TTSModel),
		tts.WithLogger(logger),
	)
	if err != nil {
		logger.Error("speech synthesis failed", "error", err)
		os.Exit(1)
	}
	defer speaker.Close()

	audioCfg := audioio.DefaultConfig()
	audioCfg.SampleRate = cfg.SampleRate
	source, err := audioio.NewPortAudioSource(audioCfg)
	if err != nil {
		logger.Error("audio capture failed", "error", err)
		os.Exit(1)
	}
	defer source.Close()

	player := audioio.NewBeepPlayer()
	defer player.Close()

	engine := brain.NewEngine(provider, catalog, logger)
	pusher := relay.NewClient(cfg.RelayURL, cfg.RelayTimeout, logger)

	sessCfg := session.DefaultConfig()
	sessCfg.CaptureWindow = cfg.CaptureWindow
	sessCfg.RelayTimeout = cfg.RelayTimeout

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("lane open", "model", cfg.ChatModel, "relay", cfg.RelayURL)

	for {
		sess := session.New(sessCfg, source, transcriber, speaker, player, engine, pusher, logger)
		if err := sess.Run(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("lane closed")
				return
			}
			logger.Error("session aborted", "error", err)
			return
		}

		// One car served; a fresh engine starts the next conversation.
		engine = brain.NewEngine(provider, catalog, logger)
	}
}

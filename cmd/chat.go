package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/naveenaduri/resume-agent/internal/chat"
	"github.com/naveenaduri/resume-agent/internal/logger"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the resume agent in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		runChat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	agent, err := bootstrap(ctx, config, logger)
	if err != nil {
		logger.Fatal("bootstrapping the agent", zap.Error(err))
	}

	fmt.Printf("Ask %s anything about their background. Type 'exit' to quit.\n", config.Resume.Owner)

	prompt := promptui.Prompt{
		Label: "You",
	}

	for {
		message, err := prompt.Run()
		if err != nil {
			// Ctrl-C and Ctrl-D end the conversation.
			logger.Info("exiting", zap.Error(err))
			return
		}

		switch strings.ToLower(strings.TrimSpace(message)) {
		case "exit", "quit":
			return
		case "":
			continue
		}

		answer, err := agent.session.Respond(ctx, message)
		if err != nil {
			if errors.Is(err, chat.ErrEmptyMessage) {
				continue
			}
			logger.Fatal("responding", zap.Error(err))
		}

		fmt.Printf("\n%s\n\n", answer)
	}
}

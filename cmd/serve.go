package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/naveenaduri/resume-agent/internal/chat"
	"github.com/naveenaduri/resume-agent/internal/ai/gemini"
	"github.com/naveenaduri/resume-agent/internal/github"
	"github.com/naveenaduri/resume-agent/internal/knowledge"
	"github.com/naveenaduri/resume-agent/internal/logger"
	"github.com/naveenaduri/resume-agent/internal/mailer"
	"github.com/naveenaduri/resume-agent/internal/resume"
	"github.com/naveenaduri/resume-agent/internal/secrets"
	"github.com/naveenaduri/resume-agent/internal/server"
	"github.com/naveenaduri/resume-agent/internal/skills"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resume agent over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "port to listen on. Overrides server.port from the config file.")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-agent", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	agent, err := bootstrap(ctx, config, logger)
	if err != nil {
		logger.Fatal("bootstrapping the agent", zap.Error(err))
	}

	srv := server.New(server.Config{
		Port:       config.Server.port(),
		ResumeText: agent.resumeText,
		ResumeFile: config.Resume.File,
	}, server.Deps{
		Session:   agent.session,
		Base:      agent.base,
		Segmenter: resume.NewSegmenter(agent.extractor),
		Extractor: agent.extractor,
		Mailer:    prepareMailer(config.Mail, logger),
		Logger:    logger,
	})

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *ServerConfig) port() int {
	if s == nil {
		return 0
	}
	return s.Port
}

// agent bundles the pieces both the HTTP server and the interactive
// chat need.
type agent struct {
	resumeText string
	base       *knowledge.Base
	extractor  *skills.Extractor
	session    *chat.Session
}

func bootstrap(ctx context.Context, config *Config, logger *zap.Logger) (*agent, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	if config.Resume == nil || config.Resume.Owner == "" {
		return nil, errors.New("resume owner name is required under resume.owner")
	}

	resumeText := loadResumeText(config.Resume, logger)
	repos := fetchRepos(ctx, config.GitHub, logger)

	extractor := skills.NewExtractor(nil)
	base := knowledge.Build(resumeText, repos, skills.DefaultGraph())

	logger.Info("knowledge base built",
		zap.Int("skills", len(base.Skills())),
		zap.Int("projects", len(base.Projects())),
	)

	engine, err := newEngine(ctx, config.AI, chat.Persona(config.Resume.Owner, resumeText), logger)
	if err != nil {
		return nil, fmt.Errorf("building ai engine: %w", err)
	}

	return &agent{
		resumeText: resumeText,
		base:       base,
		extractor:  extractor,
		session:    chat.NewSession(engine, knowledge.NewEnricher(base, logger), logger),
	}, nil
}

// loadResumeText reads the resume document. A missing or unreadable file
// degrades to an empty resume: the agent still answers from repositories.
func loadResumeText(cfg *ResumeConfig, logger *zap.Logger) string {
	if cfg.File == "" {
		logger.Warn("no resume file configured, starting with an empty resume")
		return ""
	}

	text, err := resume.ExtractText(cfg.File)
	if err != nil {
		logger.Warn("reading resume file, starting with an empty resume",
			zap.String("file", cfg.File),
			zap.Error(err),
		)
		return ""
	}

	logger.Info("loaded resume", zap.String("file", cfg.File), zap.Int("chars", len(text)))
	return text
}

// fetchRepos lists the public repositories of the configured user. Failures
// degrade to no repositories rather than aborting startup.
func fetchRepos(ctx context.Context, cfg *GitHubConfig, logger *zap.Logger) []*github.Repository {
	if cfg == nil || cfg.Username == "" {
		logger.Warn("no github username configured, skipping repositories")
		return nil
	}

	token, err := resolveGithubToken(cfg)
	if err != nil {
		logger.Warn("loading github token, using anonymous requests", zap.Error(err))
	}

	gh := github.New(ctx, logger, token)

	repos, err := gh.Repos(cfg.Username)
	if err != nil {
		logger.Warn("listing github repositories", zap.Error(err))
		return nil
	}

	logger.Info("listed github repositories", zap.Int("count", repos.Len()))
	return repos.Items
}

func resolveGithubToken(cfg *GitHubConfig) (string, error) {
	tokenFile := strings.TrimSpace(cfg.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("github.token-file"))
	}

	if tokenFile == "" && os.Getenv("GITHUB_TOKEN") == "" {
		return "", nil
	}

	return secrets.Load(secrets.Source{
		Name: "github token",
		File: tokenFile,
		Env:  "GITHUB_TOKEN",
	})
}

func newEngine(ctx context.Context, cfg *AIConfig, system string, logger *zap.Logger) (*gemini.Engine, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("ai.gemini configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	engineLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	return gemini.NewEngine(ctx, apiKey, cfg.Gemini.Model, system, cfg.Gemini.MaxRetries, cfg.Gemini.MaxLogLength, engineLogger)
}

// prepareMailer builds the contact-form mailer. Mail is optional; without a
// host the endpoint reports mail as unconfigured.
func prepareMailer(cfg *MailConfig, logger *zap.Logger) *mailer.Mailer {
	if cfg == nil || cfg.Host == "" {
		logger.Info("mail is not configured, contact endpoint disabled")
		return nil
	}

	password, err := secrets.Load(secrets.Source{
		Name: "smtp password",
		File: cfg.PasswordFile,
		Env:  "SMTP_PASSWORD",
	})
	if err != nil {
		logger.Warn("loading smtp password, contact endpoint disabled", zap.Error(err))
		return nil
	}

	m, err := mailer.New(mailer.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: password,
		To:       cfg.To,
	}, logger)
	if err != nil {
		logger.Warn("configuring mailer, contact endpoint disabled", zap.Error(err))
		return nil
	}

	return m
}

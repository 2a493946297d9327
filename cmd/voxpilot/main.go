package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voxpilot/voxpilot/pkg/assistant"
	"github.com/voxpilot/voxpilot/pkg/browser"
	"github.com/voxpilot/voxpilot/pkg/config"
	"github.com/voxpilot/voxpilot/pkg/intent"
	"github.com/voxpilot/voxpilot/pkg/logging"
	"github.com/voxpilot/voxpilot/pkg/resolve"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "voxpilot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaultPath, err := config.DefaultPath()
	if err != nil {
		defaultPath = "config.yaml"
	}

	configPath := flag.String("config", defaultPath, "path to the config file")
	headless := flag.Bool("headless", false, "run the browser without a window")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *headless {
		cfg.Browser.Headless = true
	}

	logger, logErr := logging.NewLogger("main")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "voxpilot: file logging unavailable: %v\n", logErr)
	}
	defer logger.Close()

	manager := browser.NewManager()
	logger.Infof("starting browser (headless=%v)", cfg.Browser.Headless)
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Close()

	session, err := manager.StartSession(browser.SessionOptions{
		Headless: cfg.Browser.Headless,
		StartURL: cfg.Browser.StartURL,
	})
	if err != nil {
		return err
	}

	a, err := buildAssistant(cfg, session, logger)
	if err != nil {
		return err
	}

	program := tea.NewProgram(newModel(a), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}
	return nil
}

func buildAssistant(cfg config.Config, session *browser.Session, logger *logging.Logger) (*assistant.Assistant, error) {
	resolverOpts := []resolve.Option{
		resolve.WithThreshold(cfg.Match.Threshold),
		resolve.WithSearchURL(cfg.Match.SearchURL),
	}
	if len(cfg.Sites) > 0 {
		extra := make([]resolve.SitePair, 0, len(cfg.Sites))
		for _, s := range cfg.Sites {
			extra = append(extra, resolve.SitePair{Keyword: s.Keyword, URL: s.URL})
		}
		resolverOpts = append(resolverOpts, resolve.WithSites(extra...))
	}

	policy, err := assistant.NewNavigationPolicy(cfg.Policy.DeniedDomains)
	if err != nil {
		return nil, err
	}

	opts := []assistant.Option{
		assistant.WithResolver(resolve.New(resolverOpts...)),
		assistant.WithPolicy(policy),
		assistant.WithLogger(logger),
	}

	// Classify with the LLM when a key is configured; the local phrase
	// matcher covers everything else.
	local := intent.NewLocalClassifier()
	if apiKey := os.Getenv(cfg.LLM.APIKeyEnv); apiKey != "" {
		llmOpts := []intent.LLMOption{intent.WithModel(cfg.LLM.Model)}
		if cfg.LLM.BaseURL != "" {
			llmOpts = append(llmOpts, intent.WithBaseURL(cfg.LLM.BaseURL))
		}
		llm, err := intent.NewLLMClassifier(apiKey, llmOpts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			assistant.WithClassifier(llm),
			assistant.WithFallbackClassifier(local),
		)
		logger.Infof("intent classifier: llm (%s)", cfg.LLM.Model)
	} else {
		opts = append(opts, assistant.WithClassifier(local))
		logger.Infof("intent classifier: local (set %s for LLM classification)", cfg.LLM.APIKeyEnv)
	}

	return assistant.New(session, opts...), nil
}

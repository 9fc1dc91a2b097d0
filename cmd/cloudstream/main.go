package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"cloudstream/internal/adapter"
	"cloudstream/internal/adapter/drive"
	"cloudstream/internal/adapter/gemini"
	"cloudstream/internal/adapter/mockdrive"
	"cloudstream/internal/domain"
	"cloudstream/internal/service"
	"cloudstream/internal/store"
	"cloudstream/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var logout bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&logout, "logout", false, "sign out and clear the saved session")
	flag.Parse()

	if showVersion {
		fmt.Printf("cloudstream %s\n", Version)
		return
	}

	if err := run(logout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logout bool) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cloudstream", "version", Version)

	st, err := store.NewLocalStore(adapter.DefaultDataPath())
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer st.Close()

	// Credentials from the config file win over a previously saved pair.
	if cfg.Google.ClientID == "" {
		if clientID, apiKey, ok := st.LoadDriveConfig(); ok {
			cfg.Google.ClientID = clientID
			if cfg.Gemini.APIKey == "" {
				cfg.Gemini.APIKey = apiKey
			}
		}
	}

	sessions := service.NewSessionService(st, drive.RevokeToken, logger)

	if logout {
		if err := sessions.Logout(context.Background()); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("cloudstream requires an interactive terminal")
	}

	ctx := context.Background()

	var (
		repo    domain.DriveRepository
		session domain.Session
	)

	if cfg.IsConfigured() {
		session, err = ensureSession(ctx, cfg, st, sessions, logger)
		if err != nil {
			return err
		}
		repo, err = drive.NewClient(ctx, session, logger)
		if err != nil {
			return fmt.Errorf("failed to create drive client: %w", err)
		}
	} else {
		// No credentials configured: browse the built-in demo catalog.
		fmt.Println("No Google credentials configured, starting in demo mode.")
		fmt.Printf("Add credentials to %s to connect a real drive.\n", adapter.ConfigFilePath())
		repo = mockdrive.NewClient()
	}

	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, cfg.Player.StartFlag, logger)

	historySvc := service.NewHistoryService(st, logger)
	refiner := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	searchSvc := service.NewSearchService(repo, refiner, logger)
	playbackSvc := service.NewPlaybackService(repo, launcher, historySvc, logger)
	nav := service.NewNavigator(searchSvc.Reset, logger)

	model := tui.NewModel(repo, historySvc, searchSvc, nav, playbackSvc, session)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// ensureSession returns the saved session or runs the browser sign-in flow.
func ensureSession(
	ctx context.Context,
	cfg *adapter.Config,
	st domain.Store,
	sessions *service.SessionService,
	logger *slog.Logger,
) (domain.Session, error) {
	if session, ok := sessions.Current(); ok {
		return session, nil
	}

	fmt.Println()
	fmt.Println("Sign in to Google Drive to continue.")

	flow := drive.NewAuthFlow(cfg.Google.ClientID, cfg.Google.ClientSecret, logger)
	flow.PromptURL = func(url string) {
		fmt.Println()
		fmt.Println("Open this URL in your browser:")
		fmt.Println()
		fmt.Println("  " + url)
		fmt.Println()
		fmt.Println("Waiting for authorization...")
	}

	session, err := sessions.Login(ctx, flow)
	if err != nil {
		return domain.Session{}, fmt.Errorf("authentication failed: %w", err)
	}

	// Remember the client id so a config file is optional on the next run.
	if err := st.SaveDriveConfig(cfg.Google.ClientID, cfg.Gemini.APIKey); err != nil {
		logger.Warn("failed to persist drive config", "error", err)
	}

	if session.User != nil {
		fmt.Printf("✓ Signed in as %s\n", session.User.Email)
	} else {
		fmt.Println("✓ Signed in")
	}

	return session, nil
}

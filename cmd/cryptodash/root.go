package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cryptodash/internal/chart"
	"cryptodash/internal/config"
	"cryptodash/internal/coordinator"
	"cryptodash/internal/dataclient"
	"cryptodash/internal/tui"
	"cryptodash/internal/util"
)

var (
	cfgFile string
	baseURL string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cryptodash",
	Short: "Terminal dashboard for the crypto analytics backend",
	Long: `cryptodash shows live prices, price-history charts and the analysis
panels (AI analysis, alerts, external sources, system status and the
AI network) served by the crypto analytics backend.

Run without a subcommand to start the interactive dashboard.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "cryptodash.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "backend base URL (overrides config)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// A missing .env is fine; the variables may come from the environment.
	_ = godotenv.Load()

	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if baseURL != "" {
		c.Backend.BaseURL = baseURL
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg = c
	return nil
}

// newClient builds the backend client for subcommands, which log to stderr.
func newClient() *dataclient.Client {
	logger := util.NewLogger(cfg.Logging.Level, "text", os.Stderr)
	return dataclient.NewClient(dataclient.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  logger,
	})
}

func runDashboard(cmd *cobra.Command, args []string) error {
	// The dashboard owns the terminal, so logs go to a file.
	logFile, err := util.OpenLogFile(cfg.Logging.File)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format, logFile)
	util.SetDefault(logger)
	logger.Info("starting dashboard", "backend", cfg.Backend.BaseURL, "refresh", cfg.Refresh.Interval)

	client := dataclient.NewClient(dataclient.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  logger,
	})

	coord := coordinator.New(coordinator.Options{
		Backend:         client,
		Engine:          &chart.EchartsEngine{ExportDir: cfg.Chart.ExportDir, Log: logger},
		RefreshInterval: cfg.Refresh.Interval,
		DefaultDays:     cfg.Chart.DefaultDays,
		Timeout:         cfg.Backend.Timeout,
		Logger:          logger,
	})
	defer coord.Teardown()

	model := tui.New(coord, config.AllowedChartDays, client.BaseURL(), logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("dashboard exited", "error", err)
		return err
	}
	slog.Info("dashboard stopped")
	return nil
}

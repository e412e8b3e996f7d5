package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cryptodash/internal/chart"
	"cryptodash/internal/config"
	"cryptodash/internal/dashboard"
	"cryptodash/internal/dataclient"
	"cryptodash/internal/domain"
)

var (
	chartDays int
	chartOut  string
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Print current prices for the supported assets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		ctx := cmd.Context()

		var (
			supported []domain.SupportedAsset
			snap      dataclient.PriceSnapshot
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			supported, err = client.Supported(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			snap, err = client.Prices(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return errors.New(dataclient.MessageOf(err, dataclient.ConnectivityMessage))
		}

		t := newTable().Headers("ASSET", "PRICE", "24H", "MARKET CAP", "VOLUME")
		for _, c := range dashboard.BuildCards(snap.Assets) {
			t.Row(c.Name+" ("+c.Symbol+")", c.Price, c.Change, c.MarketCap, c.Volume)
		}
		fmt.Println(t)
		var updated *time.Time
		if !snap.Timestamp.IsZero() {
			updated = &snap.Timestamp
		}
		fmt.Printf("\n%d supported assets, updated %s\n", len(supported), dashboard.FormatDateTime(updated, "never"))
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart SYMBOL",
	Short: "Render a price-history chart to an HTML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days := chartDays
		if days == 0 {
			days = cfg.Chart.DefaultDays
		}
		if !config.ValidChartDays(days) {
			return fmt.Errorf("--days must be one of %v", config.AllowedChartDays)
		}

		h, err := newClient().History(cmd.Context(), args[0], days)
		if err != nil {
			return errors.New(dataclient.MessageOf(err, "Failed to load price history"))
		}

		out := chartOut
		if out == "" {
			out = fmt.Sprintf("%s-%dd.html", strings.ToLower(h.Symbol), days)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()

		bw := bufio.NewWriter(f)
		if err := chart.NewLineChart(chart.NewSpec(h.Symbol, days, h.Points)).Render(bw); err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}
		if err := bw.Flush(); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d points)\n", out, len(h.Points))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backend health and scheduler status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		ctx := cmd.Context()

		var (
			health domain.HealthStatus
			status domain.SystemStatus
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			health, err = client.Health(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			status, err = client.SchedulerStatus(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return errors.New(dataclient.MessageOf(err, dataclient.ConnectivityMessage))
		}

		t := newTable().Rows(
			[]string{"Service", fmt.Sprintf("%s (%s)", health.Service, health.Status)},
			[]string{"Last update", dashboard.FormatDateTime(health.LastUpdate, "Never")},
			[]string{"Supported coins", strconv.Itoa(health.SupportedCoins)},
			[]string{"Scheduler", fmt.Sprintf("%s, %d jobs", runState(status.Scheduler.Running), status.Scheduler.JobsCount)},
			[]string{"Analyses (24h)", strconv.Itoa(status.Scheduler.AnalysisCount24h)},
			[]string{"Last analysis", dashboard.FormatDateTime(status.Scheduler.LastAnalysisTime, "Never")},
			[]string{"Next analysis", dashboard.FormatDateTime(status.Scheduler.NextAnalysis, "Not scheduled")},
			[]string{"Voice", fmt.Sprintf("%s (%s, %s)", onOff(status.Voice.Enabled), status.Voice.EngineType, status.Voice.Language)},
		)
		fmt.Println(t)
		return nil
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak TEXT...",
	Short: "Ask the backend to read text aloud",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Backend.Timeout)
		defer cancel()
		if err := newClient().Speak(ctx, strings.Join(args, " ")); err != nil {
			return errors.New(dataclient.MessageOf(err, "Failed to speak text"))
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().IntVarP(&chartDays, "days", "d", 0, "history range in days (1, 7, 30, 90, 365)")
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "", "output HTML file (default SYMBOL-DAYSd.html)")

	rootCmd.AddCommand(pricesCmd, chartCmd, statusCmd, speakCmd)
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240")))
}

func runState(running bool) string {
	if running {
		return "running"
	}
	return "stopped"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

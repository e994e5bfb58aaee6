// Package cli provides the command-line interface for paccu.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/treykane/paccu/internal/appconfig"
	"github.com/treykane/paccu/internal/audioserver"
	"github.com/treykane/paccu/internal/catalog"
	"github.com/treykane/paccu/internal/doctor"
	"github.com/treykane/paccu/internal/model"
	"github.com/treykane/paccu/internal/notify"
	"github.com/treykane/paccu/internal/selector"
	"github.com/treykane/paccu/internal/ui"
	"github.com/treykane/paccu/internal/util"
)

// Overridden in tests.
var (
	dialer    audioserver.Dialer = audioserver.DialPulse
	runPicker                    = ui.Run
)

type options struct {
	server string
	notify bool
	debug  bool
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:           util.AppName,
		Short:         "Pick the default PulseAudio output sink and port",
		Version:       util.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSwitch(cmd, opts)
		},
	}
	root.SetVersionTemplate(util.AppName + " version {{.Version}}\n")
	root.PersistentFlags().StringVar(&opts.server, "server", "", "PulseAudio server string (overrides config)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log debug output to stderr")
	root.Flags().BoolVar(&opts.notify, "notify", false, "send a desktop notification after switching (overrides config)")

	root.AddCommand(newListCmd(&opts))
	root.AddCommand(newDoctorCmd(&opts))
	return root
}

func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func loadConfig(cmd *cobra.Command, opts options) appconfig.Config {
	cfg, err := appconfig.Load()
	if err != nil {
		// Debug only: a connect failure must stay the single line on stderr.
		slog.Debug("failed to load config, using defaults", "error", err)
		cfg = appconfig.Default()
	}
	if f := cmd.Flags().Lookup("server"); f != nil && f.Changed {
		cfg.Server = opts.server
	}
	if f := cmd.Flags().Lookup("notify"); f != nil && f.Changed {
		cfg.Notify = opts.notify
	}
	return cfg
}

func serverConfig(cfg appconfig.Config) audioserver.Config {
	return audioserver.Config{Server: cfg.Server, AppName: cfg.AppName}
}

// connectAndList opens a session and builds the catalog. The caller owns
// the returned session.
func connectAndList(ctx context.Context, cfg appconfig.Config) (*audioserver.Session, model.Catalog, error) {
	s, err := audioserver.Connect(ctx, serverConfig(cfg), dialer)
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Build(ctx, s)
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("list outputs: %w", err)
	}
	return s, cat, nil
}

func runSwitch(cmd *cobra.Command, opts options) error {
	ctx := cmd.Context()
	cfg := loadConfig(cmd, opts)

	s, cat, err := connectAndList(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	state, err := runPicker(ctx, cat, ui.Options{
		Title:           cfg.UI.Title,
		HighlightSymbol: cfg.UI.HighlightSymbol,
	})
	if err != nil {
		return err
	}
	target, ok := state.Selected()
	if !ok {
		slog.Debug("selection cancelled", "outputs", len(cat))
		return nil
	}

	res, err := selector.Commit(ctx, s, target)
	if err != nil {
		return err
	}
	if !res.OK() {
		for _, rej := range res.Rejections {
			fmt.Fprintln(cmd.ErrOrStderr(), rej)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Output not fully switched to '%s'\n", target.Label())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Output switched to '%s'\n", target.Label())
	notify.New(cfg.Notify).Switched(target)
	return nil
}

func newListCmd(opts *options) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List output targets without switching",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd, *opts)
			s, cat, err := connectAndList(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			s.Close()

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cat)
			}
			fmt.Fprintf(out, "%-3s %-40s %-32s %s\n", "", "SINK", "PORT", "DESCRIPTION")
			for _, t := range cat {
				mark := ""
				if t.Active {
					mark = "*"
				}
				fmt.Fprintf(out, "%-3s %-40s %-32s %s\n", mark, t.SinkName, t.PortName, t.Label())
			}
			if len(cat) == 0 {
				fmt.Fprintln(out, "(no outputs)")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

func newDoctorCmd(opts *options) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that outputs can be listed and the active one detected",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd, *opts)
			report, err := doctor.Run(cmd.Context(), serverConfig(cfg), dialer)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			if len(report.Issues) == 0 {
				fmt.Fprintf(out, "no issues found (%d outputs)\n", report.Targets)
				return nil
			}
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "[%s] %s %s: %s\n", issue.Severity, issue.Check, issue.Target, issue.Message)
				fmt.Fprintf(out, "    -> %s\n", issue.Recommendation)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return cmd
}

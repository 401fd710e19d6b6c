package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dkhalizov/site-pipeline/internal/application"
	"github.com/dkhalizov/site-pipeline/internal/domain"
	"github.com/dkhalizov/site-pipeline/internal/infrastructure/config"
	"github.com/dkhalizov/site-pipeline/internal/infrastructure/logging"
	"github.com/dkhalizov/site-pipeline/internal/infrastructure/report_fs"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	validateWatch  bool
	validateReport string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the pipeline definition for the configured variant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()
		defer func() { _ = log.Sync() }()

		uc := application.NewValidateUseCase(report_fs.New(expandHome(validateReport)))

		runOnce := func(ctx context.Context) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			issues, err := uc.ValidateOnce(ctx, cfg.Variant, domain.StaticSiteDefinition())
			if err != nil {
				return err
			}

			if len(issues) > 0 {
				for _, is := range issues {
					log.Warn("definition issue", zap.String("detail", is))
				}
				return fmt.Errorf("definition has %d issues", len(issues))
			}

			log.Info("definition valid",
				zap.String("variant", cfg.Variant),
				zap.String("site", cfg.Site.Name),
				zap.Strings("domains", cfg.Site.Domains),
			)
			return nil
		}

		if !validateWatch {
			return runOnce(cmd.Context())
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := runOnce(ctx); err != nil {
			log.Warn("validate", zap.Error(err))
		}
		return watchAndRevalidate(ctx, log, runOnce)
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateWatch, "watch", false, "re-validate when the config changes")
	validateCmd.Flags().StringVar(&validateReport, "report", "~/.cache/site-pipeline/validate.json", "where to write the validation report")

	rootCmd.AddCommand(validateCmd)
}

func watchAndRevalidate(ctx context.Context, log *zap.Logger, runOnce func(context.Context) error) error {
	dir := filepath.Dir(cfgPath)
	base := filepath.Base(cfgPath)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(dir); err != nil {
		return err
	}

	log.Info("watching", zap.String("config", cfgPath))

	var timer *time.Timer
	fire := func() {
		if err := runOnce(ctx); err != nil {
			log.Warn("validate", zap.Error(err))
		}
	}

	startTimer := func() {
		if timer == nil {
			timer = time.AfterFunc(300*time.Millisecond, fire)
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(300 * time.Millisecond)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				startTimer()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("fsnotify error", zap.Error(err))
		}
	}
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if h, _ := os.UserHomeDir(); h != "" {
			return h + p[1:]
		}
	}
	return p
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vimdoc2html/internal/convert"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-convert help files as they change",
	Long: `Watches the given directories (the current directory by default) and
re-converts any matching help file when it is written. Runs until
interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	dirs := args
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("watch target %s is not a directory", dir)
		}
	}

	w, err := convert.NewWatcher(newRunner(cfg), dirs)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Start(ctx)
	defer w.Stop()

	logger.Info("watching for changes", zap.Strings("dirs", dirs))
	<-ctx.Done()
	return nil
}

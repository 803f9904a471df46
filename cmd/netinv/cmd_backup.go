package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/netfleet/netinv/pkg/collector"
	"github.com/netfleet/netinv/pkg/platform"
)

var backupOutDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Save each device's running configuration to a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := runCollection(platform.IntentBackup, collector.SecondaryConfig{})
		if err != nil {
			return err
		}

		if err := os.MkdirAll(backupOutDir, 0o755); err != nil {
			return exitf(4, "creating backup directory: %w", err)
		}

		for _, r := range results {
			if r.Err != nil || r.RawOutput == "" {
				continue
			}
			path := filepath.Join(backupOutDir, r.Device.Key()+".cfg")
			if err := os.WriteFile(path, []byte(r.RawOutput), 0o644); err != nil {
				app.log.WithField("device", r.Device.Key()).WithError(err).Warn("writing backup file failed")
				continue
			}
			fmt.Println(path)
		}

		finishRun()
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutDir, "out", "o", "./backups", "Directory to write per-device config backups to")
}

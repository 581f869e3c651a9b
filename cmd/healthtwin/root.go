// ABOUTME: Root Cobra command for healthtwin CLI.
// ABOUTME: Handles config loading and patient store lifecycle.
package main

import (
	"fmt"

	"github.com/harperreed/healthtwin/internal/config"
	"github.com/harperreed/healthtwin/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	store storage.Store
)

var rootCmd = &cobra.Command{
	Use:   "healthtwin",
	Short: "Patient health profiles and risk assessment",
	Long: `Healthtwin maintains per-patient health profiles and derives diabetes and
heart disease risk scores from clinical measurements and wearable data.

QUICK START:

  $ healthtwin add P001 "Jane Doe" --age 52 --gender Female \
      --height 165 --weight 70                 # Create a patient
  $ healthtwin update P001 --glucose 128       # Record new measurements
  $ healthtwin show P001                       # Profile, status, and risk scores
  $ healthtwin list                            # All patients at a glance

WEARABLE DATA:

  Import CSV exports from fitness trackers and glucose monitors. Columns
  are auto-detected by name (heart_rate, blood_glucose, steps, ...) and
  individual mappings can be overridden.

  $ healthtwin import P001 tracker.csv              # Auto-detect columns
  $ healthtwin import P001 tracker.csv \
      --map heart_rate=hr_bpm                       # Override one mapping
  $ healthtwin generate P001                        # 7 days of sample data
  $ healthtwin show P001                            # Now includes wearable scores

RISK SCORING:

  Scores are deterministic 0-100 sums over clinical thresholds (glucose,
  blood pressure, cholesterol, BMI, age, family history, smoking).
  Scores of 70+ are High Risk, 40-69 Moderate, below 40 Low.

MCP INTEGRATION:

  Run 'healthtwin mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Patient records live in a local Badger store under
  ~/.local/share/healthtwin by default. Set "backend" to "dir" for plain
  JSON files or "charm" for encrypted Charm Cloud sync
  (~/.config/healthtwin/config.json, or HEALTHTWIN_BACKEND).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		store, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open patient store: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

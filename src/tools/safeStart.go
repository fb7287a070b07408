package tools

import (
	"fmt"
	"os"
	"path/filepath"

	"campus/energy/config/log"
	"campus/energy/config/toml"
)

// SafeStart prepares the output directory and initializes the run log.
// An unwritable output directory is pipeline-fatal.
func SafeStart() (err error) {
	// Recover panics in startup
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered panic in startup: %v", r)
		}
	}()

	cfg := toml.GetConfig()
	if mkErr := os.MkdirAll(cfg.Output.Dir, 0o755); mkErr != nil {
		return fmt.Errorf("create output dir %s: %w", cfg.Output.Dir, mkErr)
	}

	log.InitLogger(filepath.Join(cfg.Output.Dir, "energy_dashboard.log"), cfg.Log.Level)
	return nil
}

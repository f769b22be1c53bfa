package merge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dtnitsch/shipment-dossier/internal/common"
	"github.com/dtnitsch/shipment-dossier/models"
	"github.com/dtnitsch/shipment-dossier/pkg/artifact_manager"
	"github.com/dtnitsch/shipment-dossier/pkg/db"
	"github.com/urfave/cli/v2"
)

func MergeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	// Initialize runtime config from CLI flags
	config := &models.RunConfig{
		InputFolder:        c.String("input-folder"),
		OutputFolder:       c.String("output-folder"),
		EDIFile:            c.String("edi-file"),
		ManifestFile:       c.String("manifest-file"),
		RulesFile:          c.String("rules"),
		EnableOptimization: c.Bool("enable-optimization") && !c.Bool("disable-optimization"),
		TargetSizeMB:       c.Float64("target-size"),
		Quality:            c.Int("quality"),
		JobID:              c.String("job-id"),
		JSONOutput:         c.Bool("json-output"),
	}
	if config.JobID != "" {
		logger = logger.With("job_id", config.JobID)
	}

	rules, err := models.LoadRules(config.RulesFile)
	if err != nil {
		fatal(logger, config, fmt.Sprintf("failed to load rules: %v", err))
	}

	info, err := os.Stat(config.InputFolder)
	if err != nil || !info.IsDir() {
		fatal(logger, config, fmt.Sprintf("input folder not found: %s", config.InputFolder))
	}

	manager, err := artifact_manager.NewManager(config.OutputFolder)
	if err != nil {
		fatal(logger, config, fmt.Sprintf("failed to prepare output folder: %v", err))
	}

	// Open the run ledger database. Merging still works without it, so a
	// failure here only costs the history entry.
	database, err := db.Open()
	if err != nil {
		logger.Warn("failed to open run ledger database", "error", err)
		database = nil
	} else {
		defer database.Close()
	}

	state, err := run(logger, config, rules, manager, database)
	if err != nil {
		fatal(logger, config, err.Error())
	}

	if config.JSONOutput {
		result := buildRunResult(state)
		var outputData []byte
		var marshalErr error
		if fields := c.String("fields"); fields != "" {
			outputData, marshalErr = json.Marshal(common.FilterResultFields(result, fields))
		} else {
			outputData, marshalErr = json.Marshal(result)
		}
		if marshalErr != nil {
			fatal(logger, config, fmt.Sprintf("failed to marshal result: %v", marshalErr))
		}
		fmt.Println(string(outputData))
		return nil
	}

	printRunSummary(state, time.Since(startTime))
	return nil
}

// fatal reports an unrecoverable setup error and exits with code 2. With
// --json-output the failure is still printed as a single result line so
// callers always get parseable output.
func fatal(logger *slog.Logger, config *models.RunConfig, msg string) {
	logger.Error(msg)
	if config.JSONOutput {
		result := models.RunResult{Error: msg, OutputFolder: config.OutputFolder}
		if data, err := json.Marshal(result); err == nil {
			fmt.Println(string(data))
		}
	}
	os.Exit(2)
}

// Package main is the reference CLI collaborator for the scheduling
// engine: it loads features, dependencies, and rules from disk and drives
// internal/scheduler through a github.com/urfave/cli/v2 App with flags
// and five focused subcommands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"schedgen/internal/config"
	"schedgen/internal/core"
	"schedgen/internal/ingest"
	"schedgen/internal/model"
	"schedgen/internal/scheduler"
)

const (
	fFeatures = "features"
	fRules    = "rules"
	fMoved    = "moved"
	fStart    = "start"
	fEnd      = "end"
	fSilent   = "silent"
)

func errorLabel() string {
	return core.Error("error:")
}

func commands() []*cli.Command {
	return []*cli.Command{
		recalcCommand(),
		autoCommand(),
		capacityCommand(),
		validateCommand(),
		watchCommand(),
	}
}

func newApp() *cli.App {
	cmds := commands()

	names := make([]string, len(cmds))
	for i, cmd := range cmds {
		names[i] = cmd.Name
	}

	return &cli.App{
		Name:  "schedgen",
		Usage: "Propagate and validate feature schedules from a dependency graph and scheduling rules",

		Writer:    os.Stdout,
		ErrWriter: os.Stderr,

		Commands: cmds,

		CommandNotFound: func(c *cli.Context, name string) {
			msg := fmt.Sprintf("%s no such command %q", errorLabel(), name)
			if suggestion := core.SuggestCorrection(name, names); suggestion != "" {
				msg += fmt.Sprintf(" — did you mean %s?", core.BoldText(suggestion))
			}
			fmt.Fprintln(os.Stderr, msg)
		},
	}
}

func featuresFlag() *cli.PathFlag {
	return &cli.PathFlag{Name: fFeatures, Required: true, Usage: "CSV file of feature rows (id, name, start, end, status, owner, group, dependencies)"}
}

func rulesFlag() *cli.PathFlag {
	return &cli.PathFlag{Name: fRules, Required: false, Usage: "YAML rule document (see internal/ingest.RuleDocument)", EnvVars: []string{"SCHEDGEN_RULES_FILE"}}
}

func silentFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: fSilent, Usage: "suppress the progress spinner", EnvVars: []string{"SCHEDGEN_SILENT"}}
}

// loadFeaturesAndDeps reads the CSV at path and expands its Dependencies
// column into FS edges (internal/ingest.ResolveDependencies).
func loadFeaturesAndDeps(path string) ([]model.Feature, []model.Dependency, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, core.NewFileError(path, "open", err)
	}
	defer file.Close()

	reader := ingest.NewReader(true)
	records, err := reader.ReadFeatures(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read features file: %w", err)
	}
	if reader.Errors().HasErrors() {
		fmt.Fprintln(os.Stderr, core.Warning(reader.Errors().Summary()))
	}

	features := make([]model.Feature, 0, len(records))
	for _, rec := range records {
		f, err := rec.ToFeature()
		if err != nil {
			return nil, nil, err
		}
		features = append(features, f)
	}

	return features, ingest.ResolveDependencies(records), nil
}

// loadRules reads the YAML rule document at path, returning an empty rule
// set when path is empty (no rules configured is a valid state).
func loadRules(path string) ([]model.SchedulingRule, error) {
	if path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, core.NewFileError(path, "open", err)
	}
	defer file.Close()

	return ingest.ReadRuleDocument(file)
}

func printUpdates(updates []model.FeatureUpdate) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(updates)
}

func recalcCommand() *cli.Command {
	return &cli.Command{
		Name:  "recalc",
		Usage: "Run a full, rule-aware recalculation over every feature",
		Flags: []cli.Flag{featuresFlag(), rulesFlag(), silentFlag()},
		Action: func(c *cli.Context) error {
			features, deps, err := loadFeaturesAndDeps(c.Path(fFeatures))
			if err != nil {
				return err
			}
			rules, err := loadRules(c.Path(fRules))
			if err != nil {
				return err
			}

			sp := core.NewSpinner(fmt.Sprintf("recalculating %d feature(s)", len(features)), c.Bool(fSilent))
			sp.Start()
			updates := scheduler.Recalculate(features, deps, rules)
			sp.Stop(true)

			fmt.Println(core.Success(fmt.Sprintf("recalculated %d feature(s)", len(updates))))
			return printUpdates(updates)
		},
	}
}

func autoCommand() *cli.Command {
	return &cli.Command{
		Name:  "auto",
		Usage: "Incrementally propagate a single moved feature's new dates",
		Flags: []cli.Flag{
			featuresFlag(),
			&cli.StringFlag{Name: fMoved, Required: true, Usage: "id of the feature that moved"},
			&cli.TimestampFlag{Name: fStart, Required: true, Layout: "2006-01-02", Usage: "new start date (YYYY-MM-DD)"},
			&cli.TimestampFlag{Name: fEnd, Required: true, Layout: "2006-01-02", Usage: "new end date (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			features, deps, err := loadFeaturesAndDeps(c.Path(fFeatures))
			if err != nil {
				return err
			}

			dates := scheduler.Dates{StartAt: *c.Timestamp(fStart), EndAt: *c.Timestamp(fEnd)}
			updates := scheduler.AutoSchedule(c.String(fMoved), dates, features, deps)
			fmt.Println(core.Success(fmt.Sprintf("propagated to %d feature(s)", len(updates))))
			return printUpdates(updates)
		},
	}
}

func capacityCommand() *cli.Command {
	return &cli.Command{
		Name:  "capacity",
		Usage: "Report capacity warnings without modifying any dates",
		Flags: []cli.Flag{featuresFlag(), rulesFlag()},
		Action: func(c *cli.Context) error {
			features, _, err := loadFeaturesAndDeps(c.Path(fFeatures))
			if err != nil {
				return err
			}
			rules, err := loadRules(c.Path(fRules))
			if err != nil {
				return err
			}

			warnings := scheduler.CheckCapacity(features, rules)
			if len(warnings) == 0 {
				fmt.Println(core.Success("no capacity warnings"))
				return nil
			}

			fmt.Println(core.BoldText(fmt.Sprintf("%d capacity warning(s):", len(warnings))))
			for _, w := range warnings {
				fmt.Println(core.Warning(fmt.Sprintf(
					"%s %q over capacity: %d active, max %d (%v)",
					w.ResourceKind, w.ResourceID, w.Actual, w.Max, w.FeatureNames,
				)))
			}
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check every feature's duration against configured duration rules",
		Flags: []cli.Flag{featuresFlag(), rulesFlag()},
		Action: func(c *cli.Context) error {
			features, _, err := loadFeaturesAndDeps(c.Path(fFeatures))
			if err != nil {
				return err
			}
			rules, err := loadRules(c.Path(fRules))
			if err != nil {
				return err
			}

			report := scheduler.ValidateAllDurations(features, rules)
			if !report.HasViolations() {
				fmt.Println(core.Success("all feature durations are within configured bounds"))
				return nil
			}

			fmt.Println(core.BoldText(fmt.Sprintf("%d duration violation(s):", len(report.Violations))))
			for id, v := range report.Violations {
				fmt.Println(core.Warning(fmt.Sprintf("%s: %s", id, v.Message)))
			}
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Recalculate on every save to the rules file, printing updates as they occur",
		Flags: []cli.Flag{
			featuresFlag(),
			&cli.PathFlag{Name: fRules, Required: true, Usage: "YAML rule document to watch for changes", EnvVars: []string{"SCHEDGEN_RULES_FILE"}},
			silentFlag(),
		},
		Action: func(c *cli.Context) error {
			logger := core.NewDefaultLogger()
			silent := c.Bool(fSilent)

			features, deps, err := loadFeaturesAndDeps(c.Path(fFeatures))
			if err != nil {
				return err
			}

			mgr := config.NewManager(config.Config{RulesFile: c.Path(fRules)}, logger)
			rules, err := mgr.LoadRules()
			if err != nil {
				return err
			}

			emit := func(rules []model.SchedulingRule) error {
				sp := core.NewSpinner(fmt.Sprintf("recalculating %d feature(s)", len(features)), silent)
				sp.Start()
				updates := scheduler.Recalculate(features, deps, rules)
				sp.Stop(true)

				fmt.Println(core.Success(fmt.Sprintf("recalculated %d feature(s)", len(updates))))
				return printUpdates(updates)
			}

			if err := emit(rules); err != nil {
				return err
			}

			done := make(chan error, 1)
			if err := mgr.StartHotReload(func(snap config.Snapshot) {
				if snap.Err != nil {
					logger.Error("reload failed: %v", snap.Err)
					return
				}
				if err := emit(snap.Rules); err != nil {
					done <- err
				}
			}); err != nil {
				return err
			}
			defer mgr.StopHotReload()

			return <-done
		},
	}
}

package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/validation"
)

type DoctorCmd struct {
	Repair bool `help:"Fix orphaned, misfiled and duplicate log entries."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	state, err := checkStoreReachable(ctx)
	if err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
	}

	if err != nil {
		fmt.Printf("⊘ Data validation: SKIPPED (store not reachable)\n")
	} else if err := cmd.checkValidation(ctx, state); err != nil {
		fmt.Printf("❌ Data validation: FAIL\n")
		fmt.Printf("   %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Data validation: OK\n")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	if err := checkTimezone(ctx); err != nil {
		fmt.Printf("❌ Timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) (models.State, error) {
	if err := ctx.Store.Load(); err != nil {
		return models.State{}, fmt.Errorf("failed to load store: %w", err)
	}
	state, err := ctx.Store.LoadState()
	if err != nil {
		return models.State{}, fmt.Errorf("failed to read state: %w", err)
	}
	return state, nil
}

func (cmd *DoctorCmd) checkValidation(ctx *cli.Context, state models.State) error {
	result := validation.New().ValidateState(state)
	if !result.HasConflicts() {
		return nil
	}
	if !cmd.Repair {
		return fmt.Errorf("%s   Run with --repair to fix log entries", result.FormatReport())
	}

	ctx.PerformAutomaticBackup()
	repaired := validation.Repair(state)
	if err := ctx.Store.SaveState(repaired); err != nil {
		return fmt.Errorf("failed to save repaired state: %w", err)
	}

	remaining := validation.New().ValidateState(repaired)
	fmt.Printf("   Repaired %d conflicts\n", len(result.Conflicts)-len(remaining.Conflicts))
	if remaining.HasConflicts() {
		return errors.New(remaining.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}

	age := time.Since(backups[0].Timestamp)
	if age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	if ctx.Config == nil {
		return nil
	}
	loc, err := ctx.Config.Location()
	if err != nil {
		return err
	}
	if time.Now().In(loc).Year() < 2000 {
		return errors.New("system clock appears to be wrong")
	}
	return nil
}

package lifecycle

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/openparlor/parlor-ctl/internal/errors"
	"github.com/openparlor/parlor-ctl/internal/instance"
	"github.com/openparlor/parlor-ctl/internal/logging"
)

// backupTimestampFormat names backup artifacts, e.g. 20240101_120000.
const backupTimestampFormat = "20060102_150405"

// BackupReport describes one backup run.
type BackupReport struct {
	Timestamp string
	Dir       string
	Artifacts []string
	Steps     []StepResult
}

// Backup captures a best-effort snapshot of an instance as of a single
// timestamp: a database dump, an archive of the data volumes, and copies
// of the two configuration files.
//
// The four captures are not transactionally consistent with each other;
// nothing freezes the instance across them, so a write landing between
// the dump and the volume archive can make the two disagree. Individual
// capture failures are recorded and do not stop the remaining captures.
func (c *Controller) Backup(ctx context.Context, name string) (*BackupReport, error) {
	rec, dir, err := c.resolve(name)
	if err != nil {
		return nil, err
	}

	ts := c.Now().Format(backupTimestampFormat)
	outDir := filepath.Join(c.Paths.BackupDir, name)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	report := &BackupReport{Timestamp: ts, Dir: outDir}

	steps := []struct {
		name string
		file string
		run  func(outPath string) error
	}{
		{
			name: "database dump",
			file: "database_" + ts + ".sql",
			run: func(outPath string) error {
				return c.dumpDatabase(ctx, rec, dir, outPath)
			},
		},
		{
			name: "volume archive",
			file: "volumes_" + ts + ".tar.gz",
			run: func(outPath string) error {
				return c.Runtime.ExportVolumes(ctx, rec.VolumeNames(), outPath)
			},
		},
		{
			name: "config copy",
			file: "config_" + ts + ".env",
			run: func(outPath string) error {
				return copyFile(filepath.Join(dir, instance.EnvFileName), outPath, 0600)
			},
		},
		{
			name: "compose copy",
			file: "docker-compose_" + ts + ".yml",
			run: func(outPath string) error {
				return copyFile(filepath.Join(dir, instance.ComposeFileName), outPath, 0644)
			},
		},
	}

	for _, step := range steps {
		outPath := filepath.Join(outDir, step.file)
		err := step.run(outPath)
		report.Steps = append(report.Steps, StepResult{Step: step.name, Err: err})
		if err != nil {
			logging.Warn("backup step failed", "instance", name, "step", step.name, "error", err)
			continue
		}
		report.Artifacts = append(report.Artifacts, step.file)
	}

	if failed := failedStepNames(report.Steps); len(failed) > 0 {
		return report, errors.StepFailed(strings.Join(failed, ", "), nil)
	}

	return report, nil
}

// dumpDatabase runs pg_dump in the db container and writes its stdout.
func (c *Controller) dumpDatabase(ctx context.Context, rec *instance.Record, dir, outPath string) error {
	result, err := c.Runtime.Exec(ctx, rec.Project(), dir, "db",
		[]string{"pg_dump", "-U", "parlor", rec.DatabaseName})
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("pg_dump exited %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr))
	}

	return os.WriteFile(outPath, []byte(result.Stdout), 0600)
}

func failedStepNames(steps []StepResult) []string {
	var failed []string
	for _, s := range steps {
		if s.Err != nil {
			failed = append(failed, s.Step)
		}
	}
	return failed
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

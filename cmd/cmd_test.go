package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openparlor/parlor-ctl/internal/errors"
	"github.com/openparlor/parlor-ctl/internal/runtime"
	"github.com/openparlor/parlor-ctl/internal/testutil"
)

func executeCommand(args ...string) (string, string, error) {
	return executeCommandWithInput("", args...)
}

func executeCommandWithInput(input string, args ...string) (string, string, error) {
	// Reset flag values before each test
	deployCompany = ""
	deployEmail = ""
	deployAppPort = 0
	deployDBPort = 0
	logsFollow = false
	logsLines = 50
	listQuiet = false
	backupAll = false
	updateAll = false
	updateForce = false
	removeForce = false
	removeKeepData = false
	verbose = false
	jsonOutput = false

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))

	err := cmd.Execute()

	// Reset for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)
	cmd.SetIn(nil)

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "parlor-ctl") {
		t.Error("Help output should contain 'parlor-ctl'")
	}
	if !strings.Contains(stdout, "instance") {
		t.Error("Help output should mention instances")
	}
	if !strings.Contains(stdout, "--verbose") {
		t.Error("Should have --verbose flag")
	}
	if !strings.Contains(stdout, "--json") {
		t.Error("Should have --json flag")
	}
}

func TestDeployCommand_NonInteractive(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	_, _, err := executeCommand("deploy", "acme", "--company", "Acme Corp", "--email", "admin@acme.test")
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}

	rec, err := env.Registry.Get("acme")
	if err != nil {
		t.Fatalf("record not created: %v", err)
	}
	if rec.CompanyName != "Acme Corp" {
		t.Errorf("CompanyName = %q, want Acme Corp", rec.CompanyName)
	}

	status, _ := env.Runtime.Status(context.Background(), "parlor-acme")
	if status != runtime.StatusRunning {
		t.Errorf("status = %s, want running", status)
	}
}

func TestDeployCommand_ExplicitPorts(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	_, _, err := executeCommand("deploy", "acme",
		"--company", "Acme Corp", "--email", "admin@acme.test",
		"--app-port", "39010", "--db-port", "35440")
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}

	rec, err := env.Registry.Get("acme")
	if err != nil {
		t.Fatalf("record not created: %v", err)
	}
	if rec.AppPort != 39010 || rec.DBPort != 35440 {
		t.Errorf("ports = %d/%d, want 39010/35440", rec.AppPort, rec.DBPort)
	}
}

func TestDeployCommand_DuplicateName(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	_, _, err := executeCommand("deploy", "acme", "--company", "Acme Corp", "--email", "admin@acme.test")
	if !errors.IsKind(err, errors.KindDuplicateName) {
		t.Errorf("err = %v, want DuplicateName", err)
	}
}

func TestListCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)
	env.AddInstance("beta", 39001, 35433)
	env.StartInstance("beta")

	stdout, _, err := executeCommand("list")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if !strings.Contains(stdout, "acme") || !strings.Contains(stdout, "beta") {
		t.Errorf("output missing instances:\n%s", stdout)
	}
	if !strings.Contains(stdout, "39000") {
		t.Errorf("output missing app port:\n%s", stdout)
	}
	if !strings.Contains(stdout, "stopped") || !strings.Contains(stdout, "running") {
		t.Errorf("output missing statuses:\n%s", stdout)
	}
}

func TestListCommand_SkipsCorruptRecords(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)
	env.WriteCorruptRecord("broken")

	stdout, _, err := executeCommand("list")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if !strings.Contains(stdout, "acme") {
		t.Errorf("intact instance missing:\n%s", stdout)
	}
	if strings.Contains(stdout, "broken") {
		t.Errorf("corrupt instance should be skipped:\n%s", stdout)
	}
}

func TestListCommand_Quiet(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)
	env.AddInstance("beta", 39001, 35433)

	// Quiet mode is for scripting; it reads only the registry and must
	// keep working when the container engine is down.
	env.Runtime.SetError("Status", fmt.Errorf("engine unreachable"))

	stdout, _, err := executeCommand("list", "--quiet")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	// Names only, one per line, nothing else.
	if stdout != "acme\nbeta\n" {
		t.Errorf("quiet output = %q, want names only", stdout)
	}
}

func TestStartStopRestartCommands(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	if _, _, err := executeCommand("start", "acme"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	status, _ := env.Runtime.Status(context.Background(), "parlor-acme")
	if status != runtime.StatusRunning {
		t.Errorf("status after start = %s, want running", status)
	}

	if _, _, err := executeCommand("stop", "acme"); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	status, _ = env.Runtime.Status(context.Background(), "parlor-acme")
	if status != runtime.StatusStopped {
		t.Errorf("status after stop = %s, want stopped", status)
	}

	if _, _, err := executeCommand("restart", "acme"); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
}

func TestStartCommand_UnknownInstance(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	_, _, err := executeCommand("start", "ghost")
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestInfoCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	stdout, _, err := executeCommand("info", "acme")
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}

	for _, want := range []string{"acme", "Acme Corp", "admin@acme.test", "http://localhost:39000", "parlor_acme"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	// Secrets never appear in info output.
	if strings.Contains(stdout, "test-session-secret") || strings.Contains(stdout, "test-db-password") {
		t.Errorf("output leaks secrets:\n%s", stdout)
	}
}

func TestLogsCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	if _, _, err := executeCommand("logs", "acme", "-n", "10"); err != nil {
		t.Fatalf("Logs failed: %v", err)
	}

	calls := env.Runtime.GetCallsFor("Logs")
	if len(calls) != 1 {
		t.Fatalf("Logs called %d times, want 1", len(calls))
	}
	if lines := calls[0].Args[2].(int); lines != 10 {
		t.Errorf("lines = %d, want 10", lines)
	}
}

func TestExecCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)
	env.StartInstance("acme")

	env.Runtime.SetExecResult("app", &runtime.ExecResult{Stdout: "ok\n"})

	stdout, _, err := executeCommand("exec", "acme", "--", "rails", "runner", "puts 1")
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if stdout != "ok\n" {
		t.Errorf("stdout = %q, want ok", stdout)
	}
}

func TestExecCommand_NotRunning(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	_, _, err := executeCommand("exec", "acme", "--", "true")
	if !errors.IsKind(err, errors.KindNotRunning) {
		t.Errorf("err = %v, want NotRunning", err)
	}
}

func TestExecCommand_NonZeroExit(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)
	env.StartInstance("acme")

	env.Runtime.SetExecResult("app", &runtime.ExecResult{ExitCode: 2, Stderr: "boom\n"})

	_, stderr, err := executeCommand("exec", "acme", "--", "false")
	if err == nil {
		t.Error("non-zero exit should surface as an error")
	}
	if !strings.Contains(stderr, "boom") {
		t.Errorf("stderr = %q, want container stderr", stderr)
	}
}

func TestBackupCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	if _, _, err := executeCommand("backup", "acme"); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(env.Config.BackupDir, "acme"))
	if err != nil {
		t.Fatalf("backup dir missing: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("backup produced %d artifacts, want 4", len(entries))
	}
}

func TestBackupCommand_All(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)
	env.AddInstance("beta", 39001, 35433)

	if _, _, err := executeCommand("backup", "--all"); err != nil {
		t.Fatalf("Backup --all failed: %v", err)
	}

	for _, name := range []string{"acme", "beta"} {
		if _, err := os.Stat(filepath.Join(env.Config.BackupDir, name)); err != nil {
			t.Errorf("backup dir for %s missing: %v", name, err)
		}
	}
}

func TestUpdateCommand(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	if _, _, err := executeCommand("update", "acme"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	builds := env.Runtime.GetCallsFor("Build")
	if len(builds) != 1 {
		t.Fatalf("Build called %d times, want 1", len(builds))
	}
	if noCache := builds[0].Args[1].(bool); !noCache {
		t.Error("update should rebuild without the layer cache")
	}
}

func TestUpdateCommand_AllNeedsConfirmation(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	// Declining the prompt leaves the instance untouched.
	if _, _, err := executeCommandWithInput("n\n", "update", "--all"); err != nil {
		t.Fatalf("Update --all failed: %v", err)
	}
	if calls := env.Runtime.GetCallsFor("Build"); len(calls) != 0 {
		t.Error("declined update should not build")
	}

	// --force skips the prompt.
	if _, _, err := executeCommand("update", "--all", "--force"); err != nil {
		t.Fatalf("Update --all --force failed: %v", err)
	}
	if calls := env.Runtime.GetCallsFor("Build"); len(calls) != 1 {
		t.Error("forced update should build")
	}
}

func TestRemoveCommand_Force(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	if _, _, err := executeCommand("remove", "acme", "--force"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := env.Registry.Get("acme"); !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("record should be gone, got %v", err)
	}

	downs := env.Runtime.GetCallsFor("Down")
	if len(downs) != 1 {
		t.Fatalf("Down called %d times, want 1", len(downs))
	}
	if removeVolumes := downs[0].Args[1].(bool); !removeVolumes {
		t.Error("remove should destroy volumes by default")
	}
}

func TestRemoveCommand_KeepData(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	if _, _, err := executeCommand("remove", "acme", "--force", "--keep-data"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	downs := env.Runtime.GetCallsFor("Down")
	if removeVolumes := downs[0].Args[1].(bool); removeVolumes {
		t.Error("--keep-data should preserve volumes")
	}
}

func TestRemoveCommand_Declined(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)

	if _, _, err := executeCommandWithInput("n\n", "remove", "acme"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := env.Registry.Get("acme"); err != nil {
		t.Errorf("declined remove should keep the record: %v", err)
	}
}

func TestRemoveCommand_UnknownInstance(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	_, _, err := executeCommand("remove", "ghost", "--force")
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
}

func TestStartAllStopAllCommands(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)
	env.AddInstance("beta", 39001, 35433)

	if _, _, err := executeCommand("start-all"); err != nil {
		t.Fatalf("start-all failed: %v", err)
	}
	for _, project := range []string{"parlor-acme", "parlor-beta"} {
		status, _ := env.Runtime.Status(context.Background(), project)
		if status != runtime.StatusRunning {
			t.Errorf("%s status = %s, want running", project, status)
		}
	}

	if _, _, err := executeCommand("stop-all"); err != nil {
		t.Fatalf("stop-all failed: %v", err)
	}
	for _, project := range []string{"parlor-acme", "parlor-beta"} {
		status, _ := env.Runtime.Status(context.Background(), project)
		if status != runtime.StatusStopped {
			t.Errorf("%s status = %s, want stopped", project, status)
		}
	}
}

func TestStartAllCommand_FailureExitsNonZero(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()
	env.AddInstance("acme", 39000, 35432)
	env.AddInstance("beta", 39001, 35433)

	env.Runtime.SetProjectError("Start", "parlor-acme", errors.New(errors.KindGeneral, "broken"))

	_, _, err := executeCommand("start-all")
	if err == nil {
		t.Error("partial failure should surface as an error")
	}
	if errors.GetExitCode(err) != 1 {
		t.Errorf("exit code = %d, want 1", errors.GetExitCode(err))
	}

	// The healthy instance was still started.
	status, _ := env.Runtime.Status(context.Background(), "parlor-beta")
	if status != runtime.StatusRunning {
		t.Error("instances after a failure should still be started")
	}
}

func TestCommandRequiresArgs(t *testing.T) {
	env := testutil.NewTestEnv(t)
	defer env.Cleanup()

	for _, cmd := range []string{"start", "stop", "restart", "logs", "info", "remove"} {
		t.Run(cmd, func(t *testing.T) {
			_, _, err := executeCommand(cmd)
			if err == nil {
				t.Errorf("%s without a name should fail", cmd)
			}
		})
	}
}

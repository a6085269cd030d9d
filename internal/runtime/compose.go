package runtime

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openparlor/parlor-ctl/internal/logging"
)

// ComposeRuntime implements Runtime by shelling out to docker compose.
type ComposeRuntime struct {
	// Command is the container engine binary (normally "docker").
	Command string
}

// NewComposeRuntime creates a compose runtime, verifying the engine
// binary is present.
func NewComposeRuntime(command string) (*ComposeRuntime, error) {
	if command == "" {
		command = "docker"
	}

	if _, err := exec.LookPath(command); err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", command, err)
	}

	return &ComposeRuntime{Command: command}, nil
}

// Name returns the runtime identifier.
func (r *ComposeRuntime) Name() string {
	return r.Command
}

// runCmd executes an engine command and captures its output.
func (r *ComposeRuntime) runCmd(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s failed: %s: %w", r.Command, args[0], strings.TrimSpace(stderr.String()), err)
	}

	return stdout.String(), nil
}

// composeArgs builds the common prefix for compose subcommands.
func composeArgs(project, dir string, rest ...string) []string {
	args := []string{"compose", "-p", project}
	if dir != "" {
		args = append(args, "--project-directory", dir, "-f", filepath.Join(dir, "docker-compose.yml"))
	}
	return append(args, rest...)
}

func (r *ComposeRuntime) Up(ctx context.Context, project, dir string) error {
	logging.Debug("compose up", "project", project)
	_, err := r.runCmd(ctx, composeArgs(project, dir, "up", "-d")...)
	return err
}

func (r *ComposeRuntime) Down(ctx context.Context, project, dir string, removeVolumes bool) error {
	logging.Debug("compose down", "project", project, "removeVolumes", removeVolumes)
	args := composeArgs(project, dir, "down")
	if removeVolumes {
		args = append(args, "-v")
	}
	_, err := r.runCmd(ctx, args...)
	return err
}

func (r *ComposeRuntime) Start(ctx context.Context, project, dir string) error {
	logging.Debug("compose start", "project", project)
	_, err := r.runCmd(ctx, composeArgs(project, dir, "start")...)
	return err
}

func (r *ComposeRuntime) Stop(ctx context.Context, project, dir string) error {
	logging.Debug("compose stop", "project", project)
	_, err := r.runCmd(ctx, composeArgs(project, dir, "stop")...)
	return err
}

func (r *ComposeRuntime) Restart(ctx context.Context, project, dir string) error {
	logging.Debug("compose restart", "project", project)
	_, err := r.runCmd(ctx, composeArgs(project, dir, "restart")...)
	return err
}

func (r *ComposeRuntime) Build(ctx context.Context, project, dir string, noCache bool) error {
	logging.Debug("compose build", "project", project, "noCache", noCache)
	args := composeArgs(project, dir, "build", "--pull")
	if noCache {
		args = append(args, "--no-cache")
	}
	_, err := r.runCmd(ctx, args...)
	return err
}

// Status derives the project's state from the engine's container list.
func (r *ComposeRuntime) Status(ctx context.Context, project string) (Status, error) {
	output, err := r.runCmd(ctx, "ps", "-a",
		"--filter", "label=com.docker.compose.project="+project,
		"--format", "{{.State}}")
	if err != nil {
		return StatusUnknown, err
	}

	lines := strings.Fields(strings.TrimSpace(output))
	if len(lines) == 0 {
		return StatusNotFound, nil
	}

	for _, state := range lines {
		if state == "running" {
			return StatusRunning, nil
		}
	}

	return StatusStopped, nil
}

// PublishedPorts lists host ports published by any running container.
func (r *ComposeRuntime) PublishedPorts(ctx context.Context) ([]int, error) {
	output, err := r.runCmd(ctx, "ps", "--format", "{{.Ports}}")
	if err != nil {
		return nil, err
	}

	return parsePublishedPorts(output), nil
}

// parsePublishedPorts extracts host ports from docker ps port columns,
// e.g. "0.0.0.0:9000->3000/tcp, [::]:9000->3000/tcp, 5432/tcp".
func parsePublishedPorts(output string) []int {
	seen := make(map[int]bool)
	var ports []int

	for _, line := range strings.Split(output, "\n") {
		for _, token := range strings.Split(line, ",") {
			token = strings.TrimSpace(token)
			arrow := strings.Index(token, "->")
			if arrow < 0 {
				// Exposed but not published.
				continue
			}

			hostPart := token[:arrow]
			colon := strings.LastIndex(hostPart, ":")
			if colon < 0 {
				continue
			}

			port, err := strconv.Atoi(hostPart[colon+1:])
			if err != nil || port < 1 || port > 65535 {
				continue
			}

			if !seen[port] {
				seen[port] = true
				ports = append(ports, port)
			}
		}
	}

	return ports
}

func (r *ComposeRuntime) Exec(ctx context.Context, project, dir, service string, command []string) (*ExecResult, error) {
	args := composeArgs(project, dir, "exec", "-T", service)
	args = append(args, command...)

	cmd := exec.CommandContext(ctx, r.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			return result, fmt.Errorf("exec failed: %w", err)
		}
	}

	return result, nil
}

// Logs streams project logs to the invoking terminal.
func (r *ComposeRuntime) Logs(ctx context.Context, project, dir string, follow bool, lines int) error {
	args := composeArgs(project, dir, "logs", "--tail", strconv.Itoa(lines))
	if follow {
		args = append(args, "-f")
	}

	cmd := exec.CommandContext(ctx, r.Command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Stats returns a one-shot resource usage table for the project.
func (r *ComposeRuntime) Stats(ctx context.Context, project string) (string, error) {
	ids, err := r.runCmd(ctx, "ps", "-q",
		"--filter", "label=com.docker.compose.project="+project)
	if err != nil {
		return "", err
	}

	containers := strings.Fields(strings.TrimSpace(ids))
	if len(containers) == 0 {
		return "", nil
	}

	args := append([]string{"stats", "--no-stream",
		"--format", "table {{.Name}}\t{{.CPUPerc}}\t{{.MemUsage}}"}, containers...)
	return r.runCmd(ctx, args...)
}

// ExportVolumes archives the named volumes into a single tar.gz via a
// throwaway container, so the archive works even while the instance's
// own containers are stopped.
func (r *ComposeRuntime) ExportVolumes(ctx context.Context, volumes []string, outPath string) error {
	outDir, err := filepath.Abs(filepath.Dir(outPath))
	if err != nil {
		return fmt.Errorf("invalid backup path: %w", err)
	}

	args := []string{"run", "--rm"}
	for _, vol := range volumes {
		args = append(args, "-v", fmt.Sprintf("%s:/volumes/%s:ro", vol, vol))
	}
	args = append(args, "-v", outDir+":/out",
		"alpine:3", "tar", "czf", "/out/"+filepath.Base(outPath), "-C", "/volumes", ".")

	_, err = r.runCmd(ctx, args...)
	return err
}

var _ Runtime = (*ComposeRuntime)(nil)

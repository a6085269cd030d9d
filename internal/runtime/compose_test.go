package runtime

import (
	"context"
	"reflect"
	"testing"
)

func TestParsePublishedPorts(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []int
	}{
		{
			name:   "empty",
			output: "",
			want:   nil,
		},
		{
			name:   "single published port",
			output: "0.0.0.0:9000->3000/tcp",
			want:   []int{9000},
		},
		{
			name:   "ipv4 and ipv6 duplicates",
			output: "0.0.0.0:9000->3000/tcp, [::]:9000->3000/tcp",
			want:   []int{9000},
		},
		{
			name:   "exposed but unpublished ignored",
			output: "5432/tcp",
			want:   nil,
		},
		{
			name:   "multiple containers",
			output: "0.0.0.0:9000->3000/tcp, [::]:9000->3000/tcp\n0.0.0.0:5432->5432/tcp\n9001/tcp",
			want:   []int{9000, 5432},
		},
		{
			name:   "loopback binding",
			output: "127.0.0.1:2201->22/tcp",
			want:   []int{2201},
		},
		{
			name:   "garbage tolerated",
			output: "not-a-port->something, 0.0.0.0:abc->80/tcp",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePublishedPorts(tt.output)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parsePublishedPorts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeArgs(t *testing.T) {
	args := composeArgs("parlor-acme", "/var/lib/parlor/instances/acme", "up", "-d")

	want := []string{
		"compose", "-p", "parlor-acme",
		"--project-directory", "/var/lib/parlor/instances/acme",
		"-f", "/var/lib/parlor/instances/acme/docker-compose.yml",
		"up", "-d",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("composeArgs() = %v, want %v", args, want)
	}
}

func TestComposeArgs_NoDir(t *testing.T) {
	args := composeArgs("parlor-acme", "", "stop")

	want := []string{"compose", "-p", "parlor-acme", "stop"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("composeArgs() = %v, want %v", args, want)
	}
}

func TestMockRuntime_Lifecycle(t *testing.T) {
	m := NewMockRuntime()
	ctx := context.Background()

	if err := m.Up(ctx, "parlor-acme", ""); err != nil {
		t.Fatalf("Up failed: %v", err)
	}

	status, err := m.Status(ctx, "parlor-acme")
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status != StatusRunning {
		t.Errorf("status = %s, want running", status)
	}

	if err := m.Stop(ctx, "parlor-acme", ""); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	status, _ = m.Status(ctx, "parlor-acme")
	if status != StatusStopped {
		t.Errorf("status = %s, want stopped", status)
	}

	if err := m.Down(ctx, "parlor-acme", "", true); err != nil {
		t.Fatalf("Down failed: %v", err)
	}

	status, _ = m.Status(ctx, "parlor-acme")
	if status != StatusNotFound {
		t.Errorf("status = %s, want not-found", status)
	}
}

package runtime

import (
	"context"
	"os"
	"sync"
)

// MockRuntime is a mock implementation of Runtime for testing.
type MockRuntime struct {
	mu sync.RWMutex

	// Projects tracks the state of mock compose projects.
	Projects map[string]Status

	// Ports is returned by PublishedPorts.
	Ports []int

	// ExecResults maps service names to predefined exec results.
	ExecResults map[string]*ExecResult

	// StatsOutput is returned by Stats.
	StatsOutput string

	// Errors allows injecting errors for specific operations.
	Errors map[string]error

	// CallLog records all method calls for verification.
	CallLog []MockCall
}

// MockCall represents a recorded method call.
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockRuntime creates a new mock runtime.
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{
		Projects:    make(map[string]Status),
		ExecResults: make(map[string]*ExecResult),
		Errors:      make(map[string]error),
		CallLog:     make([]MockCall, 0),
	}
}

func (m *MockRuntime) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation.
func (m *MockRuntime) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// SetProjectError sets an error for an operation on one project only.
func (m *MockRuntime) SetProjectError(operation, project string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation+":"+project] = err
}

// failure looks up an injected error, most specific key first.
func (m *MockRuntime) failure(operation, project string) (error, bool) {
	if err, ok := m.Errors[operation+":"+project]; ok {
		return err, true
	}
	err, ok := m.Errors[operation]
	return err, ok
}

// AddProject seeds a project in the given state.
func (m *MockRuntime) AddProject(project string, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Projects[project] = status
}

// SetExecResult sets the result for exec operations on a service.
func (m *MockRuntime) SetExecResult(service string, result *ExecResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExecResults[service] = result
}

// GetCallsFor returns all recorded calls for a specific method.
func (m *MockRuntime) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

func (m *MockRuntime) Name() string {
	return "mock"
}

func (m *MockRuntime) Up(ctx context.Context, project, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Up", project)

	if err, ok := m.failure("Up", project); ok {
		return err
	}

	m.Projects[project] = StatusRunning
	return nil
}

func (m *MockRuntime) Down(ctx context.Context, project, dir string, removeVolumes bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Down", project, removeVolumes)

	if err, ok := m.failure("Down", project); ok {
		return err
	}

	delete(m.Projects, project)
	return nil
}

func (m *MockRuntime) Start(ctx context.Context, project, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Start", project)

	if err, ok := m.failure("Start", project); ok {
		return err
	}

	m.Projects[project] = StatusRunning
	return nil
}

func (m *MockRuntime) Stop(ctx context.Context, project, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Stop", project)

	if err, ok := m.failure("Stop", project); ok {
		return err
	}

	m.Projects[project] = StatusStopped
	return nil
}

func (m *MockRuntime) Restart(ctx context.Context, project, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Restart", project)

	if err, ok := m.failure("Restart", project); ok {
		return err
	}

	m.Projects[project] = StatusRunning
	return nil
}

func (m *MockRuntime) Build(ctx context.Context, project, dir string, noCache bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Build", project, noCache)

	if err, ok := m.failure("Build", project); ok {
		return err
	}

	return nil
}

func (m *MockRuntime) Status(ctx context.Context, project string) (Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.Errors["Status"]; ok {
		return StatusUnknown, err
	}

	status, ok := m.Projects[project]
	if !ok {
		return StatusNotFound, nil
	}
	return status, nil
}

func (m *MockRuntime) PublishedPorts(ctx context.Context) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.Errors["PublishedPorts"]; ok {
		return nil, err
	}

	ports := make([]int, len(m.Ports))
	copy(ports, m.Ports)
	return ports, nil
}

func (m *MockRuntime) Exec(ctx context.Context, project, dir, service string, command []string) (*ExecResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Exec", project, service, command)

	if err, ok := m.failure("Exec", project); ok {
		return nil, err
	}

	if result, ok := m.ExecResults[service]; ok {
		return result, nil
	}
	return &ExecResult{}, nil
}

func (m *MockRuntime) Logs(ctx context.Context, project, dir string, follow bool, lines int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Logs", project, follow, lines)

	if err, ok := m.failure("Logs", project); ok {
		return err
	}
	return nil
}

func (m *MockRuntime) Stats(ctx context.Context, project string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.Errors["Stats"]; ok {
		return "", err
	}
	return m.StatsOutput, nil
}

// ExportVolumes writes a placeholder archive so backup tests can verify
// the artifact exists on disk.
func (m *MockRuntime) ExportVolumes(ctx context.Context, volumes []string, outPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ExportVolumes", volumes, outPath)

	if err, ok := m.Errors["ExportVolumes"]; ok {
		return err
	}

	return os.WriteFile(outPath, []byte("mock volume archive"), 0644)
}

var _ Runtime = (*MockRuntime)(nil)

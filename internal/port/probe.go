package port

import (
	"context"
	"fmt"
	"net"

	"github.com/openparlor/parlor-ctl/internal/logging"
)

// Scope selects which systems a probe consults.
type Scope int

const (
	// ScopeHost checks OS-level bindability only.
	ScopeHost Scope = iota
	// ScopeRuntime checks the container runtime's published ports only.
	ScopeRuntime
	// ScopeBoth checks both. This is what allocation uses.
	ScopeBoth
)

// PortLister is the slice of the container runtime the probe needs.
type PortLister interface {
	PublishedPorts(ctx context.Context) ([]int, error)
}

// Prober reports whether a TCP port is free.
type Prober interface {
	IsFree(ctx context.Context, port int, scope Scope) bool
}

// Probe checks host bindability and the runtime's published port list.
type Probe struct {
	Runtime PortLister
}

// IsFree reports whether port is free within scope. Any failure to
// determine the answer counts as "taken".
func (p *Probe) IsFree(ctx context.Context, port int, scope Scope) bool {
	if scope == ScopeHost || scope == ScopeBoth {
		if !bindable(port) {
			logging.Debug("port not bindable on host", "port", port)
			return false
		}
	}

	if scope == ScopeRuntime || scope == ScopeBoth {
		published, err := p.Runtime.PublishedPorts(ctx)
		if err != nil {
			// Unknown means taken.
			logging.Debug("runtime port query failed, treating port as taken", "port", port, "error", err)
			return false
		}
		for _, taken := range published {
			if taken == port {
				logging.Debug("port published by runtime", "port", port)
				return false
			}
		}
	}

	return true
}

// bindable attempts a bind-and-release on all interfaces.
func bindable(port int) bool {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

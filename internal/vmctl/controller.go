package vmctl

import (
	"context"
	"fmt"
	"time"

	"github.com/digitalocean/go-libvirt"
	"github.com/rs/zerolog"
	"libvirt.org/go/libvirtxml"

	"github.com/jbweber/hangar/api/v1alpha1"
	hangarlibvirt "github.com/jbweber/hangar/internal/libvirt"
	"github.com/jbweber/hangar/internal/naming"
)

// Controller drives VMs through the local libvirt daemon.
type Controller struct {
	socket  string
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithDialTimeout bounds how long connecting to libvirt may take.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// New creates a Controller for the daemon at socketPath. An empty path uses
// the system socket.
func New(socketPath string, opts ...Option) *Controller {
	c := &Controller{
		socket: socketPath,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) connect(ctx context.Context) (*hangarlibvirt.Client, func(), error) {
	client, err := hangarlibvirt.ConnectWithContext(ctx, c.socket, c.timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to libvirt: %w", err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			c.log.Warn().Err(err).Msg("failed to close libvirt connection")
		}
	}
	return client, closeFn, nil
}

// ListRunning returns the names of all active domains.
func (c *Controller) ListRunning(ctx context.Context) ([]string, error) {
	client, closeFn, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return listRunningWithDeps(ctx, client.Libvirt())
}

// Apply runs op against the domain defined at definitionPath. For start, a
// non-nil hw redefines the domain with the profile before starting it.
func (c *Controller) Apply(ctx context.Context, op Operation, definitionPath string, hw *v1alpha1.HardwareProfile) error {
	client, closeFn, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	return applyWithDeps(ctx, client.Libvirt(), c.log, op, definitionPath, hw)
}

// DomainName returns the domain name declared in a container's definition,
// falling back to the file's base name when it cannot be read.
func (c *Controller) DomainName(container v1alpha1.Container) string {
	name, err := hangarlibvirt.DomainName(container.VMXPath)
	if err != nil {
		c.log.Debug().Err(err).Str("path", container.VMXPath).Msg("using file name as domain name")
		return naming.ContainerNameFromPath(container.VMXPath)
	}
	return name
}

// listRunningWithDeps lists active domains with injected dependencies.
func listRunningWithDeps(ctx context.Context, lv libvirtClient) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// NeedResults: 1 means populate the domains slice
	domains, _, err := lv.ConnectListAllDomains(1, libvirt.ConnectListDomainsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}

	names := make([]string, 0, len(domains))
	for _, d := range domains {
		names = append(names, d.Name)
	}
	return names, nil
}

// applyWithDeps applies op with injected dependencies.
func applyWithDeps(ctx context.Context, lv libvirtClient, log zerolog.Logger, op Operation, definitionPath string, hw *v1alpha1.HardwareProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	def, err := hangarlibvirt.ReadDefinition(definitionPath)
	if err != nil {
		return err
	}
	name := def.Name
	log = log.With().Str("domain", name).Str("op", string(op)).Logger()

	switch op {
	case OpStart:
		return startDomain(lv, log, def, hw)
	case OpStop, OpPause, OpReset:
		dom, err := lv.DomainLookupByName(name)
		if err != nil {
			return fmt.Errorf("VM '%s' not found: %w", name, err)
		}
		if err := requireState(lv, dom, op); err != nil {
			return err
		}
		return runOnActive(lv, dom, op)
	default:
		return fmt.Errorf("unsupported operation %q", op)
	}
}

func startDomain(lv libvirtClient, log zerolog.Logger, def *libvirtxml.Domain, hw *v1alpha1.HardwareProfile) error {
	name := def.Name

	dom, err := lv.DomainLookupByName(name)
	if hw != nil || err != nil {
		if hw != nil {
			hangarlibvirt.ApplyHardware(def, *hw)
			log.Info().Str("hardware", hw.Name).Msg("defining domain with hardware profile")
		} else {
			log.Info().Msg("domain not defined, defining from file")
		}

		xml, err := def.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal domain XML: %w", err)
		}
		if dom, err = lv.DomainDefineXML(xml); err != nil {
			return fmt.Errorf("failed to define VM '%s': %w", name, err)
		}
	}

	state, _, err := lv.DomainGetState(dom, 0)
	if err != nil {
		return fmt.Errorf("failed to get state of VM '%s': %w", name, err)
	}
	if state == domainStateRunning {
		return fmt.Errorf("VM '%s' is already running", name)
	}

	if err := lv.DomainCreate(dom); err != nil {
		return fmt.Errorf("failed to start VM '%s': %w", name, err)
	}
	log.Info().Msg("domain started")
	return nil
}

// requireState checks that dom is in a state op can act on.
func requireState(lv libvirtClient, dom libvirt.Domain, op Operation) error {
	state, _, err := lv.DomainGetState(dom, 0)
	if err != nil {
		return fmt.Errorf("failed to get state of VM '%s': %w", dom.Name, err)
	}

	switch op {
	case OpStop, OpReset:
		if state != domainStateRunning && state != domainStatePaused {
			return fmt.Errorf("cannot %s VM '%s': %s", op, dom.Name, stateToString(state))
		}
	case OpPause:
		if state != domainStateRunning {
			return fmt.Errorf("cannot pause VM '%s': %s", dom.Name, stateToString(state))
		}
	}
	return nil
}

func runOnActive(lv libvirtClient, dom libvirt.Domain, op Operation) error {
	var err error
	switch op {
	case OpStop:
		err = lv.DomainShutdown(dom)
	case OpPause:
		err = lv.DomainSuspend(dom)
	case OpReset:
		err = lv.DomainReset(dom, 0)
	}
	if err != nil {
		return fmt.Errorf("failed to %s VM '%s': %w", op, dom.Name, err)
	}
	return nil
}

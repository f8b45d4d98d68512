package vmctl

import (
	"fmt"
	"sync"

	"github.com/digitalocean/go-libvirt"
)

// mockLibvirtClient is a mock implementation of the libvirtClient interface for testing.
type mockLibvirtClient struct {
	mu sync.Mutex

	// Configurable behavior
	connectListAllDomainsFunc func(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error)
	domainLookupByNameFunc    func(name string) (libvirt.Domain, error)
	domainDefineXMLFunc       func(xml string) (libvirt.Domain, error)
	domainGetStateFunc        func(dom libvirt.Domain, flags uint32) (int32, int32, error)
	domainCreateFunc          func(dom libvirt.Domain) error
	domainShutdownFunc        func(dom libvirt.Domain) error
	domainSuspendFunc         func(dom libvirt.Domain) error
	domainResetFunc           func(dom libvirt.Domain, flags uint32) error

	// Call tracking
	connectListAllDomainsFlags []libvirt.ConnectListAllDomainsFlags
	domainLookupByNameCalls    []string
	domainDefineXMLCalls       []string
	domainGetStateCalls        []libvirt.Domain
	domainCreateCalls          []libvirt.Domain
	domainShutdownCalls        []libvirt.Domain
	domainSuspendCalls         []libvirt.Domain
	domainResetCalls           []libvirt.Domain
}

// newMockLibvirtClient creates a mock where every domain exists and is shut off.
func newMockLibvirtClient() *mockLibvirtClient {
	m := &mockLibvirtClient{}

	m.connectListAllDomainsFunc = func(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error) {
		return []libvirt.Domain{}, 0, nil
	}
	m.domainLookupByNameFunc = func(name string) (libvirt.Domain, error) {
		return libvirt.Domain{Name: name}, nil
	}
	m.domainDefineXMLFunc = func(xml string) (libvirt.Domain, error) {
		return libvirt.Domain{Name: "defined"}, nil
	}
	m.domainGetStateFunc = func(dom libvirt.Domain, flags uint32) (int32, int32, error) {
		return 5, 0, nil // VIR_DOMAIN_SHUTOFF
	}
	m.domainCreateFunc = func(dom libvirt.Domain) error { return nil }
	m.domainShutdownFunc = func(dom libvirt.Domain) error { return nil }
	m.domainSuspendFunc = func(dom libvirt.Domain) error { return nil }
	m.domainResetFunc = func(dom libvirt.Domain, flags uint32) error { return nil }

	return m
}

// withState makes every domain report state.
func (m *mockLibvirtClient) withState(state int32) *mockLibvirtClient {
	m.domainGetStateFunc = func(dom libvirt.Domain, flags uint32) (int32, int32, error) {
		return state, 0, nil
	}
	return m
}

// withUndefined makes every lookup fail.
func (m *mockLibvirtClient) withUndefined() *mockLibvirtClient {
	m.domainLookupByNameFunc = func(name string) (libvirt.Domain, error) {
		return libvirt.Domain{}, fmt.Errorf("domain not found: %s", name)
	}
	return m
}

func (m *mockLibvirtClient) ConnectListAllDomains(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error) {
	m.mu.Lock()
	m.connectListAllDomainsFlags = append(m.connectListAllDomainsFlags, flags)
	m.mu.Unlock()
	return m.connectListAllDomainsFunc(needResults, flags)
}

func (m *mockLibvirtClient) DomainLookupByName(name string) (libvirt.Domain, error) {
	m.mu.Lock()
	m.domainLookupByNameCalls = append(m.domainLookupByNameCalls, name)
	m.mu.Unlock()
	return m.domainLookupByNameFunc(name)
}

func (m *mockLibvirtClient) DomainDefineXML(xml string) (libvirt.Domain, error) {
	m.mu.Lock()
	m.domainDefineXMLCalls = append(m.domainDefineXMLCalls, xml)
	m.mu.Unlock()
	return m.domainDefineXMLFunc(xml)
}

func (m *mockLibvirtClient) DomainGetState(dom libvirt.Domain, flags uint32) (int32, int32, error) {
	m.mu.Lock()
	m.domainGetStateCalls = append(m.domainGetStateCalls, dom)
	m.mu.Unlock()
	return m.domainGetStateFunc(dom, flags)
}

func (m *mockLibvirtClient) DomainCreate(dom libvirt.Domain) error {
	m.mu.Lock()
	m.domainCreateCalls = append(m.domainCreateCalls, dom)
	m.mu.Unlock()
	return m.domainCreateFunc(dom)
}

func (m *mockLibvirtClient) DomainShutdown(dom libvirt.Domain) error {
	m.mu.Lock()
	m.domainShutdownCalls = append(m.domainShutdownCalls, dom)
	m.mu.Unlock()
	return m.domainShutdownFunc(dom)
}

func (m *mockLibvirtClient) DomainSuspend(dom libvirt.Domain) error {
	m.mu.Lock()
	m.domainSuspendCalls = append(m.domainSuspendCalls, dom)
	m.mu.Unlock()
	return m.domainSuspendFunc(dom)
}

func (m *mockLibvirtClient) DomainReset(dom libvirt.Domain, flags uint32) error {
	m.mu.Lock()
	m.domainResetCalls = append(m.domainResetCalls, dom)
	m.mu.Unlock()
	return m.domainResetFunc(dom, flags)
}

// Verify mockLibvirtClient implements libvirtClient
var _ libvirtClient = (*mockLibvirtClient)(nil)

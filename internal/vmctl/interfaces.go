package vmctl

import (
	"github.com/digitalocean/go-libvirt"
)

// libvirtClient defines the libvirt operations needed for VM control.
//
// In production, this is satisfied by *libvirt.Libvirt directly.
// In tests, this is satisfied by mock implementations.
type libvirtClient interface {
	// ConnectListAllDomains lists domains matching flags
	ConnectListAllDomains(needResults int32, flags libvirt.ConnectListAllDomainsFlags) ([]libvirt.Domain, uint32, error)

	// DomainLookupByName looks up a domain by name
	DomainLookupByName(name string) (libvirt.Domain, error)

	// DomainDefineXML defines (or redefines) a domain from XML
	DomainDefineXML(xml string) (libvirt.Domain, error)

	// DomainGetState gets the state of a domain
	DomainGetState(dom libvirt.Domain, flags uint32) (state int32, reason int32, err error)

	// DomainCreate starts a domain
	DomainCreate(dom libvirt.Domain) error

	// DomainShutdown gracefully shuts down a domain
	DomainShutdown(dom libvirt.Domain) error

	// DomainSuspend pauses a domain
	DomainSuspend(dom libvirt.Domain) error

	// DomainReset hard-resets a domain
	DomainReset(dom libvirt.Domain, flags uint32) error
}

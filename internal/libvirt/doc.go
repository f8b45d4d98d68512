// Package libvirt provides a client wrapper for the local libvirt daemon and
// helpers for the domain XML files that back containers.
//
// This package wraps github.com/digitalocean/go-libvirt to provide:
//   - Connection management (connect, disconnect, ping)
//   - Reading a container's domain definition (libvirt.org/go/libvirtxml)
//   - Rewriting a definition to use a hardware profile's firmware and emulator
//
// Connection Management:
//
//	client, err := libvirt.Connect("", 0)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Hardware Profiles:
//
// A container's vmx_path points at a domain XML file. When a container is
// started with a hardware profile, the definition is read, its loader and
// emulator are replaced, and the result is defined in libvirt:
//
//	xml, err := libvirt.HardwareDefinition(container.VMXPath, profile)
//	if err != nil {
//	    return err
//	}
//	dom, err := client.Libvirt().DomainDefineXML(xml)
//
// Consumer-Side Interfaces:
//
// This package does not define interfaces. Consumers (internal/vmctl) define
// their own libvirtClient interfaces specifying only the operations they
// need. The *libvirt.Libvirt type satisfies these interfaces implicitly.
package libvirt

package reconcile

import (
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
)

// observedInterface turns a NetBox interface resource into enough of a
// model.Interface to run through pkg/diff's field comparison. Only the
// fields DiffCalculator tracks for interfaces are populated; Device is
// filled by the caller since the NetBox resource carries it by ID, not
// by the natural-key name.
func observedInterface(device string, nb netbox.Interface) model.Interface {
	i := model.Interface{
		Device:      device,
		Name:        nb.Name,
		Enabled:     nb.Enabled,
		Description: nb.Description,
		PortType:    model.PortType(nb.Type),
		Mode:        model.SwitchportMode(nb.Mode),
	}
	return i
}

// desiredNetBoxInterface projects a model.Interface into the NetBox
// create/update payload shape. VLAN object IDs and the LAG parent's
// object ID are resolved by the caller (they are NetBox internal ids,
// not the 802.1Q VID or canonical interface name this type carries) and
// passed in separately.
func desiredNetBoxInterface(i model.Interface, deviceID int, untaggedVLANObjID *int, taggedVLANObjIDs []int, lagObjID *int) netbox.Interface {
	return netbox.Interface{
		Device:       &netbox.Ref{ID: deviceID},
		Name:         i.Name,
		Type:         string(i.PortType),
		Enabled:      i.Enabled,
		Description:  i.Description,
		MACAddress:   i.MAC,
		MTU:          i.MTU,
		Mode:         string(i.Mode),
		UntaggedVLAN: untaggedVLANObjID,
		TaggedVLANs:  taggedVLANObjIDs,
		LAGInterface: lagObjID,
	}
}

func observedDevice(nb netbox.Device) model.Device {
	d := model.Device{Name: nb.Name, DeviceType: ""}
	if nb.Site != nil {
		d.Site = nb.Site.Name
	}
	if nb.Role != nil {
		d.Role = nb.Role.Name
	}
	if nb.Platform != nil {
		d.Platform = nb.Platform.Name
	}
	if nb.DeviceType != nil {
		d.DeviceType = nb.DeviceType.Name
	}
	return d
}

func desiredNetBoxDevice(d model.Device, siteID, roleID, platformID, deviceTypeID *int) netbox.Device {
	nb := netbox.Device{Name: d.Key(), Status: "active"}
	if siteID != nil {
		nb.Site = &netbox.Ref{ID: *siteID}
	}
	if roleID != nil {
		nb.Role = &netbox.Ref{ID: *roleID}
	}
	if platformID != nil {
		nb.Platform = &netbox.Ref{ID: *platformID}
	}
	if deviceTypeID != nil {
		nb.DeviceType = &netbox.Ref{ID: *deviceTypeID}
	}
	return nb
}

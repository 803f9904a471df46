// Package netbox implements the REST client contract of spec.md §6
// against a NetBox instance: devices, interfaces, IP addresses, cables,
// VLANs, and inventory items, plus get-or-create helpers for their
// reference fields (manufacturer, device type, site, role, platform).
//
// Response and reference shapes are modeled on
// other_examples/4xoc-netbox_sd's pkg/netbox client (nested Site/Role/
// Platform/Tenant/Device references by ID+Name, rather than bare string
// fields), since that is the only NetBox client in the retrieval pack.
package netbox

// Ref is a nested NetBox object reference as returned embedded in a parent
// resource (e.g. a Device's Site, Role, Platform, Tenant).
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Device mirrors the subset of NetBox's device resource the reconciler
// reads and writes.
type Device struct {
	ID         int    `json:"id,omitempty"`
	Name       string `json:"name"`
	Serial     string `json:"serial,omitempty"`
	AssetTag   string `json:"asset_tag,omitempty"`
	Status     string `json:"status,omitempty"`
	Site       *Ref   `json:"site,omitempty"`
	Role       *Ref   `json:"role,omitempty"`
	Platform   *Ref   `json:"platform,omitempty"`
	Tenant     *Ref   `json:"tenant,omitempty"`
	DeviceType *Ref   `json:"device_type,omitempty"`
}

// Interface mirrors NetBox's device-interface resource.
type Interface struct {
	ID          int    `json:"id,omitempty"`
	Device      *Ref   `json:"device,omitempty"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
	MACAddress  string `json:"mac_address,omitempty"`
	MTU         int    `json:"mtu,omitempty"`
	Mode        string `json:"mode,omitempty"`
	// UntaggedVLAN/TaggedVLANs hold VLAN IDs (NetBox internal object IDs,
	// not 802.1Q VIDs) of VLANs that already exist in NetBox.
	UntaggedVLAN *int  `json:"untagged_vlan,omitempty"`
	TaggedVLANs  []int `json:"tagged_vlans,omitempty"`
	LAGInterface *int  `json:"lag,omitempty"`
}

// IPAddress mirrors NetBox's IP address resource, attached to an
// interface via AssignedObjectID.
type IPAddress struct {
	ID               int    `json:"id,omitempty"`
	Address          string `json:"address"`
	AssignedObjectID int    `json:"assigned_object_id,omitempty"`
	Status           string `json:"status,omitempty"`
}

// VLAN mirrors NetBox's VLAN resource.
type VLAN struct {
	ID     int    `json:"id,omitempty"`
	VID    int    `json:"vid"`
	Name   string `json:"name"`
	Site   *Ref   `json:"site,omitempty"`
	Status string `json:"status,omitempty"`
}

// Cable mirrors NetBox's cable resource connecting two terminations.
type Cable struct {
	ID          int    `json:"id,omitempty"`
	Status      string `json:"status,omitempty"`
	ATerminations []CableTermination `json:"a_terminations,omitempty"`
	BTerminations []CableTermination `json:"b_terminations,omitempty"`
}

// CableTermination identifies one end of a cable by interface object ID.
type CableTermination struct {
	ObjectType string `json:"object_type"`
	ObjectID   int    `json:"object_id"`
}

// InventoryItem mirrors NetBox's inventory-item resource.
type InventoryItem struct {
	ID          int    `json:"id,omitempty"`
	Device      *Ref   `json:"device,omitempty"`
	Name        string `json:"name"`
	PartID      string `json:"part_id,omitempty"`
	Serial      string `json:"serial,omitempty"`
	Manufacturer *Ref  `json:"manufacturer,omitempty"`
	Description string `json:"description,omitempty"`
}

// page is the envelope NetBox's list endpoints wrap results in.
type page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

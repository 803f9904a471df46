package model

// MACType distinguishes how a MAC-address-table entry was learned.
type MACType string

const (
	MACDynamic MACType = "dynamic"
	MACStatic  MACType = "static"
	MACSticky  MACType = "sticky"
)

// MACEntry is one row of a device's MAC address table.
type MACEntry struct {
	// MAC is the canonical IEEE form AA:BB:CC:DD:EE:FF.
	MAC       string
	VLANID    int
	Interface string
	Type      MACType
	Device    string
}

// NeighborType classifies how an LLDPNeighbor's identity was determined.
type NeighborType string

const (
	NeighborHostname NeighborType = "hostname"
	NeighborMAC      NeighborType = "mac"
	NeighborIP       NeighborType = "ip"
	NeighborUnknown  NeighborType = "unknown"
)

// LLDPNeighbor is one adjacency discovered via LLDP/CDP.
type LLDPNeighbor struct {
	LocalDevice    string
	LocalInterface string

	// RemoteHostname is set when the neighbor advertised a system name;
	// otherwise RemoteMAC or RemoteIP provide a fallback identity.
	RemoteHostname  string
	RemoteMAC       string
	RemoteIP        string
	RemoteInterface string
	RemotePlatform  string
	RemoteDescription string

	NeighborType NeighborType
}

// RemoteIdentity returns the best available identifier for the remote end,
// in the fallback order spec.md §3 specifies: hostname, then mac, then ip.
func (n LLDPNeighbor) RemoteIdentity() (value string, kind NeighborType) {
	switch {
	case n.RemoteHostname != "":
		return n.RemoteHostname, NeighborHostname
	case n.RemoteMAC != "":
		return n.RemoteMAC, NeighborMAC
	case n.RemoteIP != "":
		return n.RemoteIP, NeighborIP
	default:
		return "", NeighborUnknown
	}
}

// InventoryKind classifies a physical inventory item.
type InventoryKind string

const (
	InventoryChassis InventoryKind = "chassis"
	InventoryModule  InventoryKind = "module"
	InventorySFP     InventoryKind = "sfp"
	InventoryPSU     InventoryKind = "psu"
	InventoryFan     InventoryKind = "fan"
	InventoryOther   InventoryKind = "other"
)

// InventoryItem is one physical/replaceable component reported by a device.
type InventoryItem struct {
	Device      string
	Slot        string
	PartID      string
	Serial      string
	VendorTag   string
	Description string
	Kind        InventoryKind
}

// VLAN is a site-scoped VLAN, derived from SVI interfaces during
// reconciliation phase 4 (spec.md §4.8).
type VLAN struct {
	VID    int
	Name   string
	Site   string
	Status string
}

// CableEndpoint identifies one side of a physical link.
type CableEndpoint struct {
	Device    string
	Interface string
}

// Cable is a physical link inferred from LLDP/CDP observations. The
// endpoint pair is logically unordered: Cable{A,B} and Cable{B,A} describe
// the same cable (spec.md §8 scenario 6).
type Cable struct {
	EndpointA CableEndpoint
	EndpointB CableEndpoint
	Status    string
}

// Key returns a canonical, order-independent identity for the cable so
// that A-B and B-A compare equal.
func (c Cable) Key() string {
	a := c.EndpointA.Device + "/" + c.EndpointA.Interface
	b := c.EndpointB.Device + "/" + c.EndpointB.Interface
	if a <= b {
		return a + "<->" + b
	}
	return b + "<->" + a
}

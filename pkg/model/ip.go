package model

// IPAddress is one IP address attached to a device interface, keyed by
// (device, interface, address) per spec.md §4.7's natural-key comparison.
type IPAddress struct {
	Device    string
	Interface string
	Address   string
	// Primary marks the address NetBoxReconciler sets as the device's
	// primary IP (spec.md §4.8 phase 3).
	Primary bool
}

// Key returns the natural key DiffCalculator compares IP addresses by.
func (ip IPAddress) Key() string {
	return ip.Device + "/" + ip.Interface + "/" + ip.Address
}

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/netfleet/netinv/pkg/model"
)

// fleetFile is the YAML shape of the -f/--devices file: a flat device
// list, modeled on the teacher's Config.Hosts (pkg/manager/config.go)
// but without groups/macros/dashboards, which have no analog here.
//
// Example:
//
//	devices:
//	  - host: sw1.dc1.example.com
//	    platform: cisco_ios
//	    site: dc1
//	    role: access-switch
type fleetFile struct {
	Devices []fleetDevice `yaml:"devices"`
}

type fleetDevice struct {
	Host       string `yaml:"host"`
	Platform   string `yaml:"platform"`
	DeviceType string `yaml:"device_type,omitempty"`
	Site       string `yaml:"site,omitempty"`
	Role       string `yaml:"role,omitempty"`
	Name       string `yaml:"name,omitempty"`
	Enabled    *bool  `yaml:"enabled,omitempty"`
}

// loadFleet reads and validates the device list at path, per spec.md §3's
// Device.Validate invariants (host and platform required).
func loadFleet(path string) ([]model.Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f fleetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(f.Devices) == 0 {
		return nil, fmt.Errorf("%s: no devices listed", path)
	}

	out := make([]model.Device, 0, len(f.Devices))
	for _, d := range f.Devices {
		enabled := true
		if d.Enabled != nil {
			enabled = *d.Enabled
		}
		dev := model.Device{
			Host:       d.Host,
			Platform:   d.Platform,
			DeviceType: d.DeviceType,
			Site:       d.Site,
			Role:       d.Role,
			Name:       d.Name,
			Enabled:    enabled,
		}
		if err := dev.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, dev)
	}
	return out, nil
}

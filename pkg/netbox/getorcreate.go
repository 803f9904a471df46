package netbox

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// refResource is the shared shape of NetBox's small lookup resources
// (sites, roles, platforms, manufacturers, device types) that the
// reconciler get-or-creates as it goes, per spec.md §8's invariant: every
// reference a device/interface record writes either already existed or
// was created earlier in the same phase.
type refResource struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

func (c *Client) getOrCreateRef(ctx context.Context, listPath, createPath, name string) (*Ref, error) {
	var p page[Ref]
	q := listPath + "?name=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodGet, q, nil, &p); err != nil {
		return nil, err
	}
	if len(p.Results) > 0 {
		return &p.Results[0], nil
	}
	var created Ref
	body := refResource{Name: name, Slug: slugify(name)}
	if err := c.do(ctx, http.MethodPost, createPath, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetOrCreateSite resolves a site by name, creating it if absent.
func (c *Client) GetOrCreateSite(ctx context.Context, name string) (*Ref, error) {
	return c.getOrCreateRef(ctx, "/api/dcim/sites/", "/api/dcim/sites/", name)
}

// GetOrCreateRole resolves a device role by name, creating it if absent.
func (c *Client) GetOrCreateRole(ctx context.Context, name string) (*Ref, error) {
	return c.getOrCreateRef(ctx, "/api/dcim/device-roles/", "/api/dcim/device-roles/", name)
}

// GetOrCreatePlatform resolves a platform by name, creating it if absent.
func (c *Client) GetOrCreatePlatform(ctx context.Context, name string) (*Ref, error) {
	return c.getOrCreateRef(ctx, "/api/dcim/platforms/", "/api/dcim/platforms/", name)
}

// GetOrCreateManufacturer resolves a manufacturer by name, creating it if
// absent.
func (c *Client) GetOrCreateManufacturer(ctx context.Context, name string) (*Ref, error) {
	return c.getOrCreateRef(ctx, "/api/dcim/manufacturers/", "/api/dcim/manufacturers/", name)
}

// GetOrCreateDeviceType resolves a device type by model name under the
// given manufacturer, creating it if absent.
func (c *Client) GetOrCreateDeviceType(ctx context.Context, manufacturerID int, model string) (*Ref, error) {
	var p page[Ref]
	q := "/api/dcim/device-types/?model=" + url.QueryEscape(model) + "&manufacturer_id=" + strconv.Itoa(manufacturerID)
	if err := c.do(ctx, http.MethodGet, q, nil, &p); err != nil {
		return nil, err
	}
	if len(p.Results) > 0 {
		return &p.Results[0], nil
	}
	var created Ref
	body := map[string]any{"model": model, "slug": slugify(model), "manufacturer": manufacturerID}
	if err := c.do(ctx, http.MethodPost, "/api/dcim/device-types/", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

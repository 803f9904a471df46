package netbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/netfleet/netinv/pkg/model"
)

// Client is a token-authenticated NetBox REST client. No third-party HTTP
// client library appears anywhere in the retrieval pack (see DESIGN.md),
// so this is built directly on net/http with an explicit retry/backoff
// wrapper around every call, mirroring the teacher's own retry-wrapper
// style from its SSH collection path.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	MaxRetries int
	Backoff    time.Duration
}

// New builds a Client. baseURL should not have a trailing slash.
func New(baseURL, token string, timeout time.Duration, maxRetries int, backoff time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
		MaxRetries: maxRetries,
		Backoff:    backoff,
	}
}

// do issues one HTTP request with retry-on-(5xx|429) per spec.md §4.10,
// never retrying 401/403 (those are classified ErrAuthenticationFailed
// and are run-fatal, per spec.md §7).
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("netbox: marshal request: %w", err)
		}
	}

	attempts := c.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("netbox: build request: %w", err)
		}
		req.Header.Set("Authorization", "Token "+c.Token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", model.ErrUnreachableHost, err)
			if attempt < attempts-1 {
				time.Sleep(c.Backoff)
				continue
			}
			return lastErr
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: netbox %s %s: %d", model.ErrAuthenticationFailed, method, path, resp.StatusCode)
		case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
			lastErr = fmt.Errorf("%w: netbox %s %s: %d: %s", model.ErrDriver, method, path, resp.StatusCode, string(respBody))
			if attempt < attempts-1 {
				time.Sleep(c.Backoff)
				continue
			}
			return lastErr
		case resp.StatusCode >= 400:
			return fmt.Errorf("netbox %s %s: %d: %s", method, path, resp.StatusCode, string(respBody))
		}

		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("netbox: decode response from %s %s: %w", method, path, err)
			}
		}
		return nil
	}
	return lastErr
}

// --- Devices ---

func (c *Client) GetDeviceByName(ctx context.Context, name string) (*Device, error) {
	var p page[Device]
	if err := c.do(ctx, http.MethodGet, "/api/dcim/devices/?name="+url.QueryEscape(name), nil, &p); err != nil {
		return nil, err
	}
	if len(p.Results) == 0 {
		return nil, nil
	}
	return &p.Results[0], nil
}

// ListDevices lists devices, optionally scoped by filter (keys like
// "site", "role", "tenant", "status" map directly to NetBox's filter
// query parameters), per spec.md §6's "list devices by filter
// (site/role/status/tenant)" contract.
func (c *Client) ListDevices(ctx context.Context, filter map[string]string) ([]Device, error) {
	q := url.Values{}
	q.Set("limit", "0")
	for k, v := range filter {
		if v != "" {
			q.Set(k, v)
		}
	}
	var p page[Device]
	if err := c.do(ctx, http.MethodGet, "/api/dcim/devices/?"+q.Encode(), nil, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

func (c *Client) CreateDevice(ctx context.Context, d Device) (*Device, error) {
	var out Device
	if err := c.do(ctx, http.MethodPost, "/api/dcim/devices/", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDevice(ctx context.Context, id int, patch Device) (*Device, error) {
	var out Device
	if err := c.do(ctx, http.MethodPatch, "/api/dcim/devices/"+strconv.Itoa(id)+"/", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDevice(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/dcim/devices/"+strconv.Itoa(id)+"/", nil, nil)
}

// --- Interfaces ---

func (c *Client) ListInterfaces(ctx context.Context, deviceID int) ([]Interface, error) {
	var p page[Interface]
	q := "/api/dcim/interfaces/?device_id=" + strconv.Itoa(deviceID) + "&limit=0"
	if err := c.do(ctx, http.MethodGet, q, nil, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

func (c *Client) CreateInterface(ctx context.Context, i Interface) (*Interface, error) {
	var out Interface
	if err := c.do(ctx, http.MethodPost, "/api/dcim/interfaces/", i, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateInterface(ctx context.Context, id int, patch Interface) (*Interface, error) {
	var out Interface
	if err := c.do(ctx, http.MethodPatch, "/api/dcim/interfaces/"+strconv.Itoa(id)+"/", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteInterface(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/dcim/interfaces/"+strconv.Itoa(id)+"/", nil, nil)
}

// --- IP addresses ---

func (c *Client) ListIPAddresses(ctx context.Context, deviceID int) ([]IPAddress, error) {
	var p page[IPAddress]
	q := "/api/ipam/ip-addresses/?device_id=" + strconv.Itoa(deviceID) + "&limit=0"
	if err := c.do(ctx, http.MethodGet, q, nil, &p); err != nil {
		return nil, err
	}
	return p.Results, nil
}

func (c *Client) CreateIPAddress(ctx context.Context, ip IPAddress) (*IPAddress, error) {
	var out IPAddress
	if err := c.do(ctx, http.MethodPost, "/api/ipam/ip-addresses/", ip, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateIPAddress(ctx context.Context, id int, patch IPAddress) (*IPAddress, error) {
	var out IPAddress
	if err := c.do(ctx, http.MethodPatch, "/api/ipam/ip-addresses/"+strconv.Itoa(id)+"/", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetDevicePrimaryIP(ctx context.Context, deviceID, ipID int) error {
	return c.do(ctx, http.MethodPatch, "/api/dcim/devices/"+strconv.Itoa(deviceID)+"/",
		map[string]int{"primary_ip4": ipID}, nil)
}

func (c *Client) DeleteIPAddress(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/ipam/ip-addresses/"+strconv.Itoa(id)+"/", nil, nil)
}

// --- VLANs ---

func (c *Client) GetVLANByVIDAndSite(ctx context.Context, vid int, siteID int) (*VLAN, error) {
	var p page[VLAN]
	q := fmt.Sprintf("/api/ipam/vlans/?vid=%d&site_id=%d", vid, siteID)
	if err := c.do(ctx, http.MethodGet, q, nil, &p); err != nil {
		return nil, err
	}
	if len(p.Results) == 0 {
		return nil, nil
	}
	return &p.Results[0], nil
}

func (c *Client) CreateVLAN(ctx context.Context, v VLAN) (*VLAN, error) {
	var out VLAN
	if err := c.do(ctx, http.MethodPost, "/api/ipam/vlans/", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVLAN(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/ipam/vlans/"+strconv.Itoa(id)+"/", nil, nil)
}

// --- Cables ---

func (c *Client) CreateCable(ctx context.Context, cable Cable) (*Cable, error) {
	var out Cable
	if err := c.do(ctx, http.MethodPost, "/api/dcim/cables/", cable, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCable(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/dcim/cables/"+strconv.Itoa(id)+"/", nil, nil)
}

// --- Inventory items ---

func (c *Client) CreateInventoryItem(ctx context.Context, item InventoryItem) (*InventoryItem, error) {
	var out InventoryItem
	if err := c.do(ctx, http.MethodPost, "/api/dcim/inventory-items/", item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateInventoryItem(ctx context.Context, id int, patch InventoryItem) (*InventoryItem, error) {
	var out InventoryItem
	if err := c.do(ctx, http.MethodPatch, "/api/dcim/inventory-items/"+strconv.Itoa(id)+"/", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteInventoryItem(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/dcim/inventory-items/"+strconv.Itoa(id)+"/", nil, nil)
}

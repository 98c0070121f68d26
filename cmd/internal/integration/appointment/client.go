package appointment

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable covers every transport error, timeout, non-2xx status and
// decode failure from the Appointment service. Callers get a single failure
// kind and a single abort policy.
var ErrUnavailable = errors.New("appointment service unavailable")

// Appointment mirrors the Appointment service's JSON contract, which uses
// camelCase field names unlike our own snake_case responses.
type Appointment struct {
	AppointmentID     string `json:"appointmentId"`
	HostID            string `json:"hostId"`
	HostUsername      string `json:"hostUsername"`
	HostNickname      string `json:"hostNickname"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	LocationID        string `json:"locationId"`
	AppointmentStatus string `json:"appointmentStatus"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration, trustAllCerts bool) *Client {
	transport := http.DefaultTransport
	if trustAllCerts {
		// Development setups run the sibling services with self-signed certs.
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
	}
}

// GetByID fetches one appointment. A 404 from the remote service is a domain
// absence, not an error, and comes back as (nil, nil).
func (c *Client) GetByID(ctx context.Context, id string) (*Appointment, error) {
	var appt Appointment
	found, err := c.getJSON(ctx, "/appointments/"+url.PathEscape(id), &appt)
	if err != nil || !found {
		return nil, err
	}
	return &appt, nil
}

func (c *Client) Exists(ctx context.Context, id string) (bool, error) {
	appt, err := c.GetByID(ctx, id)
	return appt != nil, err
}

func (c *Client) FindAll(ctx context.Context) ([]*Appointment, error) {
	var appts []*Appointment
	found, err := c.getJSON(ctx, "/appointments", &appts)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*Appointment{}, nil
	}
	return appts, nil
}

func (c *Client) FindByHostID(ctx context.Context, hostId string) ([]*Appointment, error) {
	var appts []*Appointment
	found, err := c.getJSON(ctx, "/appointments/host/"+url.PathEscape(hostId), &appts)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*Appointment{}, nil
	}
	return appts, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Appointment-Agent", "guest-service/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

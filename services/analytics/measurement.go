package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// measurementEndpoint is the GA4 Measurement Protocol collection URL
var measurementEndpoint = "https://www.google-analytics.com/mp/collect"

// MeasurementProtocol forwards events to Google Analytics 4. It is inert until
// Init receives a measurement id.
type MeasurementProtocol struct {
	apiSecret       string
	measurementID   string
	defaultClientID string
	client          *http.Client
}

func NewMeasurementProtocol(apiSecret, defaultClientID string) *MeasurementProtocol {
	return &MeasurementProtocol{
		apiSecret:       apiSecret,
		defaultClientID: defaultClientID,
		client:          &http.Client{Timeout: 5 * time.Second},
	}
}

func (m *MeasurementProtocol) Init(measurementID string) error {
	if measurementID == "" {
		return fmt.Errorf("measurement id is required")
	}
	if m.apiSecret == "" {
		return fmt.Errorf("api secret is required for measurement id %s", measurementID)
	}
	m.measurementID = measurementID
	return nil
}

type mpEvent struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

type mpBody struct {
	ClientID string    `json:"client_id"`
	Events   []mpEvent `json:"events"`
}

func (m *MeasurementProtocol) Record(e Event) {
	if m.measurementID == "" {
		return
	}
	if err := m.send(e); err != nil {
		log.Printf("[ANALYTICS] measurement protocol: %v", err)
	}
}

func (m *MeasurementProtocol) send(e Event) error {
	clientID := e.ClientID
	if clientID == "" {
		clientID = m.defaultClientID
	}

	params := map[string]any{"event_category": e.Category}
	if e.Label != "" {
		params["event_label"] = e.Label
	}
	if e.Value != nil {
		params["value"] = *e.Value
	}

	body, err := json.Marshal(mpBody{
		ClientID: clientID,
		Events:   []mpEvent{{Name: e.Action, Params: params}},
	})
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	q := url.Values{"measurement_id": {m.measurementID}, "api_secret": {m.apiSecret}}
	resp, err := m.client.Post(measurementEndpoint+"?"+q.Encode(), "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

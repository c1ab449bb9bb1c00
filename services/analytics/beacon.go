package analytics

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

// Beacon posts events to the site's /api/events endpoint, the same path the
// browser uses.
type Beacon struct {
	baseURL  string
	clientID string
	client   *http.Client
}

func NewBeacon(baseURL, clientID string) *Beacon {
	return &Beacon{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (b *Beacon) Init(string) error { return nil }

func (b *Beacon) Record(e Event) {
	if e.ClientID == "" {
		e.ClientID = b.clientID
	}
	body, err := json.Marshal(e.ToPayload())
	if err != nil {
		return
	}
	resp, err := b.client.Post(b.baseURL+"/api/events", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[ANALYTICS] beacon failed: %v", err)
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("[ANALYTICS] beacon rejected with status %d", resp.StatusCode)
	}
}

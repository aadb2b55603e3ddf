package store

import "time"

// Message types
const (
	TypeText = "text"
	TypeFile = "file"
)

// DeviceInfo is an immutable snapshot of the creating client.
type DeviceInfo struct {
	UserAgent string `json:"userAgent"`
	IP        string `json:"ip"`
}

// Message is the unit of the durable log.
type Message struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
	UserID  string `json:"userId"`
	// Name and URL are populated only for file messages. URL carries the
	// encoded payload and is stripped from list responses and broadcast
	// events; it is only returned on direct fetch by id.
	Name         string `json:"name,omitempty"`
	URL          string `json:"url,omitempty"`
	ShareableURL string `json:"shareableUrl,omitempty"`

	UploadedAt time.Time   `json:"uploadedAt"`
	DeviceInfo *DeviceInfo `json:"deviceInfo,omitempty"`

	// SeenBy holds viewer identifiers (client IPs) that acknowledged the
	// message. Duplicate-free, grows until the message is deleted.
	SeenBy []string `json:"seenBy"`
}

// WithoutURL returns a copy safe for list responses and broadcasts.
func (m Message) WithoutURL() Message {
	m.URL = ""
	return m
}

// SeenByContains reports whether viewer already acknowledged the message.
func (m Message) SeenByContains(viewer string) bool {
	for _, v := range m.SeenBy {
		if v == viewer {
			return true
		}
	}
	return false
}

// Expired reports whether the message age exceeds ttl at the given instant.
func (m Message) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(m.UploadedAt) > ttl
}

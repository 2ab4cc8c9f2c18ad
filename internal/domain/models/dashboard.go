// internal/domain/models/dashboard.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DashboardVersion is the current dashboard document format version.
const DashboardVersion = 1

// CardConfig is one user-configured summary tile. ID and CreatedAt are
// immutable after creation; UpdatedAt is refreshed on every mutation.
// JSON field names match the persisted dashboard document.
type CardConfig struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ActivityTypes []string  `json:"activityTypes"`
	TimeFrame     TimeFrame `json:"timeFrame"`
	Metric        Metric    `json:"metric"`
	Goal          *float64  `json:"goal,omitempty"`
	Title         string    `json:"title"`
	Visible       bool      `json:"visible"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CardMap is an insertion-order-preserving map of cards keyed by card id.
// Display ordering sorts on the explicit Position field; insertion order is
// only the tie-breaker, so it must survive a decode/encode round trip rather
// than depend on Go map iteration.
type CardMap struct {
	order []string
	cards map[string]CardConfig
}

// Len returns the number of cards.
func (m *CardMap) Len() int { return len(m.order) }

// Get returns the card with the given id.
func (m *CardMap) Get(id string) (CardConfig, bool) {
	c, ok := m.cards[id]
	return c, ok
}

// Set inserts or replaces a card under card.ID. A new id is appended to the
// insertion order; replacing an existing card keeps its original slot.
func (m *CardMap) Set(card CardConfig) {
	if m.cards == nil {
		m.cards = make(map[string]CardConfig)
	}
	if _, exists := m.cards[card.ID]; !exists {
		m.order = append(m.order, card.ID)
	}
	m.cards[card.ID] = card
}

// Delete removes the card with the given id, reporting whether it existed.
func (m *CardMap) Delete(id string) bool {
	if _, ok := m.cards[id]; !ok {
		return false
	}
	delete(m.cards, id)
	for i, cid := range m.order {
		if cid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// Cards returns all cards in insertion order.
func (m *CardMap) Cards() []CardConfig {
	out := make([]CardConfig, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.cards[id])
	}
	return out
}

// MaxPosition returns the largest position across all cards, or 0 when empty.
func (m *CardMap) MaxPosition() int {
	max := 0
	for _, c := range m.cards {
		if c.Position > max {
			max = c.Position
		}
	}
	return max
}

// MarshalJSON encodes the cards as a JSON object in insertion order.
func (m CardMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.cards[id])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of cards, preserving key order.
// The stdlib map decode would lose ordering, so keys are walked with a
// token decoder instead.
func (m *CardMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("cards: expected object, got %v", tok)
	}

	m.order = nil
	m.cards = make(map[string]CardConfig)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("cards: expected string key, got %v", tok)
		}
		var card CardConfig
		if err := dec.Decode(&card); err != nil {
			return err
		}
		card.ID = id // the map key is authoritative
		m.Set(card)
	}
	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Preferences holds dashboard-wide display defaults.
type Preferences struct {
	DefaultCardSize  string `json:"defaultCardSize"`
	DefaultTimeFrame string `json:"defaultTimeFrame"`
}

// DefaultPreferences returns the preferences applied to new and pre-
// preferences dashboard documents.
func DefaultPreferences() Preferences {
	return Preferences{DefaultCardSize: "medium", DefaultTimeFrame: "week"}
}

// DashboardConfig is the full persisted dashboard document for one user.
// Unknown top-level fields written by newer releases are captured into Extra
// on decode and re-emitted on encode, so a read-modify-write cycle through an
// older binary never drops them.
type DashboardConfig struct {
	Version     int         `json:"version"`
	Cards       CardMap     `json:"cards"`
	Layout      string      `json:"layout"`
	Preferences Preferences `json:"preferences"`

	Extra map[string]json.RawMessage `json:"-"`
}

// DefaultDashboard returns a fresh dashboard document.
func DefaultDashboard() DashboardConfig {
	return DashboardConfig{
		Version:     DashboardVersion,
		Layout:      "grid",
		Preferences: DefaultPreferences(),
	}
}

// dashboardKnownKeys are the top-level fields this release interprets.
var dashboardKnownKeys = map[string]bool{
	"version": true, "cards": true, "layout": true, "preferences": true,
}

// MarshalJSON emits known fields followed by any preserved unknown fields.
func (c DashboardConfig) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	fmt.Fprintf(&buf, `"version":%d,"cards":`, c.Version)
	cards, err := json.Marshal(c.Cards)
	if err != nil {
		return nil, err
	}
	buf.Write(cards)
	layout, err := json.Marshal(c.Layout)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`,"layout":`)
	buf.Write(layout)
	prefs, err := json.Marshal(c.Preferences)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`,"preferences":`)
	buf.Write(prefs)

	extraKeys := make([]string, 0, len(c.Extra))
	for k := range c.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(c.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes known fields and stashes everything else in Extra.
func (c *DashboardConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = DashboardConfig{}
	if v, ok := raw["version"]; ok {
		if err := json.Unmarshal(v, &c.Version); err != nil {
			return err
		}
	}
	if v, ok := raw["cards"]; ok {
		if err := json.Unmarshal(v, &c.Cards); err != nil {
			return err
		}
	}
	if v, ok := raw["layout"]; ok {
		if err := json.Unmarshal(v, &c.Layout); err != nil {
			return err
		}
	}
	if v, ok := raw["preferences"]; ok {
		if err := json.Unmarshal(v, &c.Preferences); err != nil {
			return err
		}
	}
	for k, v := range raw {
		if dashboardKnownKeys[k] {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]json.RawMessage)
		}
		c.Extra[k] = v
	}
	return nil
}

package playable

import (
	"bytes"
	"encoding/json"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/deck"
)

// Fields are the keys of an outbound message
type Fields map[string]interface{}

// Response is a container to determine who gets the specified message
// If Recipient is empty, it's intended as a broadcast
type Response struct {
	Recipient string
	Fields    Fields
}

// MarshalJSON encodes only the message fields
func (r *Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields)
}

// Action returns the action tag of the response
func (r *Response) Action() string {
	s, _ := r.Fields[FieldAction].(string)
	return s
}

// IsBroadcast returns true if every connection should receive the response
func (r *Response) IsBroadcast() bool {
	return r.Recipient == ""
}

// NewErrorResponse returns an error message for a single player
func NewErrorResponse(recipient string, err error) *Response {
	return &Response{
		Recipient: recipient,
		Fields:    Fields{FieldError: err.Error()},
	}
}

// PayloadIn is the format we expect from the client
// The action tag is split off, every other key is kept in AdditionalData
type PayloadIn struct {
	Action         string
	AdditionalData AdditionalData
}

// UnmarshalJSON decodes a JSON object into the action tag and its fields
func (p *PayloadIn) UnmarshalJSON(b []byte) error {
	var data AdditionalData
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}

	if data == nil {
		data = AdditionalData{}
	}

	p.Action, _ = data[FieldAction].(string)
	delete(data, FieldAction)
	p.AdditionalData = data
	return nil
}

// MarshalJSON encodes the payload as a flat JSON object
func (p PayloadIn) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{}, len(p.AdditionalData)+1)
	for k, v := range p.AdditionalData {
		data[k] = v
	}

	data[FieldAction] = p.Action
	return json.Marshal(data)
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// Has returns true if the key is present, even if its value is null
func (a AdditionalData) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	floatVal, ok := a[key].(float64)
	if !ok {
		return 0, false
	}

	return int(floatVal), true
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	if !ok {
		return false, false
	}

	return boolVal, true
}

// GetCard returns a card encoded as {"suit": ..., "value": ...}
func (a AdditionalData) GetCard(key string) (deck.Card, bool) {
	return toCard(a[key])
}

// GetCards returns a list of cards
func (a AdditionalData) GetCards(key string) ([]deck.Card, bool) {
	slice, ok := a[key].([]interface{})
	if !ok {
		return nil, false
	}

	cards := make([]deck.Card, len(slice))
	for i, val := range slice {
		card, ok := toCard(val)
		if !ok {
			return nil, false
		}

		cards[i] = card
	}

	return cards, true
}

func toCard(val interface{}) (deck.Card, bool) {
	obj, ok := val.(map[string]interface{})
	if !ok {
		return deck.Card{}, false
	}

	suit, ok := obj["suit"].(string)
	if !ok {
		return deck.Card{}, false
	}

	value, ok := obj["value"].(string)
	if !ok {
		return deck.Card{}, false
	}

	return deck.Card{Suit: deck.Suit(suit), Value: deck.Value(value)}, true
}

// OrderedCounts is a player to count map that encodes in turn order
type OrderedCounts struct {
	Order  []string
	Counts map[string]int
}

// MarshalJSON writes the keys in turn order
func (o OrderedCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range o.Order {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(o.Counts[id])
		if err != nil {
			return nil, err
		}

		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

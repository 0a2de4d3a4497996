package cart

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// digest returns the SHA-256 hex of the JSON form of v. encoding/json emits
// struct fields in declaration order and sorts map keys, so equal snapshots
// always hash equally.
func digest(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		// snapshots are plain structs; Marshal cannot fail on them
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GetHash returns a content digest over the selected cart fields
func (c *Cart) GetHash(fields CartHashFields) string {
	return digest(c.snapshot(fields))
}

// DidChange returns true if the selected fields no longer match hash
func (c *Cart) DidChange(hash string, fields CartHashFields) bool {
	return c.GetHash(fields) != hash
}

func (c *Cart) snapshot(fields CartHashFields) interface{} {
	switch fields {
	case CartHashItems:
		return c.itemsSnapshot()
	case CartHashOrder:
		return c.GetOrder()
	default:
		return struct {
			Items    interface{}     `json:"items"`
			Order    Order           `json:"order"`
			Active   string          `json:"active"`
			Customer CustomerDetails `json:"customer"`
			Payment  *PaymentDetails `json:"payment,omitempty"`
		}{c.itemsSnapshot(), c.GetOrder(), c.activeItemID, c.Customer, c.PaymentDetails}
	}
}

func (c *Cart) itemsSnapshot() []interface{} {
	items := make([]interface{}, 0, c.items.Len())
	for _, item := range c.items.Values() {
		items = append(items, item.snapshot(HashAll))
	}
	return items
}

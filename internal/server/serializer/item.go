package serializer

import "github.com/mdouchement/pantry/internal/model"

// Item serializes the public fields of an item.
// The owner reference is a server-side detail and is not rendered.
func Item(m *model.Item) map[string]interface{} {
	return map[string]interface{}{
		"id":          m.ID,
		"title":       m.Title,
		"quantity":    m.Quantity,
		"url":         m.URL,
		"description": m.Description,
		"type":        m.Type,
		"expiryDate":  m.ExpiryDate,
		"createdAt":   m.CreatedAt.UTC(),
		"updatedAt":   m.UpdatedAt.UTC(),
	}
}

// Items serializes a list of items.
func Items(items []*model.Item) []map[string]interface{} {
	rendered := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		rendered = append(rendered, Item(item))
	}
	return rendered
}

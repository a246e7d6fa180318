package model

// ItemTypes are the categories selectable by the dashboard filter.
var ItemTypes = []string{
	"Vegetables",
	"Fruits",
	"Dairy",
	"Condiments",
	"Frozen Food",
	"Nuts & Seeds",
	"Berries",
	"Beans",
	"Legumes",
}

// ValidItemType returns true if t belongs to ItemTypes.
func ValidItemType(t string) bool {
	for _, typ := range ItemTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// An Item represents a database record.
// It belongs to exactly one user through UserID.
type Item struct {
	Base `msgpack:",inline" storm:"inline"`

	UserID      string `json:"-"           msgpack:"user_id"     storm:"index"`
	Title       string `json:"title"       msgpack:"title"`
	Quantity    int    `json:"quantity"    msgpack:"quantity"`
	URL         string `json:"url"         msgpack:"url"`
	Description string `json:"description" msgpack:"description"`
	Type        string `json:"type"        msgpack:"type"        storm:"index"`
	ExpiryDate  string `json:"expiryDate"  msgpack:"expiry_date"`
}

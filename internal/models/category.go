package models

// Category is static reference data seeded at startup, read-only from the API.
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null;size:100;uniqueIndex" json:"name"`
	Icon  string `gorm:"size:50" json:"icon"`
	Color string `gorm:"size:20" json:"color"`
}

// SeedCategories is the fixed category set for a municipal deployment.
func SeedCategories() []Category {
	return []Category{
		{ID: 1, Name: "Pothole", Icon: "road", Color: "#FF6B6B"},
		{ID: 2, Name: "Street Light", Icon: "lightbulb", Color: "#4ECDC4"},
		{ID: 3, Name: "Graffiti", Icon: "spray-can", Color: "#45B7D1"},
		{ID: 4, Name: "Trash", Icon: "trash", Color: "#96CEB4"},
		{ID: 5, Name: "Traffic Sign", Icon: "traffic-cone", Color: "#F39C12"},
		{ID: 6, Name: "Water/Sewer", Icon: "droplet", Color: "#3498DB"},
		{ID: 7, Name: "Parks/Recreation", Icon: "tree", Color: "#27AE60"},
		{ID: 8, Name: "Other", Icon: "alert-circle", Color: "#FECA57"},
	}
}

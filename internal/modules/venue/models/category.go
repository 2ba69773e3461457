package models

// Category is a menu grouping. System categories cannot be deleted.
type Category struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	System bool   `json:"system"`
}

// Categories is the admin view split into the two sets.
type Categories struct {
	System []Category `json:"system_categories"`
	Custom []Category `json:"custom_categories"`
}

// SystemCategories are always present, in this order.
var SystemCategories = []Category{
	{Key: "attractions", Name: "🎪 Аттракционы", System: true},
	{Key: "events", Name: "🎉 Мероприятия", System: true},
	{Key: "services", Name: "🛠️ Услуги", System: true},
	{Key: "info", Name: "ℹ️ Информация", System: true},
}

// IsSystemCategory reports whether key names a built-in category.
func IsSystemCategory(key string) bool {
	for _, c := range SystemCategories {
		if c.Key == key {
			return true
		}
	}
	return false
}

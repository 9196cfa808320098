package category

const (
	Food          = "Food"
	Cafe          = "Cafe"
	Shopping      = "Shopping"
	Alcohol       = "Alcohol"
	Entertainment = "Entertainment"
	Gifts         = "Gifts"
	Health        = "Health"
	Pets          = "Pets"
	Other         = "Other"
)

// CallbackPrefix tags inline button data carrying a category name.
const CallbackPrefix = "category:"

var Defaults = []string{Food, Cafe, Shopping, Alcohol, Entertainment, Gifts, Health, Pets, Other}

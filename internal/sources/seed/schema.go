package seed

// Config is the top-level structure of a seed fixture file.
type Config struct {
	Users     []UserSpec     `yaml:"users"`
	Wishlists []WishlistSpec `yaml:"wishlists"`
}

// UserSpec declares a user plus the API token it authenticates with.
type UserSpec struct {
	Email       string `yaml:"email"`
	DisplayName string `yaml:"display_name,omitempty"`
	APIToken    string `yaml:"api_token,omitempty"`
}

// WishlistSpec declares a wishlist owned by one of the seeded users,
// referenced by email.
type WishlistSpec struct {
	Owner       string     `yaml:"owner"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Visibility  string     `yaml:"visibility,omitempty"`
	ShareToken  string     `yaml:"share_token,omitempty"`
	Wishes      []WishSpec `yaml:"wishes,omitempty"`
}

// WishSpec declares a wish on a seeded wishlist.
type WishSpec struct {
	Title    string `yaml:"title"`
	URL      string `yaml:"url,omitempty"`
	Price    string `yaml:"price,omitempty"`
	ImageURL string `yaml:"image_url,omitempty"`
	Notes    string `yaml:"notes,omitempty"`
}

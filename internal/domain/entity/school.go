package entity

// School is a tenant as reported by the upstream API. This tier never
// owns school records; it only filters and selects them.
type School struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Active  bool   `json:"active"`
	LogoURL string `json:"logo_url,omitempty"`
	Comuna  string `json:"comuna,omitempty"`
}

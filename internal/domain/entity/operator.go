package entity

// OperatorProfile is what the upstream API knows about an admin operator:
// identity plus the school grants that bound school selection.
type OperatorProfile struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Superuser bool     `json:"superuser"`
	SchoolIDs []string `json:"school_ids"`
}

// HasGrant reports whether the operator is granted access to a school.
// Superusers are granted everything.
func (o *OperatorProfile) HasGrant(schoolID string) bool {
	if o.Superuser {
		return true
	}
	for _, id := range o.SchoolIDs {
		if id == schoolID {
			return true
		}
	}
	return false
}

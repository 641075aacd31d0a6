package models

// ContributorIdentity represents a unique contributor after alias resolution.
// Multiple raw (name, email) pairs from the commit history may map to the
// same identity.
type ContributorIdentity struct {
	CanonicalName string   `json:"canonical_name"`
	PrimaryEmail  string   `json:"primary_email"`
	AllEmails     []string `json:"all_emails"`
	AllNames      []string `json:"all_names"`
}

// HasEmail reports whether the given email belongs to this identity
func (ci *ContributorIdentity) HasEmail(email string) bool {
	for _, e := range ci.AllEmails {
		if e == email {
			return true
		}
	}
	return false
}

// HasName reports whether the given name spelling belongs to this identity
func (ci *ContributorIdentity) HasName(name string) bool {
	for _, n := range ci.AllNames {
		if n == name {
			return true
		}
	}
	return false
}

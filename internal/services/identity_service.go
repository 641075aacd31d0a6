package services

import (
	"sort"

	"github.com/alimgiray/codestats/internal/models"
)

// IdentityService merges the raw author identities found in a commit
// history into canonical contributors, using a configured alias table of
// canonical email -> alias emails.
type IdentityService struct{}

// NewIdentityService creates a new identity service
func NewIdentityService() *IdentityService {
	return &IdentityService{}
}

// ResolveIdentities groups commits by canonical email and builds one
// ContributorIdentity per canonical email. Without an alias table every
// distinct raw email becomes its own identity.
func (s *IdentityService) ResolveIdentities(commits []*models.Commit, aliases map[string][]string) map[string]*models.ContributorIdentity {
	identities := make(map[string]*models.ContributorIdentity)
	if len(commits) == 0 {
		return identities
	}

	grouped := make(map[string][]*models.Commit)
	for _, commit := range commits {
		canonical := s.ResolveEmailAlias(aliases, commit.AuthorEmail)
		grouped[canonical] = append(grouped[canonical], commit)
	}

	for canonical, group := range grouped {
		identities[canonical] = s.buildIdentity(canonical, group, aliases)
	}

	return identities
}

// ResolveEmailAlias returns the canonical email for a raw author email. An
// email that is itself a canonical key maps to itself; an email listed in
// some alias set maps to that set's key; anything else maps to itself.
func (s *IdentityService) ResolveEmailAlias(aliases map[string][]string, email string) string {
	if len(aliases) == 0 {
		return email
	}

	if _, ok := aliases[email]; ok {
		return email
	}

	// Scan keys in sorted order so overlapping alias sets resolve
	// deterministically.
	canonicals := make([]string, 0, len(aliases))
	for canonical := range aliases {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	for _, canonical := range canonicals {
		for _, alias := range aliases[canonical] {
			if alias == email {
				return canonical
			}
		}
	}

	return email
}

// buildIdentity builds the identity for one canonical email from its
// commit group and the configured aliases.
func (s *IdentityService) buildIdentity(canonical string, commits []*models.Commit, aliases map[string][]string) *models.ContributorIdentity {
	emailSet := make(map[string]bool)
	nameSet := make(map[string]bool)

	for _, commit := range commits {
		emailSet[commit.AuthorEmail] = true
		nameSet[commit.AuthorName] = true
	}

	for _, alias := range aliases[canonical] {
		emailSet[alias] = true
	}
	emailSet[canonical] = true

	allEmails := sortedKeys(emailSet)
	allNames := sortedKeys(nameSet)

	return &models.ContributorIdentity{
		CanonicalName: canonicalName(allNames),
		PrimaryEmail:  canonical,
		AllEmails:     allEmails,
		AllNames:      allNames,
	}
}

// canonicalName picks the display name for an identity: the longest name
// spelling wins, equal lengths are resolved lexicographically. The
// two-key comparison keeps output deterministic across runs.
func canonicalName(names []string) string {
	best := "Unknown"
	haveBest := false

	for _, name := range names {
		if !haveBest {
			best = name
			haveBest = true
			continue
		}
		if len(name) > len(best) || (len(name) == len(best) && name > best) {
			best = name
		}
	}

	return best
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

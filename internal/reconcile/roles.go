package reconcile

import (
	"fmt"
	"strings"

	"github.com/segyhp/dues-engine/internal/domain"
)

// expectedCombination reports whether roles is a role set a user may hold
// without being flagged: any single role, or collector together with member.
func expectedCombination(user domain.UserRoles) bool {
	switch len(user.Roles) {
	case 0, 1:
		return true
	case 2:
		return user.Has(domain.RoleCollector) && user.Has(domain.RoleMember)
	default:
		return false
	}
}

func checkMultipleRoles(in *auditInput) []domain.Finding {
	var findings []domain.Finding

	for _, user := range in.users {
		if expectedCombination(user) {
			continue
		}

		names := make([]string, 0, len(user.Roles))
		for _, r := range user.Roles {
			names = append(names, string(r))
		}

		findings = append(findings, domain.Finding{
			Kind:        domain.FindingMultipleRoles,
			Severity:    domain.SeverityWarning,
			AffectedIDs: []string{user.UserID},
			Description: fmt.Sprintf(
				"User %s holds roles [%s]; effective role is %s",
				user.UserID, strings.Join(names, ", "), domain.HighestRole(user.Roles),
			),
		})
	}

	return findings
}

// checkCollectorWithoutRole flags collector records whose linked user does
// not hold the collector role, including records linked to no user at all.
func checkCollectorWithoutRole(in *auditInput) []domain.Finding {
	holders := make(map[string]struct{})
	for _, user := range in.users {
		if user.Has(domain.RoleCollector) {
			holders[user.UserID] = struct{}{}
		}
	}

	var findings []domain.Finding
	for _, c := range in.snap.Collectors {
		if _, ok := holders[c.UserID]; ok && c.UserID != "" {
			continue
		}

		findings = append(findings, domain.Finding{
			Kind:        domain.FindingCollectorWithoutRole,
			Severity:    domain.SeverityWarning,
			AffectedIDs: affected(c.ID, c.UserID),
			Description: fmt.Sprintf("Collector %q has no user holding the collector role", c.Name),
		})
	}

	return findings
}

func checkOrphanedCollectorRole(in *auditInput) []domain.Finding {
	var findings []domain.Finding

	for _, user := range in.users {
		if !user.Has(domain.RoleCollector) {
			continue
		}
		if _, ok := in.collectorUsers[user.UserID]; ok {
			continue
		}

		findings = append(findings, domain.Finding{
			Kind:        domain.FindingOrphanedCollectorRole,
			Severity:    domain.SeverityWarning,
			AffectedIDs: []string{user.UserID},
			Description: fmt.Sprintf("User %s holds the collector role but has no collector record", user.UserID),
		})
	}

	return findings
}

func affected(ids ...string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}

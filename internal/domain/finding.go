package domain

import "time"

type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// FindingKind identifies the consistency check that produced a finding.
type FindingKind string

const (
	FindingCollectorMismatch      FindingKind = "collector-mismatch"
	FindingOrphanedPaymentRequest FindingKind = "orphaned-payment-request"
	FindingInactiveWithPending    FindingKind = "inactive-with-pending"
	FindingOverdueYearly          FindingKind = "overdue-yearly"
	FindingIncompleteEmergency    FindingKind = "incomplete-emergency"
	FindingMultipleRoles          FindingKind = "multiple-roles"
	FindingCollectorWithoutRole   FindingKind = "collector-without-role"
	FindingUnknownCollector       FindingKind = "unknown-collector"
	FindingDuplicateCollectorName FindingKind = "duplicate-collector-name"
	FindingOrphanedCollectorRole  FindingKind = "orphaned-collector-role"
)

// Finding is a single anomaly reported by the consistency audit.
type Finding struct {
	Kind        FindingKind `json:"kind"`
	Severity    Severity    `json:"severity"`
	AffectedIDs []string    `json:"affected_ids"`
	Description string      `json:"description"`
}

// AuditReport is one stored run of the consistency audit.
type AuditReport struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Findings    []Finding `json:"findings"`
	Warnings    int       `json:"warnings"`
	Critical    int       `json:"critical"`
}

// CountSeverities tallies findings by severity.
func CountSeverities(findings []Finding) (warnings, critical int) {
	for _, f := range findings {
		switch f.Severity {
		case SeverityWarning:
			warnings++
		case SeverityCritical:
			critical++
		}
	}
	return warnings, critical
}

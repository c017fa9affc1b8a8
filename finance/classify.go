package finance

import (
	"strings"

	"bitbucket.org/hoaworks/portal_backend/models"
)

// transferKeywords is the fixed, association-specific keyword list used to
// spot inter-account movements in bank descriptions. Containment checks only;
// no fuzzy matching. Kept compiled-in for now (single seam if it ever needs to
// become runtime config).
var transferKeywords = []string{
	"online transfer",
	"transfer to",
	"transfer from",
	"inter-account",
	"internal trf",
}

// Classification is the engine's verdict on one transaction. The violation
// flag is carried as explicit input data on the transaction itself; only the
// transfer decision is inferred here.
type Classification struct {
	IsTransfer bool `json:"is_transfer"`
}

// Classify labels a transaction as a transfer when its description or vendor
// contains a transfer keyword (case-insensitive), or when it is flagged as a
// fund-mixing violation. A transaction matching neither is never a transfer,
// regardless of amount. Known limitation: a legitimately-named vendor
// containing a keyword is misclassified; there is no override mechanism.
func Classify(t models.Transaction) Classification {
	return Classification{IsTransfer: IsTransfer(t)}
}

func IsTransfer(t models.Transaction) bool {
	if t.ViolationType == models.ViolationTypeFundMixing {
		return true
	}
	// Fields are matched independently; a keyword must sit wholly inside one
	// of them, never straddle the description/vendor boundary.
	description := strings.ToLower(t.Description)
	vendor := strings.ToLower(t.Vendor)
	for _, keyword := range transferKeywords {
		if strings.Contains(description, keyword) || strings.Contains(vendor, keyword) {
			return true
		}
	}
	return false
}

// countsTowardActuals reports whether a transaction participates in
// revenue/expense aggregation. Transfers and flagged violations are excluded
// before any sum is taken, so a row is never counted as both a transfer and
// an expense.
func countsTowardActuals(t models.Transaction) bool {
	return !IsTransfer(t) && !t.IsViolation
}

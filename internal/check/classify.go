package check

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// availableMarkers signal an unregistered domain when found in the provider's
// free-text status. Matched case-insensitively with internal whitespace
// stripped, so "Not Found" and "notfound" are equivalent.
var availableMarkers = []string{
	"available",
	"notfound",
}

// specialMarker pairs a provider status substring with the human-readable tag
// reported for it. Data-driven so new provider strings can be added without
// touching the classification flow.
type specialMarker struct {
	marker string
	tag    string
}

var specialMarkers = []specialMarker{
	{"redemptionperiod", "redemption period"},
	{"pendingdelete", "pending delete"},
	{"autorenewperiod", "auto-renew period"},
	{"renewperiod", "renew period"},
	{"clienthold", "client hold"},
	{"serverhold", "server hold"},
}

// Classifier maps a raw provider payload to a lifecycle category. Pure: no
// I/O, no retry. The clock is injected so day arithmetic is testable.
type Classifier struct {
	alertDays int
	now       func() time.Time
}

func NewClassifier(alertDays int, now func() time.Time) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{alertDays: alertDays, now: now}
}

// normalizeStatus lowercases the status text and removes all whitespace so
// marker matching is insensitive to provider formatting.
func normalizeStatus(s string) string {
	normalized := strings.ToLower(s)
	return strings.Join(strings.Fields(normalized), "")
}

// Classify applies the lifecycle rules in precedence order: unregistered
// markers first, then registry special states, then the expiry window. A
// domain in a special state is reported as special even when its expiry also
// falls inside the alert window.
func (c *Classifier) Classify(domain string, payload *Payload) Result {
	status := normalizeStatus(payload.StatusText)

	if status == "" {
		return Result{
			Domain:   domain,
			Category: CategoryUnregistered,
			Detail:   "provider reported no registration status",
		}
	}
	for _, marker := range availableMarkers {
		if strings.Contains(status, marker) {
			return Result{
				Domain:   domain,
				Category: CategoryUnregistered,
				Detail:   fmt.Sprintf("status %q indicates the domain is not registered", payload.StatusText),
			}
		}
	}

	// Matched text is consumed so a broader marker earlier in the table
	// ("autorenewperiod") cannot also trigger a narrower one ("renewperiod").
	var tags []string
	remaining := status
	for _, sm := range specialMarkers {
		if strings.Contains(remaining, sm.marker) {
			tags = append(tags, sm.tag)
			remaining = strings.ReplaceAll(remaining, sm.marker, "")
		}
	}
	if len(tags) > 0 {
		return Result{
			Domain:   domain,
			Category: CategoryRegisteredSpecial,
			Tags:     tags,
			Detail:   fmt.Sprintf("registry special state: %s", strings.Join(tags, ", ")),
		}
	}

	if strings.TrimSpace(payload.ExpiresAt) == "" {
		return Result{
			Domain:   domain,
			Category: CategoryRegistered,
			Detail:   "no expiry information",
		}
	}

	expiry, err := ParseExpiry(payload.ExpiresAt)
	if err != nil {
		return Result{
			Domain:   domain,
			Category: CategoryRegistered,
			Detail:   fmt.Sprintf("registered, expiry unreadable: %v", err),
		}
	}

	days := daysUntil(expiry, c.now())
	result := Result{
		Domain:        domain,
		Expiry:        &expiry,
		DaysRemaining: &days,
	}
	// Already-expired domains (days < 0) fall through to Registered. That
	// mirrors the original threshold check and is flagged for product review
	// rather than changed here.
	if days >= 0 && days <= c.alertDays {
		result.Category = CategoryExpiring
		result.Detail = fmt.Sprintf("expires in %d days (%s)", days, expiry.Format("2006-01-02 15:04:05"))
	} else {
		result.Category = CategoryRegistered
		result.Detail = fmt.Sprintf("registered, %d days until expiry (%s)", days, expiry.Format("2006-01-02 15:04:05"))
	}
	return result
}

// daysUntil floors the distance to expiry in whole days, matching calendar
// truncation: 36 hours out is 1 day, 12 hours past expiry is -1.
func daysUntil(expiry, now time.Time) int {
	return int(math.Floor(expiry.Sub(now).Hours() / 24))
}

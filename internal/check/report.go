package check

import (
	"fmt"
	"sort"
	"strings"
)

// Tier is the urgency attached to an entry in the Expiring section.
type Tier string

const (
	TierCritical Tier = "critical"
	TierWarning  Tier = "warning"
	TierInfo     Tier = "info"
)

const (
	criticalDays = 7
	warningDays  = 14
)

// ExpiringEntry is a Result inside the alert window plus its urgency tier.
type ExpiringEntry struct {
	Result
	Tier Tier
}

// Report groups all results of one run into the four reportable sections.
// Ordinary registered domains are counted but never enumerated.
type Report struct {
	Unregistered    []Result
	Expiring        []ExpiringEntry
	Special         []Result
	Failed          []Result
	RegisteredCount int
	Total           int
}

// tierFor assumes daysRemaining is already inside the alert window.
func tierFor(daysRemaining int) Tier {
	switch {
	case daysRemaining <= criticalDays:
		return TierCritical
	case daysRemaining <= warningDays:
		return TierWarning
	default:
		return TierInfo
	}
}

// Aggregate buckets results by category. Encounter order is preserved in the
// Unregistered, Special and Failed sections; the Expiring section is re-sorted
// ascending by days remaining with ties keeping input order.
func Aggregate(results []Result) *Report {
	report := &Report{Total: len(results)}
	for _, result := range results {
		switch result.Category {
		case CategoryUnregistered:
			report.Unregistered = append(report.Unregistered, result)
		case CategoryExpiring:
			report.Expiring = append(report.Expiring, ExpiringEntry{
				Result: result,
				Tier:   tierFor(*result.DaysRemaining),
			})
		case CategoryRegisteredSpecial:
			report.Special = append(report.Special, result)
		case CategoryQueryFailed, CategoryUnknown:
			report.Failed = append(report.Failed, result)
		case CategoryRegistered:
			report.RegisteredCount++
		}
	}
	sort.SliceStable(report.Expiring, func(i, j int) bool {
		return *report.Expiring[i].DaysRemaining < *report.Expiring[j].DaysRemaining
	})
	return report
}

// ShouldNotify reports whether the run warrants a notification: true iff any
// reportable section is non-empty. A run where every domain is ordinarily
// registered stays quiet no matter how many domains were checked.
func (r *Report) ShouldNotify() bool {
	return len(r.Unregistered) > 0 || len(r.Expiring) > 0 || len(r.Special) > 0 || len(r.Failed) > 0
}

// Render produces the Telegram-HTML message for the report. Output is
// deterministic for a given report; empty sections are omitted.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("<b>⚠️ Domain status report ⚠️</b>\n")

	if len(r.Unregistered) > 0 {
		fmt.Fprintf(&b, "\n<b>Unregistered (%d)</b>\n", len(r.Unregistered))
		for _, result := range r.Unregistered {
			fmt.Fprintf(&b, "<b>%s</b> is not registered\n", result.Domain)
		}
	}

	if len(r.Expiring) > 0 {
		fmt.Fprintf(&b, "\n<b>Expiring (%d)</b>\n", len(r.Expiring))
		for _, entry := range r.Expiring {
			fmt.Fprintf(&b, "<b>%s</b> expires in <b>%d</b> days [%s]\n", entry.Domain, *entry.DaysRemaining, entry.Tier)
			fmt.Fprintf(&b, "Expiry date: %s\n", entry.Expiry.Format("2006-01-02 15:04:05"))
		}
	}

	if len(r.Special) > 0 {
		fmt.Fprintf(&b, "\n<b>Special registry state (%d)</b>\n", len(r.Special))
		for _, result := range r.Special {
			fmt.Fprintf(&b, "<b>%s</b>: %s\n", result.Domain, strings.Join(result.Tags, ", "))
		}
	}

	if len(r.Failed) > 0 {
		fmt.Fprintf(&b, "\n<b>Check failed (%d)</b>\n", len(r.Failed))
		for _, result := range r.Failed {
			fmt.Fprintf(&b, "<b>%s</b>: %s\n", result.Domain, result.Detail)
		}
	}

	fmt.Fprintf(&b, "\n%d of %d domains registered normally\n", r.RegisteredCount, r.Total)
	return b.String()
}

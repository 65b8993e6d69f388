package access

import (
	"fmt"
	"strings"
	"time"

	"medtrust/internal/audit"
	"medtrust/internal/justification"
	"medtrust/internal/platform/config"
)

// Trust deltas applied by each flow.
const (
	DeltaNormalGranted       = 2
	DeltaNormalDenied        = -5
	DeltaRestrictedInNetwork = 1
	DeltaRestrictedLowTrust  = -5
	DeltaRestrictedGranted   = 2
	DeltaRestrictedFlagged   = -3
	DeltaEmergencyMissing    = -2
	DeltaEmergencyGenuine    = 3
	DeltaEmergencySuspicious = -10
	DeltaTemporaryDenied     = -3
	DeltaTemporaryGranted    = 1
)

const roleNurse = "nurse"

// verdict is the pure result of a rule: everything the service needs to
// apply side effects, with no I/O performed yet.
type verdict struct {
	outcome Outcome
	reason  Reason
	message string
	delta   int
	action  audit.Action
	status  audit.Status
}

// IsRestrictedGrant reports whether a classification clears the restricted bar.
// The comparison is strict: a confidence equal to the bar is flagged.
func IsRestrictedGrant(c justification.Classification, p config.Policy) bool {
	switch c.Category {
	case justification.CategoryEmergency, justification.CategoryRestricted:
		return c.Confidence > p.RestrictedMinConfidence
	default:
		return false
	}
}

// IsGenuineEmergency reports whether a classification clears the emergency bar.
func IsGenuineEmergency(c justification.Classification, p config.Policy) bool {
	return c.Category == justification.CategoryEmergency && c.Confidence > p.EmergencyMinConfidence
}

// IsLowTrust reports whether a score is below the threshold. A score equal to
// the threshold is not low.
func IsLowTrust(score int, p config.Policy) bool {
	return score < p.TrustThreshold
}

func evaluateNormal(inNetwork bool, ip string) verdict {
	if !inNetwork {
		return verdict{
			outcome: OutcomeDenied,
			reason:  ReasonOutsideNetwork,
			message: "Access denied: outside hospital network",
			delta:   DeltaNormalDenied,
			action:  audit.ActionNormalOutside,
			status:  audit.StatusDenied,
		}
	}
	return verdict{
		outcome: OutcomeGranted,
		reason:  ReasonInNetwork,
		message: fmt.Sprintf("Normal access granted from %s.", ip),
		delta:   DeltaNormalGranted,
		action:  audit.ActionNormalInNetwork,
		status:  audit.StatusGranted,
	}
}

// evaluateRestrictedGate applies the checks that run before any justification
// is read. decided is false when the request must go on to classification.
func evaluateRestrictedGate(inNetwork bool, score int, p config.Policy) (v verdict, decided bool) {
	switch {
	case inNetwork:
		return verdict{
			outcome: OutcomeGranted,
			reason:  ReasonInNetwork,
			message: "Restricted access granted (inside hospital).",
			delta:   DeltaRestrictedInNetwork,
			action:  audit.ActionRestrictedInNetwork,
			status:  audit.StatusGranted,
		}, true
	case IsLowTrust(score, p):
		return verdict{
			outcome: OutcomeDenied,
			reason:  ReasonLowTrust,
			message: "Low trust, access denied.",
			delta:   DeltaRestrictedLowTrust,
			action:  audit.ActionRestrictedLowTrust,
			status:  audit.StatusDenied,
		}, true
	}
	return verdict{}, false
}

// missingRestrictedJustification is a validation failure: no delta and no
// audit entry.
func missingRestrictedJustification() verdict {
	return verdict{
		outcome: OutcomeRejected,
		reason:  ReasonMissingJustification,
		message: "Justification required for outside access.",
	}
}

func evaluateRestrictedJustification(c justification.Classification, p config.Policy) verdict {
	if IsRestrictedGrant(c, p) {
		return verdict{
			outcome: OutcomeGranted,
			reason:  ReasonJustificationAccepted,
			message: "Restricted Access Granted",
			delta:   DeltaRestrictedGranted,
			action:  audit.ActionRestrictedOutside,
			status:  audit.StatusGranted,
		}
	}
	return verdict{
		outcome: OutcomeFlagged,
		reason:  ReasonJustificationFlagged,
		message: "Access flagged for review.",
		delta:   DeltaRestrictedFlagged,
		action:  audit.ActionRestrictedOutside,
		status:  audit.StatusFlagged,
	}
}

// missingEmergencyJustification is a policy denial, unlike the restricted
// case: the attempt costs trust and is audited.
func missingEmergencyJustification() verdict {
	return verdict{
		outcome: OutcomeDenied,
		reason:  ReasonMissingJustification,
		message: "Justification required!",
		delta:   DeltaEmergencyMissing,
		action:  audit.ActionEmergency,
		status:  audit.StatusDenied,
	}
}

func evaluateEmergency(c justification.Classification, p config.Policy) verdict {
	if IsGenuineEmergency(c, p) {
		return verdict{
			outcome: OutcomeGranted,
			reason:  ReasonGenuineEmergency,
			message: "Emergency access approved",
			delta:   DeltaEmergencyGenuine,
			action:  audit.ActionEmergency,
			status:  audit.StatusGranted,
		}
	}
	return verdict{
		outcome: OutcomeFlagged,
		reason:  ReasonSuspiciousEmergency,
		message: "Suspicious justification logged.",
		delta:   DeltaEmergencySuspicious,
		action:  audit.ActionEmergency,
		status:  audit.StatusFlagged,
	}
}

// evaluateTemporaryGate checks role and network. decided is false when the
// request may proceed to the record lookup.
func evaluateTemporaryGate(role string, inNetwork bool) (v verdict, decided bool) {
	if !strings.EqualFold(strings.TrimSpace(role), roleNurse) {
		return verdict{
			outcome: OutcomeRejected,
			reason:  ReasonNotNurse,
			message: "Only nurses can request temporary access",
		}, true
	}
	if !inNetwork {
		return verdict{
			outcome: OutcomeDenied,
			reason:  ReasonOutsideNetwork,
			message: "Temporary access only available inside hospital network",
			delta:   DeltaTemporaryDenied,
			action:  audit.ActionTemporary,
			status:  audit.StatusDenied,
		}, true
	}
	return verdict{}, false
}

func temporaryGranted(ttl time.Duration) verdict {
	return verdict{
		outcome: OutcomeGranted,
		reason:  ReasonTemporaryGranted,
		message: "Temporary access granted for " + HumanDuration(ttl),
		delta:   DeltaTemporaryGranted,
		action:  audit.ActionTemporary,
		status:  audit.StatusGranted,
	}
}

// HumanDuration renders a grant length the way audit entries record it,
// e.g. "30 minutes" or "2 hours".
func HumanDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d.Round(time.Second)/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

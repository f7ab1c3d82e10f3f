package service

import (
	"fmt"

	analysisdomain "github.com/reshetovitsme/channel-protector-bot/internal/modules/analysis/domain"
	"github.com/reshetovitsme/channel-protector-bot/internal/modules/moderation/domain"
)

// Policy captures the flags that drive the join-time decision.
type Policy struct {
	EnableNsfwDetection     bool
	AutoBanNsfwOnJoin       bool
	AutoBanSuspiciousOnJoin bool
	Action                  domain.Action
}

// Decision is the outcome of evaluating one profile analysis against the
// policy. Instant means an enforcement action must fire; otherwise the
// Outcome is already final.
type Decision struct {
	Outcome domain.Outcome
	Instant bool
	Reason  string
}

// Decide evaluates the priority policy over one analysis. Rules are checked
// in strict order and the first match wins:
//
//  1. nil analysis (profile could not be analyzed) -> ignored, never enforced
//  2. NSFW channels present and NSFW auto-ban enabled -> instant action
//  3. suspicious channels present and suspicious auto-ban enabled -> instant action
//  4. profile suspicious without an applicable auto-ban flag -> warned
//  5. clean -> ignored
//
// Pure function; the whitelist short-circuit happens before analysis and
// never reaches this point.
func Decide(analysis *analysisdomain.ProfileAnalysis, policy Policy) Decision {
	if analysis == nil {
		return Decision{Outcome: domain.OutcomeIgnored, Reason: "cannot analyze profile"}
	}

	if policy.EnableNsfwDetection && policy.AutoBanNsfwOnJoin && len(analysis.NsfwChannels) > 0 {
		return Decision{
			Outcome: domain.OutcomePending,
			Instant: true,
			Reason:  fmt.Sprintf("NSFW channels detected (%d)", len(analysis.NsfwChannels)),
		}
	}

	if policy.AutoBanSuspiciousOnJoin && len(analysis.SuspiciousChannels) > 0 {
		return Decision{
			Outcome: domain.OutcomePending,
			Instant: true,
			Reason:  fmt.Sprintf("Suspicious channels detected (%d)", len(analysis.SuspiciousChannels)),
		}
	}

	if analysis.IsSuspicious {
		return Decision{Outcome: domain.OutcomeWarned, Reason: "suspicious profile, auto-ban disabled"}
	}

	return Decision{Outcome: domain.OutcomeIgnored, Reason: "profile is clean"}
}

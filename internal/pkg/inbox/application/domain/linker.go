package inbox

import (
	"fmt"
	"strings"
)

// LinkPolicy controls what happens when a phone-bearing message arrives for a
// thread that already has a phone. First-wins matches the console's historical
// behavior; the alternatives exist because that behavior was never a deliberate
// product decision, so deployments can choose.
type LinkPolicy int16

const (
	LinkPolicyFirstWins LinkPolicy = 0
	LinkPolicyLastWins  LinkPolicy = 1
	LinkPolicyReject    LinkPolicy = 2
)

// ParseLinkPolicy maps a config string to a policy. Empty means first-wins.
func ParseLinkPolicy(s string) (LinkPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first_wins":
		return LinkPolicyFirstWins, nil
	case "last_wins":
		return LinkPolicyLastWins, nil
	case "reject":
		return LinkPolicyReject, nil
	default:
		return LinkPolicyFirstWins, fmt.Errorf("unknown link policy %q", s)
	}
}

// LinkStatus is the outcome of a linking attempt.
type LinkStatus int16

const (
	LinkUnchanged LinkStatus = 0
	LinkLinked    LinkStatus = 1
)

func (s LinkStatus) String() string {
	if s == LinkLinked {
		return "linked"
	}
	return "unchanged"
}

// LinkResult reports whether the attempt changed the thread and with which
// phone. Overwrite is set when a last-wins link replaces an earlier phone, so
// the store knows the write is intentional.
type LinkResult struct {
	Status    LinkStatus
	Phone     string
	Overwrite bool
}

// LeadLinker decides whether an extracted phone turns a conversation into a
// linked lead. It is the only component allowed to flip IsLeadLinked; the
// store applies the decision but never makes one.
type LeadLinker struct {
	Policy LinkPolicy
}

// Apply evaluates the extracted phone against the thread's current state.
//
// A missing phone, or a phone equal to the one already on the thread, is an
// unchanged outcome. A differing phone on an already-linked thread follows the
// policy: kept (first-wins), replaced (last-wins), or refused with
// ErrPhoneConflict (reject). Conflicts under first-wins are intentional
// outcomes, not errors.
func (l LeadLinker) Apply(c Conversation, phone string) (LinkResult, error) {
	if phone == "" {
		return LinkResult{Status: LinkUnchanged}, nil
	}
	if c.CustomerPhone == "" {
		return LinkResult{Status: LinkLinked, Phone: phone}, nil
	}
	if c.CustomerPhone == phone {
		return LinkResult{Status: LinkUnchanged, Phone: c.CustomerPhone}, nil
	}

	switch l.Policy {
	case LinkPolicyLastWins:
		return LinkResult{Status: LinkLinked, Phone: phone, Overwrite: true}, nil
	case LinkPolicyReject:
		return LinkResult{Status: LinkUnchanged, Phone: c.CustomerPhone}, ErrPhoneConflict
	default:
		return LinkResult{Status: LinkUnchanged, Phone: c.CustomerPhone}, nil
	}
}

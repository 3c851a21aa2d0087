package workflow

import "strings"

// Tone classifies how a status message is presented.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
)

// ApprovalOutcome is the interpreted result of a reply from the
// approval endpoint: where to go, what to say, and whether to reveal the
// check-status control.
type ApprovalOutcome struct {
	Next            Step
	Tone            Tone
	Message         string
	ShowCheckStatus bool
}

// Approval-detail phrase contract, v1.
//
// The approval service signals a requester's standing through the free-text
// `detail` of its error responses. The substrings below are matched
// case-insensitively, in this order, first match wins:
//
//	"approved"                -> proceed to signup
//	"log in"                  -> proceed to login
//	"submitted for approval"  -> stay, reveal check-status
//	"rejected"                -> stay, warn
//
// Any wording change on the server is a breaking change to this contract.
// When the error body carries a structured `status` field,
// ClassifyApprovalStatus takes precedence and this heuristic is only the
// compatibility fallback.
func ClassifyApproval(detail string) ApprovalOutcome {
	text := strings.ToLower(detail)

	switch {
	case strings.Contains(text, "approved"):
		return ApprovalOutcome{
			Next:    StepSignup,
			Tone:    ToneSuccess,
			Message: "You are approved. Create a password to continue.",
		}
	case strings.Contains(text, "log in"):
		return ApprovalOutcome{
			Next:    StepLogin,
			Tone:    ToneSuccess,
			Message: "You already have access. Log in to continue.",
		}
	case strings.Contains(text, "submitted for approval"):
		return ApprovalOutcome{
			Next:            StepRequest,
			Tone:            ToneInfo,
			Message:         "Your request is still under review. Check again later.",
			ShowCheckStatus: true,
		}
	case strings.Contains(text, "rejected"):
		return ApprovalOutcome{
			Next:    StepRequest,
			Tone:    ToneWarning,
			Message: "Your request was not approved. Contact the admin.",
		}
	default:
		return ApprovalOutcome{
			Next:    StepRequest,
			Tone:    ToneError,
			Message: detail,
		}
	}
}

// ClassifyApprovalStatus maps the backend's user-status enum directly,
// bypassing the phrase heuristic. The second return is false for statuses
// this client does not know how to route.
func ClassifyApprovalStatus(status string) (ApprovalOutcome, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved":
		return ApprovalOutcome{
			Next:    StepSignup,
			Tone:    ToneSuccess,
			Message: "You are approved. Create a password to continue.",
		}, true
	case "active":
		return ApprovalOutcome{
			Next:    StepLogin,
			Tone:    ToneSuccess,
			Message: "You already have access. Log in to continue.",
		}, true
	case "pending_approval":
		return ApprovalOutcome{
			Next:            StepRequest,
			Tone:            ToneInfo,
			Message:         "Your request is still under review. Check again later.",
			ShowCheckStatus: true,
		}, true
	case "rejected":
		return ApprovalOutcome{
			Next:    StepRequest,
			Tone:    ToneWarning,
			Message: "Your request was not approved. Contact the admin.",
		}, true
	default:
		return ApprovalOutcome{}, false
	}
}

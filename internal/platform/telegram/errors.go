package telegram

import (
	"errors"
	"strings"
)

// Error kinds recognized by enforcement and analysis. Permission failures are
// downgraded to logged failures, gone failures mean "cannot analyze" or
// "nothing left to enforce"; everything else is treated as a failed check for
// that event.
var (
	ErrPermissionDenied    = errors.New("bot lacks admin permissions")
	ErrCannotRestrictAdmin = errors.New("cannot restrict an administrator")
	ErrUserNotParticipant  = errors.New("user is not a participant")
	ErrPeerInvalid         = errors.New("invalid peer")
)

// IsPermission reports whether the error is a permission failure of either
// kind.
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrCannotRestrictAdmin)
}

// IsGone reports whether the target of the call no longer exists or is not
// reachable: user left, peer deleted, profile private.
func IsGone(err error) bool {
	return errors.Is(err, ErrUserNotParticipant) || errors.Is(err, ErrPeerInvalid)
}

// classifyAPIError maps Bot API error descriptions onto the error kinds
// above. Unrecognized errors pass through unchanged.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not enough rights"),
		strings.Contains(msg, "chat_admin_required"),
		strings.Contains(msg, "need administrator rights"):
		return errors.Join(ErrPermissionDenied, err)
	case strings.Contains(msg, "user is an administrator"),
		strings.Contains(msg, "user_admin_invalid"),
		strings.Contains(msg, "can't remove chat owner"):
		return errors.Join(ErrCannotRestrictAdmin, err)
	case strings.Contains(msg, "user_not_participant"),
		strings.Contains(msg, "participant_id_invalid"),
		strings.Contains(msg, "user not found"):
		return errors.Join(ErrUserNotParticipant, err)
	case strings.Contains(msg, "chat not found"),
		strings.Contains(msg, "peer_id_invalid"):
		return errors.Join(ErrPeerInvalid, err)
	}
	return err
}

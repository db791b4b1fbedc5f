package invites

import "baby-tracker-go/internal/domain/apperr"

var (
	ErrInviteNotFound = apperr.New(apperr.KindNotFound, "Invite not found or already used")
	ErrInviteExpired  = apperr.New(apperr.KindExpired, "Invite has expired")
)

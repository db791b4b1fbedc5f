package membership

import "baby-tracker-go/internal/domain/apperr"

var (
	ErrBabyNotFound       = apperr.New(apperr.KindNotFound, "Baby not found")
	ErrMembershipNotFound = apperr.New(apperr.KindNotFound, "membership not found")
	ErrNotOwner           = apperr.New(apperr.KindForbidden, "Only the owner can delete a baby profile")
	ErrAlreadyMember      = apperr.New(apperr.KindConflict, "You are already associated with this baby")
	ErrOwnerCannotLeave   = apperr.New(apperr.KindInvalidOperation, "Owner cannot leave. Delete the baby profile instead.")
	ErrInvalidRole        = apperr.New(apperr.KindInvalidOperation, "only the parent role can be granted")
)

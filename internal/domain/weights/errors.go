package weights

import "baby-tracker-go/internal/domain/apperr"

var ErrEntryNotFound = apperr.New(apperr.KindNotFound, "Entry not found")

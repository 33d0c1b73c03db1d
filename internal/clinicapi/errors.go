package clinicapi

import "errors"

// ErrUnavailable is returned for any transport or parse failure on the
// clinic endpoints. Callers classify it with errors.Is; it is never a
// per-field validation condition.
var ErrUnavailable = errors.New("clinicapi: service unavailable")

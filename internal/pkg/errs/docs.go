// Package errs defines the error taxonomy shared by the domain model, the
// command and query handlers, and the HTTP layer.
//
// Each category pairs a sentinel (ErrObjectNotFound, ErrValueIsRequired, ...)
// with a typed error carrying detail fields. Constructors return the typed
// error, which unwraps to its sentinel, so callers classify with errors.Is
// while messages keep the offending parameter and optional cause:
//
//	if order == nil {
//	    return errs.NewObjectNotFoundError("orderID", cmd.OrderID())
//	}
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return c.JSON(http.StatusNotFound, body)
//	}
//
// TimeoutError wraps context deadline failures of transactional use cases so
// the HTTP layer can answer 504 without inspecting the context package.
// Messages are collapsed to a single line before they reach logs or API
// responses.
package errs

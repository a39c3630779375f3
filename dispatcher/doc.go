// Package dispatcher defines the dispatch strategies a mock router can use to
// pick a pre-recorded response for a live request, and compiles the literal
// routing keys ("dispatch criteria") that make that choice cheap at match time.
//
// Four strategies exist:
//
//   - URI_PARAMS: dispatch on query parameter values
//   - URI_PARTS: dispatch on path-template variable values
//   - URI_ELEMENTS: dispatch on both, parts first
//   - FALLBACK: an envelope deferring to an inner strategy plus a default
//     response when the inner strategy matches nothing
//
// A strategy is paired with a rule descriptor string naming the parameters
// that participate: part names and parameter names are joined with " && ",
// and URI_ELEMENTS separates the part list from the parameter list with
// " ?? ". Criteria builders consume the rule descriptor and one example's
// correlated values and emit a deterministic key such as
// "/id=42?status=available".
package dispatcher

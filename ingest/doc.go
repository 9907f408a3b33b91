// Package ingest exposes the span receiver over HTTP.
//
// Applications that cannot link the receiver post HTrace JSON instead:
//
//	POST /v1/spans   one span object or an array of spans
//	GET  /healthz    200 unless the trace backend failed to initialize
//
// A successful POST answers 202 with {"accepted": n} after all n spans were
// handed to the receiver. Malformed JSON gets 400, a body above
// Config.MaxBodyBytes gets 413 and any method but POST gets 405.
package ingest

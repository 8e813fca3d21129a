// Package secheaders computes the security response headers for the
// development server.
//
// Every response carries X-Content-Type-Options and a Content-Security-Policy.
// When isolation is enabled, the cross-origin isolation trio
// (Cross-Origin-Opener-Policy, Cross-Origin-Embedder-Policy,
// Cross-Origin-Resource-Policy) is added as well, which is what browsers
// require before exposing SharedArrayBuffer to WASM workloads.
//
// Compute is a pure function of the Config so the header set can be unit
// tested without a socket; New wraps it as a Fiber middleware.
package secheaders

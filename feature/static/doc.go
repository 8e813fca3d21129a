// Package static serves files from the configured root directory.
//
// The service resolves request paths onto the filesystem (traversal-safe),
// picks MIME types with explicit registrations for .wasm and .data, serves
// index.html for directories that have one and an HTML listing for those
// that don't. The handler wires this into a Fiber catch-all route, and the
// Feature wrapper plugs it into the core/loader registry.
package static

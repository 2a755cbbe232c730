// Package protocol owns the fixed 4-byte message header and its code
// taxonomy.
//
// Wire layout:
// - byte0: version (bits 7-6), type (bits 5-4), token length (bits 3-0)
// - byte1: code class (bits 7-5), code detail (bits 4-0)
// - byte2..3: message id, big endian
//
// Ownership boundary:
// - header decode/encode primitives
// - code class/detail validation
// - text rendering
package protocol

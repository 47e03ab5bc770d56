// Package source defines byte spans over UTF-8 text.
//
// All positions produced by the engine live in byte space. Conversion to the
// host's character space happens in internal/offset and nowhere else.
package source

// Package proc talks to an external grs engine executable.
//
// Each call starts one child process, writes a single msgpack request to its
// stdin and reads a single msgpack response from its stdout:
//
//	request:  {op, text, rules}            rules are upper camel names
//	response: {diagnostics, text, tokens, syllables, error}
//
// A non-empty error field is reported as an engine failure. The literal
// error "unsupported" for op "fix" makes the adapter fall back to a check
// followed by internal/fix.
//
// The element shapes also have a JSON form, used by hosts whose engine lives
// in JavaScript: DecodeDiagnostics, DecodeTokens and DecodeSyllables accept
// JSON.stringify output of the same records.
package proc

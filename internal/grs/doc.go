// Package grs describes the contract of the Greek orthography engine.
//
// The engine itself (rule evaluation, tokenization, syllabification, accent
// normalisation) is an external collaborator. This package only fixes the
// shapes it exchanges with the boundary layer:
//
//   - Rule – enum of rule kinds, with the registry that maps short codes to kinds.
//   - Diagnostic – one finding, located by a byte span, with an optional Fix.
//   - Token – one lexical unit with byte span and classification flags.
//   - Engine – the operations the bridge calls.
//
// All spans are UTF-8 byte offsets into the text passed to the engine.
// Converting them for a host is the job of internal/offset.
package grs

// Package offset converts engine byte spans into host character ranges.
//
// The engine reports UTF-8 byte offsets. Hosts index strings by character:
// Unicode code points by default, or UTF-16 code units for JavaScript-like
// hosts. Conversion is permissive: a span that does not land on a character
// boundary degrades to the empty range [0,0) together with a warning log event,
// so the consumer can keep rendering.
//
// Two implementations produce identical results:
//
//   - Translate / TranslateChecked: one linear scan per span.
//   - Index: boundary table built once per text, binary search per span;
//     used when one text carries many diagnostics.
package offset

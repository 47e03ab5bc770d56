package bridge

import (
	"fmt"
	"strings"

	"grsbridge/internal/rules"
)

const dtsShapes = `export interface Range {
  start: number;
  end: number;
}

export interface Diagnostic {
  kind: Kind;
  range: Range;
  fix: string | null;
}

export interface Token {
  text: string;
  whitespace: string;
  index: number;
  range: Range;
  punct: boolean;
  greek: boolean;
}

export type Options = Partial<Record<Code, boolean>> | null | undefined;

export function scan_text(text: string, options?: Options): Diagnostic[] | Error;
export function fix_text(text: string, options?: Options): string | Error;
export function tokenize(text: string): Token[] | Error;
export function to_monotonic(text: string): string | Error;
export function syllabify(text: string, separator: string): string | Error;
`

// TypeScriptDeclarations renders the .d.ts of the WebAssembly host surface.
// Kind and Code unions follow the rule registry.
func TypeScriptDeclarations() string {
	infos := rules.Describe()
	kinds := make([]string, 0, len(infos))
	codes := make([]string, 0, len(infos))
	for _, info := range infos {
		kinds = append(kinds, fmt.Sprintf("%q", info.Kind))
		codes = append(codes, fmt.Sprintf("%q", info.Code))
	}
	var b strings.Builder
	b.WriteString("// Code generated by grsbridge dts. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "export type Kind =\n  | %s;\n\n", strings.Join(kinds, "\n  | "))
	fmt.Fprintf(&b, "export type Code =\n  | %s;\n\n", strings.Join(codes, "\n  | "))
	b.WriteString(dtsShapes)
	return b.String()
}

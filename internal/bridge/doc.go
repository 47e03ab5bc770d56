// Package bridge implements the host-facing entry points over a grs.Engine.
//
// Every call is self-contained: options are decoded into a rule selection,
// the engine runs, byte spans are translated to host character ranges and
// the result is returned as plain Go values. Hosts lower those values with
// ToValue (generic value trees) or Marshal (wire bytes).
//
// The only failures a caller sees are serialization failures (ErrSerialization)
// and engine transport failures (ErrEngine). Bad ranges and bad options are
// absorbed with safe defaults and logged.
package bridge

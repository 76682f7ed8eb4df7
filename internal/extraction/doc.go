// Package extraction converts free-form generator output into a fixed
// schema of named prose and list fields.
//
// The producing model is nondeterministic in formatting: heading weight,
// bullet style, and emoji markers vary between responses. The engine
// recovers a reliable schema anyway by applying an ordered table of
// heading patterns (most specific first) and a three-tier list recovery
// chain (structured bullets, inline-bullet normalization, sentence
// splitting). Extraction never fails: a missing prose section yields a
// fixed sentinel string and an unrecoverable list yields a one-element
// placeholder, so every requested field is always present in the result.
//
// The engine is pure and stateless. It performs no I/O and holds no
// state between calls, so a single Engine may be shared across
// goroutines without coordination.
package extraction

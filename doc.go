// Package hcl1 implements a parser and in-memory document model for the
// HashiCorp Configuration Language, version 1 (HCL1): a declarative
// syntax mixing assignments, nested labeled blocks, heterogeneous lists,
// heredocs, and string interpolation fragments.
//
// A byte stream is lexed into a token stream (see Token, Lexer), parsed
// into a Value tree by a recursive-descent Parser implementing HCL's
// block/list merge semantics, and can be re-emitted as canonical HCL text,
// JSON, or YAML. Interpolation expressions (${...}) are treated as opaque
// string content; this package never evaluates them.
package hcl1

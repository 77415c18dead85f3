// Package token defines lexical token kinds and trivia for C# source.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly; Leading and Trailing trivia sit outside it.
//   - Trailing trivia stops after the first end of line. Everything after that
//     belongs to the next token's Leading trivia.
//   - Preprocessor lines (#region, #if, ...) are TriviaDirective and never appear
//     in the token stream.
//   - '>' is always a single token so nested generic lists close cleanly;
//     the parser pairs it with what follows when it needs a shift operator.
//   - Contextual keywords (var, record, partial, where, async, ...) are identifiers.
package token

// Package position answers cursor questions about math markup text.
//
// Every query is a pure function of (text, index). An Analyzer binds the
// command patterns used for tokenizing; Analyze parses a text once and
// returns a Document whose methods share that parse:
//
//	doc := position.NewAnalyzer(registry).Analyze(`$\frac{a}{b}$`)
//	doc.IsValid(3)  // false: inside the \frac name
//	doc.Next(3)     // 7: inside the numerator braces
//	doc.TabStops()  // categorized navigation targets
//
// Validity rules:
//
//   - 0 and len(text) are always valid.
//   - Offsets that split a UTF-8 sequence are invalid.
//   - The offset between the two characters of a $$ delimiter is invalid.
//   - Offsets strictly inside a first-class command name, or between that
//     name and its first argument group, are invalid. Second-class commands
//     (sub/superscript) are exempt.
//   - The offset between a closing and an opening delimiter that touch
//     ($a$|$b$) is always valid.
//
// Queries never fail for out-of-range indices; movement and snapping clamp
// to [0, len(text)].
package position

/*

Process of compilation

Program Text ->
	lex ->
Tokens ->
	parse, check, fold ->
Intermediate Representation text (ir) ->
	llc / clang (not here) ->
Binary Object (obj)

Parsing is single pass.
Declarations go to the current scope as they are met,
expressions are folded when operands are known
and emitted as instructions otherwise.

*/
package compiler

// Package screenplay implements the actor/ability/activity model used by the
// scenario steps: actors perform tasks and interactions against a web page
// through a BrowseTheWeb ability, and answer questions about what they see.
//
// Writes are fail-fast: the first interaction that fails aborts the rest of
// the AttemptsTo call. Reads are fault-absorbing: a question that cannot
// resolve its target answers with its fallback value instead of failing.
package screenplay

// Package guidance turns an intent scoring result into the reply shown to
// the user: a confident recommendation, a narrowing-down prompt, or
// generic orientation text, each with a confidence value and suggested
// next actions. It also answers the small fixed set of contextual-help
// questions that bypass scoring entirely.
package guidance

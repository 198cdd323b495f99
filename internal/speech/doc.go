// Package speech presents a word or number to a player who may not read
// yet. A Resolver tries an ordered list of strategies (recorded audio in
// the preferred format, recorded audio in the alternate format, speech
// synthesis, on-screen text) until one succeeds. The on-screen strategy
// never fails, so a presentation always completes.
package speech

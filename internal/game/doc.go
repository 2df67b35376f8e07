// Package game implements the Wolf Goat Pig betting rules engine: a
// deterministic, single-threaded state machine covering captain rotation,
// partnership and team formation, wager escalation (doubles, floats, solo
// variants, Aardvark mechanics), handicap stroke allocation and zero-sum
// point settlement for an 18-hole round among 4-6 players.
//
// The engine holds no global mutable state. Every operation is a function of
// an explicit *State, so independent games can run concurrently as long as
// each goroutine owns its own State. Decision-making (partner responses,
// double responses, votes) is injected through the DecisionProvider
// interface; the engine itself never rolls dice or blocks on I/O.
package game

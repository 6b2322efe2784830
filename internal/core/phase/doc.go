// Package phase derives the phases of a Pomodoro run from one timestamp, the
// anchor, which marks when the last work block of the run finishes.
//
// Work and break intervals are half-open: block n's work runs over
// [start, start+Work) and its short break over [start+Work, next start).
// Once the anchor has passed the run is finished and the user is in the long
// break for as long as they like.
package phase

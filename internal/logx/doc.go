// Package logx is the structured logger used across Zone25.
//
// It wraps zerolog with field helpers so call sites read as
//
//	log.Info("run started", logx.Time("anchor", anchor))
//
// Boundary effects (persistence, notifications) are logged here and never
// surfaced as hard errors to the phase arithmetic.
package logx

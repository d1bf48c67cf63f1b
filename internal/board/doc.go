// Package board implements the stage-transition engine behind the tracker.
//
// The Board owns all in-memory state: tracked stocks keyed by integer id and
// the append-only transition log. Moves run through a pure validator over the
// stage registry, may be forced with a rationale, and always append exactly
// one log entry. Log entries survive stock deletion.
//
// The Board is the single source of truth; the Persistence hook mirrors each
// mutation to durable storage and the Notifier surfaces advisory
// success/failure signals. Both are optional. All mutating calls are
// serialized by an internal mutex so the read, decide, mutate, append
// sequence of a move is one atomic unit.
package board

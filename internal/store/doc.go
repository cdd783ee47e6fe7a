// Package store persists kilns, firing programs and projects in SQLite.
//
// The store is the persistence-and-consistency layer of the tracker:
//   - Schema initialization: six tables created idempotently on every Open
//   - Reconstitution: queries that join normalized rows back into the
//     model.KilnProgram and model.KilnProject aggregates, in a defined
//     row order
//   - Mutation: create/insert operations, the step-replacement transaction,
//     and the optimistic (count-then-insert) uniqueness checks
//
// Every aggregate-returning mutation re-fetches the aggregate from the
// database after the write and returns that fresh copy; callers should
// discard their working copy. This read-your-write pattern is what keeps
// store-assigned ids authoritative.
//
// Concurrency model: one connection, no pooling (SetMaxOpenConns(1)), every
// operation a synchronous sequence of round-trips. Only step replacement is
// transactional. Multi-query reads (program fetch, project fetch) run
// outside any transaction, so a writer committing between two of those
// reads can produce a torn aggregate. The uniqueness checks are
// check-then-act, not store-level constraints; two concurrent creators of
// the same name can both succeed.
//
// Not-found is an empty result (nil aggregate, nil error) for pure lookups,
// and a typed model.Error for operations that need the referenced entity
// to proceed.
//
// Names are NFC-normalized on the way in and on lookup, so Unicode-equal
// spellings of the same name resolve to the same row.
package store

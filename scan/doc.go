// Package scan produces the candidate files for a search.
//
// Enumerate lists regular files under a root directory, optionally
// recursing. ExcerptReader reads a bounded, text-decoded prefix of each
// candidate's content on a worker pool, keeping the original candidate
// order. A file that cannot be read or decoded falls back to name-only
// matching instead of failing the run.
package scan

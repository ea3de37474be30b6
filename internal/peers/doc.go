// Package peers fans a checkup request out to the sibling hosts listed in the
// configuration and gathers their answers.
//
// Each peer runs in its own goroutine with its own timeout and retry budget.
// Results land in an index-addressed slice, so the caller sees peers in the
// order they were configured regardless of which answered first. A peer that
// cannot be reached, answers with a non-2xx status, or sends something that is
// not a checkup document becomes an api.Unavailable placeholder.
package peers

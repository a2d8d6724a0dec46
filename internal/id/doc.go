// Package id provides unique identifier generation utilities.
//
// Generation runs are identified by ULIDs: 26-character identifiers that
// encode a millisecond timestamp and a random component, so they sort
// chronologically. Randomness comes from crypto/rand through a monotonic
// reader, which keeps IDs from the same millisecond increasing.
package id

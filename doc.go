// Package aiautilities provides a thin facade over a Redis-like
// key-value store: write a record under a key, read it back by exact
// key, or enumerate every record under a key prefix.
//
// Backends plug in through the [github.com/surgelove/aia-utilities/driver]
// package; Redis, etcd, Tarantool and an in-memory driver ship with the
// library. See the [github.com/surgelove/aia-utilities/typed] package
// for a facade over a concrete struct type instead of the generic
// record mapping.
package aiautilities

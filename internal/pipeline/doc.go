// Package pipeline runs independent segments on a worker pool and hands
// their outcomes to a visit callback in manifest order.
//
// Workers only compute; the collector alone calls visit, so visitors need
// no locking.
package pipeline

// Package cmdstreamer runs an external shell command and treats its
// three standard streams as lazy, possibly-infinite sequences of text
// lines.
//
// The stream subpackage holds the sequence abstraction and three
// concurrency primitives over it: a Selector (fan-in/fan-out with a
// critical-route completion rule), a Partitioner (deterministic
// fan-out by key hash) and a Merger (fair-ish fan-in).  The lineio
// subpackage adapts byte streams to and from line sequences.  This
// package ties them to a child process: see Process and Config.
//
// Everything is built from parallel goroutines and bounded queues; a
// downstream that stops consuming eventually blocks its producer, and
// if the producer is a pipe from the child, the OS pipe buffer fills
// and the child blocks on write, which is the intended behavior.
package cmdstreamer

// Package pipeline runs the three-stage measurement pipeline:
//
//	acquire -> convert -> render
//
// Stages are connected by bounded channels of Message values. A full channel
// blocks its sender. Shutdown starts out of band, when the quit watcher sets
// the shared Flag, and finishes in band: the acquirer notices the flag, sends
// its last sample and then an end-of-stream message, and each downstream
// stage forwards end-of-stream only after receiving it. No stage stops while
// its upstream neighbour may still send it data.
package pipeline

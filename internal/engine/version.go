package engine

// Version is the executor version recorded with each session.
//
// Stored sessions carry the version that produced them, so a replay
// against a newer executor can tell semantic drift from nondeterminism.
const Version = "0.1.0"

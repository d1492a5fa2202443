// Package render applies an effect to a finished recording ahead of time
// and packages the result for export.
//
// Rendering is deterministic: the same recording, effect, intensity and
// seed always produce the same samples. Effect tails are cut at the
// length of the recording.
package render

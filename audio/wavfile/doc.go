// Package wavfile encodes rendered audio into the canonical 44-byte-header
// 16-bit PCM WAV container and decodes captured recordings.
package wavfile

// Package design computes biquad coefficients for the filter shapes used
// by voice effects.
//
// Designers follow the RBJ audio EQ cookbook. Frequencies at or beyond the
// [0, Nyquist] edges collapse to the limiting transfer function (identity or
// silence) instead of producing unstable coefficients.
package design

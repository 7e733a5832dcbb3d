// Package analysis summarizes extracted sample series.
//
//   - [Summarize]: min, max, mean and RMS of a series
//   - [PowerSpectrum]: magnitude spectrum via radix-2 FFT
//   - [DominantFrequency]: strongest non-DC spectral bin
//
// Spectra are computed over the largest power-of-two prefix of a series;
// the remaining tail samples are ignored.
package analysis

// Package analysis inspects computed frames.
//
// [PowerSpectrum] transforms an evenly sampled signal with go-dsp and
// [Analyze] reports the dominant frequency, extrema and RMS of every
// time-domain curve of a [demo.Frame]:
//
//	for _, r := range analysis.Analyze(frame) {
//	    fmt.Println(r.Curve, r.DominantHz)
//	}
package analysis

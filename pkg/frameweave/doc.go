// Package frameweave is the embeddable API of the motion-compensated frame
// interpolation core.
//
// An Interpolator estimates dense optical flow between two frames with a
// coarse-to-fine Horn-Schunck solver and synthesizes an intermediate frame at
// an arbitrary temporal position:
//
//	interp, err := frameweave.New(frameweave.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := interp.Interpolate(ctx, frameA, frameB, 0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = res.Output
//
// The core has no network or file surface of its own; frames come from and go
// to the host application. Use functional options to inject a logger or a
// custom compute dispatcher.
package frameweave

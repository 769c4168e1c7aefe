//go:build js && wasm
// +build js,wasm

package main

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/himanishpuri/AcousticAlign/pkg/acousticalign/align"
	"github.com/himanishpuri/AcousticAlign/pkg/utils"
)

// Error codes returned to JavaScript
const (
	ErrorNone = iota
	ErrorInvalidArgs
	ErrorRateMismatch
	ErrorNoOverlap
	ErrorProcessing
)

// alignParams are the optional tuning values accepted from JavaScript.
type alignParams struct {
	hopMs         float64
	windowMs      float64
	minOverlapSec float64
	maxShiftSec   float64
	method        align.Method
}

func defaultParams() alignParams {
	return alignParams{hopMs: 10, windowMs: 25, minOverlapSec: 1, maxShiftSec: 30, method: align.MethodAuto}
}

// shiftAlign(a, b, sampleRate, mode, [options]) aligns two mono recordings.
// Returns: {error: number, data: object | string}
func shiftAlign(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected at least 4 arguments: a, b, sampleRate, mode")
	}

	a, b, params, errResp := parseCommon(args)
	if errResp != nil {
		return *errResp
	}

	if args[3].Type() != js.TypeString {
		return makeErrorResponse(ErrorInvalidArgs, "mode must be a string")
	}
	mode, err := align.ParseMode(args[3].String())
	if err != nil {
		return makeErrorResponse(ErrorInvalidArgs, err.Error())
	}

	hop, window, opts := params.resolve(a.SampleRate)
	res, err := align.ShiftAlign(a, b, mode, hop, window, opts...)
	if err != nil {
		return errorResponse(err)
	}

	data := shiftObject(res.Lag, res.Shift, a.SampleRate, hop)
	data.Set("a", toFloat64Array(res.A.Samples))
	data.Set("b", toFloat64Array(res.B.Samples))

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", data)
	return result
}

// estimateShift(a, b, sampleRate, [options]) only reports the offset.
func estimateShift(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return makeErrorResponse(ErrorInvalidArgs, "Expected at least 3 arguments: a, b, sampleRate")
	}

	// options sit where shiftAlign takes the mode
	shifted := append(args[:3:3], js.Undefined())
	if len(args) > 3 {
		shifted = append(shifted, args[3])
	}
	a, b, params, errResp := parseCommon(shifted)
	if errResp != nil {
		return *errResp
	}

	hop, window, opts := params.resolve(a.SampleRate)
	lag, err := align.Estimate(a, b, hop, window, opts...)
	if err != nil {
		return errorResponse(err)
	}
	shift, err := align.ResolveShift(lag, hop)
	if err != nil {
		return errorResponse(err)
	}

	result := js.Global().Get("Object").New()
	result.Set("error", ErrorNone)
	result.Set("data", shiftObject(lag, shift, a.SampleRate, hop))
	return result
}

func parseCommon(args []js.Value) (align.Signal, align.Signal, alignParams, *js.Value) {
	fail := func(msg string) (align.Signal, align.Signal, alignParams, *js.Value) {
		v := makeErrorResponse(ErrorInvalidArgs, msg)
		return align.Signal{}, align.Signal{}, alignParams{}, &v
	}

	if args[2].Type() != js.TypeNumber {
		return fail("sampleRate must be a number")
	}
	rate := args[2].Int()
	if rate <= 0 {
		return fail(fmt.Sprintf("Invalid sample rate: %d", rate))
	}

	samplesA, err := toSamples(args[0], "a")
	if err != nil {
		return fail(err.Error())
	}
	samplesB, err := toSamples(args[1], "b")
	if err != nil {
		return fail(err.Error())
	}

	params := defaultParams()
	if len(args) > 4 && args[4].Type() == js.TypeObject {
		opts := args[4]
		readNumber(opts, "hopMs", &params.hopMs)
		readNumber(opts, "windowMs", &params.windowMs)
		readNumber(opts, "minOverlapSec", &params.minOverlapSec)
		readNumber(opts, "maxShiftSec", &params.maxShiftSec)
		if m := opts.Get("method"); m.Type() == js.TypeString {
			method, err := align.ParseMethod(m.String())
			if err != nil {
				return fail(err.Error())
			}
			params.method = method
		}
	}

	return align.Signal{Samples: samplesA, SampleRate: rate},
		align.Signal{Samples: samplesB, SampleRate: rate},
		params, nil
}

func (p alignParams) resolve(rate int) (int, int, []align.Option) {
	hop := utils.MsToSamples(p.hopMs, rate)
	window := utils.MsToSamples(p.windowMs, rate)
	return hop, window, []align.Option{
		align.WithMinOverlap(utils.SecToFrames(p.minOverlapSec, rate, hop)),
		align.WithMaxShift(utils.SecToFrames(p.maxShiftSec, rate, hop)),
		align.WithMethod(p.method),
	}
}

func readNumber(obj js.Value, key string, dst *float64) {
	if v := obj.Get(key); v.Type() == js.TypeNumber {
		*dst = v.Float()
	}
}

func toSamples(v js.Value, name string) ([]float64, error) {
	if v.Type() != js.TypeObject {
		return nil, fmt.Errorf("%s must be an Array or Float64Array", name)
	}
	length := v.Length()
	samples := make([]float64, length)
	for i := 0; i < length; i++ {
		val := v.Index(i)
		if val.Type() != js.TypeNumber {
			return nil, fmt.Errorf("%s element %d is not a number", name, i)
		}
		samples[i] = val.Float()
	}
	return samples, nil
}

func toFloat64Array(samples []float64) js.Value {
	arr := js.Global().Get("Float64Array").New(len(samples))
	for i, s := range samples {
		arr.SetIndex(i, s)
	}
	return arr
}

func shiftObject(lag align.LagEstimate, shift align.SampleShift, rate, hop int) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("shiftSamples", int(shift))
	obj.Set("shiftMs", float64(shift)*1000/float64(rate))
	obj.Set("lagFrames", lag.Frames)
	obj.Set("score", lag.Score)
	obj.Set("overlapFrames", lag.Overlap)
	obj.Set("hop", hop)
	return obj
}

func errorResponse(err error) js.Value {
	switch {
	case errors.Is(err, align.ErrSampleRateMismatch):
		return makeErrorResponse(ErrorRateMismatch, err.Error())
	case errors.Is(err, align.ErrNoOverlap):
		return makeErrorResponse(ErrorNoOverlap, err.Error())
	case errors.Is(err, align.ErrInvalidInput):
		return makeErrorResponse(ErrorInvalidArgs, err.Error())
	default:
		return makeErrorResponse(ErrorProcessing, err.Error())
	}
}

func makeErrorResponse(errorCode int, message string) js.Value {
	result := js.Global().Get("Object").New()
	result.Set("error", errorCode)
	result.Set("data", message)
	return result
}

func main() {
	console := js.Global().Get("console")
	logf := func(format string, args ...any) {
		if !console.IsUndefined() {
			console.Call("log", fmt.Sprintf(format, args...))
		}
	}

	done := make(chan struct{})

	js.Global().Set("shiftAlign", js.FuncOf(shiftAlign))
	js.Global().Set("estimateShift", js.FuncOf(estimateShift))
	logf("AcousticAlign: shiftAlign and estimateShift registered")

	if window := js.Global().Get("window"); !window.IsUndefined() {
		eventInit := js.Global().Get("Object").New()
		event := js.Global().Get("CustomEvent").New("wasmReady", eventInit)
		window.Call("dispatchEvent", event)
		logf("AcousticAlign: wasmReady dispatched")
	}

	<-done
}

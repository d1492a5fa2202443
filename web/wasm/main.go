//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-voicefx/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := 44100.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		e, err := webdemo.NewEngine(sr)
		if err != nil {
			return err.Error()
		}
		engine = e
		return js.Null()
	}))

	api.Set("listEffects", export(func(args []js.Value) any {
		if engine == nil {
			return js.Global().Get("Array").New(0)
		}
		effects := engine.ListEffects()
		arr := js.Global().Get("Array").New(len(effects))
		for i, d := range effects {
			item := js.Global().Get("Object").New()
			item.Set("id", string(d.ID))
			item.Set("name", d.Name)
			item.Set("description", d.Description)
			arr.SetIndex(i, item)
		}
		return arr
	}))

	api.Set("setEffect", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		if err := engine.SetEffect(args[0].String(), args[1].Int()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setRecording", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		if err := engine.SetRecording(args[0].Bool()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("process", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Global().Get("Float32Array").New(0)
		}
		input := args[0]
		n := input.Length()
		src := make([]float32, n)
		for i := 0; i < n; i++ {
			src[i] = float32(input.Index(i).Float())
		}
		dst := make([]float32, n)
		if err := engine.Process(dst, src); err != nil {
			return err.Error()
		}
		arr := js.Global().Get("Float32Array").New(n)
		for i := 0; i < n; i++ {
			arr.SetIndex(i, dst[i])
		}
		return arr
	}))

	api.Set("render", export(func(args []js.Value) any {
		if engine == nil || len(args) < 3 {
			return js.Null()
		}
		input := args[0]
		recording := make([]byte, input.Length())
		js.CopyBytesToGo(recording, input)

		data, name, processed := engine.Export(recording, args[1].String(), args[2].Int())

		out := js.Global().Get("Uint8Array").New(len(data))
		js.CopyBytesToJS(out, data)

		result := js.Global().Get("Object").New()
		result.Set("data", out)
		result.Set("filename", name)
		result.Set("mimeType", "audio/wav")
		result.Set("processed", processed)
		return result
	}))

	js.Global().Set("VoiceFX", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

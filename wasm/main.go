//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("LooseJSONNewParser", js.FuncOf(newParser))
	js.Global().Set("LooseJSONParse", js.FuncOf(parse))
	js.Global().Set("LooseJSONTokenize", js.FuncOf(tokenize))
	js.Global().Set("LooseJSONCloseParser", js.FuncOf(closeParser))

	// Keep WASM running
	<-make(chan struct{})
}

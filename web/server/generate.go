package server

// Build the in-browser client served at /wasm.html into the embedded static directory.
//go:generate sh -c "GOOS=js GOARCH=wasm go build -o static/raytracer.wasm ../wasm"
//go:generate sh -c "cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" static/wasm_exec.js"

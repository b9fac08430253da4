// Package app hosts the demo programs built with the compiler. It owns the
// runtime configuration, the logger, and the lifecycle of a single run:
// compile the selected program, optionally dump it, decode its inputs and
// invoke it. It is decoupled from any specific entrypoint like a CLI.
package app

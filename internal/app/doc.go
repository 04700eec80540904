// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the generation lifecycle: discover inputs,
// build the field model, check it, render accessors and write outputs. It is
// decoupled from any specific entrypoint like a CLI or go generate.
package app

// Package config defines the format-agnostic Loader interface. Every input
// format, Go source or HCL schema, loads into the same model.File, so the
// checker and the generator never see where a structure came from.
package config

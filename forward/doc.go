// Package forward implements the store-and-forward engine: it takes one
// inbound DICOM instance at a time, optionally edits its attributes,
// optionally transcodes its pixel data, and relays it to one or more
// downstream destinations (a classical DICOM peer via C-STORE, or a web
// endpoint via STOW-RS).
//
// The package does not listen for inbound instances itself — that is an
// external collaborator (a C-STORE SCP, a directory walk, anything that can
// produce a Params) — nor does it own configuration loading, CLI, or
// logging; those live in sibling packages and are wired in by the caller.
package forward

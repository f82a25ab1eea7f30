package httpserver

import _ "embed"

// indexHTML is the reference chat client served at "/". It is the canonical
// consumer of the emulated streaming protocol.
//
//go:embed web/index.html
var indexHTML []byte

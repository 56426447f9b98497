// embed.go keeps the scene configuration inside the binary. It must live in
// the module root because //go:embed only reaches files below its package.
package main

import "embed"

//go:embed configs
var configsFS embed.FS

package slidedeck

import _ "embed"

// Version is the release of the slidedeck module.
//
//go:embed VERSION
var Version string

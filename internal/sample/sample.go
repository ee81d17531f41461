// Package sample holds the pipeline configuration used by the command line
// demo mode and by tests.
package sample

import _ "embed"

// Pipeline is a pipeline configuration with five components and two
// graphs. The second graph references IvrOrder, which is not declared as a
// component.
//
//go:embed pipeline.prototxt
var Pipeline []byte

// Glasbey - maximally distinct colour palette generator
//
// Glasbey builds palettes of perceptually maximally distinguishable colours
// for encoding categorical data, using greedy farthest-point selection in
// CAM02-UCS space.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/glasbey/internal/cli"

func main() {
	cli.Execute()
}

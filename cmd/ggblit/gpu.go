//go:build !nogpu

package main

// Registers the wgpu accelerator. Without it every blit is rasterized on
// the CPU; build with -tags nogpu for a pure software binary.
import _ "github.com/gogpu/gg/gpu"

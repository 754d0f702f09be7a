//go:build !nogpu

package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/floor.wgsl
var floorShaderSource string

// ShaderSource returns the WGSL source of the floor shader.
func ShaderSource() string {
	return floorShaderSource
}

// CompileSPIRV compiles the floor shader to SPIR-V with naga. Hosts that
// drive Vulkan directly can use the result instead of the WGSL source.
func CompileSPIRV() ([]byte, error) {
	spirv, err := naga.Compile(floorShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile floor shader: %w", err)
	}
	slogger().Debug("gpu: floor shader compiled", "spirv_bytes", len(spirv))
	return spirv, nil
}

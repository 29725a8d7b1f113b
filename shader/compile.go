package shader

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic = 0x07230203

// CompileSPIRV compiles the kernel to SPIR-V words.
func CompileSPIRV() ([]uint32, error) {
	return CompileSourceSPIRV(source)
}

// CompileSourceSPIRV compiles WGSL source to SPIR-V uint32 words.
func CompileSourceSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// ModuleSource selects what a HAL device receives for the kernel.
type ModuleSource int

const (
	// SourceWGSL hands the WGSL text to the backend, which compiles it.
	SourceWGSL ModuleSource = iota
	// SourceSPIRV precompiles with naga and hands over SPIR-V words.
	SourceSPIRV
)

// CreateModule creates a HAL shader module for the kernel.
func CreateModule(device hal.Device, label string, src ModuleSource) (hal.ShaderModule, error) {
	desc := &hal.ShaderModuleDescriptor{Label: label}
	switch src {
	case SourceSPIRV:
		code, err := CompileSPIRV()
		if err != nil {
			return nil, err
		}
		desc.Source = hal.ShaderSource{SPIRV: code}
	default:
		desc.Source = hal.ShaderSource{WGSL: source}
	}
	return device.CreateShaderModule(desc)
}

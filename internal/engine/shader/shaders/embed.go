// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GrassVertexShader sways blades by the wind uniform, weighted by height.
//
//go:embed grass.vert
var GrassVertexShader string

// GrassFragmentShader shades blades from the height ramp and picked color,
// tinted by the field texture at each blade's anchor UV.
//
//go:embed grass.frag
var GrassFragmentShader string

// GroundVertexShader is the vertex shader for the ground plane.
//
//go:embed ground.vert
var GroundVertexShader string

// GroundFragmentShader is the fragment shader for the ground plane.
//
//go:embed ground.frag
var GroundFragmentShader string

package shader

import _ "embed"

// MeshVertex is the vertex stage of the mesh pipeline. It reads a vec3
// position at location 0 and the Camera uniform block.
//
//go:embed glsl/mesh.vert
var MeshVertex string

// MeshFragment shades the mesh from screen-space derived face normals.
//
//go:embed glsl/mesh.frag
var MeshFragment string

// CameraBlock is the uniform block name holding the view-projection matrix.
const CameraBlock = "Camera"

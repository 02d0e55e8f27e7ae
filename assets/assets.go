// Package assets embeds the resources shipped inside the module.
//
// Textures live under textures/. The high-resolution lunar map is not
// committed; drop a file named moon.png (or .jpg, .tif, ...) there before
// building to bundle it. Without one, renders use a flat gray material.
package assets

import "embed"

// TextureDir is the directory inside FS that holds bundled textures.
const TextureDir = "textures"

//go:embed textures
var FS embed.FS

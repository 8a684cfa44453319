// Package assets embeds the schemas nuspecgen ships with.
package assets

import "embed"

//go:embed embedded_schemas
var schemas embed.FS

// GetSchema retrieves an embedded schema by path relative to embedded_schemas.
func GetSchema(path string) ([]byte, bool) {
	data, err := schemas.ReadFile("embedded_schemas/" + path)
	if err != nil {
		return nil, false
	}
	return data, true
}

package scene

import (
	"fmt"

	"planet-renderer/internal/texture"
)

// Samplers resolves the scene's texture and normal map through c. A name
// left empty yields nil.
func (s *Scene) Samplers(c *texture.Cache) (*texture.Texture, *texture.NormalMap, error) {
	var (
		tex *texture.Texture
		nm  *texture.NormalMap
		err error
	)
	if s.TextureName != "" {
		if tex, err = c.Texture(s.TextureName); err != nil {
			return nil, nil, fmt.Errorf("scene: texture: %w", err)
		}
	}
	if s.NormalMapName != "" {
		if nm, err = c.NormalMap(s.NormalMapName); err != nil {
			return nil, nil, fmt.Errorf("scene: normal map: %w", err)
		}
	}
	return tex, nm, nil
}

package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame     int     `json:"frame"`
	Image     string  `json:"image"`
	Yaw       float64 `json:"yaw_deg"`
	Triangles int     `json:"triangles"`
	Fragments int     `json:"fragments"`
	Written   int     `json:"written"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

// Manifest lists the rendered frames of one run.
type Manifest struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Frames []ManifestEntry `json:"frames"`
	Failed []int           `json:"failed,omitempty"`
}

// BuildManifest collects successful frames in order and the indices of
// failed ones.
func BuildManifest(width, height int, results []Result) Manifest {
	m := Manifest{Width: width, Height: height, Frames: []ManifestEntry{}}
	for _, r := range results {
		if !r.Success {
			m.Failed = append(m.Failed, r.Frame)
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Frame:     r.Frame,
			Image:     r.Image,
			Yaw:       r.Yaw,
			Triangles: r.Stats.Triangles,
			Fragments: r.Stats.Fragments,
			Written:   r.Stats.Written,
			ElapsedMS: float64(r.Stats.Elapsed.Microseconds()) / 1000,
		})
	}
	return m
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

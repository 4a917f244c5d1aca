package loot

import (
	"encoding/json"
	"fmt"
	"image"
	"sort"
)

// subImager is implemented by the standard library image types.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// LoadAtlas parses TexturePacker JSON and registers every frame as a named
// sub-image of its page. Both the hash format (single "frames" object) and
// the array format ("textures" array with per-page frame lists) are
// accepted. Frames stored rotated are registered as they appear in the
// page, i.e. turned 90 degrees clockwise. It returns the number of frames
// registered.
func (s *ImageStore) LoadAtlas(jsonData []byte, pages ...image.Image) (int, error) {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return 0, fmt.Errorf("loot: failed to parse atlas JSON: %w", err)
	}

	var perPage []map[string]atlasFrame
	switch {
	case probe.Textures != nil:
		var textures []atlasPage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return 0, fmt.Errorf("loot: failed to parse atlas textures array: %w", err)
		}
		for _, tex := range textures {
			perPage = append(perPage, tex.Frames)
		}
	case probe.Frames != nil:
		var frames map[string]atlasFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return 0, fmt.Errorf("loot: failed to parse atlas frames: %w", err)
		}
		perPage = append(perPage, frames)
	default:
		return 0, fmt.Errorf("loot: atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	n := 0
	for i, frames := range perPage {
		if i >= len(pages) {
			return n, fmt.Errorf("loot: atlas references page %d but %d given", i, len(pages))
		}
		page, ok := pages[i].(subImager)
		if !ok {
			return n, fmt.Errorf("loot: atlas page %d does not support sub-images", i)
		}
		// Sorted so a duplicate name fails at the same frame every time.
		names := make([]string, 0, len(frames))
		for name := range frames {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := s.AddImage(name, page.SubImage(frames[name].bounds())); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

type atlasRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type atlasFrame struct {
	Frame   atlasRect `json:"frame"`
	Rotated bool      `json:"rotated"`
}

type atlasPage struct {
	Image  string                `json:"image"`
	Frames map[string]atlasFrame `json:"frames"`
}

// bounds returns the frame's rectangle within its page. TexturePacker lists
// the unrotated size for rotated frames.
func (f atlasFrame) bounds() image.Rectangle {
	w, h := f.Frame.W, f.Frame.H
	if f.Rotated {
		w, h = h, w
	}
	return image.Rect(f.Frame.X, f.Frame.Y, f.Frame.X+w, f.Frame.Y+h)
}

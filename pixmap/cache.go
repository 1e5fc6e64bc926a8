package pixmap

import (
	"image"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
)

type cacheKey struct {
	path       string
	cols, rows int
	mode       FitMode
}

// Cache keeps decoded sources and converted images per size
type Cache struct {
	mu        sync.Mutex
	logger    zerolog.Logger
	sources   map[string]image.Image
	converted map[cacheKey]*Image
	missing   map[string]bool

	// Placeholder gradient for missing images
	Top, Bottom colorful.Color
}

func NewCache(logger zerolog.Logger) *Cache {
	return &Cache{
		logger:    logger.With().Str("component", "pixmap").Logger(),
		sources:   make(map[string]image.Image),
		converted: make(map[cacheKey]*Image),
		missing:   make(map[string]bool),
		Top:       colorful.Color{R: 0.12, G: 0.10, B: 0.16},
		Bottom:    colorful.Color{R: 0.02, G: 0.02, B: 0.03},
	}
}

// Get returns path converted to fit cols x rows
// Missing or undecodable files yield a placeholder and are logged once; empty path yields nil
func (c *Cache) Get(path string, cols, rows int, mode FitMode) *Image {
	if path == "" || cols <= 0 || rows <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{path: path, cols: cols, rows: rows, mode: mode}
	if im, ok := c.converted[key]; ok {
		return im
	}

	src, err := c.source(path)
	var im *Image
	if err != nil {
		if !c.missing[path] {
			c.missing[path] = true
			c.logger.Warn().Err(err).Str("file", path).Msg("image unavailable, using placeholder")
		}
		im = Placeholder(cols, rows, c.Top, c.Bottom)
	} else {
		im = Convert(src, cols, rows, mode)
	}
	c.converted[key] = im
	return im
}

func (c *Cache) source(path string) (image.Image, error) {
	if img, ok := c.sources[path]; ok {
		return img, nil
	}
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.sources[path] = img
	return img, nil
}

// Missing reports whether path failed to load
func (c *Cache) Missing(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.missing[path]
}

// Purge drops converted images, keeping decoded sources; call on resize
func (c *Cache) Purge() {
	c.mu.Lock()
	clear(c.converted)
	c.mu.Unlock()
}

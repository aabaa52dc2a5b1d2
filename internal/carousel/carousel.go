// Package carousel holds the slideshow state of a vehicle gallery
package carousel

import (
	"strings"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/models"
)

// DefaultThumbnails is how many thumbnails the gallery strip shows
const DefaultThumbnails = 6

// Carousel is an index into a de-duplicated image list
type Carousel struct {
	images []string
	index  int
}

// New trims the references, drops empty ones and drops repeats while
// keeping the first occurrence
func New(images []string) *Carousel {
	seen := make(map[string]struct{}, len(images))
	kept := make([]string, 0, len(images))
	for _, ref := range images {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		kept = append(kept, ref)
	}
	return &Carousel{images: kept}
}

// Images returns the cleaned image list
func (c *Carousel) Images() []string {
	return append([]string(nil), c.images...)
}

// Len is the number of images
func (c *Carousel) Len() int {
	return len(c.images)
}

// Index returns the current position clamped into [0, Len-1]
func (c *Carousel) Index() int {
	if len(c.images) == 0 || c.index < 0 {
		return 0
	}
	if c.index > len(c.images)-1 {
		return len(c.images) - 1
	}
	return c.index
}

// Current returns the image at Index, or the placeholder when empty
func (c *Carousel) Current() string {
	if len(c.images) == 0 {
		return models.PlaceholderImage
	}
	return c.images[c.Index()]
}

// Next advances with wraparound
func (c *Carousel) Next() {
	if len(c.images) < 2 {
		return
	}
	c.index = (c.Index() + 1) % len(c.images)
}

// Prev steps back with wraparound
func (c *Carousel) Prev() {
	if len(c.images) < 2 {
		return
	}
	n := len(c.images)
	c.index = (c.Index() - 1 + n) % n
}

// Select jumps to i. Out of range values are clamped on the next read.
func (c *Carousel) Select(i int) {
	c.index = i
}

// Thumbnails returns the first n images and how many were left out.
// n <= 0 means DefaultThumbnails.
func (c *Carousel) Thumbnails(n int) (thumbs []string, remaining int) {
	if n <= 0 {
		n = DefaultThumbnails
	}
	if n > len(c.images) {
		n = len(c.images)
	}
	return append([]string(nil), c.images[:n]...), len(c.images) - n
}

package dither

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshotter captures labeled PNGs of the rendered frame. Labels are
// queued at any point in the frame and written by Flush at the end of Draw.
// File names are "<timestamp>_<seq>_<label>.png"; seq keeps shots taken in
// the same second apart.
type Screenshotter struct {
	Dir   string
	queue []string
	seq   int
	now   func() time.Time
}

// NewScreenshotter creates a screenshotter writing into dir.
func NewScreenshotter(dir string) *Screenshotter {
	if dir == "" {
		dir = "screenshots"
	}
	return &Screenshotter{Dir: dir, now: time.Now}
}

// Queue schedules a screenshot for the end of the current frame.
func (s *Screenshotter) Queue(label string) {
	s.queue = append(s.queue, label)
}

// Pending returns the number of queued screenshots.
func (s *Screenshotter) Pending() int {
	return len(s.queue)
}

// Flush reads screen back once and writes one file per queued label.
// Returns the written paths; failures are logged and skipped.
func (s *Screenshotter) Flush(screen *ebiten.Image) []string {
	if len(s.queue) == 0 {
		return nil
	}
	defer func() { s.queue = s.queue[:0] }()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		Logger().Warn("dither: screenshot dir unavailable", "dir", s.Dir, "err", err)
		return nil
	}

	// ReadPixels yields premultiplied RGBA, which is image.RGBA's layout.
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)

	stamp := s.now().Format("20060102_150405")
	paths := make([]string, 0, len(s.queue))
	for _, label := range s.queue {
		s.seq++
		name := fmt.Sprintf("%s_%03d_%s.png", stamp, s.seq, sanitizeLabel(label))
		path := filepath.Join(s.Dir, name)
		if err := savePNG(path, img); err != nil {
			Logger().Warn("dither: screenshot failed", "err", err)
			continue
		}
		Logger().Info("dither: screenshot", "path", path)
		paths = append(paths, path)
	}
	return paths
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("screenshot: %w", cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("screenshot: encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps letters, digits, '-' and '.', maps everything else to
// '_' and names empty labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}

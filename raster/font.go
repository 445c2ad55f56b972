package raster

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/text/cases"
)

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("raster: invalid font data")

// Built-in family names.
const (
	FamilyGo     = "Go"
	FamilyGoMono = "Go Mono"
)

// face is one parsed font file, usable for both shaping and outlines.
type face struct {
	sf *opentype.Font
	gt *gotext.Font
}

// family holds up to four faces indexed by style.
type family [4]*face

func styleIndex(bold, italic bool) int {
	i := 0
	if bold {
		i |= 2
	}
	if italic {
		i |= 1
	}
	return i
}

// pick returns the best available face, falling back to the regular one.
func (f *family) pick(bold, italic bool) *face {
	if fc := f[styleIndex(bold, italic)]; fc != nil {
		return fc
	}
	if fc := f[styleIndex(bold, false)]; fc != nil {
		return fc
	}
	if fc := f[styleIndex(false, italic)]; fc != nil {
		return fc
	}
	return f[0]
}

// FontRegistry maps CSS font family names to font files.
// Names are matched case-insensitively. It is safe for concurrent use.
type FontRegistry struct {
	mu       sync.RWMutex
	families map[string]*family
	aliases  map[string]string
	fallback string
	outlines *outlineCache
}

// foldName normalizes a family name for lookup.
func foldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// NewFontRegistry returns a registry holding only the built-in Go fonts
// and the generic family aliases.
func NewFontRegistry() *FontRegistry {
	r := &FontRegistry{
		families: make(map[string]*family),
		aliases:  make(map[string]string),
		fallback: FamilyGo,
		outlines: newOutlineCache(DefaultOutlineCapacity),
	}
	builtin := []struct {
		family       string
		bold, italic bool
		data         []byte
	}{
		{FamilyGo, false, false, goregular.TTF},
		{FamilyGo, true, false, gobold.TTF},
		{FamilyGo, false, true, goitalic.TTF},
		{FamilyGo, true, true, gobolditalic.TTF},
		{FamilyGoMono, false, false, gomono.TTF},
		{FamilyGoMono, true, false, gomonobold.TTF},
	}
	for _, b := range builtin {
		if err := r.Register(b.family, b.bold, b.italic, b.data); err != nil {
			panic(err)
		}
	}
	for _, a := range []string{"sans-serif", "serif", "system-ui", "cursive", "fantasy", "Arial", "Helvetica", "Times New Roman", "Verdana"} {
		r.Alias(a, FamilyGo)
	}
	for _, a := range []string{"monospace", "Courier", "Courier New", "Consolas"} {
		r.Alias(a, FamilyGoMono)
	}
	return r
}

var defaultFonts = NewFontRegistry()

// RegisterFont adds a face to the package-wide registry.
func RegisterFont(familyName string, bold, italic bool, data []byte) error {
	return defaultFonts.Register(familyName, bold, italic, data)
}

// RegisterFontFile reads a TrueType or OpenType file into the
// package-wide registry.
func RegisterFontFile(familyName string, bold, italic bool, path string) error {
	return defaultFonts.RegisterFile(familyName, bold, italic, path)
}

// Register parses data and stores it under familyName.
func (r *FontRegistry) Register(familyName string, bold, italic bool, data []byte) error {
	sf, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidFont, familyName, err)
	}
	gt, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidFont, familyName, err)
	}

	key := foldName(familyName)
	r.mu.Lock()
	defer r.mu.Unlock()
	fam := r.families[key]
	if fam == nil {
		fam = new(family)
		r.families[key] = fam
	}
	fam[styleIndex(bold, italic)] = &face{sf: sf, gt: gt.Font}
	return nil
}

// RegisterFile reads the font at path and registers it.
func (r *FontRegistry) RegisterFile(familyName string, bold, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("raster: read font: %w", err)
	}
	return r.Register(familyName, bold, italic, data)
}

// Alias makes name resolve to target.
func (r *FontRegistry) Alias(name, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[foldName(name)] = foldName(target)
}

// CacheStats returns statistics of the glyph outline cache shared by
// every context using r.
func (r *FontRegistry) CacheStats() CacheStats { return r.outlines.stats() }

// Families returns the registered family keys.
func (r *FontRegistry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.families))
	for k := range r.families {
		names = append(names, k)
	}
	return names
}

// lookup resolves the first known family of a CSS family list.
func (r *FontRegistry) lookup(families []string, bold, italic bool) *face {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range families {
		key := foldName(name)
		if target, ok := r.aliases[key]; ok {
			key = target
		}
		if fam := r.families[key]; fam != nil {
			if fc := fam.pick(bold, italic); fc != nil {
				return fc
			}
		}
	}
	if fam := r.families[foldName(r.fallback)]; fam != nil {
		return fam.pick(bold, italic)
	}
	return nil
}

// fontSpec is a parsed CSS font shorthand.
type fontSpec struct {
	size     float64
	bold     bool
	italic   bool
	families []string
}

var defaultFont = fontSpec{size: 10, families: []string{"sans-serif"}}

// parseFont parses "[style] [variant] [weight] <size>px[/line-height] <family>[, family]*".
func parseFont(s string) (fontSpec, bool) {
	fields := strings.Fields(s)
	spec := fontSpec{}
	for i, f := range fields {
		lf := strings.ToLower(f)
		if size, ok := parseFontSize(lf); ok {
			if i == len(fields)-1 {
				return spec, false
			}
			spec.size = size
			for _, fam := range strings.Split(strings.Join(fields[i+1:], " "), ",") {
				fam = strings.Trim(strings.TrimSpace(fam), `"'`)
				if fam != "" {
					spec.families = append(spec.families, fam)
				}
			}
			return spec, len(spec.families) > 0
		}
		switch lf {
		case "italic", "oblique":
			spec.italic = true
		case "bold", "bolder":
			spec.bold = true
		case "normal", "lighter", "small-caps":
		default:
			w, err := strconv.Atoi(lf)
			if err != nil {
				return spec, false
			}
			spec.bold = w >= 600
		}
	}
	return spec, false
}

func parseFontSize(s string) (float64, bool) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	scale := 0.0
	switch {
	case strings.HasSuffix(s, "px"):
		scale, s = 1, strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "pt"):
		scale, s = 4.0/3.0, strings.TrimSuffix(s, "pt")
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * scale, true
}

package report

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/flosch/pongo2"
	"github.com/mmuldo/lutter/palette"
)

// DefaultTemplate renders a plain-text summary of an apply run.
const DefaultTemplate = `{{ input }} -> {{ output }}
lut:      {{ lut }}{% if title %} ("{{ title }}"){% endif %}, {{ edge_length }}^3
size:     {{ width }}x{{ height }}
changed:  {{ changed }} of {{ pixels }} pixels
delta E:  mean {{ mean_delta_e|floatformat:2 }}, max {{ max_delta_e|floatformat:2 }}
{% for c in colors %}{{ c.hex }} {{ c.share|floatformat:1 }}%
{% endfor %}`

// Report is the template context of one apply run.
type Report map[string]interface{}

// Summary holds what an apply run knows about its result.
type Summary struct {
	Input, Output, LUT, Title string
	EdgeLength                int
	Width, Height             int
	Shift                     palette.Shift
	Colors                    []palette.ColorVol
}

//**exported functions**//
// Create builds a report from a summary and user-supplied options; options
// take precedence over computed values.
func Create(s Summary, opts map[string]interface{}) Report {
	r := Report{
		"input":        s.Input,
		"output":       s.Output,
		"lut":          s.LUT,
		"title":        s.Title,
		"edge_length":  s.EdgeLength,
		"width":        s.Width,
		"height":       s.Height,
		"pixels":       s.Shift.Pixels,
		"changed":      s.Shift.Changed,
		"mean_delta_e": s.Shift.Mean,
		"max_delta_e":  s.Shift.Max,
	}

	colors := make([]map[string]interface{}, 0, len(s.Colors))
	for i, c := range s.Colors {
		hex := rgb2Hex(c.RGB)
		colors = append(colors, map[string]interface{}{
			"hex":   hex,
			"share": c.Share * 100,
			"count": c.Count,
		})
		r[fmt.Sprintf("color%d", i)] = hex
	}
	r["colors"] = colors

	for k, v := range opts {
		r[k] = v
	}

	return r
}

// Render executes a pongo2 template against the report. An empty tpl uses
// DefaultTemplate; a value starting with "@" names a template file.
func (r Report) Render(tpl string) (string, error) {
	var t *pongo2.Template
	var e error

	switch {
	case tpl == "":
		t, e = pongo2.FromString(DefaultTemplate)
	case strings.HasPrefix(tpl, "@"):
		var b []byte
		b, e = os.ReadFile(strings.TrimPrefix(tpl, "@"))
		if e != nil {
			return "", e
		}
		t, e = pongo2.FromString(string(b))
	default:
		t, e = pongo2.FromString(tpl)
	}
	if e != nil {
		return "", fmt.Errorf("parsing report template: %w", e)
	}

	return t.Execute(pongo2.Context(r))
}

//**helper functions**//
func rgb2Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Package histogram renders the distribution of a sample batch.
package histogram

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrRenderUnavailable reports that no rendering target is available. It never
// aborts generation; callers log it and carry on.
var ErrRenderUnavailable = errors.New("render unavailable")

// A Bucket counts one distinct sample value.
type Bucket struct {
	Label string
	Count int
}

// A Renderer draws a bar chart of buckets.
type Renderer interface {
	Render(title string, buckets []Bucket) error
}

// Buckets groups values by distinct value, sorted by label.
func Buckets(values []string) []Bucket {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	r := make([]Bucket, 0, len(counts))
	for l, c := range counts {
		r = append(r, Bucket{Label: l, Count: c})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Label < r[j].Label })
	return r
}

// Plot renders a PNG bar chart to Path.
type Plot struct {
	Path   string
	Width  vg.Length
	Height vg.Length
	// XLabel and YLabel default to bilingual English/Hindi labels.
	XLabel string
	YLabel string
}

func (p Plot) Render(title string, buckets []Bucket) error {
	if p.Path == "" {
		return errors.Wrap(ErrRenderUnavailable, "no output path for histogram")
	}
	if len(buckets) == 0 {
		return errors.Wrap(ErrRenderUnavailable, "no data to visualize")
	}
	w, h := p.Width, p.Height
	if w == 0 {
		w = 12 * vg.Inch
	}
	if h == 0 {
		h = 8 * vg.Inch
	}

	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = orDefault(p.XLabel, "Bitstrings / Bitstrings")
	pl.Y.Label.Text = orDefault(p.YLabel, "Count / Ginti")

	vals := make(plotter.Values, len(buckets))
	names := make([]string, len(buckets))
	for i, b := range buckets {
		vals[i] = float64(b.Count)
		names[i] = b.Label
	}
	bars, err := plotter.NewBarChart(vals, barWidth(w, len(buckets)))
	if err != nil {
		return errors.Wrapf(ErrRenderUnavailable, "building bar chart: %v", err)
	}
	pl.Add(bars)
	pl.NominalX(names...)

	if err := pl.Save(w, h, p.Path); err != nil {
		return errors.Wrapf(ErrRenderUnavailable, "saving %s: %v", p.Path, err)
	}
	return nil
}

func barWidth(w vg.Length, n int) vg.Length {
	bw := w / vg.Length(2*n)
	if bw < vg.Points(1) {
		bw = vg.Points(1)
	}
	return bw
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Text draws horizontal ASCII bars to W, scaled so the largest bucket spans
// Width characters.
type Text struct {
	W     io.Writer
	Width int
}

func (t Text) Render(title string, buckets []Bucket) error {
	if t.W == nil {
		return errors.Wrap(ErrRenderUnavailable, "no writer for text histogram")
	}
	if len(buckets) == 0 {
		return errors.Wrap(ErrRenderUnavailable, "no data to visualize")
	}
	width := t.Width
	if width <= 0 {
		width = 40
	}
	maxCount, labelWidth := 0, 0
	for _, b := range buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
		if len(b.Label) > labelWidth {
			labelWidth = len(b.Label)
		}
	}
	var sb strings.Builder
	fmt.Fprintln(&sb, title)
	for _, b := range buckets {
		n := 0
		if maxCount > 0 {
			n = b.Count * width / maxCount
		}
		fmt.Fprintf(&sb, "%-*s | %s %d\n", labelWidth, b.Label, strings.Repeat("#", n), b.Count)
	}
	if _, err := io.WriteString(t.W, sb.String()); err != nil {
		return errors.Wrapf(ErrRenderUnavailable, "writing text histogram: %v", err)
	}
	return nil
}

package preview

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/rasenga223/luminicad/view"
)

// Theme holds the drawing colors as hex strings.
type Theme struct {
	Background string
	Shape      string
	Highlight  string
	Preview    string
	Label      string
	LineWidth  float64
	LabelSize  float64
}

// DefaultTheme returns the dark editor theme.
func DefaultTheme() Theme {
	return Theme{
		Background: "#1e1f22",
		Shape:      "#c8ccd4",
		Highlight:  "#ffb000",
		Preview:    "#4fc1ff",
		Label:      "#ffffff",
		LineWidth:  1.5,
		LabelSize:  12,
	}
}

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	errFont    error
)

func labelFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, errFont = text.NewFontSource(goregular.TTF)
	})
	return fontSource, errFont
}

// Draw rasterizes the document, highlights and preview as seen by v.
func (r *Renderer) Draw(v *view.View) (image.Image, error) {
	dc, err := r.draw(v)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dc.Close() }()
	return dc.Image(), nil
}

// WritePNG draws v and encodes the frame as PNG.
func (r *Renderer) WritePNG(v *view.View, w io.Writer) error {
	dc, err := r.draw(v)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()
	return dc.EncodePNG(w)
}

// SavePNG draws v into a PNG file.
func (r *Renderer) SavePNG(v *view.View, path string) error {
	dc, err := r.draw(v)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()
	return dc.SavePNG(path)
}

func (r *Renderer) draw(v *view.View) (*gg.Context, error) {
	cam := v.Camera()
	if cam.Width < 1 || cam.Height < 1 {
		return nil, fmt.Errorf("preview: invalid viewport %gx%g", cam.Width, cam.Height)
	}
	th := r.opts.theme
	prims, highlighted := r.snapshot()

	dc := gg.NewContext(int(cam.Width), int(cam.Height))
	dc.ClearWithColor(gg.Hex(th.Background))
	dc.SetLineWidth(th.LineWidth)

	for _, n := range r.doc.Nodes() {
		color := th.Shape
		if highlighted[n.ID()] {
			color = th.Highlight
		}
		dc.SetHexColor(color)
		for _, p := range view.ShapePrimitives(n.WorldShape()) {
			strokePrimitive(dc, v, p)
		}
	}

	dc.SetHexColor(th.Preview)
	dc.SetDash(4, 3)
	var labels []view.Primitive
	for _, p := range prims {
		if p.Kind == view.PrimitiveLabel {
			labels = append(labels, p)
			continue
		}
		strokePrimitive(dc, v, p)
	}
	dc.SetDash()

	if len(labels) > 0 {
		src, err := labelFont()
		if err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("preview: load label font: %w", err)
		}
		dc.SetFont(src.Face(th.LabelSize))
		dc.SetHexColor(th.Label)
		for _, l := range labels {
			x, y := v.WorldToScreen(l.Points[0])
			dc.DrawString(l.Text, x+8, y-8)
		}
	}
	return dc, nil
}

func strokePrimitive(dc *gg.Context, v *view.View, p view.Primitive) {
	pts := worldToScreen(v, p.Points)
	switch p.Kind {
	case view.PrimitivePoint:
		for _, q := range pts {
			dc.DrawCircle(q[0], q[1], 3)
			_ = dc.Fill()
		}
	case view.PrimitivePolyline:
		if len(pts) < 2 {
			return
		}
		dc.MoveTo(pts[0][0], pts[0][1])
		for _, q := range pts[1:] {
			dc.LineTo(q[0], q[1])
		}
		if p.Closed {
			dc.ClosePath()
		}
		_ = dc.Stroke()
	}
}

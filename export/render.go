package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"hrslides/design"
	"hrslides/pptx"
)

const (
	defaultPreviewWidth = 960
	emuPerPoint         = 12700

	// default body insets of a text frame
	insetX = 91440
	insetY = 45720
)

var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	darkText  = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	outline   = color.RGBA{R: 0x9C, G: 0xA3, B: 0xAF, A: 255}
	axisColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

	// pie slices without their own color
	chartPalette = []color.RGBA{
		{R: 79, G: 129, B: 189, A: 255},
		{R: 192, G: 80, B: 77, A: 255},
		{R: 155, G: 187, B: 89, A: 255},
		{R: 128, G: 100, B: 162, A: 255},
		{R: 75, G: 172, B: 198, A: 255},
		{R: 247, G: 150, B: 70, A: 255},
	}
)

func toRGBA(c pptx.Color) color.RGBA {
	p := c.PPT()
	return color.RGBA{R: p.GetRed(), G: p.GetGreen(), B: p.GetBlue(), A: 255}
}

// fontSet hands out Go font faces by pixel size. Faces are cached because
// building one parses glyph tables.
type fontSet struct {
	regular, bold *opentype.Font
	faces         map[faceKey]font.Face
}

type faceKey struct {
	quarterPx int
	bold      bool
}

func newFontSet() (*fontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	return &fontSet{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

func (fs *fontSet) face(px float64, bold bool) font.Face {
	if px < 4 {
		px = 4
	}
	key := faceKey{quarterPx: int(px * 4), bold: bold}
	if f, ok := fs.faces[key]; ok {
		return f
	}
	src := fs.regular
	if bold {
		src = fs.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(key.quarterPx) / 4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	fs.faces[key] = f
	return f
}

func (fs *fontSet) Close() {
	for _, f := range fs.faces {
		_ = f.Close()
	}
}

// slideRenderer paints one slide onto an RGBA image. Shapes are drawn in
// z-order: solid fills, autoshape geometries, lines, text and the bar and
// pie charts the layouts produce.
type slideRenderer struct {
	img    *image.RGBA
	raster *vector.Rasterizer
	scale  float64 // pixels per EMU
	fonts  *fontSet
}

func newSlideRenderer(cx, cy int64, width int, fonts *fontSet) *slideRenderer {
	if width <= 0 {
		width = defaultPreviewWidth
	}
	if cx <= 0 || cy <= 0 {
		cx, cy = design.SlideWidth, design.SlideHeight
	}
	scale := float64(width) / float64(cx)
	height := int(math.Round(float64(cy) * scale))
	return &slideRenderer{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(width, height),
		scale:  scale,
		fonts:  fonts,
	}
}

func (r *slideRenderer) px(emu int64) float64 { return float64(emu) * r.scale }

func (r *slideRenderer) render(s *ppt.Slide) *image.RGBA {
	bg := white
	if c := pptx.FillColor(s.GetBackground()); !c.IsZero() {
		bg = toRGBA(c)
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, shape := range s.GetShapes() {
		switch sh := shape.(type) {
		case *ppt.RichTextShape:
			r.renderTextFrame(sh)
		case *ppt.AutoShape:
			r.renderAutoShape(sh)
		case *ppt.LineShape:
			r.renderLine(sh)
		case *ppt.ChartShape:
			r.renderChart(sh)
		}
	}
	return r.img
}

type point struct{ x, y float64 }

func (r *slideRenderer) fillPolygon(pts []point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	b := r.img.Bounds()
	r.raster.Reset(b.Dx(), b.Dy())
	r.raster.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		r.raster.LineTo(float32(p.x), float32(p.y))
	}
	r.raster.ClosePath()
	r.raster.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

// strokeSegment fills the quad around a segment of the given pixel width.
func (r *slideRenderer) strokeSegment(a, b point, width float64, c color.RGBA) {
	dx, dy := b.x-a.x, b.y-a.y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	if width < 1 {
		width = 1
	}
	ox, oy := -dy/n*width/2, dx/n*width/2
	r.fillPolygon([]point{
		{a.x + ox, a.y + oy}, {b.x + ox, b.y + oy},
		{b.x - ox, b.y - oy}, {a.x - ox, a.y - oy},
	}, c)
}

func (r *slideRenderer) strokePolygon(pts []point, width float64, c color.RGBA) {
	for i := range pts {
		r.strokeSegment(pts[i], pts[(i+1)%len(pts)], width, c)
	}
}

func rectPoints(x, y, w, h float64) []point {
	return []point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// geometryPoints outlines the preset geometries the layouts use. Curves are
// flattened to polygons.
func geometryPoints(geom ppt.AutoShapeType, x, y, w, h float64, flipV bool) []point {
	switch geom {
	case ppt.AutoShapeEllipse:
		return arcPoints(x+w/2, y+h/2, w/2, h/2, 0, 2*math.Pi, false)
	case ppt.AutoShapeRoundedRect:
		rad := math.Min(w, h) / 6
		var pts []point
		corners := []struct{ cx, cy, start float64 }{
			{x + w - rad, y + rad, -math.Pi / 2},
			{x + w - rad, y + h - rad, 0},
			{x + rad, y + h - rad, math.Pi / 2},
			{x + rad, y + rad, math.Pi},
		}
		for _, c := range corners {
			pts = append(pts, arcPoints(c.cx, c.cy, rad, rad, c.start, c.start+math.Pi/2, true)...)
		}
		return pts
	case ppt.AutoShapeTriangle:
		if flipV {
			return []point{{x, y}, {x + w, y}, {x + w/2, y + h}}
		}
		return []point{{x + w/2, y}, {x + w, y + h}, {x, y + h}}
	case ppt.AutoShapeChevron:
		notch := math.Min(w/2, h/2)
		return []point{
			{x, y}, {x + w - notch, y}, {x + w, y + h/2},
			{x + w - notch, y + h}, {x, y + h}, {x + notch, y + h/2},
		}
	}
	return rectPoints(x, y, w, h)
}

func arcPoints(cx, cy, rx, ry, start, end float64, closed bool) []point {
	const steps = 48
	n := int(math.Ceil(steps * (end - start) / (2 * math.Pi)))
	if n < 2 {
		n = 2
	}
	last := n
	if !closed {
		last = n - 1
	}
	pts := make([]point, 0, n+1)
	for i := 0; i <= last; i++ {
		a := start + (end-start)*float64(i)/float64(n)
		pts = append(pts, point{cx + rx*math.Cos(a), cy + ry*math.Sin(a)})
	}
	return pts
}

func (r *slideRenderer) renderAutoShape(s *ppt.AutoShape) {
	x, y := r.px(s.GetOffsetX()), r.px(s.GetOffsetY())
	w, h := r.px(s.GetWidth()), r.px(s.GetHeight())
	pts := geometryPoints(s.GetAutoShapeType(), x, y, w, h, s.GetFlipVertical())

	fill := pptx.FillColor(s.GetFill())
	if !fill.IsZero() {
		r.fillPolygon(pts, toRGBA(fill))
	}
	border := s.GetBorder()
	switch {
	case border.Style != ppt.BorderNone && border.Color.ARGB != "":
		r.strokePolygon(pts, r.px(int64(border.Width)), toRGBA(pptx.FromPPT(border.Color)))
	case fill.IsZero():
		// fills do not survive a read back; keep the geometry visible
		r.strokePolygon(pts, 1, outline)
	}

	if text := strings.TrimSpace(s.GetText()); text != "" {
		para := ppt.NewParagraph()
		para.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
		para.CreateTextRun(text)
		r.drawParagraphs([]*ppt.Paragraph{para}, x, y, w, h, ppt.TextAnchorMiddle)
	}
}

func (r *slideRenderer) renderTextFrame(s *ppt.RichTextShape) {
	x, y := r.px(s.GetOffsetX()), r.px(s.GetOffsetY())
	w, h := r.px(s.GetWidth()), r.px(s.GetHeight())
	if fill := pptx.FillColor(s.GetFill()); !fill.IsZero() {
		r.fillPolygon(rectPoints(x, y, w, h), toRGBA(fill))
	}
	r.drawParagraphs(s.GetParagraphs(), x, y, w, h, s.GetTextAnchor())
}

func (r *slideRenderer) renderLine(s *ppt.LineShape) {
	a := point{r.px(s.GetOffsetX()), r.px(s.GetOffsetY())}
	b := point{a.x + r.px(s.GetWidth()), a.y + r.px(s.GetHeight())}
	c := toRGBA(pptx.FromPPT(s.GetLineColor()).Or(pptx.NewColor("808080")))
	r.strokeSegment(a, b, r.px(int64(s.GetLineWidth())), c)
}

// textLine is one wrapped line of a paragraph. A paragraph takes the style
// of its first run.
type textLine struct {
	text    string
	face    font.Face
	color   color.RGBA
	align   ppt.HorizontalAlignment
	height  float64
	ascent  float64
	advance float64
}

func (r *slideRenderer) drawParagraphs(paras []*ppt.Paragraph, x, y, w, h float64, anchor ppt.TextAnchorType) {
	padX, padY := r.px(insetX), r.px(insetY)
	maxW := w - 2*padX
	if maxW < 1 {
		maxW = w
	}

	var lines []textLine
	for _, p := range paras {
		lines = append(lines, r.layoutParagraph(p, maxW)...)
	}
	if len(lines) == 0 {
		return
	}

	total := 0.0
	for _, l := range lines {
		total += l.height
	}
	top := y + padY
	switch anchor {
	case ppt.TextAnchorMiddle:
		top = y + (h-total)/2
	case ppt.TextAnchorBottom:
		top = y + h - padY - total
	}

	for _, l := range lines {
		left := x + padX
		switch l.align {
		case ppt.HorizontalCenter:
			left = x + (w-l.advance)/2
		case ppt.HorizontalRight:
			left = x + w - padX - l.advance
		}
		d := font.Drawer{
			Dst:  r.img,
			Src:  image.NewUniform(l.color),
			Face: l.face,
			Dot:  fixed.Point26_6{X: fixed.Int26_6(left * 64), Y: fixed.Int26_6((top + l.ascent) * 64)},
		}
		d.DrawString(l.text)
		top += l.height
	}
}

func (r *slideRenderer) layoutParagraph(p *ppt.Paragraph, maxW float64) []textLine {
	var b strings.Builder
	var first *ppt.TextRun
	for _, elem := range p.GetElements() {
		if run, ok := elem.(*ppt.TextRun); ok {
			if first == nil {
				first = run
			}
			b.WriteString(run.GetText())
		}
	}
	text := b.String()
	if bullet := p.GetBullet(); bullet != nil && bullet.Type == ppt.BulletTypeChar && text != "" {
		text = bullet.Style + " " + text
	}

	size, bold, col := 18, false, darkText
	if first != nil {
		f := first.GetFont()
		if f.Size > 0 {
			size = f.Size
		}
		bold = f.Bold
		if f.Color.ARGB != "" {
			col = toRGBA(pptx.FromPPT(f.Color))
		}
	}
	face := r.fonts.face(r.px(int64(size)*emuPerPoint), bold)
	if face == nil {
		return nil
	}
	m := face.Metrics()
	height := float64(m.Height) / 64 * 1.1
	ascent := float64(m.Ascent) / 64

	align := ppt.HorizontalLeft
	if a := p.GetAlignment(); a != nil && a.Horizontal != "" {
		align = a.Horizontal
	}
	after := r.px(int64(p.GetSpaceAfter()) * emuPerPoint / 100)

	measure := func(s string) float64 { return float64(font.MeasureString(face, s)) / 64 }
	var out []textLine
	emit := func(s string) {
		out = append(out, textLine{text: s, face: face, color: col, align: align,
			height: height, ascent: ascent, advance: measure(s)})
	}
	if strings.TrimSpace(text) == "" {
		emit("")
	} else {
		line := ""
		for _, word := range strings.Fields(text) {
			next := word
			if line != "" {
				next = line + " " + word
			}
			if line != "" && measure(next) > maxW {
				emit(line)
				line = word
				continue
			}
			line = next
		}
		emit(line)
	}
	out[len(out)-1].height += after
	return out
}

func (r *slideRenderer) renderChart(s *ppt.ChartShape) {
	x, y := r.px(s.GetOffsetX()), r.px(s.GetOffsetY())
	w, h := r.px(s.GetWidth()), r.px(s.GetHeight())
	switch c := s.GetPlotArea().GetType().(type) {
	case *ppt.BarChart:
		if len(c.Series) > 0 {
			r.renderBars(c.Series[0], x, y, w, h)
		}
	case *ppt.PieChart:
		if len(c.Series) > 0 {
			legendW := 0.0
			if s.GetLegend().Visible {
				legendW = w / 4
			}
			r.renderPie(c.Series[0], x, y, w-legendW, h)
		}
	}
}

func (r *slideRenderer) renderBars(ser *ppt.ChartSeries, x, y, w, h float64) {
	n := len(ser.Categories)
	if n == 0 {
		return
	}
	maxVal := 0.0
	for _, cat := range ser.Categories {
		maxVal = math.Max(maxVal, ser.Values[cat])
	}
	if maxVal == 0 {
		maxVal = 1
	}
	col := chartPalette[0]
	if ser.FillColor.ARGB != "" {
		col = toRGBA(pptx.FromPPT(ser.FillColor))
	}

	baseY := y + h
	r.strokeSegment(point{x, baseY}, point{x + w, baseY}, 1, axisColor)
	slot := w / float64(n)
	barW := slot / 1.8
	for i, cat := range ser.Categories {
		v := ser.Values[cat]
		if v <= 0 {
			continue
		}
		barH := h * 0.9 * v / maxVal
		bx := x + float64(i)*slot + (slot-barW)/2
		r.fillPolygon(rectPoints(bx, baseY-barH, barW, barH), col)
	}
}

func (r *slideRenderer) renderPie(ser *ppt.ChartSeries, x, y, w, h float64) {
	total := 0.0
	for _, cat := range ser.Categories {
		if v := ser.Values[cat]; v > 0 {
			total += v
		}
	}
	if total == 0 {
		return
	}
	cx, cy := x+w/2, y+h/2
	radius := math.Min(w, h) / 2 * 0.9
	start := -math.Pi / 2
	for i, cat := range ser.Categories {
		v := ser.Values[cat]
		if v <= 0 {
			continue
		}
		end := start + 2*math.Pi*v/total
		pts := append([]point{{cx, cy}}, arcPoints(cx, cy, radius, radius, start, end, true)...)
		r.fillPolygon(pts, chartPalette[i%len(chartPalette)])
		start = end
	}
}

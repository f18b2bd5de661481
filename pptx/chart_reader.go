package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

// readCharts returns the charts of every slide, in slide order. GoPPT's
// reader drops graphic frames, so the chart parts are decoded from the
// package directly: presentation.xml gives the slide order, each slide's
// relationships name its chart parts.
func readCharts(r io.ReaderAt, size int64) ([][]ChartInfo, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPresentation, err)
	}
	pkg := &chartPackage{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		pkg.files[f.Name] = f
	}

	const presPart = "ppt/presentation.xml"
	var pres xmlPresentation
	if err := pkg.decode(presPart, &pres); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPresentation, err)
	}
	presRels, err := pkg.rels(presPart)
	if err != nil {
		return nil, err
	}

	out := make([][]ChartInfo, len(pres.SldIDLst.SldID))
	for i, id := range pres.SldIDLst.SldID {
		var slidePart string
		for _, rel := range presRels {
			if rel.ID == id.RID {
				slidePart = rel.Target
			}
		}
		if slidePart == "" {
			return nil, fmt.Errorf("slide %d: dangling relationship %s", i+1, id.RID)
		}
		slideRels, err := pkg.rels(slidePart)
		if err != nil {
			return nil, err
		}
		for _, rel := range slideRels {
			if !strings.HasSuffix(rel.Type, "/chart") {
				continue
			}
			ci, err := pkg.chart(rel.Target)
			if err != nil {
				return nil, fmt.Errorf("slide %d: %w", i+1, err)
			}
			out[i] = append(out[i], *ci)
		}
	}
	return out, nil
}

type chartPackage struct {
	files map[string]*zip.File
}

func (pkg *chartPackage) decode(name string, v any) error {
	f, ok := pkg.files[name]
	if !ok {
		return fmt.Errorf("missing part %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// rels returns the relationships of part in document order, with targets
// resolved to package paths.
func (pkg *chartPackage) rels(part string) ([]xmlRel, error) {
	name := path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
	if _, ok := pkg.files[name]; !ok {
		return nil, nil
	}
	var rs struct {
		Rel []xmlRel `xml:"Relationship"`
	}
	if err := pkg.decode(name, &rs); err != nil {
		return nil, err
	}
	for i := range rs.Rel {
		if !strings.HasPrefix(rs.Rel[i].Target, "/") {
			rs.Rel[i].Target = path.Join(path.Dir(part), rs.Rel[i].Target)
		} else {
			rs.Rel[i].Target = strings.TrimPrefix(rs.Rel[i].Target, "/")
		}
	}
	return rs.Rel, nil
}

func (pkg *chartPackage) chart(part string) (*ChartInfo, error) {
	var cs xmlChartSpace
	if err := pkg.decode(part, &cs); err != nil {
		return nil, err
	}
	ci := &ChartInfo{Kind: ChartBar}
	plot := cs.Chart.PlotArea.BarChart
	if plot == nil {
		plot = cs.Chart.PlotArea.PieChart
		ci.Kind = ChartPie
	}
	if plot == nil || len(plot.Ser) == 0 {
		return ci, nil
	}
	ser := plot.Ser[0]
	if pts := ser.Tx.StrRef.StrCache.Pt; len(pts) > 0 {
		ci.Series = pts[0].V
	}
	for _, pt := range ser.Cat.StrRef.StrCache.Pt {
		ci.Categories = append(ci.Categories, pt.V)
	}
	for _, pt := range ser.Val.NumRef.NumCache.Pt {
		v, err := strconv.ParseFloat(pt.V, 64)
		if err != nil {
			return nil, fmt.Errorf("chart %s: value %q: %w", part, pt.V, err)
		}
		ci.Values = append(ci.Values, v)
	}
	return ci, nil
}

type xmlRel struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type xmlPresentation struct {
	SldIDLst struct {
		SldID []struct {
			RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
		} `xml:"sldId"`
	} `xml:"sldIdLst"`
}

type xmlChartSpace struct {
	Chart struct {
		PlotArea struct {
			BarChart *xmlPlot `xml:"barChart"`
			PieChart *xmlPlot `xml:"pieChart"`
		} `xml:"plotArea"`
	} `xml:"chart"`
}

type xmlPlot struct {
	Ser []struct {
		Tx struct {
			StrRef xmlStrRef `xml:"strRef"`
		} `xml:"tx"`
		Cat struct {
			StrRef xmlStrRef `xml:"strRef"`
		} `xml:"cat"`
		Val struct {
			NumRef struct {
				NumCache struct {
					Pt []xmlPt `xml:"pt"`
				} `xml:"numCache"`
			} `xml:"numRef"`
		} `xml:"val"`
	} `xml:"ser"`
}

type xmlStrRef struct {
	StrCache struct {
		Pt []xmlPt `xml:"pt"`
	} `xml:"strCache"`
}

type xmlPt struct {
	Idx int    `xml:"idx,attr"`
	V   string `xml:"v"`
}

package stencil

import (
	"github.com/beevik/etree"
	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
)

const (
	svgNamespace = "http://www.w3.org/2000/svg"

	mmPrecision        = 4
	transformPrecision = 6
)

// Element builds the etree representation of the document.
func (d *Document) Element() *etree.Document {
	w, h := d.Size.WidthMM(), d.Size.HeightMM()
	sx, sy, tx, ty := d.Transform()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNamespace)
	svg.CreateAttr("version", "1.1")
	svg.CreateAttr("width", formatNumber(w, mmPrecision)+"mm")
	svg.CreateAttr("height", formatNumber(h, mmPrecision)+"mm")
	svg.CreateAttr("viewBox", "0 0 "+formatNumber(w, mmPrecision)+" "+formatNumber(h, mmPrecision))

	art := svg.CreateElement("g")
	art.CreateAttr("id", "artwork")
	art.CreateAttr("transform",
		"translate("+formatNumber(tx, transformPrecision)+","+formatNumber(ty, transformPrecision)+") "+
			"scale("+formatNumber(sx, transformPrecision)+","+formatNumber(sy, transformPrecision)+")")

	bg := art.CreateElement("rect")
	bg.CreateAttr("id", "background")
	bg.CreateAttr("x", "0")
	bg.CreateAttr("y", "0")
	bg.CreateAttr("width", formatNumber(float64(d.WorkArea.X), 0))
	bg.CreateAttr("height", formatNumber(float64(d.WorkArea.Y), 0))
	bg.CreateAttr("fill", d.Style.Background)

	stroke := formatNumber(d.StrokeWidth, mmPrecision)
	for _, data := range d.Paths {
		p := art.CreateElement("path")
		p.CreateAttr("d", data)
		p.CreateAttr("fill", "none")
		p.CreateAttr("stroke", d.Style.Stroke)
		p.CreateAttr("stroke-width", stroke)
		p.CreateAttr("stroke-linejoin", "round")
		p.CreateAttr("stroke-linecap", "round")
	}

	border := svg.CreateElement("rect")
	border.CreateAttr("id", "border")
	border.CreateAttr("x", "0")
	border.CreateAttr("y", "0")
	border.CreateAttr("width", formatNumber(w, mmPrecision))
	border.CreateAttr("height", formatNumber(h, mmPrecision))
	border.CreateAttr("fill", "none")
	border.CreateAttr("stroke", d.Style.Border)
	border.CreateAttr("stroke-width", formatNumber(BorderStrokeMM(), mmPrecision))

	doc.Indent(2)
	return doc
}

// Encode returns the document as SVG bytes.
func (d *Document) Encode() ([]byte, error) {
	data, err := d.Element().WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode svg")
	}
	return data, nil
}

// Save writes the document to path, replacing any existing file.
//
// The data is written and synced to a temporary file in the destination
// directory and then renamed over path, so path is either left untouched or
// fully written.
func Save(path string, d *Document) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "unable to save %s", path)
	}
	return nil
}

package pptx

import (
	"bytes"
	"encoding/xml"
	"io"
	"unicode/utf8"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// position is an element's (x, y) offset in EMUs, defaulting to (0, 0) when
// no xfrm is present (§4.6 step 3c).
type position struct {
	x, y int64
}

type run struct {
	text                    string
	bold, italic, underline bool
}

type textElement struct {
	runs []run
	pos  position
}

type listItem struct {
	level     int
	isOrdered bool
	runs      []run
}

type listElement struct {
	items []listItem
	pos   position
}

type tableElement struct {
	rows [][]string // pre-rendered cell text, one slice per row
	pos  position
}

type imageElement struct {
	relID string
	pos   position
}

// slideElements holds every shape the walker recognized, in document order
// (then re-sorted by (y, x) before rendering per §4.6 step 4).
type slideElements struct {
	texts  []textElement
	lists  []listElement
	tables []tableElement
	images []imageElement
}

// parseSlideXML walks a slide part's <p:spTree> children in document order,
// recursing into <p:grpSp> groups, and classifies each into the typed
// element slices above. Unknown element types are silently skipped.
func parseSlideXML(data []byte) (slideElements, error) {
	if !utf8.Valid(data) {
		return slideElements{}, domain.NewError(domain.KindParsing, "invalid UTF-8 in slide XML")
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	var out slideElements

	// Advance to the spTree start element; everything before it (nvGrpSpPr,
	// grpSpPr) is layout-only scaffolding this renderer ignores.
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return slideElements{}, domain.NewError(domain.KindParsing, "no spTree element found in slide XML")
		}
		if err != nil {
			return slideElements{}, domain.WrapError(domain.KindParsing, err, "parse slide XML")
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "spTree" {
			break
		}
	}

	if err := walkShapeTree(dec, &out); err != nil {
		return slideElements{}, err
	}
	return out, nil
}

// walkShapeTree consumes tokens until the enclosing element's end tag,
// dispatching each direct child start element by local name.
func walkShapeTree(dec *xml.Decoder, out *slideElements) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return domain.WrapError(domain.KindParsing, err, "walk slide shape tree")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := dispatchShape(dec, t, out); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "spTree" || t.Name.Local == "grpSp" {
				return nil
			}
		}
	}
}

func dispatchShape(dec *xml.Decoder, start xml.StartElement, out *slideElements) error {
	switch start.Name.Local {
	case "sp":
		var sp shapeXML
		if err := dec.DecodeElement(&sp, &start); err != nil {
			return domain.WrapError(domain.KindParsing, err, "decode shape")
		}
		classifyShape(sp, out)
	case "graphicFrame":
		var gf graphicFrameXML
		if err := dec.DecodeElement(&gf, &start); err != nil {
			return domain.WrapError(domain.KindParsing, err, "decode graphicFrame")
		}
		if gf.Graphic.Data.URI == "http://schemas.openxmlformats.org/drawingml/2006/table" {
			out.tables = append(out.tables, tableElement{
				rows: renderTableRows(gf.Graphic.Data.Table),
				pos:  position{gf.Xfrm.Off.X, gf.Xfrm.Off.Y},
			})
		}
	case "pic":
		var pic picXML
		if err := dec.DecodeElement(&pic, &start); err != nil {
			return domain.WrapError(domain.KindParsing, err, "decode picture")
		}
		if pic.BlipFill.Blip.Embed != "" {
			out.images = append(out.images, imageElement{
				relID: pic.BlipFill.Blip.Embed,
				pos:   position{pic.SpPr.Xfrm.Off.X, pic.SpPr.Xfrm.Off.Y},
			})
		}
	case "grpSp":
		// Recurse: the group's own children are siblings in the same walk,
		// inheriting no extra offset (matches the original's flat treatment).
		if err := walkShapeTree(dec, out); err != nil {
			return err
		}
	default:
		if err := dec.Skip(); err != nil {
			return domain.WrapError(domain.KindParsing, err, "skip unknown element %q", start.Name.Local)
		}
	}
	return nil
}

// classifyShape decides whether sp is a list (any paragraph carries a
// list-level or auto-numbering bullet property) or plain text.
func classifyShape(sp shapeXML, out *slideElements) {
	pos := position{sp.SpPr.Xfrm.Off.X, sp.SpPr.Xfrm.Off.Y}

	isList := false
	for _, p := range sp.TxBody.Paragraphs {
		if p.PPr.Lvl != nil || p.PPr.BuAutoNum != nil {
			isList = true
			break
		}
	}

	if isList {
		items := make([]listItem, 0, len(sp.TxBody.Paragraphs))
		for _, p := range sp.TxBody.Paragraphs {
			level := 1
			if p.PPr.Lvl != nil {
				level = *p.PPr.Lvl + 1
			}
			items = append(items, listItem{
				level:     level,
				isOrdered: p.PPr.BuAutoNum != nil,
				runs:      toRuns(p.Runs),
			})
		}
		out.lists = append(out.lists, listElement{items: items, pos: pos})
		return
	}

	var runs []run
	for _, p := range sp.TxBody.Paragraphs {
		runs = append(runs, toRuns(p.Runs)...)
	}
	out.texts = append(out.texts, textElement{runs: runs, pos: pos})
}

func toRuns(rs []runXML) []run {
	out := make([]run, 0, len(rs))
	for _, r := range rs {
		out = append(out, run{
			text:      r.T,
			bold:      r.RPr.B == "1" || eqFold(r.RPr.B, "true"),
			italic:    r.RPr.I == "1" || eqFold(r.RPr.I, "true"),
			underline: r.RPr.U != "" && r.RPr.U != "none",
		})
	}
	return out
}

func renderTableRows(tbl tblXML) [][]string {
	rows := make([][]string, 0, len(tbl.Rows))
	for _, tr := range tbl.Rows {
		row := make([]string, 0, len(tr.Cells))
		for _, tc := range tr.Cells {
			var text bytes.Buffer
			for i, p := range tc.TxBody.Paragraphs {
				if i > 0 {
					text.WriteString("\n")
				}
				for _, r := range p.Runs {
					text.WriteString(r.T)
				}
			}
			row = append(row, text.String())
		}
		rows = append(rows, row)
	}
	return rows
}

func eqFold(s, t string) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		a, b := s[i], t[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

package pptx

import "encoding/xml"

// These structs model just the DrawingML/PresentationML elements the renderer
// needs; unrecognized elements are dropped rather than erroring, matching
// §4.6's "unknown elements are dropped" rule. The shape tree itself mixes
// <p:sp>/<p:graphicFrame>/<p:pic>/<p:grpSp> siblings in document order, which
// encoding/xml cannot capture with typed struct fields alone — slidetree.go
// walks it token-by-token and decodes each matched subtree into one of these.

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []relationship `xml:"Relationship"`
}

// shapeXML models a <p:sp> (shape): its position and text body.
type shapeXML struct {
	SpPr   spPrXML   `xml:"spPr"`
	TxBody txBodyXML `xml:"txBody"`
}

type spPrXML struct {
	Xfrm xfrmXML `xml:"xfrm"`
}

type xfrmXML struct {
	Off offXML `xml:"off"`
}

type offXML struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type txBodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	PPr  pPrXML   `xml:"pPr"`
	Runs []runXML `xml:"r"`
}

type pPrXML struct {
	Lvl       *int      `xml:"lvl,attr"`
	BuAutoNum *struct{} `xml:"buAutoNum"`
}

type runXML struct {
	RPr runPrXML `xml:"rPr"`
	T   string   `xml:"t"`
}

type runPrXML struct {
	B string `xml:"b,attr"`
	I string `xml:"i,attr"`
	U string `xml:"u,attr"`
}

// graphicFrameXML models a <p:graphicFrame>, used here only for tables.
type graphicFrameXML struct {
	Xfrm    xfrmXML    `xml:"xfrm"`
	Graphic graphicXML `xml:"graphic"`
}

type graphicXML struct {
	Data graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI   string `xml:"uri,attr"`
	Table tblXML `xml:"tbl"`
}

type tblXML struct {
	Rows []trXML `xml:"tr"`
}

type trXML struct {
	Cells []tcXML `xml:"tc"`
}

type tcXML struct {
	TxBody txBodyXML `xml:"txBody"`
}

// picXML models a <p:pic> (picture placeholder).
type picXML struct {
	SpPr     spPrXML     `xml:"spPr"`
	BlipFill blipFillXML `xml:"blipFill"`
}

type blipFillXML struct {
	Blip blipXML `xml:"blip"`
}

type blipXML struct {
	Embed string `xml:"embed,attr"`
}

// notesXML models a notes slide part, from which only run text is pulled.
type notesXML struct {
	CSld struct {
		SpTree struct {
			Shapes []shapeXML `xml:"sp"`
		} `xml:"spTree"`
	} `xml:"cSld"`
}

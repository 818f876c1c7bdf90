package pptx

import "encoding/xml"

type coreProperties struct {
	Title   string `xml:"title"`
	Creator string `xml:"creator"`
	Subject string `xml:"subject"`
}

type appProperties struct {
	TitlesOfParts struct {
		Titles []string `xml:"vt:lpstr"`
	} `xml:"TitlesOfParts>vector"`
}

// extractCoreProperties reads docProps/core.xml, returning zero values when
// absent or unparseable rather than erroring — metadata is always
// best-effort.
func extractCoreProperties(c *container) coreProperties {
	data, ok := c.read("docProps/core.xml")
	if !ok {
		return coreProperties{}
	}
	var props coreProperties
	_ = xml.Unmarshal(data, &props)
	return props
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

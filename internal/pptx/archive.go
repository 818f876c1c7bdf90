package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/kreuzberg-go/kreuzberg/internal/domain"
)

// container wraps an open ZIP archive plus an index of its parts by name.
type container struct {
	zr    *zip.Reader
	files map[string]*zip.File
}

func openContainer(r io.ReaderAt, size int64) (*container, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, domain.WrapError(domain.KindParsing, err, "open PPTX container as ZIP")
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	return &container{zr: zr, files: files}, nil
}

func (c *container) read(name string) ([]byte, bool) {
	f, ok := c.files[name]
	if !ok {
		return nil, false
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false
	}
	return data, true
}

// slidePaths enumerates ppt/slides/slideN.xml parts in presentation order via
// the presentation rels; falls back to filename-number sorted discovery when
// the rels part is absent or unparseable (§4.6 step 2).
func (c *container) slidePaths() ([]string, error) {
	if rels, ok := c.read("ppt/_rels/presentation.xml.rels"); ok {
		if paths, err := parsePresentationRels(rels); err == nil && len(paths) > 0 {
			return paths, nil
		}
	}
	return c.discoverSlidesByFilename(), nil
}

func parsePresentationRels(data []byte) ([]string, error) {
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, domain.WrapError(domain.KindParsing, err, "parse presentation rels")
	}
	var paths []string
	for _, r := range rels.Relationships {
		if !strings.Contains(r.Type, "slide") || strings.Contains(r.Type, "slideMaster") || strings.Contains(r.Type, "slideLayout") {
			continue
		}
		target := strings.TrimPrefix(r.Target, "/")
		if !strings.HasPrefix(target, "ppt/") {
			target = path.Join("ppt", target)
		}
		paths = append(paths, target)
	}
	return paths, nil
}

// discoverSlidesByFilename sorts ppt/slides/slideN.xml parts by their numeric
// suffix, the documented fallback when rels enumeration is unavailable.
func (c *container) discoverSlidesByFilename() []string {
	type numbered struct {
		n    int
		name string
	}
	var found []numbered
	for name := range c.files {
		if !strings.HasPrefix(name, "ppt/slides/slide") || !strings.HasSuffix(name, ".xml") {
			continue
		}
		base := strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml")
		n, err := strconv.Atoi(base)
		if err != nil {
			continue
		}
		found = append(found, numbered{n: n, name: name})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.name
	}
	return paths
}

// slideRelsPath derives ppt/slides/_rels/slideN.xml.rels from a slide part path.
func slideRelsPath(slidePath string) string {
	dir, file := path.Split(slidePath)
	return path.Join(dir, "_rels", file+".rels")
}

// notesPath derives ppt/notesSlides/notesSlideN.xml from a slide part path.
func notesPath(slidePath string) string {
	return strings.Replace(slidePath, "ppt/slides/slide", "ppt/notesSlides/notesSlide", 1)
}

// imageRelsForSlide returns relationship-ID -> target path for every
// "image" relationship declared in a slide's rels part.
func imageRelsForSlide(c *container, slidePath string) map[string]string {
	data, ok := c.read(slideRelsPath(slidePath))
	if !ok {
		return nil
	}
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil
	}
	out := make(map[string]string)
	for _, r := range rels.Relationships {
		if strings.Contains(r.Type, "image") {
			out[r.ID] = resolveImagePath(slidePath, r.Target)
		}
	}
	return out
}

// resolveImagePath joins a slide-relative image target (often "../media/x.png")
// against the slide's own directory.
func resolveImagePath(slidePath, target string) string {
	dir, _ := path.Split(slidePath)
	return path.Clean(path.Join(dir, target))
}

func extractNotesText(data []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var parts []string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "t" {
			var text string
			if err := dec.DecodeElement(&text, &se); err == nil {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

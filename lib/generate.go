package lib

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"
)

/*
	Fallbacks for substrate attributes missing from a map
*/
const (
	DefaultSubstrateNumber = "?"
	DefaultSubstrateType   = "Wafer"
	DefaultSubstrateId     = "25"
	DefaultFormatRevision  = "SEMI G85-0703"

	Namespace = "http://www.semi.org"

	dataMapName    = "%%mapname%%"
	dataMapVersion = "%%mapversion%%"
)

/*
	bins written when the grid holds dies of that status and the bin list
	does not describe them
*/
var syntheticBins = []Bin{
	{Code: Defect, Quality: "Fail", Description: "Fail Die"},
	{Code: FailCode, Quality: "Fail", Description: "Fail Code"},
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

func attr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	xml.EscapeText(b, []byte(value))
	b.WriteString(`"`)
}

// Serialize renders m as G85 text. EF and FC bin counts always come from
// the dies in m, never from the bin list it carries.
func Serialize(m *WaferMap) string {
	b := &strings.Builder{}
	b.WriteString(xml.Header)

	b.WriteString("<Map")
	attr(b, "xmlns", Namespace)
	attr(b, "SubstrateNumber", or(m.Attributes.SubstrateNumber, DefaultSubstrateNumber))
	attr(b, "SubstrateType", or(m.Attributes.SubstrateType, DefaultSubstrateType))
	attr(b, "SubstrateId", or(m.Attributes.SubstrateId, DefaultSubstrateId))
	attr(b, "FormatRevision", or(m.Attributes.FormatRevision, DefaultFormatRevision))
	b.WriteString(">\n")

	b.WriteString("  <Device")
	for _, key := range m.Header.Keys() {
		attr(b, key, m.Header[key])
	}
	b.WriteString(">\n")

	if rd := m.ReferenceDevice; rd != nil {
		b.WriteString("    <ReferenceDevice")
		attr(b, "ReferenceDeviceX", rd.X)
		attr(b, "ReferenceDeviceY", rd.Y)
		b.WriteString(" />\n")
	}

	for _, bin := range liveBins(m) {
		b.WriteString("    <Bin")
		attr(b, "BinCode", bin.Code)
		attr(b, "BinQuality", bin.Quality)
		attr(b, "BinDescription", bin.Description)
		if bin.Count != "" {
			attr(b, "BinCount", bin.Count)
		}
		b.WriteString(" />\n")
	}

	b.WriteString("    <Data")
	attr(b, "MapName", dataMapName)
	attr(b, "MapVersion", dataMapVersion)
	b.WriteString(">\n")

	rows, cols := m.Dims()
	row := &strings.Builder{}
	for y := 0; y < rows; y++ {
		row.Reset()
		for x := 0; x < cols; x++ {
			row.WriteString(m.Status(Coord{X: x, Y: y}))
		}

		b.WriteString("      <Row>")
		b.WriteString(cdata(row.String()))
		b.WriteString("</Row>\n")
	}

	b.WriteString("    </Data>\n")
	b.WriteString("  </Device>\n")
	b.WriteString("</Map>")

	return b.String()
}

/*
	wraps text in a CDATA section, splitting any "]]>" that opaque codes
	happen to spell across two sections
*/
func cdata(text string) string {
	return "<![CDATA[" + strings.ReplaceAll(text, "]]>", "]]]]><![CDATA[>") + "]]>"
}

/*
	bin list with EF and FC counts taken from the grid
*/
func liveBins(m *WaferMap) []Bin {
	counts := map[string]int{
		Defect:   m.Count(Defect),
		FailCode: m.Count(FailCode),
	}

	seen := map[string]bool{}
	bins := make([]Bin, 0, len(m.Bins)+len(syntheticBins))
	for _, bin := range m.Bins {
		if n, ok := counts[bin.Code]; ok {
			seen[bin.Code] = true
			if n > 0 || bin.Count != "" {
				bin.Count = strconv.Itoa(n)
			}
		}
		bins = append(bins, bin)
	}

	for _, bin := range syntheticBins {
		if n := counts[bin.Code]; n > 0 && !seen[bin.Code] {
			bin.Count = strconv.Itoa(n)
			bins = append(bins, bin)
		}
	}

	return bins
}

func Write(w io.Writer, m *WaferMap) error {
	_, err := io.WriteString(w, Serialize(m))
	return err
}

// WriteFile writes m to dst as G85 text.
func WriteFile(dst string, m *WaferMap) error {
	fp, err := os.Create(dst)
	if err != nil {
		return err
	}

	if err := Write(fp, m); err != nil {
		fp.Close()
		return err
	}

	return fp.Close()
}

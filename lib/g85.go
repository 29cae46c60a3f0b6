package lib

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

/*
	Package reads SEMI G85 map files

	<Map xmlns="http://www.semi.org" SubstrateNumber="7" SubstrateType="Wafer" ...>
		<Device LotId="A1.2" Rows="10" Columns="10" ...>
			<ReferenceDevice ReferenceDeviceX="3" ReferenceDeviceY="4" />
			<Bin BinCode="01" BinQuality="Pass" BinDescription="Good" BinCount="80" />
			<Data MapName="..." MapVersion="...">
				<Row><![CDATA[FF0101...]]></Row>
			</Data>
		</Device>
	</Map>
*/

// MaxExtent is the largest Rows or Columns value Parse accepts.
const MaxExtent = 4096

type G85ReferenceDevice struct {
	X string `xml:"ReferenceDeviceX,attr"`
	Y string `xml:"ReferenceDeviceY,attr"`
}

type G85Bin struct {
	Code        string `xml:"BinCode,attr"`
	Quality     string `xml:"BinQuality,attr"`
	Description string `xml:"BinDescription,attr"`
	Count       string `xml:"BinCount,attr"`
}

type G85Row struct {
	Text string `xml:",chardata"`
}

// Parse turns G85 text into a WaferMap.
func Parse(text string) (*WaferMap, error) {
	return ParseReader(strings.NewReader(text))
}

// ReadFile parses the G85 file at src.
func ReadFile(src string) (*WaferMap, error) {
	fp, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	return ParseReader(fp)
}

func ParseReader(r io.Reader) (*WaferMap, error) {
	m := New()
	dec := xml.NewDecoder(r)

	root := false
	device := false
	y := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Reason: "malformed xml", Err: err}
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !root {
			if se.Name.Local != "Map" {
				return nil, &FormatError{Reason: "root element is <" + se.Name.Local + ">, want <Map>"}
			}

			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "SubstrateNumber":
					m.Attributes.SubstrateNumber = attr.Value
				case "SubstrateType":
					m.Attributes.SubstrateType = attr.Value
				case "SubstrateId":
					m.Attributes.SubstrateId = attr.Value
				case "FormatRevision":
					m.Attributes.FormatRevision = attr.Value
				}
			}

			root = true
			continue
		}

		switch se.Name.Local {
		case "Device":
			if device {
				continue
			}
			device = true

			for _, attr := range se.Attr {
				if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
					continue
				}
				m.Header[attr.Name.Local] = attr.Value
			}

			for _, key := range []string{"Rows", "Columns"} {
				if n := m.Header.Int(key); n > MaxExtent {
					return nil, &FormatError{Reason: fmt.Sprintf("%s=%d exceeds %d", key, n, MaxExtent)}
				}
			}
		case "ReferenceDevice":
			var rd G85ReferenceDevice
			if err := dec.DecodeElement(&rd, &se); err != nil {
				return nil, &FormatError{Reason: "bad ReferenceDevice", Err: err}
			}
			if m.ReferenceDevice == nil {
				m.ReferenceDevice = &ReferenceDevice{X: rd.X, Y: rd.Y}
			}
		case "Bin":
			var bin G85Bin
			if err := dec.DecodeElement(&bin, &se); err != nil {
				return nil, &FormatError{Reason: "bad Bin", Err: err}
			}
			m.Bins = append(m.Bins, Bin{
				Code:        bin.Code,
				Quality:     bin.Quality,
				Description: bin.Description,
				Count:       bin.Count,
			})
		case "Row":
			var row G85Row
			if err := dec.DecodeElement(&row, &se); err != nil {
				return nil, &FormatError{Reason: "bad Row", Err: err}
			}

			codes := strings.TrimSpace(row.Text)
			for x := 0; x+2 <= len(codes); x += 2 {
				m.Set(Coord{X: x / 2, Y: y}, codes[x:x+2], "")
			}
			y++
		}
	}

	if !root {
		return nil, &FormatError{Reason: "no <Map> element"}
	}

	return m, nil
}

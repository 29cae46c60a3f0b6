package lib

import (
	"sort"
	"strconv"
	"strings"
)

/*
	Die status codes. Anything else is carried through untouched.
*/
const (
	Pass      = "01"
	Defect    = "EF"
	Reference = "FA"
	Null      = "FF"
	FailCode  = "FC"
)

const (
	defectInfo    = "Defect"
	referenceInfo = "Reference Device"
)

// Coord is a die position: X is the column, Y the row counted from the top.
type Coord struct {
	X int
	Y int
}

// Add translates c by the offset.
func (c Coord) Add(o Offset) Coord {
	return Coord{X: c.X + o.DX, Y: c.Y + o.DY}
}

// IsPlaceholder reports whether a status marks a null or test die position.
func IsPlaceholder(status string) bool {
	return status == Null || status == FailCode
}

// Header holds the Device attributes exactly as they appeared in the file.
type Header map[string]string

/*
	order in which Device attributes are written
*/
var headerOrder = []string{
	"BinType",
	"SupplierName",
	"LotId",
	"DeviceSizeX",
	"DeviceSizeY",
	"NullBin",
	"ProductId",
	"Rows",
	"Columns",
	"MapType",
	"OriginLocation",
	"Orientation",
	"WaferSize",
	"CreateDate",
	"LastModified",
}

// Int parses an attribute as an integer. Missing or malformed values are 0.
func (h Header) Int(key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(h[key]))
	if err != nil {
		return 0
	}

	return n
}

// Clone returns an independent copy of the header.
func (h Header) Clone() Header {
	c := make(Header, len(h))
	for k, v := range h {
		c[k] = v
	}

	return c
}

// Keys returns the attribute names, known G85 attributes first.
func (h Header) Keys() []string {
	keys := make([]string, 0, len(h))
	known := make(map[string]bool, len(headerOrder))
	for _, k := range headerOrder {
		known[k] = true
		if _, ok := h[k]; ok {
			keys = append(keys, k)
		}
	}

	extra := []string{}
	for k := range h {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	return append(keys, extra...)
}

// MapAttributes are the substrate attributes on the root Map element.
type MapAttributes struct {
	SubstrateNumber string
	SubstrateType   string
	SubstrateId     string
	FormatRevision  string
}

// ReferenceDevice is the ReferenceDevice element. It is unrelated to FA dies
// inside the grid.
type ReferenceDevice struct {
	X string
	Y string
}

type Bin struct {
	Code        string
	Quality     string
	Description string
	Count       string
}

type DefectRecord struct {
	Type           string
	AdditionalInfo string
}

// WaferMap is one parsed or merged G85 map.
//
// Dies is authoritative. Defects indexes the EF and FA entries of Dies and is
// maintained by Set; code that writes Dies directly must keep it in step.
type WaferMap struct {
	Header          Header
	Attributes      MapAttributes
	ReferenceDevice *ReferenceDevice
	Bins            []Bin
	Dies            map[Coord]string
	Defects         map[Coord]DefectRecord
}

func New() *WaferMap {
	return &WaferMap{
		Header:  Header{},
		Dies:    make(map[Coord]string),
		Defects: make(map[Coord]DefectRecord),
	}
}

// Clone returns a deep copy of m.
func (m *WaferMap) Clone() *WaferMap {
	c := &WaferMap{
		Header:     m.Header.Clone(),
		Attributes: m.Attributes,
		Bins:       append([]Bin(nil), m.Bins...),
		Dies:       make(map[Coord]string, len(m.Dies)),
		Defects:    make(map[Coord]DefectRecord, len(m.Defects)),
	}
	if m.ReferenceDevice != nil {
		rd := *m.ReferenceDevice
		c.ReferenceDevice = &rd
	}

	for k, v := range m.Dies {
		c.Dies[k] = v
	}
	for k, v := range m.Defects {
		c.Defects[k] = v
	}

	return c
}

// Set writes a die status and updates the defect index. An empty info uses
// the default description for the status.
func (m *WaferMap) Set(c Coord, status string, info string) {
	m.Dies[c] = status

	switch status {
	case Defect, Reference:
		if info == "" {
			info = defaultInfo(status)
		}
		m.Defects[c] = DefectRecord{Type: status, AdditionalInfo: info}
	default:
		delete(m.Defects, c)
	}
}

func defaultInfo(status string) string {
	if status == Reference {
		return referenceInfo
	}

	return defectInfo
}

// Status returns the die status at c, or Null when no die is recorded.
func (m *WaferMap) Status(c Coord) string {
	if status, ok := m.Dies[c]; ok {
		return status
	}

	return Null
}

// Lookup returns the recorded status at c without applying a default.
func (m *WaferMap) Lookup(c Coord) (string, bool) {
	status, ok := m.Dies[c]
	return status, ok
}

// Dims returns the declared grid extents from the header.
func (m *WaferMap) Dims() (rows, cols int) {
	return m.Header.Int("Rows"), m.Header.Int("Columns")
}

// Contains reports whether c lies inside the declared grid.
func (m *WaferMap) Contains(c Coord) bool {
	rows, cols := m.Dims()
	return c.X >= 0 && c.X < cols && c.Y >= 0 && c.Y < rows
}

func (m *WaferMap) Count(status string) int {
	n := 0
	for _, s := range m.Dies {
		if s == status {
			n++
		}
	}

	return n
}

// BinCounts tallies recorded dies by status.
func (m *WaferMap) BinCounts() map[string]int {
	counts := make(map[string]int)
	for _, s := range m.Dies {
		counts[s]++
	}

	return counts
}

// Clip drops every die and defect outside the declared grid and returns the
// number of dies removed.
func (m *WaferMap) Clip() int {
	dropped := 0
	for c := range m.Dies {
		if !m.Contains(c) {
			delete(m.Dies, c)
			dropped++
		}
	}

	for c := range m.Defects {
		if !m.Contains(c) {
			delete(m.Defects, c)
		}
	}

	return dropped
}

// ExportLotID marks a lot id as server generated: Z goes before the first
// period, or at the end when there is none.
func ExportLotID(lot string) string {
	if i := strings.Index(lot, "."); i != -1 {
		return lot[:i] + "Z" + lot[i:]
	}

	return lot + "Z"
}

// WithExportIDs returns a copy of m carrying the export lot and substrate ids.
func (m *WaferMap) WithExportIDs() *WaferMap {
	c := m.Clone()
	if lot := c.Header["LotId"]; lot != "" {
		c.Header["LotId"] = ExportLotID(lot)
	}
	if c.Attributes.SubstrateNumber != "" {
		c.Attributes.SubstrateNumber += "Z"
	}

	return c
}

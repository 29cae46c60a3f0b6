package lib

import (
	"strconv"
)

/*
	fill returns a rows x cols map where every die has status
*/
func fill(rows, cols int, status string) *WaferMap {
	m := New()
	m.Header["LotId"] = "LOT1.1"
	m.Header["ProductId"] = "PROD"
	m.Header["Rows"] = strconv.Itoa(rows)
	m.Header["Columns"] = strconv.Itoa(cols)
	m.Header["NullBin"] = Null
	m.Attributes = MapAttributes{
		SubstrateNumber: "1",
		SubstrateType:   "Wafer",
		SubstrateId:     "25",
		FormatRevision:  "SEMI G85-0703",
	}
	m.Bins = []Bin{
		{Code: Pass, Quality: "Pass", Description: "Good Die"},
		{Code: Null, Quality: "Null", Description: "No Die"},
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m.Set(Coord{X: x, Y: y}, status, "")
		}
	}

	return m
}

/*
	keepout returns a map of pass dies with a w x h rectangle of null dies at
	(x, y)
*/
func keepout(rows, cols, x, y, w, h int) *WaferMap {
	m := fill(rows, cols, Pass)
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			m.Set(Coord{X: i, Y: j}, Null, "")
		}
	}

	return m
}

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<Map xmlns="http://www.semi.org" SubstrateNumber="7" SubstrateType="Wafer" SubstrateId="25" FormatRevision="SEMI G85-0703">
  <Device BinType="2Ascii" SupplierName="ACME" LotId="A1.2" DeviceSizeX="5000" DeviceSizeY="4000" NullBin="FF" ProductId="WIDGET" Rows="3" Columns="4" MapType="Array" OriginLocation="0" Orientation="0" WaferSize="150" CreateDate="2024-01-15" LastModified="2024-01-16">
    <ReferenceDevice ReferenceDeviceX="1" ReferenceDeviceY="2" />
    <Bin BinCode="01" BinQuality="Pass" BinDescription="Good Die" BinCount="7" />
    <Bin BinCode="EF" BinQuality="Fail" BinDescription="Fail Die" BinCount="9" />
    <Bin BinCode="FF" BinQuality="Null" BinDescription="No Die" />
    <Data MapName="%%mapname%%" MapVersion="%%mapversion%%">
      <Row><![CDATA[FF0101FF]]></Row>
      <Row><![CDATA[01EFFA01]]></Row>
      <Row><![CDATA[FF0101FF]]></Row>
    </Data>
  </Device>
</Map>`

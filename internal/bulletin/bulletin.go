// Package bulletin renders merged observation tables as NDBC XML messages.
package bulletin

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cgsn-ops/ndbc-bulletin/internal/domain"
	"github.com/cgsn-ops/ndbc-bulletin/internal/station"
)

// header is the declaration line the NDBC ingest expects on every file.
const header = `<?xml version="1.0" encoding="ISO-8859-1"?>`

// Encode renders one <message> block per merged row using the station's
// element table. NDBC's ingest reads these files line by line against a
// fixed legacy layout, so the encoder writes that layout byte for byte
// instead of going through encoding/xml.
func Encode(st station.Station, table domain.MergedTable) []byte {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, row := range table {
		writeMessage(&b, st, row)
	}
	return []byte(b.String())
}

func writeMessage(b *strings.Builder, st station.Station, row domain.MergedRow) {
	line(b, "<message>")
	line(b, "  <station>"+st.WMO+"</station>")
	line(b, "  <date>"+row.Time.UTC().Format("01/02/2006 15:04:05")+"</date>")
	line(b, "  <missing>"+formatValue(station.Missing)+"</missing>")
	line(b, "  <roundtime>no</roundtime>")
	line(b, "  <met>")
	for _, tag := range st.Tags {
		v := tag.Default
		if tag.Column != "" {
			if got := row.Lookup(tag.Column); !math.IsNaN(got) {
				v = got
			}
		}
		line(b, "    <"+tag.Name+">"+formatValue(v)+"</"+tag.Name+">")
	}
	line(b, "  </met>")
	line(b, "</message>")
}

func line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteByte('\n')
}

// formatValue renders a value the way the bulletins always have: plain
// decimal notation, no exponent, no trailing zeros.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Filename names an output file after the station's WMO id and the run
// time, e.g. "44078_20240601041500.xml". Every station in a run shares
// the same run time so the uploads land as one batch.
func Filename(wmo string, now time.Time) string {
	return wmo + "_" + now.UTC().Format("20060102150405") + ".xml"
}

// Package csvexport renders field-projected records as the console's CSV
// dialect: ';'-delimited, quote-doubled, UTF-8 BOM prefixed, with phone
// numbers wrapped as spreadsheet formula literals so Excel does not
// reinterpret them as numbers.
package csvexport

import (
	"fmt"
	"strings"
)

// BOM is prepended to every payload so spreadsheet tools detect UTF-8.
const BOM = "\uFEFF"

const delimiter = ";"

// phoneKey marks the one field whose value must survive spreadsheet
// auto-numeric conversion (leading '+', long digit runs).
const phoneKey = "phone"

// Field maps a record key to a header label; the field slice fixes both the
// projection and the column order.
type Field struct {
	Key   string
	Label string
}

// Record is one flat row keyed by field key. Missing keys render empty.
type Record map[string]any

// Marshal renders the header row plus one line per record, newline-joined
// and without a trailing newline.
func Marshal(records []Record, fields []Field) string {
	lines := make([]string, 0, len(records)+1)

	labels := make([]string, len(fields))
	for i, f := range fields {
		labels[i] = f.Label
	}
	lines = append(lines, strings.Join(labels, delimiter))

	for _, rec := range records {
		cells := make([]string, len(fields))
		for i, f := range fields {
			cells[i] = formatCell(f.Key, rec[f.Key])
		}
		lines = append(lines, strings.Join(cells, delimiter))
	}
	return strings.Join(lines, "\n")
}

// Section is one independently valid CSV block inside a combined export.
type Section struct {
	Label string
	CSV   string
}

// Combine concatenates sections, each introduced by its label line and
// separated from the next by a blank line.
func Combine(sections []Section) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, s.Label+"\n"+s.CSV)
	}
	return strings.Join(parts, "\n\n")
}

// Payload prefixes the BOM; this is the exact byte sequence offered for
// download.
func Payload(csv string) []byte {
	return []byte(BOM + csv)
}

func formatCell(key string, value any) string {
	if value == nil {
		return ""
	}

	if key == phoneKey {
		return fmt.Sprintf("=\"'%v'\"", value)
	}

	text := fmt.Sprintf("%v", value)
	if strings.ContainsAny(text, delimiter+"\"\n") {
		return "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
	}
	return text
}

package csvexport

import (
	"strings"
	"testing"
)

func TestMarshal_HeaderAndRows(t *testing.T) {
	records := []Record{
		{"name": "Alice", "age": 30},
		{"name": "Bob", "age": 41},
	}
	fields := []Field{
		{Key: "name", Label: "First Name"},
		{Key: "age", Label: "Age"},
	}

	got := Marshal(records, fields)
	want := "First Name;Age\nAlice;30\nBob;41"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMarshal_PhoneIsFormulaEscaped(t *testing.T) {
	records := []Record{{"phone": "+420123456789"}}
	fields := []Field{{Key: "phone", Label: "Phone"}}

	got := Marshal(records, fields)
	lines := strings.Split(got, "\n")
	if lines[1] != `="'+420123456789'"` {
		t.Fatalf("phone cell %q, want %q", lines[1], `="'+420123456789'"`)
	}
}

func TestMarshal_MissingValuesRenderEmpty(t *testing.T) {
	records := []Record{{"name": "Alice"}}
	fields := []Field{
		{Key: "name", Label: "Name"},
		{Key: "email", Label: "Email"},
	}

	got := Marshal(records, fields)
	if !strings.HasSuffix(got, "Alice;") {
		t.Fatalf("expected empty trailing cell, got %q", got)
	}
}

// A value carrying the delimiter and a quote must survive a parse with
// standard quote-doubling rules, and the phone literal must come through
// verbatim.
func TestMarshal_RoundTripWithEscaping(t *testing.T) {
	records := []Record{{
		"name":  "O'Neil; Co",
		"phone": "+420123456789",
	}}
	fields := []Field{
		{Key: "name", Label: "Name"},
		{Key: "phone", Label: "Phone"},
	}

	got := Marshal(records, fields)
	dataLine := strings.Split(got, "\n")[1]

	cells := parseLine(t, dataLine)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d: %v", len(cells), cells)
	}
	if cells[0] != "O'Neil; Co" {
		t.Fatalf("name did not round-trip: %q", cells[0])
	}
	if cells[1] != `="'+420123456789'"` {
		t.Fatalf("phone literal mangled: %q", cells[1])
	}
}

func TestMarshal_QuotesAreDoubled(t *testing.T) {
	records := []Record{{"name": `say "hi"`}}
	fields := []Field{{Key: "name", Label: "Name"}}

	got := Marshal(records, fields)
	dataLine := strings.Split(got, "\n")[1]
	if dataLine != `"say ""hi"""` {
		t.Fatalf("got %q", dataLine)
	}

	cells := parseLine(t, dataLine)
	if cells[0] != `say "hi"` {
		t.Fatalf("quote doubling did not round-trip: %q", cells[0])
	}
}

func TestPayload_StartsWithBOM(t *testing.T) {
	payload := Payload("a;b")
	if !strings.HasPrefix(string(payload), BOM) {
		t.Fatalf("payload missing BOM prefix")
	}
	if string(payload[:3]) != "\xef\xbb\xbf" {
		t.Fatalf("BOM bytes wrong: % x", payload[:3])
	}
}

func TestCombine_SectionsAreLabelledAndSeparated(t *testing.T) {
	combined := Combine([]Section{
		{Label: "Contracts", CSV: "H1\nr1"},
		{Label: "Clients", CSV: "H2\nr2"},
	})

	want := "Contracts\nH1\nr1\n\nClients\nH2\nr2"
	if combined != want {
		t.Fatalf("got %q, want %q", combined, want)
	}
}

// parseLine splits one ';'-delimited line honoring double-quote wrapping
// with doubled internal quotes.
func parseLine(t *testing.T, line string) []string {
	t.Helper()

	var cells []string
	var cell strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case inQuotes && ch == '"':
			if i+1 < len(line) && line[i+1] == '"' {
				cell.WriteByte('"')
				i++
			} else {
				inQuotes = false
			}
		case !inQuotes && ch == '"' && cell.Len() == 0:
			inQuotes = true
		case !inQuotes && ch == ';':
			cells = append(cells, cell.String())
			cell.Reset()
		default:
			cell.WriteByte(ch)
		}
	}
	cells = append(cells, cell.String())
	return cells
}

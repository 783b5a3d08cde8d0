package csvimport

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Result is a parsed statement: the first line as headers, the remaining
// lines as rows. Rows keep their own length; nothing pads or truncates them.
type Result struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// ParseLine splits one line into fields. A double quote toggles quoted mode
// and is dropped; a comma outside quotes ends a field. Each field is trimmed
// and loses one leading and one trailing literal quote if present. Escaped
// quotes ("") are not recognized.
func ParseLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	return append(fields, cleanField(current.String()))
}

func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}

// Parse splits text into lines on \n or \r\n, drops blank lines and parses
// the first line as headers and the rest as rows. Surrounding whitespace and
// a byte order mark are ignored. Empty input gives an empty Result.
func Parse(text string) Result {
	text = strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	res := Result{Headers: []string{}, Rows: [][]string{}}
	if text == "" {
		return res
	}
	first := true
	for _, line := range lineBreak.Split(text, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if first {
			res.Headers = ParseLine(line)
			first = false
			continue
		}
		res.Rows = append(res.Rows, ParseLine(line))
	}
	return res
}

// ParseReader reads all of r and parses it with Parse.
func ParseReader(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading statement: %w", err)
	}
	return Parse(string(data)), nil
}

// Distributor identifies where a royalties statement comes from.
type Distributor string

const (
	DistroKid  Distributor = "distrokid"
	TuneCore   Distributor = "tunecore"
	SoundCloud Distributor = "soundcloud"
	Other      Distributor = "autres"
)

// Distributors lists every distributor in display order.
var Distributors = []Distributor{DistroKid, TuneCore, SoundCloud, Other}

var distributorNames = map[Distributor]string{
	DistroKid:  "DistroKid",
	TuneCore:   "TuneCore",
	SoundCloud: "SoundCloud",
	Other:      "Autres royalties",
}

// Name returns the display name of d, or d itself when unknown.
func (d Distributor) Name() string {
	if name, ok := distributorNames[d]; ok {
		return name
	}
	return string(d)
}

// ParseDistributor validates s as a distributor id.
func ParseDistributor(s string) (Distributor, error) {
	d := Distributor(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := distributorNames[d]; !ok {
		return "", fmt.Errorf("unknown distributor %q (expected one of distrokid, tunecore, soundcloud, autres)", s)
	}
	return d, nil
}

// RoyaltyImport is the last statement imported for one distributor.
type RoyaltyImport struct {
	FileName   string     `json:"fileName"`
	ImportedAt time.Time  `json:"importedAt"`
	Headers    []string   `json:"headers"`
	Rows       [][]string `json:"rows"`
}

// NewRoyaltyImport parses text as a statement read from fileName.
func NewRoyaltyImport(fileName, text string, importedAt time.Time) RoyaltyImport {
	res := Parse(text)
	return RoyaltyImport{
		FileName:   fileName,
		ImportedAt: importedAt.UTC(),
		Headers:    res.Headers,
		Rows:       res.Rows,
	}
}

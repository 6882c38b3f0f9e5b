package parser

import "strings"

// TokenizeLine splits a raw log line on whitespace and sorts each token into
// the line's date, its time tokens or its comment text. Separators are dropped.
// When a line carries more than one date token the last one wins.
func TokenizeLine(line string) ParsedLine {
	var (
		parsed  ParsedLine
		comment []string
	)

	for i, tok := range strings.Fields(line) {
		switch {
		case IsDateToken(tok):
			parsed.Date = strings.TrimSuffix(tok, ":")
			parsed.HasDate = true
		case IsTimeToken(tok):
			parsed.Times = append(parsed.Times, TimeToken{Index: i, Value: tok})
		case tok == Separator:
			// dropped
		default:
			comment = append(comment, tok)
		}
	}

	parsed.Comment = strings.Join(comment, " ")
	return parsed
}

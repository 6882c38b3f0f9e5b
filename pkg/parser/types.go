// Package parser reads time logs and folds them into per-day time records.
package parser

// TimeRecord is the aggregated time spent on one contiguous group of lines
// sharing a date.
type TimeRecord struct {
	// Date is the group's date as written in the log, without the trailing colon.
	Date string `json:"date"`

	// Minutes is the sum of all intervals attributed to the group.
	Minutes int `json:"minutes"`

	// Comment is the group's task text. Comments from separate lines are joined
	// with a newline indented to sit under "DATE: ".
	Comment string `json:"comment"`
}

// TimeToken is a recognized clock time together with its position in the line.
type TimeToken struct {
	// Index is the 0-based token position within the line.
	Index int `json:"index"`

	// Value is the raw token, e.g. "9:00am".
	Value string `json:"value"`
}

// Shape classifies which fields a tokenized line carries.
type Shape string

const (
	// ShapeComment is a line with no date and no time tokens.
	ShapeComment Shape = "comment"

	// ShapeTimePair is a line with exactly two time tokens and nothing else.
	ShapeTimePair Shape = "time_pair"

	// ShapeTimePairComment is a time pair followed by task text.
	ShapeTimePairComment Shape = "time_pair_comment"

	// ShapeDated is a date, a time pair and optional task text.
	ShapeDated Shape = "dated"

	// ShapeInvalid is any other combination.
	ShapeInvalid Shape = "invalid"
)

// ParsedLine holds the recognized fields of a single log line.
type ParsedLine struct {
	// Date is the line's date without the trailing colon. Empty unless HasDate.
	Date    string
	HasDate bool

	// Times are the recognized time tokens in line order.
	Times []TimeToken

	// Comment is the remaining free text, space-joined in line order.
	Comment string
}

// Shape reports which of the accepted line patterns p matches.
func (p ParsedLine) Shape() Shape {
	switch {
	case p.HasDate && len(p.Times) == 2:
		return ShapeDated
	case p.HasDate:
		return ShapeInvalid
	case len(p.Times) == 0:
		return ShapeComment
	case len(p.Times) != 2:
		return ShapeInvalid
	case p.Comment == "":
		return ShapeTimePair
	default:
		return ShapeTimePairComment
	}
}

package parser

import (
	"reflect"
	"testing"
)

func TestTokenizeLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		want  ParsedLine
		shape Shape
	}{
		{
			name:  "dated with comment",
			line:  "1/3/23: 9:00am - 1:00pm follow up",
			want:  ParsedLine{Date: "1/3/23", HasDate: true, Times: []TimeToken{{1, "9:00am"}, {3, "1:00pm"}}, Comment: "follow up"},
			shape: ShapeDated,
		},
		{
			name:  "bare pair",
			line:  "  2:00pm - 4:30pm  ",
			want:  ParsedLine{Times: []TimeToken{{0, "2:00pm"}, {2, "4:30pm"}}},
			shape: ShapeTimePair,
		},
		{
			name:  "pair with comment",
			line:  "2:00pm 4:30pm code review",
			want:  ParsedLine{Times: []TimeToken{{0, "2:00pm"}, {1, "4:30pm"}}, Comment: "code review"},
			shape: ShapeTimePairComment,
		},
		{
			name:  "interleaved comment keeps order",
			line:  "wrote 9:00am docs 10:00am today",
			want:  ParsedLine{Times: []TimeToken{{1, "9:00am"}, {3, "10:00am"}}, Comment: "wrote docs today"},
			shape: ShapeTimePairComment,
		},
		{
			name:  "comment only",
			line:  "- fixed the build",
			want:  ParsedLine{Comment: "fixed the build"},
			shape: ShapeComment,
		},
		{
			name:  "blank",
			line:  "",
			want:  ParsedLine{},
			shape: ShapeComment,
		},
		{
			name:  "date without times",
			line:  "1/3/23: planning",
			want:  ParsedLine{Date: "1/3/23", HasDate: true, Comment: "planning"},
			shape: ShapeInvalid,
		},
		{
			name:  "single time",
			line:  "9:00am started",
			want:  ParsedLine{Times: []TimeToken{{0, "9:00am"}}, Comment: "started"},
			shape: ShapeInvalid,
		},
		{
			name:  "malformed time is text",
			line:  "9:0am - 5:00pm",
			want:  ParsedLine{Times: []TimeToken{{2, "5:00pm"}}, Comment: "9:0am"},
			shape: ShapeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TokenizeLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
			if s := got.Shape(); s != tt.shape {
				t.Errorf("Shape() = %q, want %q", s, tt.shape)
			}
		})
	}
}

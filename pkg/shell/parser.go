package shell

import "strings"

// FieldsParser splits a line on runs of whitespace. Quotes carry no meaning.
type FieldsParser struct{}

func NewFieldsParser() *FieldsParser {
	return &FieldsParser{}
}

func (p *FieldsParser) Parse(line string) []string {
	args := strings.Fields(line)
	if args == nil {
		args = []string{}
	}

	return args
}

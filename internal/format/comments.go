package format

import "strings"

// Comment is a "//" comment found in the source. Line and Col are 1-based
// and count bytes, matching token positions.
type Comment struct {
	Text string
	Line int
	Col  int
}

// scanComments finds comments with a pass independent of the lexer, skipping
// string literals so "//" inside them is left alone. Strings have no escapes
// and may span lines.
func scanComments(src string) []Comment {
	var comments []Comment
	line, col := 1, 0
	advance := func(ch byte) {
		if ch == '\n' {
			line++
			col = 0
			return
		}
		col++
	}

	i := 0
	for i < len(src) {
		ch := src[i]
		if ch == '"' {
			advance(ch)
			i++
			for i < len(src) {
				c := src[i]
				advance(c)
				i++
				if c == '"' {
					break
				}
			}
			continue
		}
		if ch == '/' && i+1 < len(src) && src[i+1] == '/' {
			start := i
			c := Comment{Line: line, Col: col + 1}
			for i < len(src) && src[i] != '\n' {
				advance(src[i])
				i++
			}
			c.Text = strings.TrimRight(src[start:i], " \t\r")
			comments = append(comments, c)
			continue
		}
		advance(ch)
		i++
	}
	return comments
}

// before reports whether the comment starts ahead of the given token position.
func (c Comment) before(line, col int) bool {
	return c.Line < line || (c.Line == line && c.Col < col)
}

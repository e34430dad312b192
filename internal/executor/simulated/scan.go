package simulated

import "strings"

// callArgs finds every call that starts with one of the given openers
// (each ending in "("), scanning left to right without overlap, and returns
// the text between the opener and its closing paren.
//
// The closing paren is the one that balances the opener's "(" on the same
// line. Parens inside string literals don't count; literals are found by
// one left-to-right pass over the line. When the opener's paren is never
// balanced, the first ")" after it on that line is used instead. An opener
// with no ")" left on its line is not a call.
//
// Each line is scanned once and each opener is searched for once, so the
// cost is linear in len(src).
func callArgs(src string, openers ...string) []string {
	var args []string
	var parens lineParens
	find := newOpenerIndex(src, openers)

	pos := 0
	for pos < len(src) {
		start, opener := find.next(pos)
		if start < 0 {
			break
		}

		argStart := start + len(opener)
		argEnd, ok := parens.closing(src, argStart)
		if !ok {
			pos = argStart
			continue
		}

		args = append(args, src[argStart:argEnd])
		pos = argEnd + 1
	}

	return args
}

// openerIndex remembers where each opener next occurs. Lookups must come
// with non-decreasing from.
type openerIndex struct {
	src     string
	openers []string
	at      []int // next occurrence of openers[i]; -1 none left, -2 not searched
}

func newOpenerIndex(src string, openers []string) *openerIndex {
	at := make([]int, len(openers))
	for i := range at {
		at[i] = -2
	}
	return &openerIndex{src: src, openers: openers, at: at}
}

// next returns the earliest occurrence at or after from of any opener. On a
// tie the longer opener wins.
func (x *openerIndex) next(from int) (int, string) {
	best, bestOpener := -1, ""
	for i, o := range x.openers {
		if x.at[i] == -1 {
			continue
		}
		if x.at[i] < from {
			j := strings.Index(x.src[from:], o)
			if j < 0 {
				x.at[i] = -1
				continue
			}
			x.at[i] = from + j
		}
		if best < 0 || x.at[i] < best || (x.at[i] == best && len(o) > len(bestOpener)) {
			best, bestOpener = x.at[i], o
		}
	}
	return best, bestOpener
}

// lineParens holds the paren matches of the line the scan is on. Queries
// must come with non-decreasing positions.
type lineParens struct {
	loaded     bool
	start, end int   // src[start:end] is the line without its newline
	match      []int // match[i]: offset of the ")" closing a "(" at offset i, else -1
	closes     []int // offsets of every ")" on the line, quoted or not
	next       int   // first entry of closes that may still be used
}

// closing returns the index of the ")" that ends a call whose argument text
// begins at argStart. src[argStart-1] is the opener's "(".
func (l *lineParens) closing(src string, argStart int) (int, bool) {
	open := argStart - 1
	if !l.loaded || open >= l.end {
		l.load(src, open)
	}

	if m := l.match[open-l.start]; m >= 0 {
		return l.start + m, true
	}

	for l.next < len(l.closes) && l.start+l.closes[l.next] < argStart {
		l.next++
	}
	if l.next < len(l.closes) {
		return l.start + l.closes[l.next], true
	}
	return 0, false
}

// load scans the line holding src[p].
func (l *lineParens) load(src string, p int) {
	start := 0
	if l.loaded {
		start = l.end
	}
	if nl := strings.LastIndexByte(src[start:p], '\n'); nl >= 0 {
		start += nl + 1
	}
	end := len(src)
	if nl := strings.IndexByte(src[p:], '\n'); nl >= 0 {
		end = p + nl
	}
	line := src[start:end]

	l.loaded, l.start, l.end, l.next = true, start, end, 0
	l.closes = l.closes[:0]
	if cap(l.match) < len(line) {
		l.match = make([]int, len(line))
	}
	l.match = l.match[:len(line)]

	var (
		stack []int
		quote byte
	)
	for i := 0; i < len(line); i++ {
		l.match[i] = -1
		ch := line[i]
		if ch == ')' {
			l.closes = append(l.closes, i)
		}
		switch {
		case quote != 0:
			if ch == '\\' && i+1 < len(line) {
				i++
				l.match[i] = -1
				if line[i] == ')' {
					l.closes = append(l.closes, i)
				}
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(':
			stack = append(stack, i)
		case ch == ')':
			if n := len(stack); n > 0 {
				l.match[stack[n-1]] = i
				stack = stack[:n-1]
			}
		}
	}
}

// lineAt returns src from i up to (not including) the next newline.
func lineAt(src string, i int) string {
	rest := src[i:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		return rest[:nl]
	}
	return rest
}

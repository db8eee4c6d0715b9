// Package ppd extracts attributes and marked choices from a PostScript
// Printer Description file, which is where the destination's motion
// units, paper reduction and buzzer/drawer selections live. It covers only
// the handful of keywords the filter reads.
package ppd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Attr is one main keyword line: *Keyword Option/Translation: "Value".
type Attr struct {
	Keyword string
	Option  string
	Value   string
}

type PPD struct {
	attrs    []Attr
	defaults map[string]string
	marked   map[string]string
}

// Open parses the PPD file at path.
func Open(path string) (*PPD, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ppd: %w", err)
	}
	defer f.Close()
	return Parse(bufio.NewScanner(f))
}

// ParseString parses PPD text, mostly for tests.
func ParseString(text string) (*PPD, error) {
	return Parse(bufio.NewScanner(strings.NewReader(text)))
}

func Parse(sc *bufio.Scanner) (*PPD, error) {
	p := &PPD{
		defaults: make(map[string]string),
		marked:   make(map[string]string),
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "*") || strings.HasPrefix(line, "*%") {
			continue
		}

		key, value, ok := strings.Cut(line[1:], ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		// A value whose quote never closes continues on following lines;
		// none of the attributes the filter reads span lines, so the rest
		// is consumed and dropped.
		if strings.HasPrefix(value, `"`) && strings.Count(value, `"`) == 1 {
			for sc.Scan() {
				if strings.Contains(sc.Text(), `"`) {
					break
				}
			}
			continue
		}
		value = strings.Trim(value, `"`)

		keyword, option, _ := strings.Cut(strings.TrimSpace(key), " ")
		option = strings.TrimSpace(option)
		if tr, _, found := strings.Cut(option, "/"); found {
			option = tr
		}

		if rest, found := strings.CutPrefix(keyword, "Default"); found {
			p.defaults[rest] = value
			continue
		}
		p.attrs = append(p.attrs, Attr{Keyword: keyword, Option: option, Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ppd: %w", err)
	}
	return p, nil
}

// Attr returns the first attribute with the given main keyword.
func (p *PPD) Attr(keyword string) (*Attr, bool) {
	for i := range p.attrs {
		if p.attrs[i].Keyword == keyword {
			return &p.attrs[i], true
		}
	}
	return nil, false
}

// MarkDefaults marks every *DefaultFoo choice as the selected one.
func (p *PPD) MarkDefaults() {
	for keyword, choice := range p.defaults {
		p.marked[keyword] = choice
	}
}

// MarkOptions overrides marked choices from a job option string of the
// form produced by the spooler: name=value pairs separated by whitespace,
// values optionally quoted.
func (p *PPD) MarkOptions(options string) {
	for name, value := range ParseOptions(options) {
		p.marked[name] = value
	}
}

// MarkedChoice returns the selected choice for an option keyword.
func (p *PPD) MarkedChoice(keyword string) (string, bool) {
	choice, ok := p.marked[keyword]
	return choice, ok
}

// ParseOptions splits a job option string into name=value pairs. A name
// without a value is treated as a true boolean flag.
func ParseOptions(s string) map[string]string {
	opts := make(map[string]string)
	for _, tok := range tokenize(s) {
		name, value, found := strings.Cut(tok, "=")
		if name == "" {
			continue
		}
		if !found {
			value = "true"
		}
		opts[name] = strings.Trim(value, `"'`)
	}
	return opts
}

func tokenize(s string) []string {
	var toks []string
	var cur strings.Builder
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			cur.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
		case c == ' ' || c == '\t':
			if cur.Len() > 0 {
				toks = append(toks, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		toks = append(toks, cur.String())
	}
	return toks
}

package encode

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func (es *EncState) writeText(a ColorAttr, s string) error {
	if es.Color != nil {
		var sb strings.Builder
		if err := escape(&sb, s, false); err != nil {
			return err
		}
		es.writeColor(a, sb.String())
		return nil
	}
	return escape(es.buf, s, false)
}

func (es *EncState) writeAttrValue(s string) error {
	if es.Color != nil {
		var sb strings.Builder
		if err := escape(&sb, s, true); err != nil {
			return err
		}
		es.writeColor(AttrValueColor, sb.String())
		return nil
	}
	return escape(es.buf, s, true)
}

// writeCDATA writes s as one CDATA section, split where s itself contains
// the section terminator.
func (es *EncState) writeCDATA(s string) error {
	if err := checkChars(s); err != nil {
		return err
	}
	es.writeColor(SepColor, "<![CDATA[")
	for {
		i := strings.Index(s, "]]>")
		if i < 0 {
			break
		}
		es.writeColor(CDATAColor, s[:i+2])
		es.writeColor(SepColor, "]]><![CDATA[")
		s = s[i+2:]
	}
	es.writeColor(CDATAColor, s)
	es.writeColor(SepColor, "]]>")
	return nil
}

type stringWriter interface {
	WriteString(string) (int, error)
}

// escape writes s with markup characters replaced by entity references.
// In attribute values the double quote is escaped too, as are tab, newline
// and carriage return, which a parser would otherwise normalize to spaces.
func escape(w stringWriter, s string, attr bool) error {
	last := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrEncoding, i)
		}
		var esc string
		switch r {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			if attr {
				esc = "&quot;"
			}
		case '\t':
			if attr {
				esc = "&#9;"
			}
		case '\n':
			if attr {
				esc = "&#10;"
			}
		case '\r':
			esc = "&#13;"
		default:
			if !isXMLChar(r) {
				return fmt.Errorf("%w: character %U not allowed in XML", ErrEncoding, r)
			}
		}
		if esc != "" {
			w.WriteString(s[last:i])
			w.WriteString(esc)
			last = i + size
		}
		i += size
	}
	w.WriteString(s[last:])
	return nil
}

func checkChars(s string) error {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrEncoding, i)
			}
		}
		if !isXMLChar(r) {
			return fmt.Errorf("%w: character %U not allowed in XML", ErrEncoding, r)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

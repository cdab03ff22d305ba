package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	DeclColor ColorAttr = iota
	TagColor
	AttrNameColor
	AttrValueColor
	TextColor
	CDATAColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			DeclColor:      color.BlueString,
			TagColor:       color.RGB(74, 92, 138).SprintfFunc(),
			AttrNameColor:  color.RGB(196, 96, 16).SprintfFunc(),
			AttrValueColor: color.RGB(8, 196, 16).SprintfFunc(),
			TextColor:      color.RGB(128, 216, 236).SprintfFunc(),
			CDATAColor:     color.RGB(198, 198, 46).SprintfFunc(),
			SepColor:       color.RGB(255, 0, 196).SprintfFunc(),
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}

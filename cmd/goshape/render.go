package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/reoring/goshape"
)

// treePrinter writes an indented, colored view of an element tree.
type treePrinter struct {
	w     io.Writer
	ident func(a ...any) string
	value func(a ...any) string
	meta  func(a ...any) string
	bad   func(a ...any) string
}

func newTreePrinter(w io.Writer) *treePrinter {
	return &treePrinter{
		w:     w,
		ident: color.New(color.FgCyan).SprintFunc(),
		value: color.New(color.FgGreen).SprintFunc(),
		meta:  color.New(color.Faint).SprintFunc(),
		bad:   color.New(color.FgRed).SprintFunc(),
	}
}

func (p *treePrinter) print(label string, el goshape.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	switch el.Kind() {
	case goshape.KindValue:
		v := el.Value()
		fmt.Fprintf(p.w, "%s%s: %s %s\n", indent, p.ident(label), p.value(v.String()), p.meta(v.Kind()))
	case goshape.KindEnum:
		opts := el.Options()
		names := make([]string, len(opts))
		for i, o := range opts {
			names[i] = o.Name
		}
		sel := "?"
		if i := el.Selected(); i >= 0 && i < len(opts) {
			sel = opts[i].Name
		}
		fmt.Fprintf(p.w, "%s%s: %s %s\n", indent, p.ident(label), p.value(sel), p.meta("{"+strings.Join(names, "|")+"}"))
	case goshape.KindArray:
		fmt.Fprintf(p.w, "%s%s: %s\n", indent, p.ident(label), p.meta("["+strconv.Itoa(el.Len())+"]"))
		for i, item := range el.Items() {
			p.print(strconv.Itoa(i), item, depth+1)
		}
	case goshape.KindObject:
		typ := ""
		if t := el.Type(); t != nil {
			typ = t.String()
		}
		fmt.Fprintf(p.w, "%s%s: %s\n", indent, p.ident(label), p.meta(typ))
		for _, prop := range el.Properties() {
			p.print(prop.Identifier(), prop.Value(), depth+1)
		}
	default:
		fmt.Fprintf(p.w, "%s%s: %s\n", indent, p.ident(label), p.bad("<invalid>"))
	}
}

// printIssues writes one line per issue carried by err.
func (p *treePrinter) printIssues(err error) {
	iss, ok := goshape.AsIssues(err)
	if !ok {
		fmt.Fprintln(p.w, p.bad(err.Error()))
		return
	}
	for _, it := range iss {
		fmt.Fprintf(p.w, "%s %s: %s\n", p.bad(it.Code), p.ident(it.Path), it.Message)
	}
}

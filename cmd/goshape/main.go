package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/goccy/go-json"

	"github.com/reoring/goshape"
	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/internal/catalog"
	"github.com/reoring/goshape/internal/jsondoc"
	"github.com/reoring/goshape/internal/yamldoc"
	"github.com/reoring/goshape/jsonschema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch sub := os.Args[1]; sub {
	case "inspect":
		err = inspectCmd(os.Args[2:], os.Stdout)
	case "schema":
		err = schemaCmd(os.Args[2:], os.Stdout)
	case "roundtrip":
		err = roundtripCmd(os.Args[2:], os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		newTreePrinter(os.Stderr).printIssues(err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `goshape CLI

Usage:
  goshape inspect   -type NAME [-f doc.yaml] [-json] [-config cfg.yaml]
  goshape schema    -type NAME [-config cfg.yaml]
  goshape roundtrip -type NAME [-f doc.yaml] [-rename /path/Old=New]... [-config cfg.yaml]

Types: %s
`, strings.Join(catalog.Names(), ", "))
}

// common holds the flags shared by every subcommand.
type common struct {
	typeName string
	file     string
	config   string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.typeName, "type", "", "catalog type name")
	fs.StringVar(&c.file, "f", "", "YAML or .json instance to load (default instance when empty)")
	fs.StringVar(&c.config, "config", "", "YAML configuration file")
}

// setup resolves the catalog entry and turns the configuration into options.
func (c *common) setup() (catalog.Entry, []goshape.Option, log.Logger, error) {
	entry, ok := catalog.Lookup(c.typeName)
	if !ok {
		return catalog.Entry{}, nil, nil, unknownType(c.typeName)
	}
	cfg := goshape.DefaultConfig()
	if c.config != "" {
		var err error
		if cfg, err = goshape.LoadConfig(c.config); err != nil {
			return catalog.Entry{}, nil, nil, err
		}
	}
	i18n.SetLanguage(cfg.Language)
	logger := cfg.Logger(os.Stderr)
	opts, err := cfg.Options(logger)
	if err != nil {
		return catalog.Entry{}, nil, nil, err
	}
	return entry, opts, logger, nil
}

// encode builds the tree of the entry from -f, or its default tree.
func (c *common) encode(entry catalog.Entry, opts []goshape.Option) (goshape.Element, error) {
	if c.file == "" {
		return goshape.Encode(entry.Type, nil, opts...)
	}
	f, err := os.Open(c.file)
	if err != nil {
		return goshape.Element{}, err
	}
	defer f.Close()
	inst := entry.New()
	decode := yamldoc.Decode
	if strings.EqualFold(filepath.Ext(c.file), ".json") {
		decode = jsondoc.Decode
	}
	if err := decode(f, inst); err != nil {
		return goshape.Element{}, fmt.Errorf("%s: %w", c.file, err)
	}
	return goshape.Encode(entry.Type, inst, opts...)
}

func unknownType(name string) error {
	for _, n := range catalog.Names() {
		if levenshtein.ComputeDistance(name, n) <= 2 {
			return fmt.Errorf("unknown type %q, did you mean %q?", name, n)
		}
	}
	return fmt.Errorf("unknown type %q, want one of %s", name, strings.Join(catalog.Names(), ", "))
}

func inspectCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var c common
	var asJSON bool
	c.register(fs)
	fs.BoolVar(&asJSON, "json", false, "print the inspection dump as JSON")
	_ = fs.Parse(args)

	entry, opts, logger, err := c.setup()
	if err != nil {
		return err
	}
	el, err := c.encode(entry, opts)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "encoded", "type", entry.Type, "kind", el.Kind())
	if asJSON {
		return writeJSON(out, el)
	}
	newTreePrinter(out).print(entry.Name, el, 0)
	return nil
}

func schemaCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	var c common
	c.register(fs)
	_ = fs.Parse(args)

	entry, opts, _, err := c.setup()
	if err != nil {
		return err
	}
	el, err := c.encode(entry, opts)
	if err != nil {
		return err
	}
	return writeJSON(out, jsonschema.FromElement(el))
}

func roundtripCmd(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("roundtrip", flag.ExitOnError)
	var c common
	var renames renameFlags
	c.register(fs)
	fs.Var(&renames, "rename", "rename a property, as /path/to/Old=New (repeatable)")
	_ = fs.Parse(args)

	entry, opts, logger, err := c.setup()
	if err != nil {
		return err
	}
	el, err := c.encode(entry, opts)
	if err != nil {
		return err
	}
	for _, r := range renames {
		if err := applyRename(el, r); err != nil {
			return err
		}
		level.Info(logger).Log("msg", "renamed property", "path", r.path, "to", r.to)
	}
	v, err := goshape.NewDecoder(opts...).DecodeType(el, entry.Type)
	if err != nil {
		return err
	}
	return yamldoc.Encode(out, v.Interface())
}

type rename struct {
	path string
	to   string
}

// renameFlags collects -rename values.
type renameFlags []rename

func (r *renameFlags) String() string {
	parts := make([]string, len(*r))
	for i, x := range *r {
		parts[i] = x.path + "=" + x.to
	}
	return strings.Join(parts, ",")
}

func (r *renameFlags) Set(s string) error {
	i := strings.LastIndex(s, "=")
	if i <= 0 {
		return errors.New("want /path/to/Old=New")
	}
	path := s[:i]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	*r = append(*r, rename{path: path, to: s[i+1:]})
	return nil
}

// applyRename renames the property at r.path of the tree rooted at root.
func applyRename(root goshape.Element, r rename) error {
	i := strings.LastIndex(r.path, "/")
	owner, ok := root.Lookup(r.path[:i])
	if !ok || owner.Kind() != goshape.KindObject {
		return fmt.Errorf("%s: no such object", r.path[:i])
	}
	old := strings.ReplaceAll(strings.ReplaceAll(r.path[i+1:], "~1", "/"), "~0", "~")
	prop, ok := owner.Property(old)
	if !ok {
		return fmt.Errorf("%s: no such property", r.path)
	}
	return prop.Rename(r.to)
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

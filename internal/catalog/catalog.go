// Package catalog holds the sample types the goshape command works on.
package catalog

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Role is the access level of a Person.
type Role int

const (
	RoleViewer Role = iota
	RoleEditor
	RoleAdmin
)

var roleNames = [...]string{
	RoleViewer: "viewer",
	RoleEditor: "editor",
	RoleAdmin:  "admin",
}

func (Role) EnumMembers() []any { return []any{RoleViewer, RoleEditor, RoleAdmin} }

func (r Role) String() string {
	if r >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(text []byte) error {
	for i, name := range roleNames {
		if string(text) == name {
			*r = Role(i)
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", text)
}

func (r Role) MarshalYAML() (any, error) { return r.String(), nil }

func (r *Role) UnmarshalYAML(n *yaml.Node) error {
	if err := r.UnmarshalText([]byte(n.Value)); err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	return nil
}

type Address struct {
	Street string `json:"street" yaml:"street"`
	City   string `json:"city" yaml:"city"`
}

type Person struct {
	Name    string        `json:"name" yaml:"name"`
	Age     int           `json:"age" yaml:"age"`
	Tags    []string      `json:"tags" yaml:"tags"`
	Role    Role          `json:"role" yaml:"role"`
	Address Address       `json:"address" yaml:"address"`
	Joined  time.Time     `json:"joined" yaml:"joined"`
	Session time.Duration `json:"session" yaml:"session"`
}

// SetToDefault gives new people a half hour session.
func (p *Person) SetToDefault() { p.Session = 30 * time.Minute }

type Team struct {
	Name    string   `json:"name" yaml:"name"`
	Lead    Person   `json:"lead" yaml:"lead"`
	Members []Person `json:"members" yaml:"members"`
}

// Entry is one named sample type.
type Entry struct {
	Name string
	Type reflect.Type
}

// New returns a pointer to a fresh zero value of the entry's type.
func (e Entry) New() any { return reflect.New(e.Type).Interface() }

var entries = map[string]Entry{
	"address": {Name: "address", Type: reflect.TypeFor[Address]()},
	"person":  {Name: "person", Type: reflect.TypeFor[Person]()},
	"team":    {Name: "team", Type: reflect.TypeFor[Team]()},
}

// Lookup returns the entry called name.
func Lookup(name string) (Entry, bool) {
	e, ok := entries[name]
	return e, ok
}

// Names lists the entry names in order.
func Names() []string {
	out := make([]string, 0, len(entries))
	for n := range entries {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape/internal/jsondoc"
	"github.com/reoring/goshape/internal/yamldoc"
)

func TestLookup(t *testing.T) {
	require.Equal(t, []string{"address", "person", "team"}, Names())

	e, ok := Lookup("person")
	require.True(t, ok)
	_, isPerson := e.New().(*Person)
	require.True(t, isPerson)

	_, ok = Lookup("nobody")
	require.False(t, ok)
}

func TestRoleYAML(t *testing.T) {
	var p Person
	require.NoError(t, yamldoc.Decode(strings.NewReader("name: Ann\nrole: editor\nsession: 1h\n"), &p))
	require.Equal(t, RoleEditor, p.Role)
	require.Equal(t, "1h0m0s", p.Session.String())

	err := yamldoc.Decode(strings.NewReader("role: owner\n"), &p)
	require.ErrorContains(t, err, `unknown role "owner"`)
}

func TestRoleJSON(t *testing.T) {
	var p Person
	require.NoError(t, jsondoc.Decode(strings.NewReader(`{"name":"Ann","role":"admin"}`), &p))
	require.Equal(t, RoleAdmin, p.Role)

	err := jsondoc.Decode(strings.NewReader(`{"role":"owner"}`), &p)
	require.ErrorContains(t, err, `unknown role "owner"`)
}

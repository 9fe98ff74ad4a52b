package goshape_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape"
)

func TestApplyContext_Order(t *testing.T) {
	el, err := goshape.EncodeOf(Person{Name: "Ann", Age: 30, Tags: []string{"a", "b"}})
	require.NoError(t, err)

	var visited []string
	record := goshape.ResolverFunc(func(c any, e goshape.Element) error {
		visited = append(visited, e.Path())
		return nil
	})
	for _, path := range []string{"/", "/Name", "/Age", "/Tags", "/Tags/0", "/Tags/1", "/Tags/-"} {
		e, ok := el.Lookup(path)
		require.True(t, ok, path)
		e.SetResolver(record)
	}

	require.NoError(t, el.ApplyContext(nil))
	require.Equal(t, []string{"/Name", "/Age", "/Tags/0", "/Tags/1", "/Tags", "/"}, visited)
}

type directory map[string]string

// expand replaces "$key" leaves with the directory entry for key.
var expand = goshape.ResolverFunc(func(c any, e goshape.Element) error {
	s, _ := e.Value().AsString()
	if !strings.HasPrefix(s, "$") {
		return nil
	}
	dir := c.(directory)
	v, ok := dir[s[1:]]
	if !ok {
		return errors.New("unknown reference " + s)
	}
	return e.SetValue(goshape.StringValue(v))
})

func TestDecode_WithContext(t *testing.T) {
	opts := []goshape.Option{goshape.WithResolver(reflect.TypeFor[string](), expand)}
	el, err := goshape.EncodeOf(Person{Name: "$owner", Tags: []string{"$team", "x"}}, opts...)
	require.NoError(t, err)

	got, err := goshape.Decode[Person](el, goshape.WithContext(directory{"owner": "Ann", "team": "core"}))
	require.NoError(t, err)
	require.Equal(t, Person{Name: "Ann", Tags: []string{"core", "x"}}, got)

	// Without a context the references stay unresolved.
	el, err = goshape.EncodeOf(Person{Name: "$owner"}, opts...)
	require.NoError(t, err)
	got, err = goshape.Decode[Person](el)
	require.NoError(t, err)
	require.Equal(t, "$owner", got.Name)
}

func TestDecode_WithContextFailure(t *testing.T) {
	opts := []goshape.Option{goshape.WithResolver(reflect.TypeFor[string](), expand)}
	el, err := goshape.EncodeOf(Person{Name: "ok", Tags: []string{"$missing"}}, opts...)
	require.NoError(t, err)

	_, err = goshape.Decode[Person](el, goshape.WithContext(directory{}))
	require.True(t, goshape.HasCode(err, goshape.CodeContextResolution))
	iss, _ := goshape.AsIssues(err)
	require.Equal(t, "/Tags/0", iss[0].Path)
	require.ErrorContains(t, iss[0].Cause, "unknown reference $missing")
}

func TestApplyContext_InsertedItemsKeepResolver(t *testing.T) {
	calls := 0
	count := goshape.ResolverFunc(func(any, goshape.Element) error {
		calls++
		return nil
	})
	el, err := goshape.EncodeOf([]Person{{}}, goshape.WithResolver(reflect.TypeFor[Person](), count))
	require.NoError(t, err)
	_, err = el.AppendItem()
	require.NoError(t, err)

	require.NoError(t, el.ApplyContext("ctx"))
	require.Equal(t, 2, calls)
}

package goshape_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape"
)

func TestEncode_Person(t *testing.T) {
	el, err := goshape.EncodeOf(Person{Name: "Ann", Age: 30, Tags: []string{"a", "b"}})
	require.NoError(t, err)
	require.Equal(t, goshape.KindObject, el.Kind())
	require.Equal(t, 3, el.Len())

	props := el.Properties()
	require.Equal(t, "Name", props[0].Identifier())
	require.Equal(t, "Age", props[1].Identifier())
	require.Equal(t, "Tags", props[2].Identifier())

	require.True(t, props[0].Value().Value().Equal(goshape.StringValue("Ann")))
	require.True(t, props[1].Value().Value().Equal(goshape.IntegerValue(30)))

	tags := props[2].Value()
	require.Equal(t, goshape.KindArray, tags.Kind())
	require.Equal(t, 2, tags.Len())
	require.True(t, tags.Item(1).Value().Equal(goshape.StringValue("b")))
	require.Equal(t, goshape.PrimitiveString, tags.Template().Value().Kind())
	require.Equal(t, "/Tags/1", tags.Item(1).Path())
	require.Equal(t, "/Tags/-", tags.Template().Path())
}

func TestEncode_Default(t *testing.T) {
	el, err := goshape.EncodeDefault[Person]()
	require.NoError(t, err)
	name, ok := el.Property("Name")
	require.True(t, ok)
	require.True(t, name.Value().Value().Equal(goshape.StringValue("")))
	tags, _ := el.Property("Tags")
	require.Equal(t, 0, tags.Value().Len())

	el, err = goshape.EncodeDefault[Defaults]()
	require.NoError(t, err)
	name, _ = el.Property("Name")
	require.True(t, name.Value().Value().Equal(goshape.StringValue("unnamed")))
	lvl, _ := el.Property("Level")
	require.True(t, lvl.Value().Value().Equal(goshape.IntegerValue(3)))
}

func TestEncode_AllPrimitives(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	el, err := goshape.EncodeOf(&Event{Title: "x", At: at, Length: time.Hour, Score: 1.5, Done: true})
	require.NoError(t, err)

	want := map[string]goshape.Value{
		"title":  goshape.StringValue("x"),
		"at":     goshape.DateTimeValue(at),
		"length": goshape.DurationValue(time.Hour),
		"score":  goshape.DecimalValue(1.5),
		"done":   goshape.BooleanValue(true),
	}
	for ident, v := range want {
		p, ok := el.Property(ident)
		require.True(t, ok, ident)
		require.True(t, p.Value().Value().Equal(v), "%s: got %s", ident, p.Value().Value())
	}

	// A nil pointer member encodes the default shape of its element type.
	att, ok := el.Property("attendee")
	require.True(t, ok)
	require.Equal(t, goshape.KindObject, att.Value().Kind())
	require.Equal(t, 3, att.Value().Len())
}

func TestEncode_Enum(t *testing.T) {
	el, err := goshape.EncodeOf(Palette{Primary: Blue, Others: []Color{Red, Green}})
	require.NoError(t, err)
	primary, _ := el.Property("Primary")
	require.Equal(t, goshape.KindEnum, primary.Value().Kind())
	require.Equal(t, 2, primary.Value().Selected())
	require.Equal(t, []goshape.EnumOption{
		{Index: 0, Name: "Red"},
		{Index: 1, Name: "Green"},
		{Index: 2, Name: "Blue"},
	}, primary.Value().Options())

	others, _ := el.Property("Others")
	require.Equal(t, 1, others.Value().Item(1).Selected())
	require.Equal(t, 0, others.Value().Template().Selected())
}

func TestEncode_NonMemberEnumSelectsFirst(t *testing.T) {
	el, err := goshape.EncodeOf(Color(7))
	require.NoError(t, err)
	require.Equal(t, 0, el.Selected())
}

func TestEncode_InstanceForms(t *testing.T) {
	typ := reflect.TypeFor[Person]()
	p := &Person{Name: "Ann"}
	for _, inst := range []any{*p, p, &p} {
		el, err := goshape.Encode(typ, inst)
		require.NoError(t, err)
		name, _ := el.Property("Name")
		require.True(t, name.Value().Value().Equal(goshape.StringValue("Ann")))
	}

	var nilPerson *Person
	el, err := goshape.Encode(typ, nilPerson)
	require.NoError(t, err)
	require.Equal(t, 3, el.Len())

	_, err = goshape.Encode(typ, Nicknamed{})
	require.True(t, goshape.HasCode(err, goshape.CodeTypeMismatch))

	el, err = goshape.Encode(reflect.TypeFor[Figure](), Square{Side: 2})
	require.NoError(t, err)
	require.Equal(t, goshape.KindObject, el.Kind())
	require.Equal(t, 0, el.Len())

	_, err = goshape.Encode(reflect.TypeFor[Figure](), Person{})
	require.True(t, goshape.HasCode(err, goshape.CodeTypeMismatch))
}

func TestEncode_Cycles(t *testing.T) {
	_, err := goshape.EncodeDefault[Node]()
	require.True(t, goshape.HasCode(err, goshape.CodeCyclicTypeGraph))
	iss, _ := goshape.AsIssues(err)
	require.Equal(t, "/Children/-", iss[0].Path)

	_, err = goshape.EncodeOf(Linked{})
	require.True(t, goshape.HasCode(err, goshape.CodeCyclicTypeGraph))
}

func TestEncode_RepeatedTypesAreNotCycles(t *testing.T) {
	type twoPeople struct {
		First  Person
		Second Person
	}
	el, err := goshape.EncodeDefault[twoPeople]()
	require.NoError(t, err)
	require.Equal(t, 2, el.Len())
}

func TestEncode_Failures(t *testing.T) {
	_, err := goshape.EncodeDefault[WithMap]()
	require.True(t, goshape.HasCode(err, goshape.CodeUnresolvableElementType))
	iss, _ := goshape.AsIssues(err)
	require.Equal(t, "/M", iss[0].Path)

	_, err = goshape.EncodeDefault[Drawing]()
	require.True(t, goshape.HasCode(err, goshape.CodeUnresolvableElementType))

	_, err = goshape.EncodeOf(Unsigned{B: bigUint})
	require.True(t, goshape.HasCode(err, goshape.CodeTypeMismatch))

	_, err = goshape.EncodeValue(nil)
	require.True(t, goshape.HasCode(err, goshape.CodeInvalidShape))
}

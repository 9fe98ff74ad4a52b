package goshape_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/reoring/goshape"
	"github.com/reoring/goshape/i18n"
)

func identifiers(el goshape.Element) []string {
	var out []string
	for _, p := range el.Properties() {
		out = append(out, p.Identifier())
	}
	return out
}

func TestRename(t *testing.T) {
	el, err := goshape.EncodeOf(Person{Name: "Ann", Age: 30})
	require.NoError(t, err)
	age := el.PropertyAt(1)

	require.NoError(t, age.Rename("Years"))
	require.Equal(t, []string{"Name", "Years", "Tags"}, identifiers(el))
	require.Equal(t, 1, age.Index())

	// Renaming to the current name is a no-op, twice over.
	require.NoError(t, age.Rename("Years"))
	require.NoError(t, age.Rename("Years"))
	require.Equal(t, []string{"Name", "Years", "Tags"}, identifiers(el))

	// The property keeps its value.
	require.True(t, age.Value().Value().Equal(goshape.IntegerValue(30)))
	p, ok := el.Property("Years")
	require.True(t, ok)
	require.Equal(t, age, p)
}

func TestRename_Duplicate(t *testing.T) {
	el, err := goshape.EncodeOf(Person{Name: "Ann", Age: 30})
	require.NoError(t, err)
	age := el.PropertyAt(1)

	err = age.Rename("Name")
	require.True(t, goshape.HasCode(err, goshape.CodeDuplicateIdentifier))
	iss, _ := goshape.AsIssues(err)
	require.Equal(t, "/Age", iss[0].Path)
	require.Equal(t, `The name "Name" is already used by another property.`, iss[0].Message)
	require.Equal(t, []string{"Name", "Age", "Tags"}, identifiers(el))
	require.True(t, el.PropertyAt(0).Value().Value().Equal(goshape.StringValue("Ann")))
	require.Equal(t, age, el.PropertyAt(1))
	require.True(t, age.Value().Value().Equal(goshape.IntegerValue(30)))

	ok, msg := goshape.TryRename(age, "Name")
	require.False(t, ok)
	require.Equal(t, iss[0].Message, msg)

	ok, msg = goshape.TryRename(age, "Years")
	require.True(t, ok)
	require.Empty(t, msg)
}

func TestRename_LocalizedMessage(t *testing.T) {
	i18n.SetLanguage("ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })

	el, err := goshape.EncodeOf(Person{})
	require.NoError(t, err)
	ok, msg := goshape.TryRename(el.PropertyAt(0), "Tags")
	require.False(t, ok)
	require.Equal(t, "名前「Tags」は他のプロパティで使用されています。", msg)
}

func TestRename_Policies(t *testing.T) {
	tests := []struct {
		name    string
		policy  goshape.IdentifierPolicy
		from    string
		to      string
		wantErr bool
	}{
		{"exact case differs", goshape.ExactIdentifiers, "Age", "NAME", false},
		{"fold case differs", goshape.FoldedIdentifiers, "Age", "NAME", true},
		{"fold self", goshape.FoldedIdentifiers, "Age", "AGE", false},
		{"fold other property", goshape.FoldedIdentifiers, "Age", "tAgS", true},
		{"locale en", goshape.LocaleIdentifiers(language.English), "Age", "name", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el, err := goshape.EncodeOf(Person{}, goshape.WithIdentifierPolicy(tt.policy))
			require.NoError(t, err)
			require.Equal(t, tt.policy, el.Tree().Policy())
			p, ok := el.Property(tt.from)
			require.True(t, ok)
			err = p.Rename(tt.to)
			if tt.wantErr {
				require.True(t, goshape.HasCode(err, goshape.CodeDuplicateIdentifier), "err = %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.to, p.Identifier())
		})
	}
}

func TestRename_TurkishLocale(t *testing.T) {
	tr := goshape.LocaleIdentifiers(language.Turkish)
	el, err := goshape.EncodeOf(Turkish{}, goshape.WithIdentifierPolicy(tr))
	require.NoError(t, err)
	dotted, ok := el.Property("i")
	require.True(t, ok)

	// Under Turkish rules "I" lowers to "ı".
	err = dotted.Rename("I")
	require.True(t, goshape.HasCode(err, goshape.CodeDuplicateIdentifier))

	el, err = goshape.EncodeOf(Turkish{}, goshape.WithIdentifierPolicy(goshape.FoldedIdentifiers))
	require.NoError(t, err)
	dotted, _ = el.Property("i")
	require.NoError(t, dotted.Rename("I"))
}

func TestRename_EncodeKeysUnique(t *testing.T) {
	type mixed struct {
		Name string
		NAME string
	}
	_, err := goshape.EncodeDefault[mixed]()
	require.NoError(t, err)

	_, err = goshape.EncodeDefault[mixed](goshape.WithIdentifierPolicy(goshape.FoldedIdentifiers))
	require.True(t, goshape.HasCode(err, goshape.CodeDuplicateIdentifier))
}

package goshape

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// IdentifierPolicy decides when two property identifiers clash. Identifiers
// whose keys are equal cannot coexist in one Object.
type IdentifierPolicy interface {
	Key(ident string) string
	Name() string
}

var (
	// ExactIdentifiers compares identifiers byte for byte.
	ExactIdentifiers IdentifierPolicy = exactPolicy{}
	// FoldedIdentifiers compares identifiers after Unicode case folding, so
	// "Name" and "NAME" clash.
	FoldedIdentifiers IdentifierPolicy = foldPolicy{}
)

// LocaleIdentifiers compares identifiers after NFC normalization and the
// lower casing rules of tag. Under Turkish rules "I" and "ı" clash, "I" and
// "i" do not.
func LocaleIdentifiers(tag language.Tag) IdentifierPolicy { return localePolicy{tag: tag} }

type exactPolicy struct{}

func (exactPolicy) Key(ident string) string { return ident }
func (exactPolicy) Name() string            { return "exact" }

type foldPolicy struct{}

// Casers are stateful, so each call gets its own.
func (foldPolicy) Key(ident string) string { return cases.Fold().String(norm.NFC.String(ident)) }
func (foldPolicy) Name() string            { return "fold" }

type localePolicy struct{ tag language.Tag }

func (p localePolicy) Key(ident string) string {
	return cases.Lower(p.tag).String(norm.NFC.String(ident))
}
func (p localePolicy) Name() string { return "locale:" + p.tag.String() }

// Rename changes the identifier of p to ident.
//
// Renaming to the current identifier is a no-op. If another property of the
// same Object already uses ident under the tree's IdentifierPolicy, Rename
// fails with CodeDuplicateIdentifier and nothing changes; the issue message
// is meant to be shown to the end user as is. Otherwise the identifier is
// replaced in place and the property keeps its position.
func Rename(p Property, ident string) error {
	props := p.tree.nodes[p.owner].props
	cur := props[p.slot].ident
	if ident == cur {
		return nil
	}
	if _, dup := p.tree.findProperty(p.owner, ident, p.slot); dup {
		return fail(p.tree.pathOf(p.owner).Field(cur), CodeDuplicateIdentifier, nil, "identifier", ident)
	}
	props[p.slot].ident = ident
	return nil
}

// TryRename is Rename for UI callers: it reports success and, on failure,
// the message to display.
func TryRename(p Property, ident string) (bool, string) {
	if err := Rename(p, ident); err != nil {
		if iss, ok := AsIssues(err); ok && len(iss) > 0 {
			return false, iss[0].Message
		}
		return false, err.Error()
	}
	return true, ""
}

// Package goshape turns Go values into editable element trees and back.
//
// A tree mirrors the structure of a Go type: primitive leaves (Value),
// selections among enumeration constants (Enum), ordered items sharing one
// template (Array), and uniquely named properties (Object). Editors walk and
// modify the tree through Element and Property handles; Decode rebuilds a Go
// value from the edited tree.
//
// Design policy:
// - Types are classified once and cached by a Classifier; classification is safe for concurrent use.
// - A Tree is owned by one goroutine at a time.
// - Failures are Issues carrying a code, a JSON Pointer and a localized message.
//
// Typical usage:
//
//	el, err := goshape.EncodeOf(person)
//	name, _ := el.Property("Name")
//	err = name.Rename("FullName")
//	p, err := goshape.Decode[Person](el, goshape.WithContext(refs))
package goshape

package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "identifier" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Messages use
// {name} placeholders filled from data.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"unresolvable_element_type":   "cannot resolve a single element type for {type}",
		"default_construction":        "cannot construct a default {type}",
		"unsupported_collection_type": "{type} cannot accept added items",
		"type_mismatch":               "expected {expected}, got {got}",
		"invalid_enum_index":          "selection {index} is not a valid option of {type}",
		"missing_property":            "{type} has no property {identifier}",
		"property_set":                "cannot set property {identifier} of {type}",
		"duplicate_identifier":        "The name \"{identifier}\" is already used by another property.",
		"cyclic_type_graph":           "{type} refers to itself",
		"invalid_shape":               "{type} cannot be described: {reason}",
		"context_resolution":          "cannot resolve references",
	},
	"ja": {
		"unresolvable_element_type":   "{type} の要素型を一意に決定できません",
		"default_construction":        "{type} の既定値を生成できません",
		"unsupported_collection_type": "{type} には要素を追加できません",
		"type_mismatch":               "{expected} が必要ですが {got} でした",
		"invalid_enum_index":          "選択 {index} は {type} の有効な選択肢ではありません",
		"missing_property":            "{type} にプロパティ {identifier} がありません",
		"property_set":                "{type} のプロパティ {identifier} を設定できません",
		"duplicate_identifier":        "名前「{identifier}」は他のプロパティで使用されています。",
		"cyclic_type_graph":           "{type} が自身を参照しています",
		"invalid_shape":               "{type} を表現できません: {reason}",
		"context_resolution":          "参照を解決できません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return fill(msg, data)
}

// fill replaces the {key} placeholders present in data.
func fill(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}

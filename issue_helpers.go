package goshape

import (
	"fmt"

	"github.com/reoring/goshape/i18n"
)

// fail builds a single-issue error at p whose message comes from the current
// translator.
func fail(p PathRef, code string, cause error, kv ...any) error {
	it := p.Issue(code, "", kv...)
	it.Message = i18n.T(code, stringParams(it.Params))
	it.Cause = cause
	return Issues{it}
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}

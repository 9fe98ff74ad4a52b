package goshape

import (
	"reflect"

	"github.com/go-kit/log"
)

// Option configures encoding and decoding.
type Option func(*options)

type options struct {
	classifier *Classifier
	policy     IdentifierPolicy
	resolvers  map[reflect.Type]Resolver
	logger     log.Logger

	context    any
	hasContext bool
}

func buildOptions(opts []Option) options {
	o := options{
		classifier: DefaultClassifier,
		policy:     ExactIdentifiers,
		logger:     log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClassifier selects the Classifier used for shapes and registrations.
func WithClassifier(c *Classifier) Option {
	return func(o *options) {
		if c != nil {
			o.classifier = c
		}
	}
}

// WithIdentifierPolicy selects how property identifiers are compared in
// encoded trees.
func WithIdentifierPolicy(p IdentifierPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

// WithResolver attaches r to every element encoded from type t.
func WithResolver(t reflect.Type, r Resolver) Option {
	return func(o *options) {
		if o.resolvers == nil {
			o.resolvers = make(map[reflect.Type]Resolver)
		}
		o.resolvers[t] = r
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithContext supplies external data to resolve cross-references before a
// tree is decoded. See Element.ApplyContext.
func WithContext(c any) Option {
	return func(o *options) {
		o.context = c
		o.hasContext = true
	}
}

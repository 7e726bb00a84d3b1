package main

import (
	"github.com/pontaoski/tempo/errors"
	"github.com/pontaoski/tempo/syntax"
)

// entryName is the reserved binding compiled into the exported entry point.
const entryName = "main"

type entry struct {
	Binding   Assignment
	Parameter Identifier
	Body      Expression
}

// resolveEntry finds the single top-level binding named main and checks that
// it is a one-parameter function. A second binding named main is an error
// rather than being shadowed or ignored.
func resolveEntry(src *syntax.Source, p *Program) (entry, error) {
	var found *Assignment
	for i := range p.Assignments {
		a := &p.Assignments[i]
		if a.Identifier.Name != entryName {
			continue
		}
		if found != nil {
			return entry{}, errors.DuplicateEntry{
				Name:     entryName,
				First:    src.Locate(found.Identifier.Span),
				Location: src.Locate(a.Identifier.Span),
			}
		}
		found = a
	}

	if found == nil {
		return entry{}, errors.MissingEntry{Name: entryName}
	}

	def, ok := found.Expression.(FunctionDefinition)
	if !ok {
		return entry{}, errors.EntryNotFunction{
			Name:     entryName,
			Got:      kindOf(found.Expression),
			Location: src.Locate(found.Span),
		}
	}

	if len(def.Parameters) != 1 {
		return entry{}, errors.WrongParameterCount{
			Name:     entryName,
			Count:    len(def.Parameters),
			Location: src.Locate(def.Span),
		}
	}

	return entry{
		Binding:   *found,
		Parameter: def.Parameters[0],
		Body:      def.Body,
	}, nil
}

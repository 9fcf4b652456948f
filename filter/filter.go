// Package filter evaluates expr-lang expressions against tour listing
// records, so users can narrow a page of results client-side:
//
//	HasImage && Contains(Title, "박물관")
//	AreaCode == "1" && ContentTypeID == "39"
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/haneulk/kortour/tourapi"
)

// Env is the expression environment built from one listing record.
type Env struct {
	Title         string
	Addr          string
	AreaCode      string
	SigunguCode   string
	ContentTypeID string
	Cat1          string
	Cat2          string
	Cat3          string
	Tel           string
	HasImage      bool

	// Contains is case-insensitive substring matching, the most common
	// operation in filter expressions.
	Contains func(s, substr string) bool
}

// Filter is a compiled expression.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into a reusable filter.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(Env{}),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one record.
func (f *Filter) Match(item tourapi.TourItem) (bool, error) {
	result, err := expr.Run(f.program, envFor(item))
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed: %w", err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter did not evaluate to a boolean")
	}
	return matched, nil
}

// Apply returns the records matching the filter, order preserved.
func (f *Filter) Apply(items []tourapi.TourItem) ([]tourapi.TourItem, error) {
	var matched []tourapi.TourItem
	for _, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func envFor(item tourapi.TourItem) Env {
	return Env{
		Title:         item.Title,
		Addr:          strings.TrimSpace(item.Addr1 + " " + item.Addr2),
		AreaCode:      item.AreaCode,
		SigunguCode:   item.SigunguCode,
		ContentTypeID: item.ContentTypeID,
		Cat1:          item.Cat1,
		Cat2:          item.Cat2,
		Cat3:          item.Cat3,
		Tel:           item.Tel,
		HasImage:      item.HasImage(),
		Contains: func(s, substr string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
		},
	}
}

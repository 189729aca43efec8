// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fuzzy

import "fmt"

// Generator is the handle of a dimension registered in a Context session.
// Its value is selected anew in every trial.
//
// A Generator is also a Value and can be used to configure the bounds of
// cases declared later in the same scenario.
type Generator[T any] struct {
	ctx *Context
	id  DimensionID
}

// Of registers the given case as the next dimension of the active session of
// ctx, or re-resolves it in later trials, and selects its value for the
// current trial. Scenarios must declare their dimensions in the same order in
// every trial.
func Of[T any](ctx *Context, c Case[T]) (*Generator[T], error) {
	if c == nil {
		return nil, ctx.fail(fmt.Errorf("%w, nil case", ErrInvalidArgument))
	}
	pos, err := ctx.declare(c.Dependencies())
	if err != nil {
		return nil, err
	}

	key := ctx.cacheKey(pos)
	var subcases []Subcase[T]
	if cached, found := ctx.cache.Get(key); found {
		if subcases, found = cached.([]Subcase[T]); !found {
			return nil, ctx.fail(fmt.Errorf("%w, dimension %d changed its type to %T", ErrScenarioDiverged, pos, *new(T)))
		}
	} else {
		subcases, err = c.Subcases()
		if err != nil {
			return nil, ctx.fail(fmt.Errorf("dimension %d: %w", pos, err))
		}
		if len(subcases) == 0 {
			return nil, ctx.fail(fmt.Errorf("%w, dimension %d has no subcases", ErrInvalidArgument, pos))
		}
		ctx.cache.Add(key, subcases)
	}

	names := make([]string, len(subcases))
	for i, subcase := range subcases {
		names[i] = subcase.Name()
	}
	chosen := ctx.choose(pos, names)

	value, err := subcases[chosen].Generate(ctx.random(pos))
	if err != nil {
		return nil, ctx.fail(fmt.Errorf("dimension %d, subcase %q: %w", pos, names[chosen], err))
	}
	ctx.bind(pos, names[chosen], value)
	return &Generator[T]{ctx: ctx, id: DimensionID(pos)}, nil
}

func (g *Generator[T]) ID() DimensionID {
	return g.id
}

// Get returns the value of the current trial, or the zero value if the
// dimension is not bound in the current trial.
func (g *Generator[T]) Get() T {
	res, _ := g.Resolve()
	return res
}

// Resolve returns the value of the current trial. It fails with
// ErrUnresolvedDependency if the dimension is not bound in the current trial.
func (g *Generator[T]) Resolve() (T, error) {
	var zero T
	dim, err := g.ctx.bound(g.id)
	if err != nil {
		return zero, err
	}
	res, ok := dim.value.(T)
	if !ok {
		return zero, fmt.Errorf("%w, dimension %d holds a %T", ErrScenarioDiverged, g.id, dim.value)
	}
	return res, nil
}

// Subcase returns the name of the subcase selected in the current trial.
func (g *Generator[T]) Subcase() string {
	dim, err := g.ctx.bound(g.id)
	if err != nil {
		return ""
	}
	return dim.subcase
}

// Subcases presents the generator as a case with a single subcase producing
// the current value.
func (g *Generator[T]) Subcases() ([]Subcase[T], error) {
	value, err := g.Resolve()
	if err != nil {
		return nil, err
	}
	return []Subcase[T]{constant(fmt.Sprintf("$%d", g.id), value)}, nil
}

func (g *Generator[T]) Dependencies() []DimensionID {
	return []DimensionID{g.id}
}

func (g *Generator[T]) String() string {
	return fmt.Sprintf("$%d", g.id)
}

func (*Generator[T]) private() {}

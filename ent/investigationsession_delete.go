// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/ent/predicate"
)

// InvestigationSessionDelete is the builder for deleting a InvestigationSession entity.
type InvestigationSessionDelete struct {
	config
	hooks    []Hook
	mutation *InvestigationSessionMutation
}

// Where appends a list predicates to the InvestigationSessionDelete builder.
func (_d *InvestigationSessionDelete) Where(ps ...predicate.InvestigationSession) *InvestigationSessionDelete {
	_d.mutation.Where(ps...)
	return _d
}

// Exec executes the deletion query and returns how many vertices were deleted.
func (_d *InvestigationSessionDelete) Exec(ctx context.Context) (int, error) {
	return withHooks(ctx, _d.sqlExec, _d.mutation, _d.hooks)
}

// ExecX is like Exec, but panics if an error occurs.
func (_d *InvestigationSessionDelete) ExecX(ctx context.Context) int {
	n, err := _d.Exec(ctx)
	if err != nil {
		panic(err)
	}
	return n
}

func (_d *InvestigationSessionDelete) sqlExec(ctx context.Context) (int, error) {
	_spec := sqlgraph.NewDeleteSpec(investigationsession.Table, sqlgraph.NewFieldSpec(investigationsession.FieldID, field.TypeString))
	if ps := _d.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	affected, err := sqlgraph.DeleteNodes(ctx, _d.driver, _spec)
	if err != nil && sqlgraph.IsConstraintError(err) {
		err = &ConstraintError{msg: err.Error(), wrap: err}
	}
	_d.mutation.done = true
	return affected, err
}

// InvestigationSessionDeleteOne is the builder for deleting a single InvestigationSession entity.
type InvestigationSessionDeleteOne struct {
	_d *InvestigationSessionDelete
}

// Where appends a list predicates to the InvestigationSessionDelete builder.
func (_d *InvestigationSessionDeleteOne) Where(ps ...predicate.InvestigationSession) *InvestigationSessionDeleteOne {
	_d._d.mutation.Where(ps...)
	return _d
}

// Exec executes the deletion query.
func (_d *InvestigationSessionDeleteOne) Exec(ctx context.Context) error {
	n, err := _d._d.Exec(ctx)
	switch {
	case err != nil:
		return err
	case n == 0:
		return &NotFoundError{investigationsession.Label}
	default:
		return nil
	}
}

// ExecX is like Exec, but panics if an error occurs.
func (_d *InvestigationSessionDeleteOne) ExecX(ctx context.Context) {
	if err := _d.Exec(ctx); err != nil {
		panic(err)
	}
}

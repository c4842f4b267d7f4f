// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/ent/predicate"
	"github.com/sentientmobilefurniture/faultline/ent/sessionevent"
)

// InvestigationSessionUpdate is the builder for updating InvestigationSession entities.
type InvestigationSessionUpdate struct {
	config
	hooks    []Hook
	mutation *InvestigationSessionMutation
}

// Where appends a list predicates to the InvestigationSessionUpdate builder.
func (_u *InvestigationSessionUpdate) Where(ps ...predicate.InvestigationSession) *InvestigationSessionUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetStatus sets the "status" field.
func (_u *InvestigationSessionUpdate) SetStatus(v investigationsession.Status) *InvestigationSessionUpdate {
	_u.mutation.SetStatus(v)
	return _u
}

// SetNillableStatus sets the "status" field if the given value is not nil.
func (_u *InvestigationSessionUpdate) SetNillableStatus(v *investigationsession.Status) *InvestigationSessionUpdate {
	if v != nil {
		_u.SetStatus(*v)
	}
	return _u
}

// SetAlertText sets the "alert_text" field.
func (_u *InvestigationSessionUpdate) SetAlertText(v string) *InvestigationSessionUpdate {
	_u.mutation.SetAlertText(v)
	return _u
}

// SetNillableAlertText sets the "alert_text" field if the given value is not nil.
func (_u *InvestigationSessionUpdate) SetNillableAlertText(v *string) *InvestigationSessionUpdate {
	if v != nil {
		_u.SetAlertText(*v)
	}
	return _u
}

// SetPendingInput sets the "pending_input" field.
func (_u *InvestigationSessionUpdate) SetPendingInput(v string) *InvestigationSessionUpdate {
	_u.mutation.SetPendingInput(v)
	return _u
}

// SetNillablePendingInput sets the "pending_input" field if the given value is not nil.
func (_u *InvestigationSessionUpdate) SetNillablePendingInput(v *string) *InvestigationSessionUpdate {
	if v != nil {
		_u.SetPendingInput(*v)
	}
	return _u
}

// ClearPendingInput clears the value of the "pending_input" field.
func (_u *InvestigationSessionUpdate) ClearPendingInput() *InvestigationSessionUpdate {
	_u.mutation.ClearPendingInput()
	return _u
}

// SetThreadID sets the "thread_id" field.
func (_u *InvestigationSessionUpdate) SetThreadID(v string) *InvestigationSessionUpdate {
	_u.mutation.SetThreadID(v)
	return _u
}

// SetNillableThreadID sets the "thread_id" field if the given value is not nil.
func (_u *InvestigationSessionUpdate) SetNillableThreadID(v *string) *InvestigationSessionUpdate {
	if v != nil {
		_u.SetThreadID(*v)
	}
	return _u
}

// ClearThreadID clears the value of the "thread_id" field.
func (_u *InvestigationSessionUpdate) ClearThreadID() *InvestigationSessionUpdate {
	_u.mutation.ClearThreadID()
	return _u
}

// SetSteps sets the "steps" field.
func (_u *InvestigationSessionUpdate) SetSteps(v []map[string]interface{}) *InvestigationSessionUpdate {
	_u.mutation.SetSteps(v)
	return _u
}

// AppendSteps appends value to the "steps" field.
func (_u *InvestigationSessionUpdate) AppendSteps(v []map[string]interface{}) *InvestigationSessionUpdate {
	_u.mutation.AppendSteps(v)
	return _u
}

// ClearSteps clears the value of the "steps" field.
func (_u *InvestigationSessionUpdate) ClearSteps() *InvestigationSessionUpdate {
	_u.mutation.ClearSteps()
	return _u
}

// SetDiagnosis sets the "diagnosis" field.
func (_u *InvestigationSessionUpdate) SetDiagnosis(v string) *InvestigationSessionUpdate {
	_u.mutation.SetDiagnosis(v)
	return _u
}

// SetNillableDiagnosis sets the "diagnosis" field if the given value is not nil.
func (_u *InvestigationSessionUpdate) SetNillableDiagnosis(v *string) *InvestigationSessionUpdate {
	if v != nil {
		_u.SetDiagnosis(*v)
	}
	return _u
}

// ClearDiagnosis clears the value of the "diagnosis" field.
func (_u *InvestigationSessionUpdate) ClearDiagnosis() *InvestigationSessionUpdate {
	_u.mutation.ClearDiagnosis()
	return _u
}

// SetRunMeta sets the "run_meta" field.
func (_u *InvestigationSessionUpdate) SetRunMeta(v map[string]interface{}) *InvestigationSessionUpdate {
	_u.mutation.SetRunMeta(v)
	return _u
}

// ClearRunMeta clears the value of the "run_meta" field.
func (_u *InvestigationSessionUpdate) ClearRunMeta() *InvestigationSessionUpdate {
	_u.mutation.ClearRunMeta()
	return _u
}

// SetErrorDetail sets the "error_detail" field.
func (_u *InvestigationSessionUpdate) SetErrorDetail(v string) *InvestigationSessionUpdate {
	_u.mutation.SetErrorDetail(v)
	return _u
}

// SetNillableErrorDetail sets the "error_detail" field if the given value is not nil.
func (_u *InvestigationSessionUpdate) SetNillableErrorDetail(v *string) *InvestigationSessionUpdate {
	if v != nil {
		_u.SetErrorDetail(*v)
	}
	return _u
}

// ClearErrorDetail clears the value of the "error_detail" field.
func (_u *InvestigationSessionUpdate) ClearErrorDetail() *InvestigationSessionUpdate {
	_u.mutation.ClearErrorDetail()
	return _u
}

// SetPodID sets the "pod_id" field.
func (_u *InvestigationSessionUpdate) SetPodID(v string) *InvestigationSessionUpdate {
	_u.mutation.SetPodID(v)
	return _u
}

// SetNillablePodID sets the "pod_id" field if the given value is not nil.
func (_u *InvestigationSessionUpdate) SetNillablePodID(v *string) *InvestigationSessionUpdate {
	if v != nil {
		_u.SetPodID(*v)
	}
	return _u
}

// ClearPodID clears the value of the "pod_id" field.
func (_u *InvestigationSessionUpdate) ClearPodID() *InvestigationSessionUpdate {
	_u.mutation.ClearPodID()
	return _u
}

// SetLastInteractionAt sets the "last_interaction_at" field.
func (_u *InvestigationSessionUpdate) SetLastInteractionAt(v time.Time) *InvestigationSessionUpdate {
	_u.mutation.SetLastInteractionAt(v)
	return _u
}

// SetNillableLastInteractionAt sets the "last_interaction_at" field if the given value is not nil.
func (_u *InvestigationSessionUpdate) SetNillableLastInteractionAt(v *time.Time) *InvestigationSessionUpdate {
	if v != nil {
		_u.SetLastInteractionAt(*v)
	}
	return _u
}

// ClearLastInteractionAt clears the value of the "last_interaction_at" field.
func (_u *InvestigationSessionUpdate) ClearLastInteractionAt() *InvestigationSessionUpdate {
	_u.mutation.ClearLastInteractionAt()
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *InvestigationSessionUpdate) SetUpdatedAt(v time.Time) *InvestigationSessionUpdate {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// AddEventIDs adds the "events" edge to the SessionEvent entity by IDs.
func (_u *InvestigationSessionUpdate) AddEventIDs(ids ...int) *InvestigationSessionUpdate {
	_u.mutation.AddEventIDs(ids...)
	return _u
}

// AddEvents adds the "events" edges to the SessionEvent entity.
func (_u *InvestigationSessionUpdate) AddEvents(v ...*SessionEvent) *InvestigationSessionUpdate {
	ids := make([]int, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.AddEventIDs(ids...)
}

// Mutation returns the InvestigationSessionMutation object of the builder.
func (_u *InvestigationSessionUpdate) Mutation() *InvestigationSessionMutation {
	return _u.mutation
}

// ClearEvents clears all "events" edges to the SessionEvent entity.
func (_u *InvestigationSessionUpdate) ClearEvents() *InvestigationSessionUpdate {
	_u.mutation.ClearEvents()
	return _u
}

// RemoveEventIDs removes the "events" edge to SessionEvent entities by IDs.
func (_u *InvestigationSessionUpdate) RemoveEventIDs(ids ...int) *InvestigationSessionUpdate {
	_u.mutation.RemoveEventIDs(ids...)
	return _u
}

// RemoveEvents removes "events" edges to SessionEvent entities.
func (_u *InvestigationSessionUpdate) RemoveEvents(v ...*SessionEvent) *InvestigationSessionUpdate {
	ids := make([]int, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.RemoveEventIDs(ids...)
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *InvestigationSessionUpdate) Save(ctx context.Context) (int, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *InvestigationSessionUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *InvestigationSessionUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *InvestigationSessionUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *InvestigationSessionUpdate) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := investigationsession.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *InvestigationSessionUpdate) check() error {
	if v, ok := _u.mutation.Status(); ok {
		if err := investigationsession.StatusValidator(v); err != nil {
			return &ValidationError{Name: "status", err: fmt.Errorf(`ent: validator failed for field "InvestigationSession.status": %w`, err)}
		}
	}
	return nil
}

func (_u *InvestigationSessionUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(investigationsession.Table, investigationsession.Columns, sqlgraph.NewFieldSpec(investigationsession.FieldID, field.TypeString))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Status(); ok {
		_spec.SetField(investigationsession.FieldStatus, field.TypeEnum, value)
	}
	if value, ok := _u.mutation.AlertText(); ok {
		_spec.SetField(investigationsession.FieldAlertText, field.TypeString, value)
	}
	if value, ok := _u.mutation.PendingInput(); ok {
		_spec.SetField(investigationsession.FieldPendingInput, field.TypeString, value)
	}
	if _u.mutation.PendingInputCleared() {
		_spec.ClearField(investigationsession.FieldPendingInput, field.TypeString)
	}
	if value, ok := _u.mutation.ThreadID(); ok {
		_spec.SetField(investigationsession.FieldThreadID, field.TypeString, value)
	}
	if _u.mutation.ThreadIDCleared() {
		_spec.ClearField(investigationsession.FieldThreadID, field.TypeString)
	}
	if value, ok := _u.mutation.Steps(); ok {
		_spec.SetField(investigationsession.FieldSteps, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedSteps(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, investigationsession.FieldSteps, value)
		})
	}
	if _u.mutation.StepsCleared() {
		_spec.ClearField(investigationsession.FieldSteps, field.TypeJSON)
	}
	if value, ok := _u.mutation.Diagnosis(); ok {
		_spec.SetField(investigationsession.FieldDiagnosis, field.TypeString, value)
	}
	if _u.mutation.DiagnosisCleared() {
		_spec.ClearField(investigationsession.FieldDiagnosis, field.TypeString)
	}
	if value, ok := _u.mutation.RunMeta(); ok {
		_spec.SetField(investigationsession.FieldRunMeta, field.TypeJSON, value)
	}
	if _u.mutation.RunMetaCleared() {
		_spec.ClearField(investigationsession.FieldRunMeta, field.TypeJSON)
	}
	if value, ok := _u.mutation.ErrorDetail(); ok {
		_spec.SetField(investigationsession.FieldErrorDetail, field.TypeString, value)
	}
	if _u.mutation.ErrorDetailCleared() {
		_spec.ClearField(investigationsession.FieldErrorDetail, field.TypeString)
	}
	if value, ok := _u.mutation.PodID(); ok {
		_spec.SetField(investigationsession.FieldPodID, field.TypeString, value)
	}
	if _u.mutation.PodIDCleared() {
		_spec.ClearField(investigationsession.FieldPodID, field.TypeString)
	}
	if value, ok := _u.mutation.LastInteractionAt(); ok {
		_spec.SetField(investigationsession.FieldLastInteractionAt, field.TypeTime, value)
	}
	if _u.mutation.LastInteractionAtCleared() {
		_spec.ClearField(investigationsession.FieldLastInteractionAt, field.TypeTime)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(investigationsession.FieldUpdatedAt, field.TypeTime, value)
	}
	if _u.mutation.EventsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   investigationsession.EventsTable,
			Columns: []string{investigationsession.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.RemovedEventsIDs(); len(nodes) > 0 && !_u.mutation.EventsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   investigationsession.EventsTable,
			Columns: []string{investigationsession.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.EventsIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   investigationsession.EventsTable,
			Columns: []string{investigationsession.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{investigationsession.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// InvestigationSessionUpdateOne is the builder for updating a single InvestigationSession entity.
type InvestigationSessionUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *InvestigationSessionMutation
}

// SetStatus sets the "status" field.
func (_u *InvestigationSessionUpdateOne) SetStatus(v investigationsession.Status) *InvestigationSessionUpdateOne {
	_u.mutation.SetStatus(v)
	return _u
}

// SetNillableStatus sets the "status" field if the given value is not nil.
func (_u *InvestigationSessionUpdateOne) SetNillableStatus(v *investigationsession.Status) *InvestigationSessionUpdateOne {
	if v != nil {
		_u.SetStatus(*v)
	}
	return _u
}

// SetAlertText sets the "alert_text" field.
func (_u *InvestigationSessionUpdateOne) SetAlertText(v string) *InvestigationSessionUpdateOne {
	_u.mutation.SetAlertText(v)
	return _u
}

// SetNillableAlertText sets the "alert_text" field if the given value is not nil.
func (_u *InvestigationSessionUpdateOne) SetNillableAlertText(v *string) *InvestigationSessionUpdateOne {
	if v != nil {
		_u.SetAlertText(*v)
	}
	return _u
}

// SetPendingInput sets the "pending_input" field.
func (_u *InvestigationSessionUpdateOne) SetPendingInput(v string) *InvestigationSessionUpdateOne {
	_u.mutation.SetPendingInput(v)
	return _u
}

// SetNillablePendingInput sets the "pending_input" field if the given value is not nil.
func (_u *InvestigationSessionUpdateOne) SetNillablePendingInput(v *string) *InvestigationSessionUpdateOne {
	if v != nil {
		_u.SetPendingInput(*v)
	}
	return _u
}

// ClearPendingInput clears the value of the "pending_input" field.
func (_u *InvestigationSessionUpdateOne) ClearPendingInput() *InvestigationSessionUpdateOne {
	_u.mutation.ClearPendingInput()
	return _u
}

// SetThreadID sets the "thread_id" field.
func (_u *InvestigationSessionUpdateOne) SetThreadID(v string) *InvestigationSessionUpdateOne {
	_u.mutation.SetThreadID(v)
	return _u
}

// SetNillableThreadID sets the "thread_id" field if the given value is not nil.
func (_u *InvestigationSessionUpdateOne) SetNillableThreadID(v *string) *InvestigationSessionUpdateOne {
	if v != nil {
		_u.SetThreadID(*v)
	}
	return _u
}

// ClearThreadID clears the value of the "thread_id" field.
func (_u *InvestigationSessionUpdateOne) ClearThreadID() *InvestigationSessionUpdateOne {
	_u.mutation.ClearThreadID()
	return _u
}

// SetSteps sets the "steps" field.
func (_u *InvestigationSessionUpdateOne) SetSteps(v []map[string]interface{}) *InvestigationSessionUpdateOne {
	_u.mutation.SetSteps(v)
	return _u
}

// AppendSteps appends value to the "steps" field.
func (_u *InvestigationSessionUpdateOne) AppendSteps(v []map[string]interface{}) *InvestigationSessionUpdateOne {
	_u.mutation.AppendSteps(v)
	return _u
}

// ClearSteps clears the value of the "steps" field.
func (_u *InvestigationSessionUpdateOne) ClearSteps() *InvestigationSessionUpdateOne {
	_u.mutation.ClearSteps()
	return _u
}

// SetDiagnosis sets the "diagnosis" field.
func (_u *InvestigationSessionUpdateOne) SetDiagnosis(v string) *InvestigationSessionUpdateOne {
	_u.mutation.SetDiagnosis(v)
	return _u
}

// SetNillableDiagnosis sets the "diagnosis" field if the given value is not nil.
func (_u *InvestigationSessionUpdateOne) SetNillableDiagnosis(v *string) *InvestigationSessionUpdateOne {
	if v != nil {
		_u.SetDiagnosis(*v)
	}
	return _u
}

// ClearDiagnosis clears the value of the "diagnosis" field.
func (_u *InvestigationSessionUpdateOne) ClearDiagnosis() *InvestigationSessionUpdateOne {
	_u.mutation.ClearDiagnosis()
	return _u
}

// SetRunMeta sets the "run_meta" field.
func (_u *InvestigationSessionUpdateOne) SetRunMeta(v map[string]interface{}) *InvestigationSessionUpdateOne {
	_u.mutation.SetRunMeta(v)
	return _u
}

// ClearRunMeta clears the value of the "run_meta" field.
func (_u *InvestigationSessionUpdateOne) ClearRunMeta() *InvestigationSessionUpdateOne {
	_u.mutation.ClearRunMeta()
	return _u
}

// SetErrorDetail sets the "error_detail" field.
func (_u *InvestigationSessionUpdateOne) SetErrorDetail(v string) *InvestigationSessionUpdateOne {
	_u.mutation.SetErrorDetail(v)
	return _u
}

// SetNillableErrorDetail sets the "error_detail" field if the given value is not nil.
func (_u *InvestigationSessionUpdateOne) SetNillableErrorDetail(v *string) *InvestigationSessionUpdateOne {
	if v != nil {
		_u.SetErrorDetail(*v)
	}
	return _u
}

// ClearErrorDetail clears the value of the "error_detail" field.
func (_u *InvestigationSessionUpdateOne) ClearErrorDetail() *InvestigationSessionUpdateOne {
	_u.mutation.ClearErrorDetail()
	return _u
}

// SetPodID sets the "pod_id" field.
func (_u *InvestigationSessionUpdateOne) SetPodID(v string) *InvestigationSessionUpdateOne {
	_u.mutation.SetPodID(v)
	return _u
}

// SetNillablePodID sets the "pod_id" field if the given value is not nil.
func (_u *InvestigationSessionUpdateOne) SetNillablePodID(v *string) *InvestigationSessionUpdateOne {
	if v != nil {
		_u.SetPodID(*v)
	}
	return _u
}

// ClearPodID clears the value of the "pod_id" field.
func (_u *InvestigationSessionUpdateOne) ClearPodID() *InvestigationSessionUpdateOne {
	_u.mutation.ClearPodID()
	return _u
}

// SetLastInteractionAt sets the "last_interaction_at" field.
func (_u *InvestigationSessionUpdateOne) SetLastInteractionAt(v time.Time) *InvestigationSessionUpdateOne {
	_u.mutation.SetLastInteractionAt(v)
	return _u
}

// SetNillableLastInteractionAt sets the "last_interaction_at" field if the given value is not nil.
func (_u *InvestigationSessionUpdateOne) SetNillableLastInteractionAt(v *time.Time) *InvestigationSessionUpdateOne {
	if v != nil {
		_u.SetLastInteractionAt(*v)
	}
	return _u
}

// ClearLastInteractionAt clears the value of the "last_interaction_at" field.
func (_u *InvestigationSessionUpdateOne) ClearLastInteractionAt() *InvestigationSessionUpdateOne {
	_u.mutation.ClearLastInteractionAt()
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *InvestigationSessionUpdateOne) SetUpdatedAt(v time.Time) *InvestigationSessionUpdateOne {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// AddEventIDs adds the "events" edge to the SessionEvent entity by IDs.
func (_u *InvestigationSessionUpdateOne) AddEventIDs(ids ...int) *InvestigationSessionUpdateOne {
	_u.mutation.AddEventIDs(ids...)
	return _u
}

// AddEvents adds the "events" edges to the SessionEvent entity.
func (_u *InvestigationSessionUpdateOne) AddEvents(v ...*SessionEvent) *InvestigationSessionUpdateOne {
	ids := make([]int, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.AddEventIDs(ids...)
}

// Mutation returns the InvestigationSessionMutation object of the builder.
func (_u *InvestigationSessionUpdateOne) Mutation() *InvestigationSessionMutation {
	return _u.mutation
}

// ClearEvents clears all "events" edges to the SessionEvent entity.
func (_u *InvestigationSessionUpdateOne) ClearEvents() *InvestigationSessionUpdateOne {
	_u.mutation.ClearEvents()
	return _u
}

// RemoveEventIDs removes the "events" edge to SessionEvent entities by IDs.
func (_u *InvestigationSessionUpdateOne) RemoveEventIDs(ids ...int) *InvestigationSessionUpdateOne {
	_u.mutation.RemoveEventIDs(ids...)
	return _u
}

// RemoveEvents removes "events" edges to SessionEvent entities.
func (_u *InvestigationSessionUpdateOne) RemoveEvents(v ...*SessionEvent) *InvestigationSessionUpdateOne {
	ids := make([]int, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.RemoveEventIDs(ids...)
}

// Where appends a list predicates to the InvestigationSessionUpdate builder.
func (_u *InvestigationSessionUpdateOne) Where(ps ...predicate.InvestigationSession) *InvestigationSessionUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *InvestigationSessionUpdateOne) Select(field string, fields ...string) *InvestigationSessionUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated InvestigationSession entity.
func (_u *InvestigationSessionUpdateOne) Save(ctx context.Context) (*InvestigationSession, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *InvestigationSessionUpdateOne) SaveX(ctx context.Context) *InvestigationSession {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *InvestigationSessionUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *InvestigationSessionUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *InvestigationSessionUpdateOne) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := investigationsession.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *InvestigationSessionUpdateOne) check() error {
	if v, ok := _u.mutation.Status(); ok {
		if err := investigationsession.StatusValidator(v); err != nil {
			return &ValidationError{Name: "status", err: fmt.Errorf(`ent: validator failed for field "InvestigationSession.status": %w`, err)}
		}
	}
	return nil
}

func (_u *InvestigationSessionUpdateOne) sqlSave(ctx context.Context) (_node *InvestigationSession, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(investigationsession.Table, investigationsession.Columns, sqlgraph.NewFieldSpec(investigationsession.FieldID, field.TypeString))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "InvestigationSession.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, investigationsession.FieldID)
		for _, f := range fields {
			if !investigationsession.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != investigationsession.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.Status(); ok {
		_spec.SetField(investigationsession.FieldStatus, field.TypeEnum, value)
	}
	if value, ok := _u.mutation.AlertText(); ok {
		_spec.SetField(investigationsession.FieldAlertText, field.TypeString, value)
	}
	if value, ok := _u.mutation.PendingInput(); ok {
		_spec.SetField(investigationsession.FieldPendingInput, field.TypeString, value)
	}
	if _u.mutation.PendingInputCleared() {
		_spec.ClearField(investigationsession.FieldPendingInput, field.TypeString)
	}
	if value, ok := _u.mutation.ThreadID(); ok {
		_spec.SetField(investigationsession.FieldThreadID, field.TypeString, value)
	}
	if _u.mutation.ThreadIDCleared() {
		_spec.ClearField(investigationsession.FieldThreadID, field.TypeString)
	}
	if value, ok := _u.mutation.Steps(); ok {
		_spec.SetField(investigationsession.FieldSteps, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedSteps(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, investigationsession.FieldSteps, value)
		})
	}
	if _u.mutation.StepsCleared() {
		_spec.ClearField(investigationsession.FieldSteps, field.TypeJSON)
	}
	if value, ok := _u.mutation.Diagnosis(); ok {
		_spec.SetField(investigationsession.FieldDiagnosis, field.TypeString, value)
	}
	if _u.mutation.DiagnosisCleared() {
		_spec.ClearField(investigationsession.FieldDiagnosis, field.TypeString)
	}
	if value, ok := _u.mutation.RunMeta(); ok {
		_spec.SetField(investigationsession.FieldRunMeta, field.TypeJSON, value)
	}
	if _u.mutation.RunMetaCleared() {
		_spec.ClearField(investigationsession.FieldRunMeta, field.TypeJSON)
	}
	if value, ok := _u.mutation.ErrorDetail(); ok {
		_spec.SetField(investigationsession.FieldErrorDetail, field.TypeString, value)
	}
	if _u.mutation.ErrorDetailCleared() {
		_spec.ClearField(investigationsession.FieldErrorDetail, field.TypeString)
	}
	if value, ok := _u.mutation.PodID(); ok {
		_spec.SetField(investigationsession.FieldPodID, field.TypeString, value)
	}
	if _u.mutation.PodIDCleared() {
		_spec.ClearField(investigationsession.FieldPodID, field.TypeString)
	}
	if value, ok := _u.mutation.LastInteractionAt(); ok {
		_spec.SetField(investigationsession.FieldLastInteractionAt, field.TypeTime, value)
	}
	if _u.mutation.LastInteractionAtCleared() {
		_spec.ClearField(investigationsession.FieldLastInteractionAt, field.TypeTime)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(investigationsession.FieldUpdatedAt, field.TypeTime, value)
	}
	if _u.mutation.EventsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   investigationsession.EventsTable,
			Columns: []string{investigationsession.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.RemovedEventsIDs(); len(nodes) > 0 && !_u.mutation.EventsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   investigationsession.EventsTable,
			Columns: []string{investigationsession.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.EventsIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   investigationsession.EventsTable,
			Columns: []string{investigationsession.EventsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(sessionevent.FieldID, field.TypeInt),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	_node = &InvestigationSession{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{investigationsession.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}

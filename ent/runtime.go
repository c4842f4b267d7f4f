// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/sentientmobilefurniture/faultline/ent/investigationsession"
	"github.com/sentientmobilefurniture/faultline/ent/schema"
	"github.com/sentientmobilefurniture/faultline/ent/sessionevent"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	investigationsessionFields := schema.InvestigationSession{}.Fields()
	_ = investigationsessionFields
	// investigationsessionDescCreatedAt is the schema descriptor for created_at field.
	investigationsessionDescCreatedAt := investigationsessionFields[12].Descriptor()
	// investigationsession.DefaultCreatedAt holds the default value on creation for the created_at field.
	investigationsession.DefaultCreatedAt = investigationsessionDescCreatedAt.Default.(func() time.Time)
	// investigationsessionDescUpdatedAt is the schema descriptor for updated_at field.
	investigationsessionDescUpdatedAt := investigationsessionFields[13].Descriptor()
	// investigationsession.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	investigationsession.DefaultUpdatedAt = investigationsessionDescUpdatedAt.Default.(func() time.Time)
	// investigationsession.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	investigationsession.UpdateDefaultUpdatedAt = investigationsessionDescUpdatedAt.UpdateDefault.(func() time.Time)
	sessioneventFields := schema.SessionEvent{}.Fields()
	_ = sessioneventFields
	// sessioneventDescCreatedAt is the schema descriptor for created_at field.
	sessioneventDescCreatedAt := sessioneventFields[4].Descriptor()
	// sessionevent.DefaultCreatedAt holds the default value on creation for the created_at field.
	sessionevent.DefaultCreatedAt = sessioneventDescCreatedAt.Default.(func() time.Time)
}

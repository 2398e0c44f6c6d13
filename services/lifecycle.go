package services

import (
	"fmt"

	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/apperror"
)

// CheckTransition validates a status change against the entity type's
// transition table. Unknown statuses and untabulated transitions fail with
// BadRequest; terminal statuses permit nothing.
func CheckTransition(entity model.EntityType, from, to string) error {
	table, ok := model.StatusTransitions[entity]
	if !ok {
		return apperror.BadRequest(fmt.Sprintf("No status table for entity type %q", entity))
	}

	if !model.KnownStatus(entity, to) {
		return apperror.BadRequest("Invalid status value")
	}

	allowed, ok := table[from]
	if !ok {
		return apperror.BadRequest(fmt.Sprintf("Cannot change status from %q", from))
	}

	for _, next := range allowed {
		if next == to {
			return nil
		}
	}

	return apperror.BadRequest(fmt.Sprintf("Cannot change status from %q to %q", from, to))
}

// AccessForStatus maps a profile status onto the linked credential's active
// flag. Entity types without a linked credential have no access table and
// always map to false.
func AccessForStatus(entity model.EntityType, status string) bool {
	access, ok := model.StatusUserAccess[entity]
	if !ok {
		return false
	}
	return access[status]
}

package model

import "fmt"

// EntityType names a status-bearing record kind
type EntityType string

const (
	EntityStudent    EntityType = "student"
	EntityInstructor EntityType = "instructor"
	EntityDepartment EntityType = "department"
	EntityEnrollment EntityType = "enrollment"
	EntityPayment    EntityType = "payment"
)

// Student statuses
const (
	StudentActive    = "active"
	StudentSuspended = "suspended"
	StudentGraduated = "graduated"
)

// Instructor statuses
const (
	InstructorActive  = "active"
	InstructorOnLeave = "onleave"
	InstructorRetired = "retired"
)

// Department statuses
const (
	DepartmentActive   = "active"
	DepartmentInactive = "inactive"
)

// Enrollment statuses
const (
	EnrollmentEnrolled  = "enrolled"
	EnrollmentDropped   = "dropped"
	EnrollmentCompleted = "completed"
)

// Payment statuses
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// StatusTransitions is the full transition table per entity type. A status
// mapping to an empty list is terminal. Every declared status MUST have an
// entry; ValidateStatusTables enforces that at startup.
var StatusTransitions = map[EntityType]map[string][]string{
	EntityStudent: {
		StudentActive:    {StudentSuspended, StudentGraduated},
		StudentSuspended: {StudentActive},
		StudentGraduated: {}, // terminal
	},
	EntityInstructor: {
		InstructorActive:  {InstructorOnLeave, InstructorRetired},
		InstructorOnLeave: {InstructorActive},
		InstructorRetired: {}, // terminal
	},
	EntityDepartment: {
		DepartmentActive:   {DepartmentInactive},
		DepartmentInactive: {DepartmentActive},
	},
	EntityEnrollment: {
		EnrollmentEnrolled:  {EnrollmentDropped, EnrollmentCompleted},
		EnrollmentDropped:   {}, // terminal
		EnrollmentCompleted: {}, // terminal
	},
	EntityPayment: {
		PaymentPending: {PaymentPaid, PaymentFailed},
		PaymentPaid:    {}, // terminal
		PaymentFailed:  {PaymentPending},
	},
}

// StatusUserAccess maps a profile status onto whether its linked credential may
// authenticate. Only entity types with a linked credential appear here.
var StatusUserAccess = map[EntityType]map[string]bool{
	EntityStudent: {
		StudentActive:    true,
		StudentSuspended: false,
		StudentGraduated: false,
	},
	EntityInstructor: {
		InstructorActive:  true,
		InstructorOnLeave: false,
		InstructorRetired: false,
	},
}

// KnownStatus reports whether status belongs to the entity type's enumerated set
func KnownStatus(entity EntityType, status string) bool {
	table, ok := StatusTransitions[entity]
	if !ok {
		return false
	}
	_, ok = table[status]
	return ok
}

// ValidateStatusTables is a startup self-check: every status reachable from any
// transition must itself have a transition entry, and every status of a
// credential-linked entity must have an access entry.
func ValidateStatusTables() error {
	for entity, table := range StatusTransitions {
		for from, targets := range table {
			for _, to := range targets {
				if _, ok := table[to]; !ok {
					return fmt.Errorf("status table for %s: %q -> %q reaches undeclared status", entity, from, to)
				}
			}
		}
	}

	for entity, access := range StatusUserAccess {
		table, ok := StatusTransitions[entity]
		if !ok {
			return fmt.Errorf("access table for %s has no transition table", entity)
		}
		for status := range table {
			if _, ok := access[status]; !ok {
				return fmt.Errorf("access table for %s missing status %q", entity, status)
			}
		}
	}

	return nil
}

package services

import (
	"testing"

	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/apperror"
)

func TestCheckTransitionAllowed(t *testing.T) {
	cases := []struct {
		entity   model.EntityType
		from, to string
	}{
		{model.EntityStudent, model.StudentActive, model.StudentSuspended},
		{model.EntityStudent, model.StudentActive, model.StudentGraduated},
		{model.EntityStudent, model.StudentSuspended, model.StudentActive},
		{model.EntityInstructor, model.InstructorActive, model.InstructorOnLeave},
		{model.EntityInstructor, model.InstructorActive, model.InstructorRetired},
		{model.EntityInstructor, model.InstructorOnLeave, model.InstructorActive},
		{model.EntityDepartment, model.DepartmentActive, model.DepartmentInactive},
		{model.EntityDepartment, model.DepartmentInactive, model.DepartmentActive},
		{model.EntityEnrollment, model.EnrollmentEnrolled, model.EnrollmentDropped},
		{model.EntityEnrollment, model.EnrollmentEnrolled, model.EnrollmentCompleted},
		{model.EntityPayment, model.PaymentPending, model.PaymentPaid},
		{model.EntityPayment, model.PaymentPending, model.PaymentFailed},
		{model.EntityPayment, model.PaymentFailed, model.PaymentPending},
	}

	for _, tc := range cases {
		if err := CheckTransition(tc.entity, tc.from, tc.to); err != nil {
			t.Errorf("%s %s -> %s should be allowed, got %v", tc.entity, tc.from, tc.to, err)
		}
	}
}

func TestCheckTransitionRejected(t *testing.T) {
	cases := []struct {
		entity   model.EntityType
		from, to string
	}{
		// Terminal states permit nothing
		{model.EntityStudent, model.StudentGraduated, model.StudentActive},
		{model.EntityStudent, model.StudentGraduated, model.StudentSuspended},
		{model.EntityInstructor, model.InstructorRetired, model.InstructorActive},
		{model.EntityEnrollment, model.EnrollmentDropped, model.EnrollmentEnrolled},
		{model.EntityEnrollment, model.EnrollmentCompleted, model.EnrollmentEnrolled},
		{model.EntityPayment, model.PaymentPaid, model.PaymentPending},
		{model.EntityPayment, model.PaymentPaid, model.PaymentFailed},
		// Untabulated hops
		{model.EntityStudent, model.StudentSuspended, model.StudentGraduated},
		{model.EntityInstructor, model.InstructorOnLeave, model.InstructorRetired},
	}

	for _, tc := range cases {
		err := CheckTransition(tc.entity, tc.from, tc.to)
		if err == nil {
			t.Errorf("%s %s -> %s should be rejected", tc.entity, tc.from, tc.to)
			continue
		}
		if !apperror.IsStatus(err, 400) {
			t.Errorf("%s %s -> %s: expected 400, got %v", tc.entity, tc.from, tc.to, err)
		}
	}
}

func TestCheckTransitionSelfLoop(t *testing.T) {
	// No table lists a status as its own successor
	if err := CheckTransition(model.EntityStudent, model.StudentActive, model.StudentActive); err == nil {
		t.Error("active -> active should be rejected")
	}
}

func TestCheckTransitionUnknownStatus(t *testing.T) {
	err := CheckTransition(model.EntityStudent, model.StudentActive, "expelled")
	if err == nil {
		t.Fatal("unknown status should be rejected")
	}
	if !apperror.IsStatus(err, 400) {
		t.Errorf("expected 400, got %v", err)
	}

	if err := CheckTransition("building", "active", "inactive"); err == nil {
		t.Error("unknown entity type should be rejected")
	}
}

func TestAccessForStatus(t *testing.T) {
	cases := []struct {
		entity model.EntityType
		status string
		want   bool
	}{
		{model.EntityStudent, model.StudentActive, true},
		{model.EntityStudent, model.StudentSuspended, false},
		{model.EntityStudent, model.StudentGraduated, false},
		{model.EntityInstructor, model.InstructorActive, true},
		{model.EntityInstructor, model.InstructorOnLeave, false},
		{model.EntityInstructor, model.InstructorRetired, false},
		// No credential linked: always false
		{model.EntityDepartment, model.DepartmentActive, false},
		{model.EntityEnrollment, model.EnrollmentEnrolled, false},
	}

	for _, tc := range cases {
		if got := AccessForStatus(tc.entity, tc.status); got != tc.want {
			t.Errorf("AccessForStatus(%s, %s) = %v, want %v", tc.entity, tc.status, got, tc.want)
		}
	}
}

func TestValidateStatusTables(t *testing.T) {
	if err := model.ValidateStatusTables(); err != nil {
		t.Fatalf("shipped status tables are inconsistent: %v", err)
	}
}

package repository

import (
	"errors"
	"testing"
)

func TestIsDuplicateOf(t *testing.T) {
	accountErr := errors.New("Error 1062 (23000): Duplicate entry '7' for key 'leases.uq_leases_account'")
	userErr := errors.New("Error 1062 (23000): Duplicate entry '3' for key 'leases.uq_leases_user'")

	if !isDuplicateOf(accountErr, "uq_leases_account") {
		t.Fatal("account duplicate not recognised")
	}
	if isDuplicateOf(accountErr, "uq_leases_user") {
		t.Fatal("account duplicate misattributed to user index")
	}
	if !isDuplicateOf(userErr, "uq_leases_user") {
		t.Fatal("user duplicate not recognised")
	}
	if isDuplicateOf(errors.New("Error 1452 (23000): foreign key constraint fails"), "uq_leases_account") {
		t.Fatal("foreign key error classified as duplicate")
	}
	if isDuplicateOf(nil, "uq_leases_account") {
		t.Fatal("nil error classified as duplicate")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails")
	if !isForeignKeyViolation(fk) {
		t.Fatal("1452 not recognised as foreign key violation")
	}
	if isForeignKeyViolation(errors.New("Error 1062 (23000): Duplicate entry")) {
		t.Fatal("duplicate classified as foreign key violation")
	}
}

func TestIsRestrictedDelete(t *testing.T) {
	restricted := errors.New("Error 1451 (23000): Cannot delete or update a parent row: a foreign key constraint fails")
	if !isRestrictedDelete(restricted) {
		t.Fatal("1451 not recognised as restricted delete")
	}
	if isRestrictedDelete(errors.New("Error 1452 (23000): Cannot add or update a child row")) {
		t.Fatal("1452 classified as restricted delete")
	}
	if isRestrictedDelete(nil) {
		t.Fatal("nil classified as restricted delete")
	}
}

package validators

import (
	"errors"
	"slices"
)

// EmployeeBands mirrors the size bands the registration wizard offers
var EmployeeBands = []string{
	"1-10",
	"11-50",
	"51-200",
	"201-500",
	"501-1000",
	"1001-5000",
	"5000+",
}

var (
	ErrCompanyIDEmpty        = errors.New("no company ID provided")
	ErrEmployeesCountInvalid = errors.New("invalid employees count provided")
	ErrNameEmpty             = errors.New("name can't be empty")
	ErrNameTooLong           = errors.New("name cannot be more than 100 characters")
)

func EmployeesCountValidator(e string) error {
	if !slices.Contains(EmployeeBands, e) {
		return ErrEmployeesCountInvalid
	}

	return nil
}

func NameValidator(n string) error {
	if n == "" {
		return ErrNameEmpty
	}

	if len(n) > 100 {
		return ErrNameTooLong
	}

	return nil
}

package validate

import (
	"testing"
	"time"
)

type personForm struct {
	Name       string `json:"name" validate:"required"`
	Surname    string `json:"surname" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,phone"`
	NationalID string `json:"nationalId" validate:"required,national_id"`
	Age        int    `json:"age" validate:"min=18,max=120"`
}

func validPerson() personForm {
	return personForm{
		Name:       "Jan",
		Surname:    "Dvorak",
		Email:      "jan@example.com",
		Phone:      "+420123456789",
		NationalID: "123456/7890",
		Age:        35,
	}
}

func TestStruct_ValidPayloadPasses(t *testing.T) {
	v := New()
	if fields := v.Struct(validPerson()); fields != nil {
		t.Fatalf("expected no errors, got %v", fields)
	}
}

func TestStruct_PhonePattern(t *testing.T) {
	v := New()
	cases := []struct {
		phone string
		ok    bool
	}{
		{"+420123456789", true},
		{"420123456789", true},
		{"+420 123 456", false},
		{"abc", false},
		{"++420", false},
	}
	for _, tc := range cases {
		form := validPerson()
		form.Phone = tc.phone
		fields := v.Struct(form)
		if tc.ok && fields != nil {
			t.Fatalf("phone %q: expected valid, got %v", tc.phone, fields)
		}
		if !tc.ok {
			if fields == nil {
				t.Fatalf("phone %q: expected error", tc.phone)
			}
			if _, present := fields["phone"]; !present {
				t.Fatalf("phone %q: error not keyed by json name: %v", tc.phone, fields)
			}
		}
	}
}

func TestStruct_NationalIDPattern(t *testing.T) {
	v := New()
	cases := []struct {
		id string
		ok bool
	}{
		{"123456/7890", true},
		{"12345/7890", false},
		{"123456/789", false},
		{"123456-7890", false},
		{"1234567890", false},
	}
	for _, tc := range cases {
		form := validPerson()
		form.NationalID = tc.id
		fields := v.Struct(form)
		if tc.ok && fields != nil {
			t.Fatalf("national id %q: expected valid, got %v", tc.id, fields)
		}
		if !tc.ok && fields == nil {
			t.Fatalf("national id %q: expected error", tc.id)
		}
	}
}

func TestStruct_AgeBounds(t *testing.T) {
	v := New()
	for _, age := range []int{17, 121} {
		form := validPerson()
		form.Age = age
		if fields := v.Struct(form); fields == nil {
			t.Fatalf("age %d: expected error", age)
		}
	}
	for _, age := range []int{18, 120} {
		form := validPerson()
		form.Age = age
		if fields := v.Struct(form); fields != nil {
			t.Fatalf("age %d: expected valid, got %v", age, fields)
		}
	}
}

func TestContractDates(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}

	if errs := ContractDates(day(1), day(1), day(2)); errs != nil {
		t.Fatalf("equal validity/conclusion should pass, got %v", errs)
	}
	if errs := ContractDates(day(2), day(1), day(3)); errs == nil {
		t.Fatalf("validity before conclusion should fail")
	}
	if errs := ContractDates(day(1), day(2), day(2)); errs == nil {
		t.Fatalf("ending equal to validity should fail")
	}
	if errs := ContractDates(day(1), day(2), day(1)); errs == nil {
		t.Fatalf("ending before validity should fail")
	}
}

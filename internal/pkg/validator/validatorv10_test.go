package validator

import (
	"errors"
	"testing"
)

type registerPayload struct {
	FullName             string `validate:"required,min=3,max=100,alphaspace"`
	Email                string `validate:"required,email"`
	Password             string `validate:"required,password"`
	PasswordConfirmation string `validate:"required,eqfield=Password"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	valid := registerPayload{
		FullName:             "Jane Doe",
		Email:                "jane@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
	}

	t.Run("valid struct passes", func(t *testing.T) {
		if err := v.Validate(valid); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})

	t.Run("failures report fields in snake case", func(t *testing.T) {
		in := valid
		in.FullName = ""
		in.Email = "not-an-email"

		err := v.Validate(in)
		if err == nil {
			t.Fatal("Validate() error = nil, want error")
		}

		var ve V10ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error type = %T, want V10ValidationError", err)
		}
		if _, ok := ve["full_name"]; !ok {
			t.Errorf("missing full_name key in %v", ve.Values())
		}
		if _, ok := ve["email"]; !ok {
			t.Errorf("missing email key in %v", ve.Values())
		}
	})

	t.Run("password rule rejects short passwords", func(t *testing.T) {
		in := valid
		in.Password = "short"
		in.PasswordConfirmation = "short"

		if err := v.Validate(in); err == nil {
			t.Error("Validate() error = nil, want error")
		}
	})

	t.Run("confirmation must match", func(t *testing.T) {
		in := valid
		in.PasswordConfirmation = "different123"

		if err := v.Validate(in); err == nil {
			t.Error("Validate() error = nil, want error")
		}
	})

	t.Run("alphaspace rejects digits and symbols", func(t *testing.T) {
		for _, name := range []string{"Jane42", "Jane_Doe", "Jane!"} {
			in := valid
			in.FullName = name

			if err := v.Validate(in); err == nil {
				t.Errorf("Validate() accepted full name %q", name)
			}
		}
	})

	t.Run("alphaspace accepts unicode letters", func(t *testing.T) {
		in := valid
		in.FullName = "Ámbar Núñez"

		if err := v.Validate(in); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

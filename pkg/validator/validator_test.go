package validator

import (
	"testing"
)

type testPayload struct {
	ImageURL *string `json:"image_url" validate:"required"`
	Breed    *string `json:"breed" validate:"required"`
	Origin   *string `json:"origin,omitempty" validate:"required"`
	Favorite *bool   `json:"favorite"`
}

func strPtr(v string) *string { return &v }

func TestValidateStructSuccess(t *testing.T) {
	payload := testPayload{
		ImageURL: strPtr("https://cdn2.thecatapi.com/images/abc.jpg"),
		Breed:    strPtr("Abyssinian"),
		Origin:   strPtr(""),
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := testPayload{Breed: strPtr("Bengal")}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	if len(vErrs) != 2 {
		t.Fatalf("expected 2 validation errors, got %d", len(vErrs))
	}

	fields := map[string]string{}
	for _, v := range vErrs {
		fields[v.Field] = v.Tag
	}

	if fields["image_url"] != "required" {
		t.Fatalf("expected image_url required failure, got %v", fields)
	}
	if fields["origin"] != "required" {
		t.Fatalf("expected json tag options to be stripped, got %v", fields)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "breed", Tag: "required"},
		{Field: "name", Tag: "max", Param: "120"},
	}
	if got := errs.Error(); got != "breed failed on required; name failed on max=120" {
		t.Fatalf("unexpected message: %s", got)
	}
	if got := (ValidationErrors{}).Error(); got != "validation failed" {
		t.Fatalf("unexpected empty message: %s", got)
	}
}

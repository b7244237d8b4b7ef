package utils

import (
	"context"
	"testing"
)

func TestIsE164(t *testing.T) {
	valid := []string{"+15125551234", "+442071838750", "+8613800000000"}
	for _, n := range valid {
		if !IsE164(n) {
			t.Fatalf("expected %q to be valid E.164", n)
		}
	}

	// Missing +, leading zero, too short, too long, spaces, dashes.
	invalid := []string{
		"",
		"15125551234",
		"+05125551234",
		"+1512555",
		"+151255512345678901",
		"+1 512 555 1234",
		"512-555-1234",
	}
	for _, n := range invalid {
		if IsE164(n) {
			t.Fatalf("expected %q to be rejected", n)
		}
	}
}

func TestValidatePhoneNumberLocalOnly(t *testing.T) {
	// Without a Twilio client only the E.164 shape is checked.
	ok, err := ValidatePhoneNumber(context.Background(), "+15125551234", nil, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("well-formed number rejected")
	}

	ok, err = ValidatePhoneNumber(context.Background(), "not-a-number", nil, false, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("malformed number accepted")
	}

	// validateWithTwilio set but no client configured falls back to local.
	ok, err = ValidatePhoneNumber(context.Background(), "+15125551234", nil, true, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected local fallback to accept a well-formed number")
	}
}

func TestIsValidEmailSyntax(t *testing.T) {
	valid := []string{"owner@stowpilot.dev", "first.last+tag@example.co.uk"}
	for _, e := range valid {
		if !IsValidEmailSyntax(e) {
			t.Fatalf("expected %q to be valid", e)
		}
	}

	invalid := []string{"", "plainaddress", "@example.com", "owner@", "owner @example.com"}
	for _, e := range invalid {
		if IsValidEmailSyntax(e) {
			t.Fatalf("expected %q to be rejected", e)
		}
	}
}

package models

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "abc12", true},
		{"minimum length", "abc123", false},
		{"typical", "correct horse battery", false},
		{"too long", string(make([]byte, 65)), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidatePassword(%q) error = %v, wantErr %v", tc.password, err, tc.wantErr)
			}
		})
	}
}

func TestValidateSignupTrimsFields(t *testing.T) {
	request := &SignupRequest{
		FirstName: "  Ada  ",
		LastName:  " Lovelace ",
		Email:     " ADA@Example.com ",
		Password:  "secret123",
	}
	if err := request.ValidateSignup(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.FirstName != "Ada" || request.LastName != "Lovelace" {
		t.Fatalf("names not trimmed: %q %q", request.FirstName, request.LastName)
	}
	if request.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %q", request.Email)
	}
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user := &User{HashedPassword: string(hashed)}

	if err := user.VerifyPassword("secret123"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := user.VerifyPassword("wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestNormalizePair(t *testing.T) {
	a, b := NormalizePair(9, 3)
	if a != 3 || b != 9 {
		t.Fatalf("NormalizePair(9,3) = (%d,%d), want (3,9)", a, b)
	}
	a, b = NormalizePair(3, 9)
	if a != 3 || b != 9 {
		t.Fatalf("NormalizePair(3,9) = (%d,%d), want (3,9)", a, b)
	}
}

func TestConversationOtherParticipant(t *testing.T) {
	c := &Conversation{ParticipantOneID: 3, ParticipantTwoID: 9}
	if got := c.OtherParticipant(3); got != 9 {
		t.Fatalf("OtherParticipant(3) = %d, want 9", got)
	}
	if got := c.OtherParticipant(9); got != 3 {
		t.Fatalf("OtherParticipant(9) = %d, want 3", got)
	}
	if !c.HasParticipant(3) || c.HasParticipant(4) {
		t.Fatal("HasParticipant gave wrong membership")
	}
}

func TestImageListRoundTrip(t *testing.T) {
	list := ImageList{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	value, err := list.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var scanned ImageList
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scanned) != 2 || scanned[0] != list[0] || scanned[1] != list[1] {
		t.Fatalf("round trip mismatch: %v", scanned)
	}

	var empty ImageList
	value, err = empty.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "[]" {
		t.Fatalf("empty list value = %v, want []", value)
	}
}

package models

import (
	"reflect"
	"testing"
	"time"
)

func TestProfileMissingFields(t *testing.T) {
	profile := UserProfile{Name: "ravi"}
	want := []string{"address", "course", "college_year", "gender"}
	if got := profile.MissingFields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	profile = UserProfile{
		Name:        "ravi",
		Address:     "Hostel Block A",
		Course:      "B.Tech CSE",
		CollegeYear: 2,
		Gender:      "Male",
	}
	if got := profile.MissingFields(); len(got) != 0 {
		t.Errorf("Expected complete profile, got missing %v", got)
	}
}

func TestRequestIsActive(t *testing.T) {
	cases := map[string]bool{
		RequestStatusPending:  false,
		RequestStatusAccepted: true,
		RequestStatusApproved: true,
		RequestStatusRejected: false,
	}
	for status, want := range cases {
		request := ProductRequest{Status: status}
		if got := request.IsActive(); got != want {
			t.Errorf("IsActive(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestOTPValidity(t *testing.T) {
	fresh := OTP{CreatedAt: time.Now()}
	if !fresh.IsValid() {
		t.Error("Expected a fresh code to be valid")
	}

	stale := OTP{CreatedAt: time.Now().Add(-6 * time.Minute)}
	if stale.IsValid() {
		t.Error("Expected an expired code to be invalid")
	}
}

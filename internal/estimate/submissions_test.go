package estimate

import "testing"

func TestSubmissionStoreCreateAndGet(t *testing.T) {
	store := NewSubmissionStore()
	sub := store.Create(ManualRequest{
		PreferredContact: "email",
		Email:            "founder@example.com",
		Notes:            "Prefer a call next week",
	})
	if sub.Token == "" || len(sub.Token) != 32 {
		t.Fatalf("token = %q", sub.Token)
	}
	if sub.Status != SubmissionAccepted {
		t.Fatalf("status = %q", sub.Status)
	}

	got := store.Get(sub.Token)
	if got == nil || got.Request.Email != "founder@example.com" {
		t.Fatalf("lookup failed: %+v", got)
	}
	if store.Get("nope") != nil {
		t.Fatal("unknown token resolved")
	}
}

func TestSubmissionStoreTokensUnique(t *testing.T) {
	store := NewSubmissionStore()
	a := store.Create(ManualRequest{PreferredContact: "email"})
	b := store.Create(ManualRequest{PreferredContact: "phone"})
	if a.Token == b.Token {
		t.Fatal("token collision")
	}
}

func TestSubmissionStoreSetStatus(t *testing.T) {
	store := NewSubmissionStore()
	sub := store.Create(ManualRequest{PreferredContact: "phone"})
	if !store.SetStatus(sub.Token, SubmissionContacted) {
		t.Fatal("status update rejected")
	}
	if got := store.Get(sub.Token).Status; got != SubmissionContacted {
		t.Fatalf("status = %q", got)
	}
	if store.SetStatus("nope", SubmissionClosed) {
		t.Fatal("unknown token updated")
	}
}

package domain

import "testing"

func TestParseOrderStatus(t *testing.T) {
	for _, st := range OrderStatuses {
		got, ok := ParseOrderStatus(string(st))
		if !ok || got != st {
			t.Fatalf("expected %q to parse, got %q ok=%v", st, got, ok)
		}
	}

	for _, raw := range []string{"", "pendente", "em preparo", "entregue", "PENDING", "ready"} {
		if _, ok := ParseOrderStatus(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	cases := map[OrderStatus]bool{
		StatusPending:   false,
		StatusPreparing: false,
		StatusEnRoute:   false,
		StatusDelivered: true,
		StatusCancelled: true,
	}
	for st, want := range cases {
		if got := st.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", st, got, want)
		}
	}
}

func TestOrderStatus_CanTransition_Admin(t *testing.T) {
	for _, from := range OrderStatuses {
		for _, to := range OrderStatuses {
			want := !from.IsTerminal()
			if got := from.CanTransition(RoleAdmin, to); got != want {
				t.Errorf("admin %s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestOrderStatus_CanTransition_Customer(t *testing.T) {
	for _, from := range OrderStatuses {
		for _, to := range OrderStatuses {
			want := from == StatusPending && to == StatusCancelled
			if got := from.CanTransition(RoleCustomer, to); got != want {
				t.Errorf("customer %s -> %s: got %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestOrderStatus_CanTransition_UnknownRole(t *testing.T) {
	if StatusPending.CanTransition(Role("kitchen"), StatusPreparing) {
		t.Fatal("unknown roles must not transition orders")
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleAdmin.Valid() || !RoleCustomer.Valid() {
		t.Fatal("known roles must be valid")
	}
	if Role("guest").Valid() {
		t.Fatal("guest must not be valid")
	}
}

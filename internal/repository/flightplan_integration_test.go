//go:build integration

package repository

import (
	"errors"
	"sync"
	"testing"

	"github.com/flightplan/flightplan/internal/auth"
	"github.com/flightplan/flightplan/internal/testutil"
)

func TestIntegrationFlightPlanRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	plan := testutil.NewTestFlightPlan(t, "N123AB")
	plan.FlightPlanID = "caller-chosen-id"

	created, err := repo.CreateFlightPlan(ctx, plan)
	if err != nil {
		t.Fatalf("CreateFlightPlan failed: %v", err)
	}
	if created.FlightPlanID == "" || created.FlightPlanID == "caller-chosen-id" {
		t.Fatalf("server should assign a fresh id, got %q", created.FlightPlanID)
	}
	if !auth.ValidKeyFormat(created.FlightPlanID) {
		t.Errorf("flight plan id should be 32 hex chars, got %q", created.FlightPlanID)
	}

	retrieved, err := repo.GetFlightPlan(ctx, created.FlightPlanID)
	if err != nil {
		t.Fatalf("GetFlightPlan failed: %v", err)
	}
	if *retrieved != *created {
		t.Errorf("retrieved record differs:\ngot  %+v\nwant %+v", *retrieved, *created)
	}
}

func TestIntegrationFlightPlanRepository_Get_NotFound(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	_, err := repo.GetFlightPlan(ctx, "unknown-flight")
	if !errors.Is(err, ErrFlightPlanNotFound) {
		t.Errorf("Expected ErrFlightPlanNotFound, got: %v", err)
	}
}

func TestIntegrationFlightPlanRepository_List(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	plans, err := repo.ListFlightPlans(ctx)
	if err != nil {
		t.Fatalf("ListFlightPlans failed: %v", err)
	}
	if len(plans) != 0 {
		t.Fatalf("expected empty list, got %d", len(plans))
	}

	for i := 0; i < 3; i++ {
		if _, err := repo.CreateFlightPlan(ctx, testutil.NewTestFlightPlan(t, testutil.UniqueName("N"))); err != nil {
			t.Fatalf("CreateFlightPlan failed: %v", err)
		}
	}

	plans, err = repo.ListFlightPlans(ctx)
	if err != nil {
		t.Fatalf("ListFlightPlans failed: %v", err)
	}
	if len(plans) != 3 {
		t.Errorf("expected 3 plans, got %d", len(plans))
	}

	// Repeated calls re-fetch the full set.
	again, err := repo.ListFlightPlans(ctx)
	if err != nil {
		t.Fatalf("ListFlightPlans (second call) failed: %v", err)
	}
	if len(again) != len(plans) {
		t.Errorf("second list returned %d plans, want %d", len(again), len(plans))
	}
}

func TestIntegrationFlightPlanRepository_Update(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	created, err := repo.CreateFlightPlan(ctx, testutil.NewTestFlightPlan(t, "N555XY"))
	if err != nil {
		t.Fatalf("CreateFlightPlan failed: %v", err)
	}

	updated := *created
	updated.Altitude = 39000
	updated.Route = "direct"
	updated.Remarks = "rerouted"

	ok, err := repo.UpdateFlightPlan(ctx, updated)
	if err != nil {
		t.Fatalf("UpdateFlightPlan failed: %v", err)
	}
	if !ok {
		t.Fatal("UpdateFlightPlan should report one modified row")
	}

	retrieved, err := repo.GetFlightPlan(ctx, created.FlightPlanID)
	if err != nil {
		t.Fatalf("GetFlightPlan failed: %v", err)
	}
	if *retrieved != updated {
		t.Errorf("update not reflected:\ngot  %+v\nwant %+v", *retrieved, updated)
	}
}

func TestIntegrationFlightPlanRepository_Update_NoMatch(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	plan := testutil.NewTestFlightPlan(t, "N000ZZ")
	plan.FlightPlanID = "deadbeefdeadbeefdeadbeefdeadbeef"

	ok, err := repo.UpdateFlightPlan(ctx, plan)
	if err != nil {
		t.Fatalf("UpdateFlightPlan failed: %v", err)
	}
	if ok {
		t.Error("zero-row match should be a false result, not true")
	}

	plans, err := repo.ListFlightPlans(ctx)
	if err != nil {
		t.Fatalf("ListFlightPlans failed: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("store should be unchanged, got %d rows", len(plans))
	}
}

func TestIntegrationFlightPlanRepository_Delete(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	created, err := repo.CreateFlightPlan(ctx, testutil.NewTestFlightPlan(t, "N777CD"))
	if err != nil {
		t.Fatalf("CreateFlightPlan failed: %v", err)
	}

	ok, err := repo.DeleteFlightPlan(ctx, created.FlightPlanID)
	if err != nil {
		t.Fatalf("DeleteFlightPlan failed: %v", err)
	}
	if !ok {
		t.Fatal("first delete should remove the row")
	}

	ok, err = repo.DeleteFlightPlan(ctx, created.FlightPlanID)
	if err != nil {
		t.Fatalf("DeleteFlightPlan (second call) failed: %v", err)
	}
	if ok {
		t.Error("second delete on the same id should report false")
	}

	if _, err := repo.GetFlightPlan(ctx, created.FlightPlanID); !errors.Is(err, ErrFlightPlanNotFound) {
		t.Errorf("deleted plan should be gone, got: %v", err)
	}
}

func TestIntegrationFlightPlanRepository_ConcurrentCreates(t *testing.T) {
	ctx, repo := newRepoTestEnv(t)

	// More concurrent writers than pool connections (MaxConns is 4
	// in the test env); all must eventually complete without deadlock
	// and produce distinct ids.
	const n = 16

	var wg sync.WaitGroup
	ids := make(chan string, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := repo.CreateFlightPlan(ctx, testutil.NewTestFlightPlan(t, "N999CC"))
			if err != nil {
				errs <- err
				return
			}
			ids <- created.FlightPlanID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		if !errors.Is(err, ErrPoolExhausted) {
			t.Errorf("unexpected error from concurrent create: %v", err)
		}
	}

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate flight plan id: %s", id)
		}
		seen[id] = true
	}
}

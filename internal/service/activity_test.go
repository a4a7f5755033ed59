package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

func validActivity() domain.Activity {
	return domain.Activity{
		Description: "Colosseum tour",
		Date:        day("2025-06-02"),
		Time:        "10:00",
		Location:    "Piazza del Colosseo",
	}
}

func TestActivityService_Add_Valid(t *testing.T) {
	var gotAct domain.Activity
	r := holding(validTrip())
	r.addActivity = func(_ context.Context, _ string, a domain.Activity) error {
		gotAct = a
		return nil
	}
	svc := service.NewActivityService(r)

	act := validActivity()
	act.Description = "  Colosseum tour  "
	got, err := svc.Add(context.Background(), "Summer Tour", act)

	require.NoError(t, err)
	assert.Equal(t, "Colosseum tour", got.Description)
	assert.Equal(t, got, gotAct)
}

func TestActivityService_Add_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Activity)
	}{
		{"missing description", func(a *domain.Activity) { a.Description = "" }},
		{"missing date", func(a *domain.Activity) { a.Date = time.Time{} }},
		{"date before trip", func(a *domain.Activity) { a.Date = day("2025-05-30") }},
		{"date after trip", func(a *domain.Activity) { a.Date = day("2025-07-01") }},
		{"pipe in notes", func(a *domain.Activity) { a.Notes = "a|b" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := holding(validTrip())
			r.addActivity = func(context.Context, string, domain.Activity) error {
				t.Fatal("repo must not be called for invalid input")
				return nil
			}
			svc := service.NewActivityService(r)

			act := validActivity()
			tc.mutate(&act)
			_, err := svc.Add(context.Background(), "Summer Tour", act)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestActivityService_Add_TripNotFound(t *testing.T) {
	svc := service.NewActivityService(emptyRepo(nil))

	_, err := svc.Add(context.Background(), "Nowhere", validActivity())

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestActivityService_List(t *testing.T) {
	r := holding(validTrip())
	r.listActivities = func(context.Context, string) []domain.Activity {
		return []domain.Activity{validActivity(), validActivity()}
	}
	svc := service.NewActivityService(r)

	got, err := svc.List(context.Background(), "summer tour")

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestActivityService_Update_PersistError(t *testing.T) {
	r := holding(validTrip())
	r.updateActivity = func(context.Context, string, int, domain.Activity) error { return domain.ErrPersist }
	svc := service.NewActivityService(r)

	_, err := svc.Update(context.Background(), "Summer Tour", 0, validActivity())

	assert.ErrorIs(t, err, domain.ErrPersist)
}

func TestActivityService_Delete(t *testing.T) {
	var gotIndex int
	r := holding(validTrip())
	r.removeActivity = func(_ context.Context, _ string, i int) error { gotIndex = i; return nil }
	svc := service.NewActivityService(r)

	require.NoError(t, svc.Delete(context.Background(), "Summer Tour", 1))
	assert.Equal(t, 1, gotIndex)
}

func TestActivityService_Delete_TripNotFound(t *testing.T) {
	svc := service.NewActivityService(holding(validTrip()))

	err := svc.Delete(context.Background(), "Nowhere", 0)

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

package repo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/testutil"
)

// newTestRepo returns a TripRepo backed by a file in a fresh temp dir,
// together with the DataFile so tests can reopen or inspect it.
func newTestRepo(t *testing.T) (repo.TripRepo, repo.DataFile) {
	t.Helper()
	f := testutil.DataFile(t, "travel_data.txt")
	return repo.NewTripRepo(context.Background(), f), f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture(name string) domain.Trip {
	return domain.Trip{
		Name:        name,
		Destination: "Italy",
		TravelStyle: "Leisure",
		Start:       date(2024, 6, 1),
		End:         date(2024, 6, 3),
		Duration:    3,
		Created:     time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}
}

func hotelFixture(name string) domain.Accommodation {
	return domain.Accommodation{
		Type:         "Hotel",
		Name:         name,
		Address:      "Via Roma 1",
		CheckIn:      date(2024, 6, 1),
		CheckOut:     date(2024, 6, 3),
		Confirmation: "ABC123",
	}
}

func activityFixture(desc string) domain.Activity {
	return domain.Activity{
		Description: desc,
		Date:        date(2024, 6, 2),
		Time:        "10:00",
		Location:    "Piazza del Colosseo",
		Notes:       "bring water",
	}
}

func names(trips []domain.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = t.Name
	}
	return out
}

// ---- trips -----------------------------------------------------------------

func TestTripRepo_Add_AndGetCaseInsensitive(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))

	got, ok := r.Get(ctx, "rOME")
	require.True(t, ok)
	assert.Equal(t, "Rome", got.Name)

	_, ok = r.Get(ctx, "Paris")
	assert.False(t, ok)
}

func TestTripRepo_Add_DuplicateRejected(t *testing.T) {
	r, f := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))
	before := testutil.ReadFile(t, f.Path)

	dup := tripFixture("ROME")
	dup.Destination = "Elsewhere"
	err := r.Add(ctx, dup, false)

	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	trips := r.List(ctx)
	require.Len(t, trips, 1)
	assert.Equal(t, "Italy", trips[0].Destination)
	assert.Equal(t, before, testutil.ReadFile(t, f.Path))
}

func TestTripRepo_Add_OverwriteReplacesExactNameAndAppends(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))
	require.NoError(t, r.Add(ctx, tripFixture("Paris"), false))

	replacement := tripFixture("Rome")
	replacement.Destination = "Lazio"
	require.NoError(t, r.Add(ctx, replacement, true))

	trips := r.List(ctx)
	assert.Equal(t, []string{"Paris", "Rome"}, names(trips))
	assert.Equal(t, "Lazio", trips[1].Destination)
}

func TestTripRepo_List_IsSnapshot(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	trip := tripFixture("Rome")
	trip.Accommodations = []domain.Accommodation{hotelFixture("Plaza")}
	require.NoError(t, r.Add(ctx, trip, false))

	trips := r.List(ctx)
	trips[0].Name = "mutated"
	trips[0].Accommodations[0].Name = "mutated"

	got, ok := r.Get(ctx, "Rome")
	require.True(t, ok)
	assert.Equal(t, "Plaza", got.Accommodations[0].Name)
}

func TestTripRepo_Update_SameNameKeepsPosition(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Paris"), false))
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))

	updated := tripFixture("PARIS")
	updated.Destination = "France"
	ok, err := r.Update(ctx, "paris", updated)

	require.NoError(t, err)
	assert.True(t, ok)
	trips := r.List(ctx)
	assert.Equal(t, []string{"PARIS", "Rome"}, names(trips))
	assert.Equal(t, "France", trips[0].Destination)
}

func TestTripRepo_Update_RenameMovesToEnd(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Paris"), false))
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))

	tokyo := tripFixture("Tokyo")
	tokyo.Destination = "Japan"
	ok, err := r.Update(ctx, "Paris", tokyo)

	require.NoError(t, err)
	assert.True(t, ok)
	_, found := r.Get(ctx, "Paris")
	assert.False(t, found)
	got, found := r.Get(ctx, "Tokyo")
	require.True(t, found)
	assert.Equal(t, "Japan", got.Destination)
	assert.Equal(t, []string{"Rome", "Tokyo"}, r.Names(ctx))
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r, f := newTestRepo(t)

	ok, err := r.Update(context.Background(), "Nowhere", tripFixture("Nowhere"))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoFileExists(t, f.Path)
}

func TestTripRepo_Remove(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))
	require.NoError(t, r.Add(ctx, tripFixture("Paris"), false))

	require.NoError(t, r.Remove(ctx, "ROME"))
	require.NoError(t, r.Remove(ctx, "missing"))

	assert.Equal(t, []string{"Paris"}, r.Names(ctx))
}

// ---- nested items ----------------------------------------------------------

func TestTripRepo_Accommodations_CRUD(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))

	require.NoError(t, r.AddAccommodation(ctx, "rome", hotelFixture("A")))
	require.NoError(t, r.AddAccommodation(ctx, "Rome", hotelFixture("B")))
	require.NoError(t, r.AddAccommodation(ctx, "Rome", hotelFixture("C")))

	require.NoError(t, r.UpdateAccommodation(ctx, "Rome", 1, hotelFixture("B2")))
	require.NoError(t, r.RemoveAccommodation(ctx, "Rome", 0))

	got := r.ListAccommodations(ctx, "Rome")
	require.Len(t, got, 2)
	assert.Equal(t, "B2", got[0].Name, "later items shift down after a removal")
	assert.Equal(t, "C", got[1].Name)
}

func TestTripRepo_AddAccommodation_TripNotFound(t *testing.T) {
	r, _ := newTestRepo(t)

	err := r.AddAccommodation(context.Background(), "Nowhere", hotelFixture("A"))

	assert.ErrorIs(t, err, domain.ErrTripNotFound)
}

func TestTripRepo_UpdateAccommodation_Errors(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))
	require.NoError(t, r.AddAccommodation(ctx, "Rome", hotelFixture("A")))

	assert.ErrorIs(t, r.UpdateAccommodation(ctx, "Nowhere", 0, hotelFixture("X")), domain.ErrTripNotFound)
	assert.ErrorIs(t, r.UpdateAccommodation(ctx, "Rome", 1, hotelFixture("X")), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, r.UpdateAccommodation(ctx, "Rome", -1, hotelFixture("X")), domain.ErrIndexOutOfRange)
}

func TestTripRepo_RemoveAccommodation_InvalidIndexIsNoOp(t *testing.T) {
	r, f := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))
	require.NoError(t, r.AddAccommodation(ctx, "Rome", hotelFixture("A")))
	before := testutil.ReadFile(t, f.Path)

	require.NoError(t, r.RemoveAccommodation(ctx, "Rome", 5))
	require.NoError(t, r.RemoveAccommodation(ctx, "Rome", -1))
	require.NoError(t, r.RemoveAccommodation(ctx, "Nowhere", 0))

	assert.Len(t, r.ListAccommodations(ctx, "Rome"), 1)
	assert.Equal(t, before, testutil.ReadFile(t, f.Path))
}

func TestTripRepo_ListNested_MissingTripIsEmpty(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	acc := r.ListAccommodations(ctx, "Nowhere")
	act := r.ListActivities(ctx, "Nowhere")

	assert.NotNil(t, acc)
	assert.Empty(t, acc)
	assert.NotNil(t, act)
	assert.Empty(t, act)
}

func TestTripRepo_Activities_CRUD(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))

	require.NoError(t, r.AddActivity(ctx, "Rome", activityFixture("Colosseum tour")))
	require.NoError(t, r.AddActivity(ctx, "Rome", activityFixture("Vatican")))
	require.NoError(t, r.UpdateActivity(ctx, "Rome", 0, activityFixture("Colosseum night tour")))
	require.NoError(t, r.RemoveActivity(ctx, "Rome", 1))
	require.NoError(t, r.RemoveActivity(ctx, "Rome", 7))

	got := r.ListActivities(ctx, "Rome")
	require.Len(t, got, 1)
	assert.Equal(t, "Colosseum night tour", got[0].Description)

	assert.ErrorIs(t, r.AddActivity(ctx, "Nowhere", activityFixture("x")), domain.ErrTripNotFound)
	assert.ErrorIs(t, r.UpdateActivity(ctx, "Nowhere", 0, activityFixture("x")), domain.ErrTripNotFound)
	assert.ErrorIs(t, r.UpdateActivity(ctx, "Rome", 3, activityFixture("x")), domain.ErrIndexOutOfRange)
}

// ---- persistence -----------------------------------------------------------

func TestTripRepo_RoundTrip(t *testing.T) {
	withNested := tripFixture("Rome")
	withNested.Accommodations = []domain.Accommodation{hotelFixture("Plaza"), hotelFixture("Hassler")}
	withNested.Activities = []domain.Activity{activityFixture("Colosseum tour"), {Description: "Dinner", Date: date(2024, 6, 3)}}

	bare := tripFixture("Paris")
	bare.Destination = "France"
	bare.Created = time.Time{}

	cases := map[string][]domain.Trip{
		"zero trips": nil,
		"one trip":   {withNested},
		"many trips": {withNested, bare, tripFixture("Tokyo")},
	}
	for name, trips := range cases {
		t.Run(name, func(t *testing.T) {
			r, f := newTestRepo(t)
			ctx := context.Background()
			for _, trip := range trips {
				require.NoError(t, r.Add(ctx, trip, false))
			}
			if len(trips) == 0 {
				// Force a save of the empty store.
				require.NoError(t, r.Add(ctx, tripFixture("tmp"), false))
				require.NoError(t, r.Remove(ctx, "tmp"))
			}

			reloaded := repo.NewTripRepo(ctx, f)

			assert.Equal(t, r.List(ctx), reloaded.List(ctx))
			assert.Len(t, reloaded.List(ctx), len(trips))
		})
	}
}

func TestTripRepo_EmptyStoreWritesSentinel(t *testing.T) {
	r, f := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))
	require.NoError(t, r.Remove(ctx, "Rome"))

	assert.Equal(t, "No trips saved yet.\n", testutil.ReadFile(t, f.Path))
}

func TestTripRepo_FileFormat(t *testing.T) {
	r, f := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))
	require.NoError(t, r.AddAccommodation(ctx, "Rome", hotelFixture("Plaza")))
	require.NoError(t, r.AddActivity(ctx, "Rome", activityFixture("Colosseum tour")))

	want := "TRIP|Rome|Italy|Leisure|2024-06-01|2024-06-03|3|2024-05-01 09:30\n" +
		"ACC|Hotel|Plaza|Via Roma 1|2024-06-01|2024-06-03|ABC123\n" +
		"ACT|Colosseum tour|2024-06-02|10:00|Piazza del Colosseo|bring water\n" +
		"END\n"
	assert.Equal(t, want, testutil.ReadFile(t, f.Path))
}

func TestTripRepo_Load_TrailingBlockWithoutEnd(t *testing.T) {
	f := testutil.DataFile(t, "travel_data.txt")
	testutil.WriteFile(t, f.Path,
		"TRIP|Rome|Italy|Leisure|2024-06-01|2024-06-03|3|2024-05-01 09:30\n"+
			"END\n"+
			"\n"+
			"TRIP|Paris|France|Business|2024-07-01|2024-07-02|2|\n"+
			"ACT|Louvre|2024-07-01|||\n")

	r := repo.NewTripRepo(context.Background(), f)

	trips := r.List(context.Background())
	require.Len(t, trips, 2)
	assert.Equal(t, "Paris", trips[1].Name)
	require.Len(t, trips[1].Activities, 1)
	assert.Equal(t, "Louvre", trips[1].Activities[0].Description)
	assert.True(t, trips[1].Created.IsZero())
}

func TestTripRepo_Load_ExtraFieldsIgnored(t *testing.T) {
	f := testutil.DataFile(t, "travel_data.txt")
	testutil.WriteFile(t, f.Path,
		"TRIP|Rome|Italy|Leisure|2024-06-01|2024-06-03|3|2024-05-01 09:30|extra\nEND\n")

	r := repo.NewTripRepo(context.Background(), f)

	assert.Equal(t, []string{"Rome"}, r.Names(context.Background()))
}

func TestTripRepo_Load_MissingFileIsEmpty(t *testing.T) {
	f, logs := testutil.CapturingDataFile(t, "travel_data.txt")

	r := repo.NewTripRepo(context.Background(), f)

	assert.Empty(t, r.List(context.Background()))
	assert.Contains(t, logs.String(), "no trips file found")
}

func TestTripRepo_Load_MalformedStartsEmpty(t *testing.T) {
	cases := map[string]string{
		"bad duration":      "TRIP|Rome|Italy|Leisure|2024-06-01|2024-06-03|three|\nEND\n",
		"bad date":          "TRIP|Rome|Italy|Leisure|June 1|2024-06-03|3|\nEND\n",
		"too few fields":    "TRIP|Rome|Italy\nEND\n",
		"unknown record":    "TRIP|Rome|Italy|Leisure|2024-06-01|2024-06-03|3|\nFOO|bar\nEND\n",
		"orphan nested row": "ACC|Hotel|Plaza|addr|2024-06-01|2024-06-03|X\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			f, logs := testutil.CapturingDataFile(t, "travel_data.txt")
			testutil.WriteFile(t, f.Path, content)

			r := repo.NewTripRepo(context.Background(), f)

			assert.Empty(t, r.List(context.Background()))
			assert.Contains(t, logs.String(), "trips load failed, starting empty")
		})
	}
}

func TestTripRepo_SaveFailure_ReturnsErrPersistAndKeepsMemory(t *testing.T) {
	r := repo.NewTripRepo(context.Background(), testutil.Unwritable(t))
	ctx := context.Background()

	err := r.Add(ctx, tripFixture("Rome"), false)

	assert.ErrorIs(t, err, domain.ErrPersist)
	_, ok := r.Get(ctx, "Rome")
	assert.True(t, ok, "in-memory state stays ahead of disk")
}

func TestTripRepo_EndToEndScenario(t *testing.T) {
	r, f := newTestRepo(t)
	ctx := context.Background()

	rome := domain.Trip{
		Name:        "Rome",
		Destination: "Italy",
		TravelStyle: "Leisure",
		Start:       date(2024, 6, 1),
		End:         date(2024, 6, 3),
		Duration:    3,
		Created:     time.Date(2024, 5, 20, 18, 5, 0, 0, time.UTC),
	}
	plaza := domain.Accommodation{Type: "Hotel", Name: "Plaza", CheckIn: date(2024, 6, 1), CheckOut: date(2024, 6, 3)}
	tour := domain.Activity{Description: "Colosseum tour", Date: date(2024, 6, 2)}

	require.NoError(t, r.Add(ctx, rome, false))
	require.NoError(t, r.AddAccommodation(ctx, "Rome", plaza))
	require.NoError(t, r.AddActivity(ctx, "Rome", tour))

	reloaded := repo.NewTripRepo(ctx, f)
	got, ok := reloaded.Get(ctx, "Rome")

	require.True(t, ok)
	assert.Equal(t, 3, got.Duration)
	assert.Equal(t, rome.Start, got.Start)
	assert.Equal(t, rome.End, got.End)
	assert.Equal(t, rome.Created, got.Created)
	assert.Equal(t, []domain.Accommodation{plaza}, got.Accommodations)
	assert.Equal(t, []domain.Activity{tour}, got.Activities)
}

// The last field of ACC and ACT records is free text; trailing whitespace in
// it must survive a reload like any other character.
func TestTripRepo_RoundTrip_KeepsTrailingWhitespace(t *testing.T) {
	r, f := newTestRepo(t)
	ctx := context.Background()
	hotel := hotelFixture("Plaza")
	hotel.Confirmation = "ABC123 "
	tour := activityFixture("Market")
	tour.Notes = "bring cash\t"

	require.NoError(t, r.Add(ctx, tripFixture("Rome"), false))
	require.NoError(t, r.AddAccommodation(ctx, "Rome", hotel))
	require.NoError(t, r.AddActivity(ctx, "Rome", tour))

	reloaded := repo.NewTripRepo(ctx, f)

	assert.Equal(t, []domain.Accommodation{hotel}, reloaded.ListAccommodations(ctx, "Rome"))
	assert.Equal(t, []domain.Activity{tour}, reloaded.ListActivities(ctx, "Rome"))
}

// Stray padding around record tags and the created stamp is still tolerated.
func TestTripRepo_Load_PaddedTagsAndStamp(t *testing.T) {
	f := testutil.DataFile(t, "travel_data.txt")
	testutil.WriteFile(t, f.Path,
		"  TRIP|Rome|Italy|Leisure|2024-06-01|2024-06-03|3|2024-05-01 09:30 \r\n"+
			"END \r\n")

	r := repo.NewTripRepo(context.Background(), f)

	got, ok := r.Get(context.Background(), "Rome")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC), got.Created)
}

func TestTripRepo_ConcurrentMutations(t *testing.T) {
	r, f := newTestRepo(t)
	ctx := context.Background()
	const n = 20

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("Trip %02d", i)
			if err := r.Add(ctx, tripFixture(name), false); err != nil {
				t.Errorf("Add %s: %v", name, err)
				return
			}
			if err := r.AddActivity(ctx, name, activityFixture("Walk")); err != nil {
				t.Errorf("AddActivity %s: %v", name, err)
			}
			_ = r.List(ctx)
		}()
	}
	wg.Wait()

	reloaded := repo.NewTripRepo(ctx, f)
	trips := reloaded.List(ctx)
	require.Len(t, trips, n)
	for _, tr := range trips {
		assert.Len(t, tr.Activities, 1, tr.Name)
	}
}

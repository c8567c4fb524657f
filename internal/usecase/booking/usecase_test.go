package booking_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yung988/eliceli-salon/internal/audit"
	dbpkg "github.com/yung988/eliceli-salon/internal/db"
	domain "github.com/yung988/eliceli-salon/internal/domain/booking"
	"github.com/yung988/eliceli-salon/internal/httperr"
	infraRepo "github.com/yung988/eliceli-salon/internal/infra/repository"
	"github.com/yung988/eliceli-salon/internal/models"
	ucbooking "github.com/yung988/eliceli-salon/internal/usecase/booking"
)

// 2026-09-07 je pondělí (otevřeno 9-19), 2026-09-06 neděle (zavřeno),
// 2026-09-05 sobota (otevřeno 9-14).
const (
	monday   = "2026-09-07"
	sunday   = "2026-09-06"
	saturday = "2026-09-05"
)

type fixture struct {
	db        *gorm.DB
	repo      *infraRepo.BookingGormRepository
	create    *ucbooking.CreateBooking
	calCreate *ucbooking.CreateFromCalendar
	avail     *ucbooking.GetAvailability
	status    *ucbooking.UpdateStatus
	calendar  *ucbooking.Calendar
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(gdb))

	log := zerolog.Nop()
	repo := infraRepo.NewBookingGormRepository(gdb, log)
	dispatcher := audit.NewDispatcher(audit.New(gdb), log)
	hours := domain.DefaultBusinessHours()

	return &fixture{
		db:        gdb,
		repo:      repo,
		create:    ucbooking.NewCreateBooking(repo, hours, dispatcher, log),
		calCreate: ucbooking.NewCreateFromCalendar(repo, dispatcher),
		avail:     ucbooking.NewGetAvailability(repo, hours, log),
		status:    ucbooking.NewUpdateStatus(repo, dispatcher),
		calendar:  ucbooking.NewCalendar(repo),
	}
}

func (f *fixture) seedService(t *testing.T, name string, durationMin int) models.Service {
	t.Helper()
	svc := models.Service{Name: name, DurationMin: durationMin, Price: 500}
	require.NoError(t, f.db.Create(&svc).Error)
	return svc
}

func publicInput(serviceID uint, date, tm string) ucbooking.CreateBookingInput {
	return ucbooking.CreateBookingInput{
		ServiceID:   serviceID,
		Date:        date,
		Time:        tm,
		ClientName:  "Jana Nováková",
		ClientEmail: "jana@example.com",
		ClientPhone: "+420777123456",
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBookingDerivesEndTime(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Dámský střih", 60)

	b, err := f.create.Execute(context.Background(), publicInput(svc.ID, monday, "10:00"))
	require.NoError(t, err)

	assert.Equal(t, "11:00", b.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.NotEmpty(t, b.Reference)

	// viditelné přes kalendář včetně klienta a služby
	listed, err := f.calendar.Range(context.Background(), monday, monday)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Jana Nováková", listed[0].ClientName)
	assert.Equal(t, "Dámský střih", listed[0].ServiceName)
}

func TestCreateBookingUpsertsClientByEmail(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Foukaná", 30)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, publicInput(svc.ID, monday, "09:00"))
	require.NoError(t, err)

	// stejný e-mail jinak napsaný, nové jméno i telefon
	in := publicInput(svc.ID, monday, "12:00")
	in.ClientEmail = "  JANA@Example.com "
	in.ClientName = "Jana Svobodová"
	in.ClientPhone = "+420606999888"
	_, err = f.create.Execute(ctx, in)
	require.NoError(t, err)

	var clients []models.Client
	require.NoError(t, f.db.Find(&clients).Error)
	require.Len(t, clients, 1, "opakovaný e-mail nesmí založit druhého klienta")
	assert.Equal(t, "jana@example.com", clients[0].Email)
	assert.Equal(t, "Jana Svobodová", clients[0].Name)
	assert.Equal(t, "+420606999888", clients[0].Phone)

	var count int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateBookingRejectsConflict(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Barvení", 120)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, publicInput(svc.ID, monday, "10:00"))
	require.NoError(t, err)

	// překryv 11:00 se zásahem do 10:00-12:00
	_, err = f.create.Execute(ctx, publicInput(svc.ID, monday, "11:00"))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCreateBookingCancelledDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Pánský střih", 30)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, publicInput(svc.ID, monday, "10:00"))
	require.NoError(t, err)

	_, err = f.status.Execute(ctx, 1, b.ID, domain.StatusCancelled)
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, publicInput(svc.ID, monday, "10:00"))
	assert.NoError(t, err, "zrušená rezervace nesmí blokovat termín")
}

func TestCreateBookingOutsideBusinessHours(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Dámský střih", 60)
	ctx := context.Background()

	cases := []struct {
		name string
		date string
		time string
	}{
		{"neděle zavřeno", sunday, "10:00"},
		{"před otevřením", monday, "08:30"},
		{"konec po zavíračce", saturday, "13:30"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.create.Execute(ctx, publicInput(svc.ID, tc.date, tc.time))
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))
		})
	}
}

func TestCreateBookingInvalidInput(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Dámský střih", 60)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, publicInput(svc.ID, "07-09-2026", "10:00"))
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = f.create.Execute(ctx, publicInput(svc.ID, monday, "25:00"))
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))

	in := publicInput(svc.ID, monday, "10:00")
	in.ClientEmail = "neni-email"
	_, err = f.create.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_contact"))

	_, err = f.create.Execute(ctx, publicInput(9999, monday, "10:00"))
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

// ======================================================
// AVAILABILITY
// ======================================================

func TestAvailabilityExcludesConfirmed(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Melír", 50)
	ctx := context.Background()

	in := publicInput(svc.ID, monday, "10:00")
	_, err := f.create.Execute(ctx, in)
	require.NoError(t, err)

	slots, err := f.avail.Execute(ctx, monday, svc.ID)
	require.NoError(t, err)

	assert.NotContains(t, slots, "09:30", "konec 10:20 křižuje rezervaci")
	assert.NotContains(t, slots, "10:00")
	assert.NotContains(t, slots, "10:30")
	assert.Contains(t, slots, "09:00")
	assert.Contains(t, slots, "11:00")
}

func TestAvailabilityClosedDayIsEmpty(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Foukaná", 30)

	slots, err := f.avail.Execute(context.Background(), sunday, svc.ID)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailabilityUnknownServiceUsesDefaultDuration(t *testing.T) {
	f := newFixture(t)

	slots, err := f.avail.Execute(context.Background(), monday, 9999)
	require.NoError(t, err)

	// výchozích 60 minut: poslední začátek 18:00 končí přesně v 19:00
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "18:00", slots[len(slots)-1])
}

// ======================================================
// STATUS LIFECYCLE
// ======================================================

func TestUpdateStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Dámský střih", 60)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, publicInput(svc.ID, monday, "10:00"))
	require.NoError(t, err)

	updated, err := f.status.Execute(ctx, 1, b.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), updated.Status)

	// completed je koncový stav
	_, err = f.status.Execute(ctx, 1, b.ID, domain.StatusCancelled)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = f.status.Execute(ctx, 1, b.ID, domain.Status("nesmysl"))
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = f.status.Execute(ctx, 1, 9999, domain.StatusCancelled)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

// ======================================================
// CALENDAR
// ======================================================

func TestCreateFromCalendarSkipsAvailabilityCheck(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Společenský účes", 90)
	ctx := context.Background()

	// admin může zapsat i mimo otevírací dobu (neděle)
	b, err := f.calCreate.Execute(ctx, 1, ucbooking.CreateFromCalendarInput{
		ClientName:  "Petra Malá",
		ClientEmail: "petra@example.com",
		ServiceID:   svc.ID,
		Date:        sunday,
		StartTime:   "11:00",
		EndTime:     "12:30",
		Status:      string(domain.StatusPending),
	})
	require.NoError(t, err)
	assert.Equal(t, "12:30", b.EndTime)
	assert.Equal(t, string(domain.StatusPending), b.Status)

	// pending → confirmed je platný přechod
	_, err = f.status.Execute(ctx, 1, b.ID, domain.StatusConfirmed)
	assert.NoError(t, err)
}

func TestCreateFromCalendarValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Foukaná", 30)
	ctx := context.Background()

	_, err := f.calCreate.Execute(ctx, 1, ucbooking.CreateFromCalendarInput{
		ClientEmail: "x@example.com",
		ServiceID:   svc.ID,
		Date:        monday,
		StartTime:   "11:00",
		EndTime:     "10:00",
		Status:      string(domain.StatusPending),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_time"), "konec před začátkem")

	_, err = f.calCreate.Execute(ctx, 1, ucbooking.CreateFromCalendarInput{
		ClientEmail: "x@example.com",
		ServiceID:   svc.ID,
		Date:        monday,
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      "nesmysl",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = f.calCreate.Execute(ctx, 1, ucbooking.CreateFromCalendarInput{
		ServiceID: svc.ID,
		Date:      monday,
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    string(domain.StatusPending),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_contact"), "bez klienta")
}

func TestCalendarRange(t *testing.T) {
	f := newFixture(t)
	svc := f.seedService(t, "Pánský střih", 30)
	ctx := context.Background()

	for _, tm := range []string{"11:00", "09:00"} {
		_, err := f.create.Execute(ctx, publicInput(svc.ID, monday, tm))
		require.NoError(t, err)
	}
	in := publicInput(svc.ID, saturday, "09:00")
	in.ClientEmail = "druha@example.com"
	_, err := f.create.Execute(ctx, in)
	require.NoError(t, err)

	listed, err := f.calendar.Range(ctx, saturday, monday)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	// řazení podle (datum, začátek)
	assert.Equal(t, saturday, listed[0].BookingDate)
	assert.Equal(t, "09:00", listed[1].StartTime)
	assert.Equal(t, "11:00", listed[2].StartTime)

	_, err = f.calendar.Range(ctx, monday, saturday)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))

	occupants, err := f.calendar.SlotOccupants(ctx, monday, "09:00")
	require.NoError(t, err)
	require.Len(t, occupants, 1)
	assert.Equal(t, "09:00", occupants[0].StartTime)
}

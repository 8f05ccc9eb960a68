package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/vinimqsz/projeto-eng-software/internal/dto"
	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
	pkgerrors "github.com/vinimqsz/projeto-eng-software/pkg/errors"
)

// ── test helpers ──

const (
	testTerm = "t-2025-1"
	testLab  = "room-lab3"
	testSala = "room-sala101"
	testDisc = "disc-mata01"
	testProf = "prof-1001"
)

func setupTestBookingService() (BookingService, *mockRepos) {
	repo, m := newMockRepos()
	seedCatalog(m)
	return NewBookingService(repo, zap.NewNop()), m
}

func seedCatalog(m *mockRepos) {
	seedTerm(m, testTerm, 2025, 1, true)
	m.rooms.rooms[testLab] = &model.Room{RoomID: testLab, Name: "Lab 3", Kind: model.RoomKindLab, Capacity: 30, IsActive: true}
	m.rooms.rooms[testSala] = &model.Room{RoomID: testSala, Name: "Sala 101", Kind: model.RoomKindClassroom, Capacity: 60, IsActive: true}
	m.disciplines.items[testDisc] = &model.Discipline{DisciplineID: testDisc, Code: "MATA01", Name: "Cálculo A", WorkloadHours: 68, IsActive: true}
	m.professors.items[testProf] = &model.Professor{ProfessorID: testProf, Registration: "1001", Name: "Ana Souza", Department: "DMAT"}
}

func seedBooking(m *mockRepos, id, roomID string, day scheduling.Weekday, start, end string, active bool) *model.Booking {
	b := &model.Booking{
		BookingID:    id,
		TermID:       testTerm,
		RoomID:       roomID,
		DisciplineID: testDisc,
		ProfessorID:  testProf,
		DayOfWeek:    int(day),
		StartTime:    model.FromTimeOfDay(scheduling.MustParseTimeOfDay(start)),
		EndTime:      model.FromTimeOfDay(scheduling.MustParseTimeOfDay(end)),
		StudentCount: 25,
		IsActive:     active,
	}
	b.Version = 1
	m.bookings.items[id] = b
	return b
}

func bookingReq(roomID string, day scheduling.Weekday, start, end string) *dto.BookingRequest {
	d := int(day)
	return &dto.BookingRequest{
		TermID:       testTerm,
		RoomID:       roomID,
		DisciplineID: testDisc,
		ProfessorID:  testProf,
		DayOfWeek:    &d,
		StartTime:    start,
		EndTime:      end,
		StudentCount: 20,
	}
}

func ptr[T any](v T) *T { return &v }

// ── Create ──

func TestBookingCreate_Success(t *testing.T) {
	svc, m := setupTestBookingService()

	resp, err := svc.Create(context.Background(), bookingReq(testLab, scheduling.Monday, "08:00", "10:00"), "coord-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.StartTime != "08:00" || resp.EndTime != "10:00" {
		t.Errorf("expected 08:00-10:00, got %s-%s", resp.StartTime, resp.EndTime)
	}
	if !resp.IsActive {
		t.Error("bookings default to active")
	}
	if resp.Room == nil || resp.Room.Name != "Lab 3" {
		t.Errorf("expected nested room Lab 3, got %+v", resp.Room)
	}
	if len(m.bookings.items) != 1 {
		t.Errorf("expected 1 stored booking, got %d", len(m.bookings.items))
	}
	if len(m.rooms.locked) != 1 || m.rooms.locked[0] != testLab {
		t.Errorf("expected room %s locked during the write, got %v", testLab, m.rooms.locked)
	}
}

func TestBookingCreate_Conflict(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-existing", testLab, scheduling.Monday, "08:00", "10:00", true)

	_, err := svc.Create(context.Background(), bookingReq(testLab, scheduling.Monday, "09:00", "11:00"), "coord-1")

	var conflict *BookingConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *BookingConflictError, got %v", err)
	}
	if !errors.Is(err, scheduling.ErrConflict) {
		t.Error("conflict error should match scheduling.ErrConflict")
	}
	if len(conflict.Conflicts) != 1 {
		t.Fatalf("expected 1 conflicting booking, got %d", len(conflict.Conflicts))
	}
	c := conflict.Conflicts[0]
	if c.BookingID != "bk-existing" || c.DisciplineCode != "MATA01" || c.RoomName != "Lab 3" {
		t.Errorf("unexpected conflict item %+v", c)
	}
	if c.StartTime != "08:00" || c.EndTime != "10:00" {
		t.Errorf("expected conflicting interval 08:00-10:00, got %s-%s", c.StartTime, c.EndTime)
	}
	if len(m.bookings.items) != 1 {
		t.Error("a conflicting booking must not be stored")
	}
}

func TestBookingCreate_ReportsEveryConflict(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-a", testLab, scheduling.Tuesday, "08:00", "10:00", true)
	seedBooking(m, "bk-b", testLab, scheduling.Tuesday, "10:00", "12:00", true)

	_, err := svc.Create(context.Background(), bookingReq(testLab, scheduling.Tuesday, "09:00", "11:00"), "coord-1")

	var conflict *BookingConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *BookingConflictError, got %v", err)
	}
	if len(conflict.Conflicts) != 2 {
		t.Errorf("expected 2 conflicts, got %d", len(conflict.Conflicts))
	}
}

func TestBookingCreate_NoConflictCases(t *testing.T) {
	tests := []struct {
		name string
		req  *dto.BookingRequest
	}{
		{"touching after", bookingReq(testLab, scheduling.Monday, "10:00", "12:00")},
		{"touching before", bookingReq(testLab, scheduling.Monday, "06:00", "08:00")},
		{"other day", bookingReq(testLab, scheduling.Tuesday, "08:00", "10:00")},
		{"other room", bookingReq(testSala, scheduling.Monday, "08:00", "10:00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setupTestBookingService()
			seedBooking(m, "bk-existing", testLab, scheduling.Monday, "08:00", "10:00", true)

			if _, err := svc.Create(context.Background(), tt.req, "coord-1"); err != nil {
				t.Errorf("expected no conflict, got %v", err)
			}
		})
	}
}

func TestBookingCreate_InactiveRowsIgnored(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-old", testLab, scheduling.Monday, "08:00", "10:00", false)

	if _, err := svc.Create(context.Background(), bookingReq(testLab, scheduling.Monday, "08:30", "09:30"), "coord-1"); err != nil {
		t.Errorf("inactive bookings must not block new ones, got %v", err)
	}
}

func TestBookingCreate_InactiveProposalSkipsCheck(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-existing", testLab, scheduling.Monday, "08:00", "10:00", true)

	req := bookingReq(testLab, scheduling.Monday, "08:30", "09:30")
	req.IsActive = ptr(false)
	resp, err := svc.Create(context.Background(), req, "coord-1")
	if err != nil {
		t.Fatalf("inactive booking should be stored without a check, got %v", err)
	}
	if resp.IsActive {
		t.Error("expected inactive booking")
	}
}

func TestBookingCreate_DuplicateStart(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-existing", testLab, scheduling.Monday, "08:00", "10:00", true)

	req := bookingReq(testLab, scheduling.Monday, "08:00", "09:00")
	req.IsActive = ptr(false)
	if _, err := svc.Create(context.Background(), req, "coord-1"); !errors.Is(err, ErrBookingDuplicate) {
		t.Errorf("expected ErrBookingDuplicate, got %v", err)
	}
}

func TestBookingCreate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  func() *dto.BookingRequest
		want error
	}{
		{"end before start", func() *dto.BookingRequest {
			return bookingReq(testLab, scheduling.Monday, "10:00", "09:00")
		}, scheduling.ErrInvalidInterval},
		{"zero length", func() *dto.BookingRequest {
			return bookingReq(testLab, scheduling.Monday, "10:00", "10:00")
		}, scheduling.ErrInvalidInterval},
		{"bad time", func() *dto.BookingRequest {
			return bookingReq(testLab, scheduling.Monday, "25:00", "26:00")
		}, ErrBookingTimeInvalid},
		{"bad day", func() *dto.BookingRequest {
			r := bookingReq(testLab, scheduling.Monday, "08:00", "10:00")
			r.DayOfWeek = ptr(7)
			return r
		}, ErrBookingDayInvalid},
		{"missing day", func() *dto.BookingRequest {
			r := bookingReq(testLab, scheduling.Monday, "08:00", "10:00")
			r.DayOfWeek = nil
			return r
		}, ErrBookingDayInvalid},
		{"bad shutdown", func() *dto.BookingRequest {
			r := bookingReq(testLab, scheduling.Monday, "08:00", "10:00")
			r.ExceptionalShutdown = ptr("31/12/2025")
			return r
		}, ErrBookingDateInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setupTestBookingService()
			if _, err := svc.Create(context.Background(), tt.req(), "coord-1"); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if len(m.bookings.items) != 0 {
				t.Error("invalid booking must not be stored")
			}
		})
	}
}

func TestBookingCreate_References(t *testing.T) {
	svc, m := setupTestBookingService()
	m.rooms.rooms[testSala].IsActive = false

	if _, err := svc.Create(context.Background(), bookingReq(testSala, scheduling.Monday, "08:00", "10:00"), "c"); !errors.Is(err, ErrRoomInactive) {
		t.Errorf("expected ErrRoomInactive, got %v", err)
	}

	req := bookingReq(testLab, scheduling.Monday, "08:00", "10:00")
	req.TermID = "missing"
	if _, err := svc.Create(context.Background(), req, "c"); !errors.Is(err, ErrTermNotFound) {
		t.Errorf("expected ErrTermNotFound, got %v", err)
	}

	req = bookingReq("missing", scheduling.Monday, "08:00", "10:00")
	if _, err := svc.Create(context.Background(), req, "c"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}

	req = bookingReq(testLab, scheduling.Monday, "08:00", "10:00")
	req.ProfessorID = "missing"
	if _, err := svc.Create(context.Background(), req, "c"); !errors.Is(err, ErrProfessorNotFound) {
		t.Errorf("expected ErrProfessorNotFound, got %v", err)
	}

	m.disciplines.items[testDisc].IsActive = false
	req = bookingReq(testLab, scheduling.Monday, "08:00", "10:00")
	if _, err := svc.Create(context.Background(), req, "c"); !errors.Is(err, ErrDisciplineInactive) {
		t.Errorf("expected ErrDisciplineInactive, got %v", err)
	}
}

// ── Update ──

func TestBookingUpdate_ExcludesSelf(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)

	resp, err := svc.Update(context.Background(), "bk-1", &dto.UpdateBookingRequest{
		StartTime: ptr("08:30"),
		EndTime:   ptr("10:30"),
	}, "coord-1")
	if err != nil {
		t.Fatalf("moving a booking over its own slot must not conflict, got %v", err)
	}
	if resp.StartTime != "08:30" || resp.Version != 2 {
		t.Errorf("expected 08:30 at version 2, got %s at %d", resp.StartTime, resp.Version)
	}
}

func TestBookingUpdate_Conflict(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)
	seedBooking(m, "bk-2", testSala, scheduling.Monday, "09:00", "11:00", true)

	_, err := svc.Update(context.Background(), "bk-2", &dto.UpdateBookingRequest{RoomID: ptr(testLab)}, "coord-1")
	if !errors.Is(err, scheduling.ErrConflict) {
		t.Fatalf("expected conflict moving into Lab 3, got %v", err)
	}
	if m.bookings.items["bk-2"].RoomID != testSala {
		t.Error("rejected update must leave the booking unchanged")
	}
}

func TestBookingUpdate_DeactivationSkipsCheck(t *testing.T) {
	svc, m := setupTestBookingService()
	// legacy overlap that predates the check
	seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)
	seedBooking(m, "bk-2", testLab, scheduling.Monday, "09:00", "11:00", true)

	resp, err := svc.Update(context.Background(), "bk-2", &dto.UpdateBookingRequest{IsActive: ptr(false)}, "coord-1")
	if err != nil {
		t.Fatalf("deactivation should not run the conflict check, got %v", err)
	}
	if resp.IsActive {
		t.Error("expected inactive booking")
	}
	if len(m.rooms.locked) != 0 {
		t.Errorf("deactivation should not lock the room, got %v", m.rooms.locked)
	}
}

func TestBookingUpdate_Reactivation(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)
	seedBooking(m, "bk-2", testLab, scheduling.Monday, "09:00", "11:00", false)

	_, err := svc.Update(context.Background(), "bk-2", &dto.UpdateBookingRequest{IsActive: ptr(true)}, "coord-1")
	if !errors.Is(err, scheduling.ErrConflict) {
		t.Errorf("reactivating into an occupied slot should conflict, got %v", err)
	}
}

func TestBookingUpdate_Errors(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)

	if _, err := svc.Update(context.Background(), "bk-1", &dto.UpdateBookingRequest{Version: ptr(7)}, "c"); !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("expected ErrOptimisticLock, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "bk-1", &dto.UpdateBookingRequest{EndTime: ptr("07:00")}, "c"); !errors.Is(err, scheduling.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", &dto.UpdateBookingRequest{}, "c"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestBookingUpdate_ClearShutdown(t *testing.T) {
	svc, m := setupTestBookingService()
	b := seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)
	d := date(2025, 6, 1)
	b.ExceptionalShutdown = &d

	resp, err := svc.Update(context.Background(), "bk-1", &dto.UpdateBookingRequest{ExceptionalShutdown: ptr("")}, "c")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if resp.ExceptionalShutdown != nil || m.bookings.items["bk-1"].ExceptionalShutdown != nil {
		t.Error("empty exceptional_shutdown should clear the date")
	}
}

// ── Delete / List ──

func TestBookingDelete(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)

	if err := svc.Delete(context.Background(), "bk-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), "bk-1"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestBookingList_Filters(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)
	seedBooking(m, "bk-2", testLab, scheduling.Wednesday, "08:00", "10:00", true)
	seedBooking(m, "bk-3", testSala, scheduling.Monday, "14:00", "16:00", false)

	list, total, err := svc.List(context.Background(), &dto.BookingListRequest{DayOfWeek: ptr(int(scheduling.Monday))})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Errorf("expected 2 Monday bookings, got %d", total)
	}
	if list[0].DayName != scheduling.Monday.String() {
		t.Errorf("expected day name %s, got %s", scheduling.Monday.String(), list[0].DayName)
	}

	_, total, _ = svc.List(context.Background(), &dto.BookingListRequest{ActiveOnly: true, RoomID: testSala})
	if total != 0 {
		t.Errorf("expected no active bookings in Sala 101, got %d", total)
	}
}

// ── Check ──

func TestBookingCheck_DryRun(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)

	resp, err := svc.Check(context.Background(), bookingReq(testLab, scheduling.Monday, "09:00", "11:00"))
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !resp.Conflict || len(resp.Conflicts) != 1 || resp.Conflicts[0].BookingID != "bk-1" {
		t.Errorf("expected conflict with bk-1, got %+v", resp)
	}
	if len(m.bookings.items) != 1 || len(m.rooms.locked) != 0 {
		t.Error("Check must not write or lock")
	}

	resp, err = svc.Check(context.Background(), bookingReq(testLab, scheduling.Monday, "10:00", "11:00"))
	if err != nil || resp.Conflict || resp.Conflicts == nil {
		t.Errorf("expected free slot with empty conflicts, got %+v / %v", resp, err)
	}
}

func TestBookingCheck_ExcludesEditedBooking(t *testing.T) {
	svc, m := setupTestBookingService()
	seedBooking(m, "bk-1", testLab, scheduling.Monday, "08:00", "10:00", true)

	req := bookingReq(testLab, scheduling.Monday, "09:00", "11:00")
	req.BookingID = "bk-1"
	resp, err := svc.Check(context.Background(), req)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if resp.Conflict {
		t.Errorf("a booking cannot conflict with itself, got %+v", resp.Conflicts)
	}
}

func TestBookingCheck_InvalidInterval(t *testing.T) {
	svc, _ := setupTestBookingService()

	if _, err := svc.Check(context.Background(), bookingReq(testLab, scheduling.Monday, "11:00", "09:00")); !errors.Is(err, scheduling.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

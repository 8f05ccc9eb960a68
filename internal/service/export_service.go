package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/internal/repository"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
)

// ── Export errors ──

var (
	ErrExportNoBookings   = errors.New("term has no active bookings")
	ErrExportGenerateFail = errors.New("generate export file failed")
)

// ExportService renders a term's bookings as downloadable files.
//
// Files are returned in memory; the handler sets the download headers.
type ExportService interface {
	// ExportTimetable builds an .xlsx workbook with one sheet per room.
	ExportTimetable(ctx context.Context, termID string) (*bytes.Buffer, string, error)
	// ExportRoomCalendar builds an iCalendar feed with one weekly event per
	// booking of the room, recurring until the end of the term.
	ExportRoomCalendar(ctx context.Context, termID, roomID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportTimetable
// ═══════════════════════════════════════════════════════════
//
// Layout per sheet (sheet name = room name):
//   - row 1: "<room> | <term label>"
//   - row 2: header
//   - rows 3..: bookings ordered by day then start time

func (s *exportService) ExportTimetable(ctx context.Context, termID string) (*bytes.Buffer, string, error) {
	term, err := s.getTerm(ctx, termID)
	if err != nil {
		return nil, "", err
	}

	bookings, err := s.repo.Booking.ListByTerm(ctx, termID, true)
	if err != nil {
		s.logger.Error("list term bookings failed", zap.Error(err))
		return nil, "", err
	}
	if len(bookings) == 0 {
		return nil, "", ErrExportNoBookings
	}

	byRoom := groupByRoom(bookings)

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})

	headers := []string{"Dia", "Início", "Fim", "Disciplina", "Professor", "Alunos", "Encerramento"}
	used := make(map[string]bool)

	for i, group := range byRoom {
		sheet := sheetName(group.name, used)
		if i == 0 {
			_ = f.SetSheetName("Sheet1", sheet)
		} else if _, err := f.NewSheet(sheet); err != nil {
			s.logger.Error("create sheet failed", zap.String("sheet", sheet), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}

		_ = f.SetColWidth(sheet, "A", "A", 16)
		_ = f.SetColWidth(sheet, "B", "C", 8)
		_ = f.SetColWidth(sheet, "D", "E", 32)
		_ = f.SetColWidth(sheet, "F", "G", 14)

		_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("%s | %s", group.name, term.Label()))
		_ = f.MergeCell(sheet, "A1", cell(colName(len(headers)-1), 1))
		_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

		for c, h := range headers {
			_ = f.SetCellValue(sheet, cell(colName(c), 2), h)
		}
		_ = f.SetCellStyle(sheet, "A2", cell(colName(len(headers)-1), 2), headerStyle)

		row := 3
		for _, b := range group.bookings {
			disc, prof := "", ""
			if b.Discipline != nil {
				disc = b.Discipline.Code + " - " + b.Discipline.Name
			}
			if b.Professor != nil {
				prof = b.Professor.Name
			}
			shutdown := ""
			if b.ExceptionalShutdown != nil {
				shutdown = formatDate(*b.ExceptionalShutdown)
			}

			values := []interface{}{
				scheduling.Weekday(b.DayOfWeek).String(),
				model.ToTimeOfDay(b.StartTime).String(),
				model.ToTimeOfDay(b.EndTime).String(),
				disc,
				prof,
				b.StudentCount,
				shutdown,
			}
			for c, v := range values {
				_ = f.SetCellValue(sheet, cell(colName(c), row), v)
			}
			row++
		}
	}
	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("horarios_%s.xlsx", term.Label()), nil
}

// ═══════════════════════════════════════════════════════════
// ExportRoomCalendar
// ═══════════════════════════════════════════════════════════

// icsLocal is the floating local time layout (no zone designator).
const icsLocal = "20060102T150405"

func (s *exportService) ExportRoomCalendar(ctx context.Context, termID, roomID string) ([]byte, string, error) {
	term, err := s.getTerm(ctx, termID)
	if err != nil {
		return nil, "", err
	}
	room, err := s.repo.Room.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrRoomNotFound
		}
		s.logger.Error("get room failed", zap.Error(err))
		return nil, "", err
	}

	bookings, _, err := s.repo.Booking.List(ctx, repository.BookingFilter{
		TermID:     termID,
		RoomID:     roomID,
		ActiveOnly: true,
	}, 0, -1)
	if err != nil {
		s.logger.Error("list room bookings failed", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Luminoff//Facility Scheduling//PT")

	termStart := time.Time(term.StartDate)
	termEnd := time.Time(term.EndDate)
	stamp := time.Now().UTC()

	for i := range bookings {
		b := &bookings[i]
		first := firstOccurrence(termStart, scheduling.Weekday(b.DayOfWeek))
		until := termEnd
		if b.ExceptionalShutdown != nil {
			if sd := time.Time(*b.ExceptionalShutdown).AddDate(0, 0, -1); sd.Before(until) {
				until = sd
			}
		}
		if first.After(until) {
			continue
		}

		start := atTime(first, model.ToTimeOfDay(b.StartTime))
		end := atTime(first, model.ToTimeOfDay(b.EndTime))

		event := cal.AddEvent(b.BookingID + "@luminoff")
		event.SetDtStampTime(stamp)
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsLocal))
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icsLocal))
		event.AddProperty(ics.ComponentPropertyRrule,
			"FREQ=WEEKLY;UNTIL="+atTime(until, scheduling.MinutesPerDay-1).Format(icsLocal))
		event.SetLocation(room.Name)

		summary := "Aula"
		if b.Discipline != nil {
			summary = b.Discipline.Code + " " + b.Discipline.Name
		}
		event.SetSummary(summary)
		if b.Professor != nil {
			event.SetDescription(fmt.Sprintf("Professor: %s | Alunos: %d", b.Professor.Name, b.StudentCount))
		}
	}

	filename := fmt.Sprintf("%s_%s.ics", strings.ReplaceAll(room.Name, " ", "_"), term.Label())
	return []byte(cal.Serialize()), filename, nil
}

// ── helpers ──

func (s *exportService) getTerm(ctx context.Context, id string) (*model.Term, error) {
	term, err := s.repo.Term.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		s.logger.Error("get term failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return term, nil
}

type roomGroup struct {
	name     string
	bookings []model.Booking
}

// groupByRoom returns groups ordered by room name, bookings by day and start.
func groupByRoom(bookings []model.Booking) []roomGroup {
	idx := make(map[string]int)
	var groups []roomGroup
	for _, b := range bookings {
		name := b.RoomID
		if b.Room != nil {
			name = b.Room.Name
		}
		i, ok := idx[b.RoomID]
		if !ok {
			i = len(groups)
			idx[b.RoomID] = i
			groups = append(groups, roomGroup{name: name})
		}
		groups[i].bookings = append(groups[i].bookings, b)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].name < groups[j].name })
	for _, g := range groups {
		sort.SliceStable(g.bookings, func(i, j int) bool {
			if g.bookings[i].DayOfWeek != g.bookings[j].DayOfWeek {
				return g.bookings[i].DayOfWeek < g.bookings[j].DayOfWeek
			}
			return g.bookings[i].StartTime < g.bookings[j].StartTime
		})
	}
	return groups
}

// sheetName strips characters Excel rejects, caps the length at 31 and
// de-duplicates.
func sheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, name)
	if clean == "" {
		clean = "Sala"
	}
	if r := []rune(clean); len(r) > 31 {
		clean = string(r[:31])
	}
	base := clean
	for n := 2; used[clean]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		r := []rune(base)
		if len(r)+len(suffix) > 31 {
			r = r[:31-len(suffix)]
		}
		clean = string(r) + suffix
	}
	used[clean] = true
	return clean
}

// firstOccurrence is the first date on or after from that falls on day.
func firstOccurrence(from time.Time, day scheduling.Weekday) time.Time {
	want := time.Weekday((int(day) + 1) % 7) // Monday=0 → time.Monday=1
	diff := (int(want) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, diff)
}

func atTime(day time.Time, t scheduling.TimeOfDay) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vinimqsz/projeto-eng-software/internal/model"
	"github.com/vinimqsz/projeto-eng-software/internal/repository"
	"github.com/vinimqsz/projeto-eng-software/internal/scheduling"
	pkgerrors "github.com/vinimqsz/projeto-eng-software/pkg/errors"
)

// Mocks store copies so services cannot mutate "persisted" rows by pointer,
// the way a real database behaves.

type mockRepos struct {
	terms       *mockTermRepo
	rooms       *mockRoomRepo
	disciplines *mockDisciplineRepo
	professors  *mockProfessorRepo
	bookings    *mockBookingRepo
	users       *mockUserRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		terms:       &mockTermRepo{terms: map[string]*model.Term{}},
		rooms:       &mockRoomRepo{rooms: map[string]*model.Room{}},
		disciplines: &mockDisciplineRepo{items: map[string]*model.Discipline{}},
		professors:  &mockProfessorRepo{items: map[string]*model.Professor{}},
		bookings:    &mockBookingRepo{items: map[string]*model.Booking{}},
		users:       &mockUserRepo{users: map[string]*model.User{}},
	}
	m.bookings.parent = m
	repo := &repository.Repository{
		User:       m.users,
		Term:       m.terms,
		Room:       m.rooms,
		Discipline: m.disciplines,
		Professor:  m.professors,
		Booking:    m.bookings,
	}
	return repo, m
}

// ── Mock TermRepository ──

type mockTermRepo struct {
	terms     map[string]*model.Term
	activeErr error
}

func (m *mockTermRepo) Create(_ context.Context, t *model.Term) error {
	for _, other := range m.terms {
		if other.Year == t.Year && other.Period == t.Period {
			return gorm.ErrDuplicatedKey
		}
	}
	if t.TermID == "" {
		t.TermID = fmt.Sprintf("term-%d.%d", t.Year, t.Period)
	}
	if t.Version == 0 {
		t.Version = 1
	}
	cp := *t
	m.terms[t.TermID] = &cp
	return nil
}

func (m *mockTermRepo) GetByID(_ context.Context, id string) (*model.Term, error) {
	if t, ok := m.terms[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTermRepo) GetCurrent(_ context.Context) (*model.Term, error) {
	for _, t := range m.terms {
		if t.IsActive {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTermRepo) List(_ context.Context) ([]model.Term, error) {
	var result []model.Term
	for _, t := range m.terms {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Label() > result[j].Label() })
	return result, nil
}

func (m *mockTermRepo) ListActive(_ context.Context) ([]model.Term, error) {
	var result []model.Term
	for _, t := range m.terms {
		if t.IsActive {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTermRepo) Update(_ context.Context, t *model.Term) error {
	cur, ok := m.terms[t.TermID]
	if !ok || cur.Version != t.Version {
		return pkgerrors.ErrOptimisticLock
	}
	for id, other := range m.terms {
		if id != t.TermID && other.Year == t.Year && other.Period == t.Period {
			return gorm.ErrDuplicatedKey
		}
	}
	t.Version++
	cp := *t
	cp.IsActive = cur.IsActive
	m.terms[t.TermID] = &cp
	return nil
}

func (m *mockTermRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.terms[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.terms, id)
	return nil
}

func (m *mockTermRepo) ActivateExclusive(_ context.Context, id string, opts scheduling.ActivateOptions) error {
	if m.activeErr != nil {
		return m.activeErr
	}
	states := make([]scheduling.TermState, 0, len(m.terms))
	for _, t := range m.terms {
		states = append(states, scheduling.TermState{
			ID:        t.TermID,
			Active:    t.IsActive,
			StartedAt: (*time.Time)(t.StartedAt),
			EndedAt:   (*time.Time)(t.EndedAt),
		})
	}
	out, ok := scheduling.ApplyActivation(states, id, opts.Stamp)
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, st := range out {
		t := m.terms[st.ID]
		t.IsActive = st.Active
		t.StartedAt = (*datatypes.Date)(st.StartedAt)
		t.EndedAt = (*datatypes.Date)(st.EndedAt)
	}
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms  map[string]*model.Room
	locked []string
}

func (m *mockRoomRepo) Create(_ context.Context, r *model.Room) error {
	for _, other := range m.rooms {
		if other.Name == r.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if r.RoomID == "" {
		r.RoomID = "room-" + strings.ReplaceAll(strings.ToLower(r.Name), " ", "-")
	}
	cp := *r
	m.rooms[r.RoomID] = &cp
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) LockByID(ctx context.Context, id string) (*model.Room, error) {
	m.locked = append(m.locked, id)
	return m.GetByID(ctx, id)
}

func (m *mockRoomRepo) List(_ context.Context, f repository.RoomFilter, offset, limit int) ([]model.Room, int64, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if !f.IncludeInactive && !r.IsActive {
			continue
		}
		if f.Kind != "" && r.Kind != f.Kind {
			continue
		}
		if f.MinCapacity > 0 && r.Capacity < f.MinCapacity {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Search)) {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	total := int64(len(result))
	return page(result, offset, limit), total, nil
}

func (m *mockRoomRepo) Update(_ context.Context, r *model.Room) error {
	for id, other := range m.rooms {
		if id != r.RoomID && other.Name == r.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *r
	m.rooms[r.RoomID] = &cp
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.rooms[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.rooms, id)
	return nil
}

// ── Mock DisciplineRepository ──

type mockDisciplineRepo struct {
	items map[string]*model.Discipline
}

func (m *mockDisciplineRepo) Create(_ context.Context, d *model.Discipline) error {
	for _, other := range m.items {
		if other.Code == d.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if d.DisciplineID == "" {
		d.DisciplineID = "disc-" + strings.ToLower(d.Code)
	}
	cp := *d
	m.items[d.DisciplineID] = &cp
	return nil
}

func (m *mockDisciplineRepo) GetByID(_ context.Context, id string) (*model.Discipline, error) {
	if d, ok := m.items[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDisciplineRepo) List(_ context.Context, search string, includeInactive bool, offset, limit int) ([]model.Discipline, int64, error) {
	var result []model.Discipline
	for _, d := range m.items {
		if !includeInactive && !d.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Code+" "+d.Name), strings.ToLower(search)) {
			continue
		}
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	total := int64(len(result))
	return page(result, offset, limit), total, nil
}

func (m *mockDisciplineRepo) Update(_ context.Context, d *model.Discipline) error {
	for id, other := range m.items {
		if id != d.DisciplineID && other.Code == d.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *d
	m.items[d.DisciplineID] = &cp
	return nil
}

func (m *mockDisciplineRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock ProfessorRepository ──

type mockProfessorRepo struct {
	items map[string]*model.Professor
}

func (m *mockProfessorRepo) Create(_ context.Context, p *model.Professor) error {
	for _, other := range m.items {
		if other.Registration == p.Registration {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.ProfessorID == "" {
		p.ProfessorID = "prof-" + strings.ToLower(p.Registration)
	}
	cp := *p
	m.items[p.ProfessorID] = &cp
	return nil
}

func (m *mockProfessorRepo) GetByID(_ context.Context, id string) (*model.Professor, error) {
	if p, ok := m.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfessorRepo) List(_ context.Context, search, department string, offset, limit int) ([]model.Professor, int64, error) {
	var result []model.Professor
	for _, p := range m.items {
		if department != "" && p.Department != department {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Registration), strings.ToLower(search)) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	total := int64(len(result))
	return page(result, offset, limit), total, nil
}

func (m *mockProfessorRepo) Update(_ context.Context, p *model.Professor) error {
	for id, other := range m.items {
		if id != p.ProfessorID && other.Registration == p.Registration {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *p
	m.items[p.ProfessorID] = &cp
	return nil
}

func (m *mockProfessorRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock BookingRepository ──

type mockBookingRepo struct {
	items  map[string]*model.Booking
	seq    int
	parent *mockRepos
}

// stored strips associations, like a row.
func stored(b *model.Booking) *model.Booking {
	cp := *b
	cp.Term, cp.Room, cp.Discipline, cp.Professor = nil, nil, nil, nil
	return &cp
}

func (m *mockBookingRepo) uniqueClash(b *model.Booking) bool {
	for id, other := range m.items {
		if id != b.BookingID && other.TermID == b.TermID && other.RoomID == b.RoomID &&
			other.DayOfWeek == b.DayOfWeek && other.StartTime == b.StartTime {
			return true
		}
	}
	return false
}

func (m *mockBookingRepo) Create(_ context.Context, b *model.Booking) error {
	if m.uniqueClash(b) {
		return gorm.ErrDuplicatedKey
	}
	if b.BookingID == "" {
		m.seq++
		b.BookingID = fmt.Sprintf("bk-%d", m.seq)
	}
	if b.Version == 0 {
		b.Version = 1
	}
	m.items[b.BookingID] = stored(b)
	return nil
}

func (m *mockBookingRepo) load(b *model.Booking) *model.Booking {
	cp := *b
	if m.parent != nil {
		if t, ok := m.parent.terms.terms[b.TermID]; ok {
			tt := *t
			cp.Term = &tt
		}
		if r, ok := m.parent.rooms.rooms[b.RoomID]; ok {
			rr := *r
			cp.Room = &rr
		}
		if d, ok := m.parent.disciplines.items[b.DisciplineID]; ok {
			dd := *d
			cp.Discipline = &dd
		}
		if p, ok := m.parent.professors.items[b.ProfessorID]; ok {
			pp := *p
			cp.Professor = &pp
		}
	}
	return &cp
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.Booking, error) {
	if b, ok := m.items[id]; ok {
		return m.load(b), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) sorted() []*model.Booking {
	list := make([]*model.Booking, 0, len(m.items))
	for _, b := range m.items {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DayOfWeek != list[j].DayOfWeek {
			return list[i].DayOfWeek < list[j].DayOfWeek
		}
		if list[i].StartTime != list[j].StartTime {
			return list[i].StartTime < list[j].StartTime
		}
		return list[i].BookingID < list[j].BookingID
	})
	return list
}

func (m *mockBookingRepo) List(_ context.Context, f repository.BookingFilter, offset, limit int) ([]model.Booking, int64, error) {
	var result []model.Booking
	for _, b := range m.sorted() {
		if f.TermID != "" && b.TermID != f.TermID {
			continue
		}
		if f.RoomID != "" && b.RoomID != f.RoomID {
			continue
		}
		if f.DisciplineID != "" && b.DisciplineID != f.DisciplineID {
			continue
		}
		if f.ProfessorID != "" && b.ProfessorID != f.ProfessorID {
			continue
		}
		if f.Day != nil && b.DayOfWeek != *f.Day {
			continue
		}
		if f.ActiveOnly && !b.IsActive {
			continue
		}
		result = append(result, *m.load(b))
	}
	total := int64(len(result))
	return page(result, offset, limit), total, nil
}

func (m *mockBookingRepo) ListBucket(_ context.Context, termID, roomID string, day int, excludeID string) ([]model.Booking, error) {
	var result []model.Booking
	for _, b := range m.sorted() {
		if b.TermID == termID && b.RoomID == roomID && b.DayOfWeek == day && b.IsActive &&
			(excludeID == "" || b.BookingID != excludeID) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ListByTerm(_ context.Context, termID string, activeOnly bool) ([]model.Booking, error) {
	var result []model.Booking
	for _, b := range m.sorted() {
		if b.TermID != termID || (activeOnly && !b.IsActive) {
			continue
		}
		result = append(result, *m.load(b))
	}
	return result, nil
}

func (m *mockBookingRepo) Update(_ context.Context, b *model.Booking) error {
	cur, ok := m.items[b.BookingID]
	if !ok || cur.Version != b.Version {
		return pkgerrors.ErrOptimisticLock
	}
	if m.uniqueClash(b) {
		return gorm.ErrDuplicatedKey
	}
	b.Version++
	m.items[b.BookingID] = stored(b)
	return nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	for _, other := range m.users {
		if other.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.UserID == "" {
		u.UserID = "user-" + u.Username
	}
	cp := *u
	m.users[u.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Fake cache / blacklist ──

type fakeTermCache struct {
	payload     []byte
	sets        int
	invalidated int
}

func (f *fakeTermCache) GetCurrentTerm(_ context.Context) ([]byte, error) {
	if f.payload == nil {
		return nil, fmt.Errorf("miss")
	}
	return f.payload, nil
}

func (f *fakeTermCache) SetCurrentTerm(_ context.Context, payload []byte, _ time.Duration) error {
	f.payload = payload
	f.sets++
	return nil
}

func (f *fakeTermCache) InvalidateCurrentTerm(_ context.Context) error {
	f.payload = nil
	f.invalidated++
	return nil
}

type fakeBlacklist struct {
	revoked map[string]time.Duration
}

func (f *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = ttl
	return nil
}

// ── helpers ──

func page[T any](list []T, offset, limit int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit >= 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

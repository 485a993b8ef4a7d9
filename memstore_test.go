package main

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"lg/adaptive-plan-api/plan"
)

// memStore is an in-memory store with the same upsert semantics as pgStore.
type memStore struct {
	mu       sync.Mutex
	nextID   int
	users    map[int]user
	profiles map[int]profile
	logs     map[logKey]dailyLog

	// failTarget makes upsertTarget fail for the listed users.
	failTarget map[int]bool
}

type logKey struct {
	userID int
	date   string
}

var _ store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:      map[int]user{},
		profiles:   map[int]profile{},
		logs:       map[logKey]dailyLog{},
		failTarget: map[int]bool{},
	}
}

// addUser creates a user with a known password and token, returning its id.
func (m *memStore) addUser(username, password, token string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.nextID++
	m.users[m.nextID] = user{ID: m.nextID, Username: username, Password: string(hash), AuthToken: token}
	return m.nextID
}

func (m *memStore) userByUsername(_ context.Context, username string) (user, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user{}, pgx.ErrNoRows
}

func (m *memStore) userIDForToken(_ context.Context, token string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.AuthToken == token {
			return u.ID, nil
		}
	}
	return 0, pgx.ErrNoRows
}

func (m *memStore) deleteUser(_ context.Context, userID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, userID)
	delete(m.profiles, userID)
	for k := range m.logs {
		if k.userID == userID {
			delete(m.logs, k)
		}
	}
	return nil
}

func (m *memStore) getProfile(_ context.Context, userID int) (profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return profile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *memStore) upsertProfile(_ context.Context, p profile) (profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	if old, ok := m.profiles[p.UserID]; ok {
		p.CreatedAt = old.CreatedAt
	} else {
		p.CreatedAt = &now
	}
	p.UpdatedAt = &now
	m.profiles[p.UserID] = p
	return p, nil
}

func (m *memStore) getDailyLog(_ context.Context, userID int, date string) (dailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logs[logKey{userID, date}]
	if !ok {
		return dailyLog{}, pgx.ErrNoRows
	}
	return l, nil
}

// row returns the existing row for key or a fresh one; callers hold mu.
func (m *memStore) row(userID int, date string) dailyLog {
	if l, ok := m.logs[logKey{userID, date}]; ok {
		return l
	}
	d, _ := time.Parse(time.DateOnly, date)
	m.nextID++
	return dailyLog{ID: m.nextID, UserID: userID, Date: DateOnly{d}}
}

func (m *memStore) upsertActuals(_ context.Context, userID int, t plan.DailyTarget, a plan.DailyLog) (dailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.row(userID, a.Date)
	if l.CaloriesTarget == nil {
		setTarget(&l, t)
	}
	l.CaloriesConsumed = a.CaloriesConsumed
	l.ProteinConsumedG = a.ProteinConsumedG
	l.CarbsConsumedG = a.CarbsConsumedG
	l.FatConsumedG = a.FatConsumedG
	l.WorkoutCompleted = a.WorkoutCompleted
	l.WorkoutIntensityActual = nil
	if a.WorkoutIntensityActual != nil {
		v := string(*a.WorkoutIntensityActual)
		l.WorkoutIntensityActual = &v
	}
	l.WorkoutDurationMinutes = a.WorkoutDurationMinutes
	l.TrackedAt = timestamp()
	m.logs[logKey{userID, a.Date}] = l
	return l, nil
}

func (m *memStore) upsertWorkout(_ context.Context, userID int, date string, req workoutRequest) (dailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.row(userID, date)
	l.WorkoutCompleted = req.WorkoutCompleted
	l.WorkoutIntensityActual = nil
	if req.Intensity != nil {
		v := string(*req.Intensity)
		l.WorkoutIntensityActual = &v
	}
	l.WorkoutDurationMinutes = req.DurationMinutes
	l.TrackedAt = timestamp()
	m.logs[logKey{userID, date}] = l
	return l, nil
}

func (m *memStore) upsertTarget(_ context.Context, userID int, t plan.DailyTarget) (dailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTarget[userID] {
		return dailyLog{}, errors.New("write failed")
	}
	l := m.row(userID, t.Date)
	setTarget(&l, t)
	m.logs[logKey{userID, t.Date}] = l
	return l, nil
}

func timestamp() *time.Time {
	t := time.Now()
	return &t
}

func setTarget(l *dailyLog, t plan.DailyTarget) {
	cal, protein, carbs, fat := t.Calories, t.ProteinG, t.CarbsG, t.FatG
	intensity := string(t.WorkoutIntensity)
	l.CaloriesTarget, l.ProteinTargetG, l.CarbsTargetG, l.FatTargetG = &cal, &protein, &carbs, &fat
	l.WorkoutIntensity = &intensity
}

func (m *memStore) recentLogs(_ context.Context, userID int, today string, limit int) ([]dailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []dailyLog
	for k, l := range m.logs {
		if k.userID == userID && k.date <= today && l.tracked() {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date.Time) })
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memStore) usersLoggedOn(_ context.Context, date string) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int
	for k, l := range m.logs {
		if k.date == date && l.CaloriesConsumed > 0 {
			ids = append(ids, k.userID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

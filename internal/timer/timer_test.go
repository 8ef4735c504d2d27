package timer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/alexanderramin/clockwork/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTimer builds a timer on a fake clock with a tick interval long
// enough that ticks never fire during a test unless asked for.
func newTestTimer(t *testing.T, store *memStore, opts ...Option) (*SessionTimer, *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock(testutil.Epoch)
	all := append([]Option{WithClock(clock.Now), WithTickInterval(time.Hour)}, opts...)
	tm := New(context.Background(), store, all...)
	t.Cleanup(tm.Close)
	return tm, clock
}

func (t *SessionTimer) tickActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tickCancel != nil
}

func TestNew_DefaultsWhenStoreEmpty(t *testing.T) {
	tm, _ := newTestTimer(t, &memStore{})

	snap := tm.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Current)
	assert.Empty(t, snap.Sessions)
	assert.Equal(t, domain.DefaultHourlyRate, snap.HourlyRate)
	assert.False(t, snap.IsRunning)
	assert.False(t, snap.IsPaused)
}

func TestNew_LoadsHistoryAndRate(t *testing.T) {
	a := testutil.NewTestSession(testutil.WithStart(testutil.Epoch.Add(2 * time.Hour)))
	b := testutil.NewTestSession()
	store := &memStore{sessions: []domain.Session{*a, *b}, rate: 42, hasRate: true}

	tm, _ := newTestTimer(t, store)

	snap := tm.Snapshot()
	require.Len(t, snap.Sessions, 2)
	assert.Equal(t, a.ID, snap.Sessions[0].ID)
	assert.Equal(t, b.ID, snap.Sessions[1].ID)
	assert.Equal(t, 42.0, snap.HourlyRate)
}

func TestNew_NonPositiveStoredRateFallsBack(t *testing.T) {
	tm, _ := newTestTimer(t, &memStore{rate: 0, hasRate: true})
	assert.Equal(t, domain.DefaultHourlyRate, tm.Snapshot().HourlyRate)
}

func TestNew_LoadFailuresFallBack(t *testing.T) {
	store := &memStore{
		sessions: []domain.Session{*testutil.NewTestSession()},
		rate:     55, hasRate: true,
		loadErr: errors.New("corrupt"),
		rateErr: errors.New("corrupt"),
	}
	tm, _ := newTestTimer(t, store)

	snap := tm.Snapshot()
	assert.Empty(t, snap.Sessions)
	assert.Equal(t, domain.DefaultHourlyRate, snap.HourlyRate)
}

func TestNew_DropsDuplicateIDs(t *testing.T) {
	s := testutil.NewTestSession()
	tm, _ := newTestTimer(t, &memStore{sessions: []domain.Session{*s, *s}})
	assert.Len(t, tm.Snapshot().Sessions, 1)
}

func TestStart_FromIdle(t *testing.T) {
	tm, _ := newTestTimer(t, &memStore{})

	require.True(t, tm.Start())

	snap := tm.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	require.NotNil(t, snap.Current)
	assert.Equal(t, testutil.Epoch, snap.Current.StartTime)
	assert.Equal(t, domain.DefaultHourlyRate, snap.Current.HourlyRate)
	assert.Zero(t, snap.ElapsedTime)
	assert.True(t, snap.IsRunning)
	assert.True(t, tm.tickActive())
}

func TestStart_RejectedWhileActive(t *testing.T) {
	tm, clock := newTestTimer(t, &memStore{})
	require.True(t, tm.Start())
	first := tm.Snapshot().Current.ID

	clock.Advance(time.Minute)
	assert.False(t, tm.Start())
	assert.Equal(t, first, tm.Snapshot().Current.ID)

	require.True(t, tm.Pause())
	assert.False(t, tm.Start())
	assert.Equal(t, StatePaused, tm.Snapshot().State)
}

func TestPause_WhenIdleIsNoop(t *testing.T) {
	store := &memStore{}
	tm, _ := newTestTimer(t, store)
	before := tm.Snapshot()

	assert.False(t, tm.Pause())

	after := tm.Snapshot()
	assert.Equal(t, before, after)
	assert.False(t, tm.tickActive())
	assert.Zero(t, store.saveCount())
}

func TestPause_StopsTick(t *testing.T) {
	tm, _ := newTestTimer(t, &memStore{})
	require.True(t, tm.Start())
	require.True(t, tm.Pause())

	snap := tm.Snapshot()
	assert.Equal(t, StatePaused, snap.State)
	assert.True(t, snap.IsPaused)
	assert.False(t, snap.IsRunning)
	assert.False(t, tm.tickActive())

	assert.False(t, tm.Pause(), "second pause is a no-op")
}

func TestResume_OnlyFromPaused(t *testing.T) {
	tm, _ := newTestTimer(t, &memStore{})
	assert.False(t, tm.Resume(), "idle")

	require.True(t, tm.Start())
	assert.False(t, tm.Resume(), "running")
	assert.Zero(t, tm.Snapshot().Current.TotalPaused)
}

func TestResume_AccumulatesPause(t *testing.T) {
	tm, clock := newTestTimer(t, &memStore{})
	require.True(t, tm.Start())

	clock.Advance(10 * time.Minute)
	require.True(t, tm.Pause())
	clock.Advance(3 * time.Minute)
	require.True(t, tm.Resume())

	snap := tm.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 3*time.Minute, snap.Current.TotalPaused)
	assert.True(t, tm.tickActive())
}

func TestEnd_ScenarioTwentyDollars(t *testing.T) {
	store := &memStore{}
	tm, clock := newTestTimer(t, store)
	require.NoError(t, tm.UpdateHourlyRate(60))

	require.True(t, tm.Start())
	clock.Advance(600 * time.Second)
	require.True(t, tm.Pause())
	clock.Advance(300 * time.Second)
	require.True(t, tm.Resume())
	clock.Advance(600 * time.Second)

	ended, ok := tm.End()
	require.True(t, ok)

	require.NotNil(t, ended.EndTime)
	assert.Equal(t, testutil.Epoch.Add(1500*time.Second), *ended.EndTime)
	assert.Equal(t, 300*time.Second, ended.TotalPaused)
	assert.Equal(t, 1200*time.Second, ended.Duration(clock.Now()))
	assert.InDelta(t, 20.0, ended.Earnings(clock.Now()), 1e-9)
	assert.Equal(t, "$20.00", domain.FormatMoney(ended.Earnings(clock.Now())))

	snap := tm.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Current)
	assert.Zero(t, snap.ElapsedTime)
	assert.False(t, tm.tickActive())
	require.Len(t, snap.Sessions, 1)
	assert.Equal(t, ended.ID, snap.Sessions[0].ID)

	stored := store.stored()
	require.Len(t, stored, 1)
	assert.Equal(t, ended, stored[0])
}

func TestEnd_WhilePausedMatchesResumeThenEnd(t *testing.T) {
	run := func(resumeFirst bool) domain.Session {
		tm, clock := newTestTimer(t, &memStore{})
		require.True(t, tm.Start())
		clock.Advance(20 * time.Minute)
		require.True(t, tm.Pause())
		clock.Advance(7 * time.Minute)
		if resumeFirst {
			require.True(t, tm.Resume())
		}
		ended, ok := tm.End()
		require.True(t, ok)
		return ended
	}

	viaResume := run(true)
	whilePaused := run(false)

	assert.Equal(t, 7*time.Minute, whilePaused.TotalPaused)
	assert.Equal(t, viaResume.TotalPaused, whilePaused.TotalPaused)
	assert.Equal(t, viaResume.Duration(time.Time{}), whilePaused.Duration(time.Time{}))
	assert.Equal(t, 20*time.Minute, whilePaused.Duration(time.Time{}))
}

func TestEnd_WhenIdleIsNoop(t *testing.T) {
	store := &memStore{}
	tm, _ := newTestTimer(t, store)

	_, ok := tm.End()
	assert.False(t, ok)
	assert.Zero(t, store.saveCount())
}

func TestPauseCycles_SumAllIntervals(t *testing.T) {
	tm, clock := newTestTimer(t, &memStore{})
	require.True(t, tm.Start())

	pauses := []time.Duration{30 * time.Second, 2 * time.Minute, 45 * time.Minute}
	var total time.Duration
	for _, p := range pauses {
		clock.Advance(5 * time.Minute)
		require.True(t, tm.Pause())
		clock.Advance(p)
		require.True(t, tm.Resume())
		total += p
	}
	clock.Advance(time.Minute)

	ended, ok := tm.End()
	require.True(t, ok)
	assert.Equal(t, total, ended.TotalPaused)

	wall := ended.EndTime.Sub(ended.StartTime)
	assert.Equal(t, wall-total, ended.Duration(time.Time{}))
	assert.GreaterOrEqual(t, ended.Duration(time.Time{}), time.Duration(0))
}

func TestEnd_NewestFirst(t *testing.T) {
	tm, clock := newTestTimer(t, &memStore{})

	var ids []string
	for i := 0; i < 3; i++ {
		require.True(t, tm.Start())
		clock.Advance(time.Minute)
		ended, ok := tm.End()
		require.True(t, ok)
		ids = append(ids, ended.ID)
		clock.Advance(time.Minute)
	}

	snap := tm.Snapshot()
	require.Len(t, snap.Sessions, 3)
	assert.Equal(t, ids[2], snap.Sessions[0].ID)
	assert.Equal(t, ids[1], snap.Sessions[1].ID)
	assert.Equal(t, ids[0], snap.Sessions[2].ID)
}

func TestUpdateHourlyRate_DoesNotTouchActiveSession(t *testing.T) {
	store := &memStore{}
	tm, clock := newTestTimer(t, store)
	require.True(t, tm.Start())

	require.NoError(t, tm.UpdateHourlyRate(75))
	snap := tm.Snapshot()
	assert.Equal(t, domain.DefaultHourlyRate, snap.Current.HourlyRate)
	assert.Equal(t, 75.0, snap.HourlyRate)

	clock.Advance(time.Hour)
	ended, ok := tm.End()
	require.True(t, ok)
	assert.Equal(t, domain.DefaultHourlyRate, ended.HourlyRate)
	assert.InDelta(t, 100.0, ended.Earnings(clock.Now()), 1e-9)

	require.True(t, tm.Start())
	assert.Equal(t, 75.0, tm.Snapshot().Current.HourlyRate)
	assert.Equal(t, 75.0, store.rate)
}

func TestUpdateHourlyRate_DoesNotTouchHistory(t *testing.T) {
	past := testutil.NewTestSession(testutil.WithRate(40))
	tm, _ := newTestTimer(t, &memStore{sessions: []domain.Session{*past}})

	require.NoError(t, tm.UpdateHourlyRate(90))
	assert.Equal(t, 40.0, tm.Snapshot().Sessions[0].HourlyRate)
}

func TestUpdateHourlyRate_RejectsInvalid(t *testing.T) {
	store := &memStore{}
	tm, _ := newTestTimer(t, store)

	for _, rate := range []float64{-1, 1e308} {
		err := tm.UpdateHourlyRate(rate)
		assert.ErrorIs(t, err, domain.ErrInvalidRate, "rate=%v", rate)
	}
	assert.Equal(t, domain.DefaultHourlyRate, tm.Snapshot().HourlyRate)
	assert.Zero(t, store.rateSaves)
}

func TestDeleteSession_PreservesOrder(t *testing.T) {
	a := testutil.NewTestSession()
	b := testutil.NewTestSession()
	c := testutil.NewTestSession()
	store := &memStore{sessions: []domain.Session{*a, *b, *c}}
	tm, _ := newTestTimer(t, store)

	require.True(t, tm.DeleteSession(b.ID))

	snap := tm.Snapshot()
	require.Len(t, snap.Sessions, 2)
	assert.Equal(t, a.ID, snap.Sessions[0].ID)
	assert.Equal(t, c.ID, snap.Sessions[1].ID)

	stored := store.stored()
	require.Len(t, stored, 2)
	assert.Equal(t, a.ID, stored[0].ID)
	assert.Equal(t, c.ID, stored[1].ID)
}

func TestDeleteSession_UnknownIDIsNoop(t *testing.T) {
	a := testutil.NewTestSession()
	store := &memStore{sessions: []domain.Session{*a}}
	tm, _ := newTestTimer(t, store)

	assert.False(t, tm.DeleteSession("missing"))
	assert.Len(t, tm.Snapshot().Sessions, 1)
	assert.Zero(t, store.saveCount())
}

func TestClearAllSessions(t *testing.T) {
	store := &memStore{sessions: []domain.Session{*testutil.NewTestSession(), *testutil.NewTestSession()}}
	tm, _ := newTestTimer(t, store)

	tm.ClearAllSessions()

	assert.Empty(t, tm.Snapshot().Sessions)
	assert.Empty(t, store.stored())
	assert.Equal(t, 1, store.saveCount())
}

func TestClearAllSessions_KeepsActiveSession(t *testing.T) {
	tm, _ := newTestTimer(t, &memStore{})
	require.True(t, tm.Start())

	tm.ClearAllSessions()
	assert.Equal(t, StateRunning, tm.Snapshot().State)
}

func TestSaveFailure_KeepsMemoryAndReconciles(t *testing.T) {
	store := &memStore{}
	tm, clock := newTestTimer(t, store)
	store.setSaveErr(errors.New("disk full"))

	require.True(t, tm.Start())
	clock.Advance(time.Minute)
	first, ok := tm.End()
	require.True(t, ok, "failed save must not fail the transition")
	assert.Len(t, tm.Snapshot().Sessions, 1)
	assert.Empty(t, store.stored())

	store.setSaveErr(nil)
	require.True(t, tm.Start())
	clock.Advance(time.Minute)
	second, ok := tm.End()
	require.True(t, ok)

	stored := store.stored()
	require.Len(t, stored, 2)
	assert.Equal(t, second.ID, stored[0].ID)
	assert.Equal(t, first.ID, stored[1].ID)
}

func TestSnapshot_IsACopy(t *testing.T) {
	tm, _ := newTestTimer(t, &memStore{sessions: []domain.Session{*testutil.NewTestSession()}})
	require.True(t, tm.Start())

	snap := tm.Snapshot()
	snap.Current.HourlyRate = 1
	*snap.Sessions[0].EndTime = time.Time{}
	snap.Sessions[0].HourlyRate = 1

	again := tm.Snapshot()
	assert.Equal(t, domain.DefaultHourlyRate, again.Current.HourlyRate)
	assert.Equal(t, domain.DefaultHourlyRate, again.Sessions[0].HourlyRate)
	assert.False(t, again.Sessions[0].EndTime.IsZero())
}

func TestSnapshot_CurrentEarningsUsesSessionRate(t *testing.T) {
	tm, clock := newTestTimer(t, &memStore{})
	require.NoError(t, tm.UpdateHourlyRate(60))
	require.True(t, tm.Start())
	require.NoError(t, tm.UpdateHourlyRate(600))

	clock.Advance(30 * time.Minute)
	tm.Refresh()

	snap := tm.Snapshot()
	assert.Equal(t, 30*time.Minute, snap.ElapsedTime)
	assert.InDelta(t, 30.0, snap.CurrentEarnings(), 1e-9)
	assert.Zero(t, Snapshot{}.CurrentEarnings())
}

func TestRefresh_NoopUnlessRunning(t *testing.T) {
	tm, clock := newTestTimer(t, &memStore{})
	require.True(t, tm.Start())
	clock.Advance(time.Minute)
	require.True(t, tm.Pause())
	elapsed := tm.Snapshot().ElapsedTime

	clock.Advance(time.Hour)
	tm.Refresh()
	assert.Equal(t, elapsed, tm.Snapshot().ElapsedTime)
}

func TestTick_RefreshesElapsedWhileRunning(t *testing.T) {
	store := &memStore{}
	clock := testutil.NewFakeClock(testutil.Epoch)
	tm := New(context.Background(), store, WithClock(clock.Now), WithTickInterval(5*time.Millisecond))
	t.Cleanup(tm.Close)

	require.True(t, tm.Start())
	clock.Advance(42 * time.Second)

	require.Eventually(t, func() bool {
		return tm.Snapshot().ElapsedTime == 42*time.Second
	}, time.Second, 5*time.Millisecond)
}

func TestTick_StaleGenerationDropped(t *testing.T) {
	tm, clock := newTestTimer(t, &memStore{})
	require.True(t, tm.Start())

	tm.mu.Lock()
	stale := tm.tickGen
	tm.mu.Unlock()

	require.True(t, tm.Pause())
	require.True(t, tm.Resume())
	clock.Advance(time.Minute)

	tm.tick(stale)
	assert.Zero(t, tm.Snapshot().ElapsedTime, "tick from a replaced ticker must not refresh")
}

func TestSubscribe_ReceivesEveryChange(t *testing.T) {
	tm, _ := newTestTimer(t, &memStore{})

	var mu sync.Mutex
	var states []State
	var versions []uint64
	unsubscribe := tm.Subscribe(func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s.State)
		versions = append(versions, s.Version)
	})

	require.True(t, tm.Start())
	require.True(t, tm.Pause())
	assert.False(t, tm.Pause())
	require.True(t, tm.Resume())
	_, ok := tm.End()
	require.True(t, ok)

	unsubscribe()
	unsubscribe()
	require.True(t, tm.Start())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []State{StateRunning, StatePaused, StateRunning, StateIdle}, states)
	for i := 1; i < len(versions); i++ {
		assert.Greater(t, versions[i], versions[i-1])
	}
}

func TestClose_StopsTickAndBlocksRestart(t *testing.T) {
	tm, _ := newTestTimer(t, &memStore{})
	require.True(t, tm.Start())

	tm.Close()
	tm.Close()
	assert.False(t, tm.tickActive())

	require.True(t, tm.Pause())
	require.True(t, tm.Resume())
	assert.False(t, tm.tickActive(), "closed timer never restarts its tick")
}

type recordingObserver struct {
	mu     sync.Mutex
	events []service.UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestObserver_ReportsOperations(t *testing.T) {
	obs := &recordingObserver{}
	store := &memStore{}
	tm, _ := newTestTimer(t, store, WithObserver(obs))

	require.True(t, tm.Start())
	assert.False(t, tm.Start())
	store.setSaveErr(errors.New("locked"))
	_, ok := tm.End()
	require.True(t, ok)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.events, 4)
	assert.Equal(t, "timer.load", obs.events[0].Name)
	assert.Equal(t, "timer.start", obs.events[1].Name)
	assert.Equal(t, true, obs.events[1].Fields["applied"])
	assert.Equal(t, false, obs.events[2].Fields["applied"])
	assert.Equal(t, "timer.end", obs.events[3].Name)
	assert.False(t, obs.events[3].Success)
	assert.Error(t, obs.events[3].Err)
}

func TestConcurrentOperations_KeepInvariants(t *testing.T) {
	store := &memStore{}
	clock := testutil.NewFakeClock(testutil.Epoch)
	tm := New(context.Background(), store, WithClock(clock.Now), WithTickInterval(time.Millisecond))
	t.Cleanup(tm.Close)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				clock.Advance(time.Second)
				switch (w + i) % 5 {
				case 0:
					tm.Start()
				case 1:
					tm.Pause()
				case 2:
					tm.Resume()
				case 3:
					tm.End()
				default:
					_ = tm.Snapshot()
				}
			}
		}(w)
	}
	wg.Wait()
	tm.End()

	snap := tm.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	seen := make(map[string]bool)
	for _, s := range snap.Sessions {
		require.False(t, seen[s.ID], "duplicate id in history")
		seen[s.ID] = true
		require.NotNil(t, s.EndTime)
		assert.LessOrEqual(t, s.TotalPaused, s.EndTime.Sub(s.StartTime))
		assert.GreaterOrEqual(t, s.Duration(time.Time{}), time.Duration(0))
	}
	for i := 1; i < len(snap.Sessions); i++ {
		assert.False(t, snap.Sessions[i-1].EndTime.Before(*snap.Sessions[i].EndTime), "history must be newest first")
	}
}

package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pointbank/passbook/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func contract(principal, interest int64, maturesAt time.Time, status model.SavingsStatus) model.SavingsContract {
	return model.SavingsContract{Principal: principal, Interest: interest, MaturesAt: maturesAt, Status: status}
}

func TestProjectGoal_Example(t *testing.T) {
	goalDate := day(2025, 6, 30)
	p := ProjectGoal(80, model.Goal{Amount: 100, Date: goalDate}, []model.SavingsContract{
		contract(50, 10, goalDate.AddDate(0, 0, -1), model.SavingsActive),
	})
	assert.Equal(t, int64(60), p.Bonus)
	assert.Equal(t, int64(140), p.ExpectedBalance)
	assert.Equal(t, int64(80), p.CurrentBalance)
	assert.InDelta(t, 0.8, p.CurrentRatio, 1e-9)
	assert.InDelta(t, 1.0, p.ExpectedRatio, 1e-9)
}

func TestProjectGoal_Deterministic(t *testing.T) {
	goal := model.Goal{Amount: 300, Date: day(2025, 6, 30)}
	savings := []model.SavingsContract{
		contract(50, 10, day(2025, 6, 1), model.SavingsActive),
		contract(70, 7, day(2025, 7, 1), model.SavingsActive),
		contract(20, 2, day(2025, 5, 1), model.SavingsCanceled),
	}
	first := ProjectGoal(120, goal, savings)
	assert.Equal(t, first, ProjectGoal(120, goal, savings))
	assert.Equal(t, int64(60), first.Bonus)
}

func TestProjectGoal_MaturityBoundary(t *testing.T) {
	goalDate := day(2025, 6, 30)
	goal := model.Goal{Amount: 1000, Date: goalDate}

	sameDay := contract(100, 5, time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC), model.SavingsActive)
	nextDay := contract(200, 20, day(2025, 7, 1), model.SavingsActive)

	p := ProjectGoal(0, goal, []model.SavingsContract{sameDay})
	assert.Equal(t, int64(105), p.Bonus, "maturity on the goal date counts")

	p = ProjectGoal(0, goal, []model.SavingsContract{nextDay})
	assert.Equal(t, int64(0), p.Bonus, "maturity after the goal date does not count")

	p = ProjectGoal(0, goal, []model.SavingsContract{sameDay, nextDay})
	assert.Equal(t, int64(105), p.Bonus)
}

func TestProjectGoal_CalendarDateInGoalLocation(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	goalDate := time.Date(2025, 6, 30, 0, 0, 0, 0, seoul)

	// 2025-06-30 16:00 UTC is 2025-07-01 01:00 in Seoul.
	late := contract(100, 0, time.Date(2025, 6, 30, 16, 0, 0, 0, time.UTC), model.SavingsActive)
	// 2025-06-30 14:00 UTC is 2025-06-30 23:00 in Seoul.
	early := contract(40, 0, time.Date(2025, 6, 30, 14, 0, 0, 0, time.UTC), model.SavingsActive)

	p := ProjectGoal(0, model.Goal{Amount: 500, Date: goalDate}, []model.SavingsContract{late, early})
	assert.Equal(t, int64(40), p.Bonus)
}

func TestProjectGoal_SkipsInactiveAndUnknown(t *testing.T) {
	goalDate := day(2025, 6, 30)
	savings := []model.SavingsContract{
		contract(100, 10, day(2025, 6, 1), model.SavingsMatured),
		contract(100, 10, day(2025, 6, 1), model.SavingsCanceled),
		contract(100, 10, time.Time{}, model.SavingsActive),
		contract(30, 3, day(2025, 6, 1), model.SavingsActive),
	}
	p := ProjectGoal(10, model.Goal{Amount: 100, Date: goalDate}, savings)
	assert.Equal(t, int64(33), p.Bonus)
	assert.Equal(t, int64(43), p.ExpectedBalance)
}

func TestProjectGoal_NoGoal(t *testing.T) {
	savings := []model.SavingsContract{contract(100, 10, day(2025, 6, 1), model.SavingsActive)}
	for _, bal := range []int64{-50, 0, 80, 1_000_000} {
		p := ProjectGoal(bal, model.Goal{Amount: 0, Date: day(2025, 6, 30)}, savings)
		assert.Zero(t, p.CurrentRatio, "balance %d", bal)
		assert.Zero(t, p.ExpectedRatio, "balance %d", bal)
	}
}

func TestProjectGoal_ZeroGoalDate(t *testing.T) {
	savings := []model.SavingsContract{contract(100, 10, day(2025, 6, 1), model.SavingsActive)}
	p := ProjectGoal(20, model.Goal{Amount: 100}, savings)
	assert.Equal(t, int64(0), p.Bonus)
	assert.InDelta(t, 0.2, p.CurrentRatio, 1e-9)
}

func TestProjectGoal_RatiosAlwaysClamped(t *testing.T) {
	goalDate := day(2025, 6, 30)
	savings := []model.SavingsContract{
		contract(500, 50, day(2025, 6, 1), model.SavingsActive),
		contract(-900, 0, day(2025, 6, 2), model.SavingsActive),
	}
	for _, bal := range []int64{-1_000_000, -1, 0, 1, 99, 100, 101, 1_000_000} {
		for _, amount := range []int64{-10, 0, 1, 100, 5000} {
			p := ProjectGoal(bal, model.Goal{Amount: amount, Date: goalDate}, savings)
			assert.GreaterOrEqual(t, p.CurrentRatio, 0.0)
			assert.LessOrEqual(t, p.CurrentRatio, 1.0)
			assert.GreaterOrEqual(t, p.ExpectedRatio, 0.0)
			assert.LessOrEqual(t, p.ExpectedRatio, 1.0)
		}
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(-5, 100))
	assert.Equal(t, 0.5, Ratio(50, 100))
	assert.Equal(t, 1.0, Ratio(150, 100))
	assert.Equal(t, 0.0, Ratio(50, 0))
	assert.Equal(t, 0.0, Ratio(50, -100))
}

package clock

import "testing"

func TestMinuteHourDayRollover(t *testing.T) {
	c := New(29, 60)
	var minutes, hours, days int
	c.OnMinute(func(int) { minutes++ })
	c.OnHour(func(int) { hours++ })
	c.OnDay(func(int) { days++ })

	c.AdvanceMinutes(60 * 24)

	if minutes != 60*24 {
		t.Fatalf("minutes fired %d", minutes)
	}
	if hours != 24 {
		t.Fatalf("hours fired %d", hours)
	}
	if days != 1 {
		t.Fatalf("days fired %d", days)
	}
	if got := c.Now(); got.Day != 30 || got.Hour != 0 || got.Minute != 0 {
		t.Fatalf("time after one day: %+v", got)
	}
}

func TestSkipDaysFiresOnceWithCount(t *testing.T) {
	c := New(29, 60)
	var got []int
	c.OnSkip(func(days int) { got = append(got, days) })

	c.SkipDays(5)
	if len(got) != 1 || got[0] != 5 {
		t.Fatalf("skip callbacks %v", got)
	}
	if c.Now().Day != 34 {
		t.Fatalf("day %d after skip, want 34", c.Now().Day)
	}
}

func TestTimeLimitEndsGame(t *testing.T) {
	c := New(58, 60)
	limitFired := 0
	daysFired := 0
	c.OnTimeLimit(func() { limitFired++ })
	c.OnDay(func(int) { daysFired++ })

	c.AdvanceMinutes(60 * 24 * 3)

	if limitFired != 1 {
		t.Fatalf("time limit fired %d times", limitFired)
	}
	if daysFired != 1 {
		t.Fatalf("day callbacks fired %d times, want 1 (day 59 only)", daysFired)
	}
	if !c.Ended() {
		t.Fatalf("clock should be ended")
	}

	c.AdvanceMinutes(10)
	c.SkipDays(2)
	if limitFired != 1 {
		t.Fatalf("callbacks fired after end")
	}
}

func TestSkipPastLimit(t *testing.T) {
	c := New(29, 60)
	skipped := 0
	limit := 0
	c.OnSkip(func(days int) { skipped = days })
	c.OnTimeLimit(func() { limit++ })

	c.SkipDays(100)
	if skipped != 100 {
		t.Fatalf("skip callback got %d", skipped)
	}
	if limit != 1 || !c.Ended() {
		t.Fatalf("limit not enforced on skip")
	}
}

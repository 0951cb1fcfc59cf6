package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

type togglePayload struct {
	Date string `json:"date"`
}

type toggleResponse struct {
	HabitID   string `json:"habitId"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

type habitStatsResponse struct {
	models.HabitStats
	CurrentStreak int   `json:"currentStreak"`
	LongestStreak int   `json:"longestStreak"`
	Series        []int `json:"series"`
}

type todayHabit struct {
	models.Habit
	Completed bool `json:"completed"`
	Streak    int  `json:"streak"`
}

type todayResponse struct {
	Date     string       `json:"date"`
	Progress int          `json:"progress"`
	Habits   []todayHabit `json:"habits"`
}

// statusFor maps tracker errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, tracker.ErrDuplicateID):
		return fiber.StatusConflict
	case errors.Is(err, validation.ErrInvalidHabit),
		errors.Is(err, validation.ErrInvalidImport),
		errors.Is(err, utils.ErrInvalidDate):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(err error) error {
	return fiber.NewError(statusFor(err), err.Error())
}

func (s *Server) ListHabits(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.QueryBool("active") {
		return c.JSON(s.tracker.Active())
	}
	return c.JSON(s.tracker.List())
}

func (s *Server) CreateHabit(c *fiber.Ctx) error {
	var habit models.Habit
	if err := c.BodyParser(&habit); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid habit payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added, err := s.tracker.Add(habit)
	if err != nil {
		return fail(err)
	}
	if err := s.persist(); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(added)
}

func (s *Server) GetHabit(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := s.tracker.Get(c.Params("id"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(habit)
}

func (s *Server) UpdateHabit(c *fiber.Ctx) error {
	var patch models.HabitPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid habit payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.tracker.Update(c.Params("id"), patch)
	if err != nil {
		return fail(err)
	}
	if err := s.persist(); err != nil {
		return err
	}
	return c.JSON(updated)
}

func (s *Server) DeleteHabit(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracker.Delete(c.Params("id"))
	if err := s.persist(); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) ToggleHabit(c *fiber.Ctx) error {
	var payload togglePayload
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid toggle payload")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Params("id")
	date := payload.Date
	if date == "" {
		date = utils.DateKey(s.tracker.Today())
	}

	completed, err := s.tracker.Toggle(id, date)
	if err != nil {
		return fail(err)
	}
	if err := s.persist(); err != nil {
		return err
	}
	return c.JSON(toggleResponse{HabitID: id, Date: date, Completed: completed})
}

func (s *Server) GetHabitStats(c *fiber.Ctx) error {
	days := c.QueryInt("days", constants.DefaultStatsWindowDays)

	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Params("id")
	if _, err := s.tracker.Get(id); err != nil {
		return fail(err)
	}

	return c.JSON(habitStatsResponse{
		HabitStats:    s.tracker.HabitStats(id, days),
		CurrentStreak: s.tracker.CurrentStreak(id),
		LongestStreak: s.tracker.LongestStreak(id),
		Series:        s.tracker.DailySeries(id, days),
	})
}

func (s *Server) GetToday(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := utils.DateKey(s.tracker.Today())
	due := s.tracker.DueToday()
	resp := todayResponse{
		Date:     date,
		Progress: s.tracker.TodayProgress(),
		Habits:   make([]todayHabit, 0, len(due)),
	}
	for _, habit := range due {
		resp.Habits = append(resp.Habits, todayHabit{
			Habit:     habit,
			Completed: s.tracker.IsCompleted(habit.ID, date),
			Streak:    s.tracker.CurrentStreak(habit.ID),
		})
	}
	return c.JSON(resp)
}

func (s *Server) GetWeeklyStats(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.tracker.WeeklyStats())
}

func (s *Server) GetHeatmap(c *fiber.Ctx) error {
	days := c.QueryInt("days", constants.DefaultHeatmapDays)

	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(s.tracker.Heatmap(days))
}

func (s *Server) Export(c *fiber.Ctx) error {
	s.mu.Lock()
	data, err := s.tracker.MarshalExport()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(data)
}

func (s *Server) Import(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tracker.Import(c.Body()); err != nil {
		return fail(err)
	}
	if err := s.persist(); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"habits": len(s.tracker.List())})
}

package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mnuddindev/routinely/internal/auth"
	"github.com/mnuddindev/routinely/internal/models"
	"github.com/mnuddindev/routinely/internal/pagination"
	"github.com/mnuddindev/routinely/pkg/utils"
)

// Index lists routines by likes, one page at a time.
func (h *Handler) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()
	offset := pagination.ParseOffset(c.Query("start"))

	total, err := models.CountRoutines(ctx, h.DB)
	if err != nil {
		return utils.SendError(c, err)
	}
	routines, err := models.ListRoutinesByLikes(ctx, h.Cache, h.DB, offset, pagination.PageSize)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"routines": routines,
		"page":     pagination.ComputePage(offset, total),
	})
}

// Top returns the ten most liked routines.
func (h *Handler) Top(c *fiber.Ctx) error {
	routines, err := models.ListRoutinesByLikes(c.UserContext(), h.Cache, h.DB, 0, pagination.PageSize)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"routines": routines})
}

// Trending returns the ten most recently published routines.
func (h *Handler) Trending(c *fiber.Ctx) error {
	routines, err := models.ListRoutinesByRecency(c.UserContext(), h.DB, pagination.PageSize)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"routines": routines})
}

func (h *Handler) CreateRoutine(c *fiber.Ctx) error {
	var in models.RoutineInput
	if err := h.parseBody(c, &in); err != nil {
		return utils.SendError(c, err)
	}

	routine, err := models.CreateRoutine(c.UserContext(), h.Cache, h.DB, auth.UserID(c), in)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.Logger.Info(c.UserContext()).WithFields("routine_id", routine.ID).Logs("Routine created")
	return utils.Success(c).WithStatus(fiber.StatusCreated).WithData(fiber.Map{"routine": routine}).Send()
}

// Detail returns a routine with everything needed to render and edit it.
func (h *Handler) Detail(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Routine")
	if err != nil {
		return utils.SendError(c, err)
	}
	routine, err := models.GetRoutine(c.UserContext(), h.DB, id)
	if err != nil {
		return utils.SendError(c, err)
	}
	liked, err := models.HasLiked(c.UserContext(), h.DB, auth.UserID(c), routine.ID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{
		"routine":  routine,
		"tag_list": routine.TagList(),
		"liked":    liked,
	})
}

func (h *Handler) EditRoutine(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Routine")
	if err != nil {
		return utils.SendError(c, err)
	}
	var in models.RoutineInput
	if err := h.parseBody(c, &in); err != nil {
		return utils.SendError(c, err)
	}

	routine, err := models.EditRoutine(c.UserContext(), h.Cache, h.DB, id, auth.UserID(c), in)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.Logger.Info(c.UserContext()).WithFields("routine_id", routine.ID).Logs("Routine updated")
	return utils.SendSuccess(c, fiber.Map{"routine": routine})
}

func (h *Handler) DeleteRoutine(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Routine")
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := models.DeleteRoutine(c.UserContext(), h.Cache, h.DB, id, auth.UserID(c)); err != nil {
		return utils.SendError(c, err)
	}

	h.Logger.Info(c.UserContext()).WithFields("routine_id", id).Logs("Routine deleted")
	return utils.Success(c).WithMessage("Routine deleted").Send()
}

// Customize saves an edited copy of a routine and plans it in the caller's journal.
func (h *Handler) Customize(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Routine")
	if err != nil {
		return utils.SendError(c, err)
	}
	var in models.RoutineInput
	if err := h.parseBody(c, &in); err != nil {
		return utils.SendError(c, err)
	}

	routine, entry, err := models.CustomizeRoutine(c.UserContext(), h.Cache, h.DB, id, auth.UserID(c), in)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.Success(c).
		WithStatus(fiber.StatusCreated).
		WithData(fiber.Map{"routine": routine, "journal_entry": entry}).
		Send()
}

// AddExercises appends exercises to a routine the caller owns.
func (h *Handler) AddExercises(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Routine")
	if err != nil {
		return utils.SendError(c, err)
	}
	var in struct {
		ExerciseText string `json:"exercise_text"`
	}
	if err := h.parseBody(c, &in); err != nil {
		return utils.SendError(c, err)
	}

	routine, err := models.GetRoutine(c.UserContext(), h.DB, id)
	if err != nil {
		return utils.SendError(c, err)
	}
	if routine.OwnerID != auth.UserID(c) {
		return utils.SendError(c, utils.NewError(utils.ErrForbidden.Code, "You're not the owner of this routine"))
	}

	exercises, err := models.AddExercises(c.UserContext(), h.DB, id, in.ExerciseText)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.Success(c).WithStatus(fiber.StatusCreated).WithData(fiber.Map{"exercises": exercises}).Send()
}

// ToggleLike likes or unlikes a routine for the caller.
func (h *Handler) ToggleLike(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Routine")
	if err != nil {
		return utils.SendError(c, err)
	}
	routine, liked, err := models.ToggleLike(c.UserContext(), h.Cache, h.DB, auth.UserID(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"routine_id": routine.ID, "likes": routine.LikeCount, "liked": liked})
}

func (h *Handler) AddComment(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Routine")
	if err != nil {
		return utils.SendError(c, err)
	}
	var in struct {
		CommentText string `json:"comment_text"`
	}
	if err := h.parseBody(c, &in); err != nil {
		return utils.SendError(c, err)
	}

	comment, err := models.AddComment(c.UserContext(), h.DB, auth.UserID(c), id, in.CommentText)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.Success(c).WithStatus(fiber.StatusCreated).WithData(fiber.Map{"comment": comment}).Send()
}

package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mnuddindev/routinely/internal/auth"
	"github.com/mnuddindev/routinely/internal/models"
	"github.com/mnuddindev/routinely/pkg/utils"
)

// AddToJournal plans a routine in the caller's journal.
func (h *Handler) AddToJournal(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "Routine")
	if err != nil {
		return utils.SendError(c, err)
	}
	entry, err := models.AddToJournal(c.UserContext(), h.DB, auth.UserID(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.Success(c).WithStatus(fiber.StatusCreated).WithData(fiber.Map{"journal_entry": entry}).Send()
}

func (h *Handler) Journal(c *fiber.Ctx) error {
	journal, err := models.ListJournal(c.UserContext(), h.DB, auth.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"journal": journal})
}

func (h *Handler) MarkComplete(c *fiber.Ctx) error {
	id, err := pathID(c, "entryID", "Journal entry")
	if err != nil {
		return utils.SendError(c, err)
	}
	entry, err := models.MarkComplete(c.UserContext(), h.DB, auth.UserID(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"journal_entry": entry})
}

func (h *Handler) RemoveJournalEntry(c *fiber.Ctx) error {
	id, err := pathID(c, "entryID", "Journal entry")
	if err != nil {
		return utils.SendError(c, err)
	}
	if err := models.RemoveJournalEntry(c.UserContext(), h.DB, auth.UserID(c), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.Success(c).WithMessage("Journal entry removed").Send()
}

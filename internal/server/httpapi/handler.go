package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/mpavlovs/punchclock/internal/server/services"
)

func (s *Server) dashboard(c *fiber.Ctx) error {
	c.Type("html")
	return c.Send(dashboardHTML)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) registerContractor(c *fiber.Ctx) error {
	var req registerContractorRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	contractor, err := s.contractors.Register(c.UserContext(), services.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		TeamID:   req.TeamID,
		TeamName: req.TeamName,
		TimeZone: req.TimeZone,
		AppAndOS: req.AppAndOS,
	})
	if err != nil {
		return s.serviceError(c, err)
	}

	return jsonCreated(c, "contractor registered", toContractorResponse(contractor))
}

func (s *Server) listContractors(c *fiber.Ctx) error {
	contractors, err := s.contractors.List(c.UserContext())
	if err != nil {
		return s.serviceError(c, err)
	}

	// Optional ?active= filter; the original dashboard only lists active
	// workers.
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid active filter")
		}
		filtered := contractors[:0]
		for _, contractor := range contractors {
			if contractor.Active == active {
				filtered = append(filtered, contractor)
			}
		}
		contractors = filtered
	}

	return jsonOK(c, "ok", toContractorResponses(contractors))
}

func (s *Server) getContractor(c *fiber.Ctx) error {
	contractor, err := s.contractors.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return jsonOK(c, "ok", toContractorResponse(contractor))
}

func (s *Server) activateContractor(c *fiber.Ctx) error {
	return s.setContractorActive(c, true)
}

func (s *Server) deactivateContractor(c *fiber.Ctx) error {
	return s.setContractorActive(c, false)
}

func (s *Server) setContractorActive(c *fiber.Ctx, active bool) error {
	contractor, err := s.contractors.SetActive(c.UserContext(), c.Params("id"), active)
	if err != nil {
		return s.serviceError(c, err)
	}
	return jsonOK(c, "contractor updated", toContractorResponse(contractor))
}

func (s *Server) activeSession(c *fiber.Ctx) error {
	entry, err := s.clock.ActiveSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.serviceError(c, err)
	}
	if entry == nil {
		return jsonOK(c, "no active session", nil)
	}
	return jsonOK(c, "ok", toTimeEntryResponse(entry))
}

func (s *Server) clockIn(c *fiber.Ctx) error {
	var req clockRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	entry, err := s.clock.ClockIn(c.UserContext(), req.ContractorID)
	if err != nil {
		return s.serviceError(c, err)
	}

	return jsonCreated(c, "clocked in", toTimeEntryResponse(entry))
}

func (s *Server) clockOut(c *fiber.Ctx) error {
	var req clockRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	entry, err := s.clock.ClockOut(c.UserContext(), req.ContractorID)
	if err != nil {
		return s.serviceError(c, err)
	}

	return jsonOK(c, "clocked out", toTimeEntryResponse(entry))
}

func (s *Server) recentEntries(c *fiber.Ctx) error {
	contractorID := c.Query("contractor_id")
	if contractorID == "" {
		return jsonError(c, fiber.StatusBadRequest, "contractor_id is required")
	}
	limit := c.QueryInt("limit", 50)

	entries, err := s.clock.Recent(c.UserContext(), contractorID, limit)
	if err != nil {
		return s.serviceError(c, err)
	}
	return jsonOK(c, "ok", toTimeEntryResponses(entries))
}

func (s *Server) entryScreenshots(c *fiber.Ctx) error {
	links, err := s.clock.EntryScreenshots(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return jsonOK(c, "ok", toScreenshotLinkResponses(links))
}

func (s *Server) attendanceReport(c *fiber.Ctx) error {
	contractorID := c.Query("contractor_id")
	if contractorID == "" {
		return jsonError(c, fiber.StatusBadRequest, "contractor_id is required")
	}

	rows, err := s.reports.Generate(c.UserContext(), contractorID, c.Query("from"), c.Query("to"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return jsonOK(c, "ok", rows)
}

func (s *Server) systemInfo(c *fiber.Ctx) error {
	info, err := s.clock.SystemSnapshot(c.UserContext())
	if err != nil {
		return s.serviceError(c, err)
	}
	return jsonOK(c, "ok", info)
}

package handlers

import (
	"strings"

	"adboard/internal/log"
	"adboard/internal/repos"
	"adboard/internal/services"
	"adboard/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdHandler struct {
	Ads *services.AdService
}

func (h *AdHandler) Create(c *fiber.Ctx) error {
	var in struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		CategoryID  int64   `json:"categoryId"`
		Price       float64 `json:"price"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}

	title, ok := validate.Title(in.Title)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "title"})
		return badRequest(c, "enter a valid title")
	}
	desc, ok := validate.Description(in.Description)
	if !ok {
		return badRequest(c, "description too long")
	}
	if in.Price < 0 {
		return badRequest(c, "price must not be negative")
	}

	u := currentUser(c)
	ad, err := h.Ads.Create(u.ID, services.CreateAdInput{
		Title:       title,
		Description: desc,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
	})
	if err != nil {
		return fail(c, "ad.create.error", err)
	}

	log.Audit(c, "ad.create", map[string]any{"ad_id": ad.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "ad created", "ad": ad})
}

func (h *AdHandler) ListMine(c *fiber.Ctx) error {
	u := currentUser(c)
	ads, err := h.Ads.ListMine(u.ID)
	if err != nil {
		return fail(c, "ad.list_mine.error", err)
	}
	return c.JSON(ads)
}

func (h *AdHandler) Search(c *fiber.Ctx) error {
	f := repos.AdFilter{
		Title:    strings.TrimSpace(c.Query("title")),
		SortBy:   validate.Sort(c.Query("sortBy")),
		Page:     validate.Page(c.Query("page")),
		PageSize: validate.PageSize(c.Query("pageSize")),
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, ok := validate.ID(raw)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "categoryId"})
			return badRequest(c, "invalid categoryId")
		}
		f.CategoryID = id
	}
	if raw := c.Query("minPrice"); raw != "" {
		p, ok := validate.Price(raw)
		if !ok {
			return badRequest(c, "invalid minPrice")
		}
		f.MinPrice = &p
	}
	if raw := c.Query("maxPrice"); raw != "" {
		p, ok := validate.Price(raw)
		if !ok {
			return badRequest(c, "invalid maxPrice")
		}
		f.MaxPrice = &p
	}

	ads, err := h.Ads.Search(f)
	if err != nil {
		return fail(c, "ad.search.error", err)
	}
	return c.JSON(ads)
}

func (h *AdHandler) Update(c *fiber.Ctx) error {
	adID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid ad id")
	}
	var in struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		CategoryID  *int64   `json:"categoryId"`
		Price       *float64 `json:"price"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}

	var fields repos.AdUpdate
	if in.Title != nil {
		title, ok := validate.Title(*in.Title)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "title"})
			return badRequest(c, "enter a valid title")
		}
		fields.Title = &title
	}
	if in.Description != nil {
		desc, ok := validate.Description(*in.Description)
		if !ok {
			return badRequest(c, "description too long")
		}
		fields.Description = &desc
	}
	if in.CategoryID != nil {
		fields.CategoryID = in.CategoryID
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return badRequest(c, "price must not be negative")
		}
		fields.Price = in.Price
	}

	u := currentUser(c)
	ad, err := h.Ads.Update(u.ID, adID, fields)
	if err != nil {
		return fail(c, "ad.update.error", err)
	}

	log.Audit(c, "ad.update", map[string]any{"ad_id": ad.ID})
	return c.JSON(fiber.Map{"message": "ad updated", "ad": ad})
}

func (h *AdHandler) Delete(c *fiber.Ctx) error {
	adID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid ad id")
	}
	u := currentUser(c)
	if err := h.Ads.Delete(u.ID, adID); err != nil {
		return fail(c, "ad.delete.error", err)
	}
	log.Audit(c, "ad.delete", map[string]any{"ad_id": adID})
	return c.JSON(fiber.Map{"message": "ad deleted"})
}

func (h *AdHandler) MarkSold(c *fiber.Ctx) error {
	adID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid ad id")
	}
	u := currentUser(c)
	ad, err := h.Ads.MarkSold(u.ID, adID)
	if err != nil {
		return fail(c, "ad.mark_sold.error", err)
	}
	log.Audit(c, "ad.mark_sold", map[string]any{"ad_id": ad.ID})
	return c.JSON(fiber.Map{"message": "ad marked as sold", "ad": ad})
}

func (h *AdHandler) ListAll(c *fiber.Ctx) error {
	ads, err := h.Ads.ListAll()
	if err != nil {
		return fail(c, "ad.list_all.error", err)
	}
	return c.JSON(ads)
}

// ListByUser is the third-party lookup; a user with zero ads yields 404
// rather than an empty list.
func (h *AdHandler) ListByUser(c *fiber.Ctx) error {
	userID, ok := validate.ID(c.Params("userId"))
	if !ok {
		return badRequest(c, "invalid user id")
	}
	ads, err := h.Ads.ListByUser(userID)
	if err != nil {
		return fail(c, "ad.list_by_user.error", err)
	}
	return c.JSON(ads)
}

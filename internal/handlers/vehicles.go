package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/carousel"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/description"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/filter"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/mobilede"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/models"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/specs"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/util"
	"github.com/mohamad-kareem/Autocenter-Juelich/internal/validation"
)

// SimilarCount is how many other vehicles the detail page suggests
const SimilarCount = 3

// AdSource is the upstream listings provider
type AdSource interface {
	ListAds(ctx context.Context) ([]models.Ad, error)
	GetAd(ctx context.Context, id string) (*models.Ad, error)
}

// VehicleHandler serves the listing and the detail page data
type VehicleHandler struct {
	ads      AdSource
	location string
}

// NewVehicleHandler creates a handler. location overrides the dealer
// location shown on every vehicle when set.
func NewVehicleHandler(ads AdSource, location string) *VehicleHandler {
	return &VehicleHandler{ads: ads, location: location}
}

// ListResponse is the filtered listing
type ListResponse struct {
	Count    int               `json:"count"`
	Vehicles []*models.Vehicle `json:"vehicles"`
	Query    string            `json:"query"`
	Criteria filter.Criteria   `json:"criteria"`
	Options  filter.Options    `json:"options"`
}

// Gallery is the server side carousel state of a detail page
type Gallery struct {
	Images     []string `json:"images"`
	Index      int      `json:"index"`
	Current    string   `json:"current"`
	PrevIndex  int      `json:"prevIndex"`
	NextIndex  int      `json:"nextIndex"`
	Thumbnails []string `json:"thumbnails"`
	Remaining  int      `json:"remaining"`
}

// SimilarVehicle is a teaser card under the detail page
type SimilarVehicle struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Image     string   `json:"image"`
	Year      string   `json:"year,omitempty"`
	Km        *int     `json:"km"`
	Fuel      string   `json:"fuel,omitempty"`
	Price     *float64 `json:"price"`
	PriceText string   `json:"priceText,omitempty"`
}

// DetailResponse is everything the vehicle detail page shows
type DetailResponse struct {
	Vehicle         *models.Vehicle     `json:"vehicle"`
	Title           string              `json:"title"`
	Meta            specs.Meta          `json:"meta"`
	PriceText       string              `json:"priceText,omitempty"`
	Condition       string              `json:"condition,omitempty"`
	Warranty        bool                `json:"warranty"`
	QuickFacts      []specs.Field       `json:"quickFacts"`
	Sections        []specs.Section     `json:"sections"`
	Description     []description.Block `json:"description"`
	DescriptionHTML string              `json:"descriptionHtml"`
	Gallery         Gallery             `json:"gallery"`
	Similar         []SimilarVehicle    `json:"similar"`
}

// Inventory fetches every ad fresh and maps it to vehicles
func (h *VehicleHandler) Inventory(ctx context.Context) ([]*models.Vehicle, error) {
	ads, err := h.ads.ListAds(ctx)
	if err != nil {
		return nil, err
	}
	vehicles := make([]*models.Vehicle, 0, len(ads))
	for i := range ads {
		vehicles = append(vehicles, h.toVehicle(&ads[i]))
	}
	return vehicles, nil
}

func (h *VehicleHandler) toVehicle(ad *models.Ad) *models.Vehicle {
	v := ad.ToVehicle()
	if h.location != "" {
		v.Location = h.location
	}
	return v
}

// ListVehicles godoc
// @Summary List vehicles
// @Description Returns the dealer's vehicles filtered and sorted by the query string. Option lists are derived from the full inventory.
// @Tags vehicles
// @Produce json
// @Param q query string false "Free text matched against title, brand and model"
// @Param sort query string false "Sort mode" Enums(newest, price-asc, price-desc, km)
// @Param brand query string false "Comma separated brands"
// @Param fuel query string false "Comma separated fuel types"
// @Param gearbox query string false "Gearbox type"
// @Param min query string false "Minimum price"
// @Param max query string false "Maximum price"
// @Param yf query string false "First registration from year"
// @Param yt query string false "First registration to year"
// @Success 200 {object} ListResponse
// @Failure 429 {object} map[string]string "error: Too many requests"
// @Failure 502 {object} map[string]string "error: Provider unavailable"
// @Router /api/vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	inventory, err := h.Inventory(c.Request.Context())
	if err != nil {
		util.SafeErrorResponse(c, http.StatusBadGateway, "Fahrzeuge konnten nicht geladen werden.", err)
		return
	}

	criteria := filter.Parse(c.Request.URL.Query())
	visible := filter.Apply(inventory, criteria)

	c.JSON(http.StatusOK, ListResponse{
		Count:    len(visible),
		Vehicles: visible,
		Query:    criteria.Encode(),
		Criteria: criteria,
		Options:  filter.BuildOptions(inventory),
	})
}

// GetVehicle godoc
// @Summary Get vehicle detail
// @Description Returns one vehicle with its spec sections, parsed description, gallery and up to three similar vehicles
// @Tags vehicles
// @Produce json
// @Param id path string true "mobile.de ad id"
// @Param image query int false "Selected gallery image"
// @Success 200 {object} DetailResponse
// @Failure 400 {object} map[string]string "error: Invalid vehicle id"
// @Failure 404 {object} map[string]interface{} "error: Vehicle not found"
// @Failure 502 {object} map[string]string "error: Provider unavailable"
// @Router /api/vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id := c.Param("id")
	if err := validation.ValidateListingID(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ungültige Fahrzeug-ID"})
		return
	}

	ctx := c.Request.Context()
	ad, err := h.ads.GetAd(ctx, id)
	if errors.Is(err, mobilede.ErrAdNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fahrzeug nicht gefunden", "meta": specs.NotFoundMeta()})
		return
	}
	if err != nil {
		util.SafeErrorResponse(c, http.StatusBadGateway, "Fahrzeug konnte nicht geladen werden.", err)
		return
	}

	blocks := description.Blocks(ad.Description)
	descHTML, err := description.RenderHTML(blocks)
	if err != nil {
		log.Warn("Description render failed", "id", id, "err", err)
		descHTML = ""
	}

	selected, _ := strconv.Atoi(c.Query("image"))

	c.JSON(http.StatusOK, DetailResponse{
		Vehicle:         h.toVehicle(ad),
		Title:           specs.Title(ad),
		Meta:            specs.PageMeta(ad),
		PriceText:       specs.PriceText(ad),
		Condition:       ad.Condition,
		Warranty:        ad.Warranty != nil && *ad.Warranty,
		QuickFacts:      orEmpty(specs.QuickFacts(ad)),
		Sections:        orEmpty(specs.Sections(ad)),
		Description:     orEmpty(blocks),
		DescriptionHTML: descHTML,
		Gallery:         buildGallery(ad.ImageRefs(), selected),
		Similar:         h.similar(ctx, ad.ID()),
	})
}

// similar lists other ads of the dealer. A failed fetch only costs the
// suggestions.
func (h *VehicleHandler) similar(ctx context.Context, excludeID string) []SimilarVehicle {
	out := []SimilarVehicle{}
	ads, err := h.ads.ListAds(ctx)
	if err != nil {
		log.Warn("Similar vehicles unavailable", "err", err)
		return out
	}

	for i := range ads {
		if len(out) == SimilarCount {
			break
		}
		ad := &ads[i]
		if ad.ID() == excludeID {
			continue
		}
		v := ad.ToVehicle()
		out = append(out, SimilarVehicle{
			ID:        v.ID,
			Title:     specs.Title(ad),
			Image:     v.Images[0],
			Year:      models.FormatYearMonth(ad.FirstRegistration),
			Km:        v.Mileage,
			Fuel:      v.FuelLabel,
			Price:     v.Price,
			PriceText: specs.PriceText(ad),
		})
	}
	return out
}

// buildGallery falls back to the placeholder before building the carousel
// so images and thumbnails always describe the same list.
func buildGallery(images []string, selected int) Gallery {
	c := carousel.New(images)
	if c.Len() == 0 {
		c = carousel.New([]string{models.PlaceholderImage})
	}
	c.Select(selected)
	g := Gallery{
		Images:  c.Images(),
		Index:   c.Index(),
		Current: c.Current(),
	}

	c.Prev()
	g.PrevIndex = c.Index()
	c.Select(g.Index)
	c.Next()
	g.NextIndex = c.Index()

	g.Thumbnails, g.Remaining = c.Thumbnails(carousel.DefaultThumbnails)
	return g
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/advisio/crm-console/internal/http/middleware"
	"github.com/advisio/crm-console/internal/listing"
	"github.com/advisio/crm-console/internal/service"
)

type Handler struct {
	auth      *service.AuthService
	clients   *service.ClientService
	advisors  *service.AdvisorService
	contracts *service.ContractService
	exports   *service.ExportService
	log       zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	clients *service.ClientService,
	advisors *service.AdvisorService,
	contracts *service.ContractService,
	exports *service.ExportService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		clients:   clients,
		advisors:  advisors,
		contracts: contracts,
		exports:   exports,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/clients", h.listClients)
	protected.POST("/clients", h.createClient)
	protected.GET("/clients/export", h.exportClients)
	protected.GET("/clients/:id", h.getClient)
	protected.PUT("/clients/:id", h.updateClient)
	protected.DELETE("/clients/:id", h.deleteClient)

	protected.GET("/advisors", h.listAdvisors)
	protected.POST("/advisors", h.createAdvisor)
	protected.GET("/advisors/export", h.exportAdvisors)
	protected.GET("/advisors/:id", h.getAdvisor)
	protected.PUT("/advisors/:id", h.updateAdvisor)
	protected.DELETE("/advisors/:id", h.deleteAdvisor)

	protected.GET("/contracts", h.listContracts)
	protected.POST("/contracts", h.createContract)
	protected.GET("/contracts/export", h.exportContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.PUT("/contracts/:id", h.updateContract)
	protected.DELETE("/contracts/:id", h.deleteContract)
	protected.GET("/contracts/:id/advisors", h.contractAdvisors)
	protected.GET("/contracts/:id/pdf", h.contractPDF)

	protected.GET("/export/all", h.exportAll)
	protected.GET("/export/xlsx", h.exportWorkbook)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.clients.List(c.Request.Context(), parseSortState(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) getClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) createClient(c *gin.Context) {
	var input service.PersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.clients.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.PersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.clients.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) deleteClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listAdvisors(c *gin.Context) {
	advisors, err := h.advisors.List(c.Request.Context(), parseSortState(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, advisors)
}

func (h *Handler) getAdvisor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	advisor, err := h.advisors.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, advisor)
}

func (h *Handler) createAdvisor(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var input service.AdvisorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	advisor, err := h.advisors.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, advisor)
}

func (h *Handler) updateAdvisor(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.AdvisorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	advisor, err := h.advisors.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, advisor)
}

func (h *Handler) deleteAdvisor(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.advisors.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listContracts(c *gin.Context) {
	rows, err := h.contracts.List(c.Request.Context(), parseContractFilter(c), parseSortState(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	row, err := h.contracts.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *Handler) createContract(c *gin.Context) {
	var input service.ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contract, err := h.contracts.Create(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	contract, err := h.contracts.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.contracts.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) contractAdvisors(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	relations, err := h.contracts.Relations(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, relations)
}

func (h *Handler) exportClients(c *gin.Context) {
	result, err := h.exports.ClientsCSV(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, result)
}

func (h *Handler) exportAdvisors(c *gin.Context) {
	result, err := h.exports.AdvisorsCSV(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, result)
}

func (h *Handler) exportContracts(c *gin.Context) {
	result, err := h.exports.ContractsCSV(c.Request.Context(), parseContractFilter(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, result)
}

func (h *Handler) exportAll(c *gin.Context) {
	result, err := h.exports.AllCSV(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, result)
}

func (h *Handler) exportWorkbook(c *gin.Context) {
	result, err := h.exports.ContractsWorkbook(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, result)
}

func (h *Handler) contractPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.exports.ContractPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	writeAttachment(c, result)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateRegistration):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func writeAttachment(c *gin.Context, result *service.ExportResult) {
	c.Header("Content-Type", result.ContentType)
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// parseSortState reads the list ordering from the query. "sort"+"dir" name
// the active state; an additional "toggle" applies one column click to it,
// so a stateless client can drive the none→asc→desc→none cycle.
func parseSortState(c *gin.Context) listing.SortState {
	state := listing.SortState{
		Field:     strings.TrimSpace(c.Query("sort")),
		Direction: listing.SortDirection(strings.TrimSpace(c.Query("dir"))),
	}
	if toggle := strings.TrimSpace(c.Query("toggle")); toggle != "" {
		state = state.Toggle(toggle)
	}
	return state
}

func parseContractFilter(c *gin.Context) listing.ContractFilter {
	return listing.ContractFilter{
		Institutions: c.QueryArray("institution"),
		ClientIDs:    c.QueryArray("client_id"),
		AdvisorIDs:   c.QueryArray("advisor_id"),
	}
}
